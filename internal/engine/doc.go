// Package engine turns raw extractor output into a small set of download
// candidates.
//
// The extractor reports dozens of stream variants per video. Classify folds
// them into per-key buckets (lowest and highest filesize per format note,
// lowest and highest bitrate per manifest resolution, DRC and HDR variants)
// and then reduces the plain buckets to single scalar picks. The result is an
// Output whose JSON shape is the contract every downstream consumer relies on.
//
// Key types:
//   - Envelope: decoded extractor JSON (formats plus metadata)
//   - Format: one raw stream descriptor with numeric fields coerced to Number
//   - Output: scalar picks, projected bucket lists, and metadata
//
// Classify is pure. All bucket state is allocated per call, so concurrent
// calls on independent envelopes are safe.
package engine
