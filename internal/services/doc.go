// Package services defines shared utilities consumed by the extractor runner,
// resolver, and CLI.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and queries for
//     logging.
//   - Structured error markers plus the Wrap helper, and IsRetryable which
//     decides whether the runner backs off and tries again.
//
// Use these helpers when wiring new components so error handling and
// observability stay uniform.
package services
