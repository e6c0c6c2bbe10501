// Package ffprobe inspects a picked stream URL with ffprobe.
//
// Extractor metadata describes what a stream claims to be; probing confirms
// codecs, geometry and HDR transfer characteristics before a downstream
// pipeline commits to it.
//
// Primary entry point:
//   - Prober.Probe: runs ffprobe against a URL and returns the parsed Result
package ffprobe
