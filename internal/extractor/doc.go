// Package extractor runs the yt-dlp binary and returns its raw JSON output.
//
// Every invocation is bounded by the configured timeout and retried with
// backoff when stderr suggests a transient failure. Failures are tagged with
// services markers so callers can tell missing videos from flaky networks.
package extractor
