package extractor

import (
	"strings"

	"ytdlx/internal/services"
)

var notFoundPatterns = []string{
	"video unavailable",
	"private video",
	"this video is not available",
	"this video has been removed",
	"does not exist",
	"http error 404",
	"incomplete youtube id",
	"is not a valid url",
	"unsupported url",
}

var transientPatterns = []string{
	"http error 429",
	"too many requests",
	"http error 500",
	"http error 502",
	"http error 503",
	"http error 504",
	"timed out",
	"connection reset",
	"connection refused",
	"temporary failure in name resolution",
	"unable to download",
	"remote end closed connection",
}

// classifyStderr picks the services marker that best describes a failed run.
func classifyStderr(stderr string) error {
	lower := strings.ToLower(stderr)
	for _, p := range notFoundPatterns {
		if strings.Contains(lower, p) {
			return services.ErrNotFound
		}
	}
	for _, p := range transientPatterns {
		if strings.Contains(lower, p) {
			return services.ErrTransient
		}
	}
	return services.ErrExternalTool
}

// lastErrorLine returns the most useful line of yt-dlp stderr for messages.
func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
