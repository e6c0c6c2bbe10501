package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// SampleVideoJSON is a trimmed yt-dlp dump with one audio, two video, one
// storyboard and one HLS format.
const SampleVideoJSON = `{
  "id": "dQw4w9WgXcQ",
  "title": "Sample Video",
  "channel": "Sample Channel",
  "duration": 212,
  "view_count": 1500000,
  "webpage_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
  "formats": [
    {"format_id": "sb0", "format_note": "storyboard", "protocol": "mhtml", "url": "https://sb.example/0"},
    {"format_id": "140", "format_note": "medium", "protocol": "https", "resolution": "audio only", "filesize": 3433514, "abr": 129.5, "acodec": "mp4a.40.2", "vcodec": "none", "ext": "m4a", "url": "https://a.example/140"},
    {"format_id": "134", "format_note": "360p", "protocol": "https", "resolution": "640x360", "filesize": 4000000, "vbr": 150, "vcodec": "avc1", "acodec": "none", "ext": "mp4", "url": "https://v.example/134"},
    {"format_id": "137", "format_note": "1080p", "protocol": "https", "resolution": "1920x1080", "filesize": 80000000, "vbr": 3000, "vcodec": "avc1", "acodec": "none", "ext": "mp4", "url": "https://v.example/137"},
    {"format_id": "hls-720", "format_note": "720p", "protocol": "m3u8_native", "resolution": "1280x720", "vbr": 1500, "ext": "mp4", "url": "https://m.example/720.m3u8"}
  ]
}`
