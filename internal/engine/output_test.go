package engine

import (
	"encoding/json"
	"strings"
	"testing"
)

const outputFixture = `{
  "id": "dQw4w9WgXcQ",
  "title": "Sample",
  "duration": 212,
  "view_count": 1500,
  "categories": ["Music"],
  "formats": [
    {"format_id": "140", "format_note": "medium", "protocol": "https", "resolution": "audio only", "filesize": 2097152, "abr": 129.5, "acodec": "mp4a.40.2", "url": "https://a/140", "source_preference": -1, "has_drm": false},
    {"format_id": "134", "format_note": "360p", "protocol": "https", "resolution": "640x360", "filesize": 4000000, "vcodec": "avc1", "url": "https://v/134"},
    {"format_id": "137", "format_note": "1080p", "protocol": "https", "resolution": "1920x1080", "filesize": 80000000, "vcodec": "avc1", "url": "https://v/137"},
    {"format_id": "hls-720", "format_note": "720p", "protocol": "m3u8_native", "resolution": "1280x720", "vbr": 1500, "format": "hls-720 - 1280x720 (720p)", "url": "https://m/720.m3u8", "manifest_url": "https://m/master.m3u8"}
  ]
}`

func classifyFixture(t *testing.T) *Output {
	t.Helper()
	out, err := ClassifyJSON([]byte(outputFixture))
	if err != nil {
		t.Fatalf("ClassifyJSON returned error: %v", err)
	}
	return out
}

func TestOutputJSONContract(t *testing.T) {
	data, err := json.Marshal(classifyFixture(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	keys := []string{
		"AudioLowF", "AudioHighF", "VideoLowF", "VideoHighF",
		"AudioLowDRC", "AudioHighDRC", "AudioLow", "AudioHigh",
		"VideoLowHDR", "VideoHighHDR", "VideoLow", "VideoHigh",
		"ManifestLow", "ManifestHigh", "metaData",
	}
	for _, key := range keys {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if len(decoded) != len(keys) {
		t.Errorf("unexpected key count %d", len(decoded))
	}
	if string(decoded["AudioLowDRC"]) != "[]" {
		t.Errorf("empty buckets should encode as [], got %s", decoded["AudioLowDRC"])
	}

	low := string(decoded["AudioLowF"])
	for _, want := range []string{`"filesizeP":"2.00 MB"`, `"url":"https://a/140"`, `"protocol":"https"`, `"abr":129.5`} {
		if !strings.Contains(low, want) {
			t.Errorf("AudioLowF missing %s: %s", want, low)
		}
	}
	for _, dropped := range []string{"format_id", "source_preference", "has_drm", `"vbr"`} {
		if strings.Contains(low, dropped) {
			t.Errorf("AudioLowF should not carry %s: %s", dropped, low)
		}
	}

	manifests := string(decoded["ManifestHigh"])
	if !strings.Contains(manifests, `"manifest_url":"https://m/master.m3u8"`) || strings.Contains(manifests, "filesize") {
		t.Errorf("unexpected manifest projection: %s", manifests)
	}

	meta := string(decoded["metaData"])
	if !strings.Contains(meta, `"duration":212`) || !strings.Contains(meta, `"categories":["Music"]`) {
		t.Errorf("unexpected metaData: %s", meta)
	}
	if strings.Contains(meta, "like_count") {
		t.Errorf("absent numbers should be omitted: %s", meta)
	}
}

func TestOutputHelpers(t *testing.T) {
	out := classifyFixture(t)
	if !out.HasAudio() || !out.HasVideo() {
		t.Fatal("expected audio and video picks")
	}
	if out.VideoLowF.URL != "https://v/134" || out.VideoHighF.URL != "https://v/137" {
		t.Fatalf("unexpected video picks %q %q", out.VideoLowF.URL, out.VideoHighF.URL)
	}
	m, ok := out.ManifestMatching("1280")
	if !ok || m.URL != "https://m/720.m3u8" {
		t.Fatalf("ManifestMatching = %+v, %v", m, ok)
	}
	if _, ok := out.ManifestMatching("4K"); ok {
		t.Fatal("unexpected manifest match")
	}
	v, ok := out.VideoMatching("1080")
	if !ok || v.URL != "https://v/137" {
		t.Fatalf("VideoMatching = %+v, %v", v, ok)
	}
	var nilOut *Output
	if nilOut.HasAudio() || nilOut.HasVideo() {
		t.Fatal("nil output has no picks")
	}
}
