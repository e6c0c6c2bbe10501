package main

import (
	"testing"

	"ytdlx/internal/engine"
	"ytdlx/internal/testsupport"
)

const ffprobeScript = `cat <<'JSON'
{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080, "avg_frame_rate": "30/1"}
  ],
  "format": {"format_name": "mp4", "duration": "212.0", "size": "80000000", "bit_rate": "3018867"}
}
JSON
`

func TestProbeCommandSummarizesPick(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithExtractorScript(sampleScript),
		testsupport.WithFFprobeScript(ffprobeScript),
	)

	stdout, _, err := runCLI(t, []string{"probe", "dQw4w9WgXcQ"}, env.configPath)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	requireContains(t, stdout, "Slot:     video-high")
	requireContains(t, stdout, "h264 1920x1080")
	requireContains(t, stdout, "76 MiB")
}

func TestProbeCommandRejectsUnknownSlot(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithExtractorScript(sampleScript),
		testsupport.WithFFprobeScript(ffprobeScript),
	)

	_, _, err := runCLI(t, []string{"probe", "--slot", "thumbnail", "dQw4w9WgXcQ"}, env.configPath)
	if err == nil {
		t.Fatal("expected unknown slot error")
	}
	requireContains(t, err.Error(), `unknown slot "thumbnail"`)
}

func TestPickURLFallsBackToLowSlot(t *testing.T) {
	out, err := engine.ClassifyJSON([]byte(testsupport.SampleVideoJSON))
	if err != nil {
		t.Fatalf("classify sample: %v", err)
	}

	tests := []struct {
		slot    string
		want    string
		wantErr bool
	}{
		{slot: slotVideoHigh, want: "https://v.example/137"},
		{slot: slotVideoLow, want: "https://v.example/134"},
		{slot: slotAudioHigh, want: "https://a.example/140"},
		{slot: slotAudioLow, want: "https://a.example/140"},
		{slot: "subtitles", wantErr: true},
	}
	for _, tt := range tests {
		got, err := pickURL(out, tt.slot)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tt.slot)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tt.slot, err)
		}
		if got != tt.want {
			t.Fatalf("%s: got %q want %q", tt.slot, got, tt.want)
		}
	}

	if _, err := pickURL(&engine.Output{}, slotVideoLow); err == nil {
		t.Fatal("expected error for empty output")
	}
}
