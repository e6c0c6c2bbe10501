package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeStub(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), mode); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestLocatorResolvesFromPath(t *testing.T) {
	binDir := t.TempDir()
	want := writeStub(t, binDir, "yt-dlp", 0o755)
	t.Setenv("PATH", binDir)

	loc := NewLocator(nil)
	got, err := loc.Resolve("yt-dlp")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Resolve = %q, want %q", got, want)
	}
}

func TestLocatorPrefersOverride(t *testing.T) {
	dir := t.TempDir()
	custom := writeStub(t, dir, "my-ytdlp", 0o755)
	t.Setenv("PATH", "")

	loc := NewLocator(map[string]string{"yt-dlp": custom, "ffmpeg": "  "})
	got, err := loc.Resolve("yt-dlp")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != custom {
		t.Fatalf("Resolve = %q, want %q", got, custom)
	}
	if loc.Command("ffmpeg") != "ffmpeg" {
		t.Fatalf("blank override should fall back to name, got %q", loc.Command("ffmpeg"))
	}
}

func TestLocatorMemoizesSuccessOnly(t *testing.T) {
	calls := 0
	loc := NewLocator(nil)
	binDir := t.TempDir()
	stub := writeStub(t, binDir, "ffprobe", 0o755)
	fail := true
	loc.lookPath = func(string) (string, error) {
		calls++
		if fail {
			return "", errors.New("missing")
		}
		return stub, nil
	}

	if _, err := loc.Resolve("ffprobe"); err == nil {
		t.Fatal("expected first lookup to fail")
	}
	fail = false
	for range 3 {
		if _, err := loc.Resolve("ffprobe"); err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("lookPath called %d times, want 2", calls)
	}

	loc.Forget("ffprobe")
	if _, err := loc.Resolve("ffprobe"); err != nil {
		t.Fatalf("Resolve after Forget: %v", err)
	}
	if calls != 3 {
		t.Fatalf("lookPath called %d times after Forget, want 3", calls)
	}
}

func TestLocatorRejectsNonExecutable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses execute permission checks")
	}
	dir := t.TempDir()
	path := writeStub(t, dir, "yt-dlp", 0o644)
	loc := NewLocator(nil)
	loc.lookPath = func(string) (string, error) { return path, nil }

	if _, err := loc.Resolve("yt-dlp"); err == nil {
		t.Fatal("expected non-executable binary to be rejected")
	}
}

func TestCheck(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present", 0o755)
	t.Setenv("PATH", binDir)

	reqs := []Requirement{
		{Name: "Present", Command: "present"},
		{Name: "Missing", Command: "clearly-not-present-binary", Optional: true},
		{Name: "Blank", Command: ""},
	}
	results := NewLocator(nil).Check(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present || results[0].Detail != "" {
		t.Fatalf("unexpected status for present binary: %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" || !results[1].Optional {
		t.Fatalf("unexpected status for missing binary: %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for blank command: %#v", results[2])
	}
}

func TestStandardListsExtractorFirst(t *testing.T) {
	reqs := Standard()
	if len(reqs) == 0 || reqs[0].Command != "yt-dlp" || reqs[0].Optional {
		t.Fatalf("unexpected standard requirements: %#v", reqs)
	}
}
