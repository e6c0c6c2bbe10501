package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ytdlx/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "extractor", "dump", "yt-dlp exited", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"extractor", "dump", "yt-dlp exited"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transient", services.Wrap(services.ErrTransient, "extractor", "dump", "", nil), true},
		{"timeout", services.Wrap(services.ErrTimeout, "extractor", "dump", "", nil), true},
		{"tool", services.Wrap(services.ErrExternalTool, "extractor", "dump", "", nil), true},
		{"not found", services.Wrap(services.ErrNotFound, "resolver", "search", "", nil), false},
		{"validation", services.Wrap(services.ErrValidation, "engine", "parse", "", nil), false},
		{"config", services.Wrap(services.ErrConfiguration, "deps", "locate", "", nil), false},
		{"canceled", fmt.Errorf("run: %w", context.Canceled), false},
		{"deadline wrapped in tool", services.Wrap(services.ErrExternalTool, "x", "y", "", context.DeadlineExceeded), false},
		{"unmarked", errors.New("plain"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.IsRetryable(tt.err); got != tt.want {
				t.Fatalf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
