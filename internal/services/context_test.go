package services_test

import (
	"context"
	"testing"

	"ytdlx/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRequestID(ctx, "req-123")
	ctx = services.WithQuery(ctx, "lofi beats")

	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
	if q, ok := services.QueryFromContext(ctx); !ok || q != "lofi beats" {
		t.Fatalf("unexpected query: %v %v", q, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRequestID(ctx, "")
	ctx = services.WithQuery(ctx, "")
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
	if _, ok := services.QueryFromContext(ctx); ok {
		t.Fatal("expected no query value")
	}
}
