package resolver

import "testing"

func TestCanonicalize(t *testing.T) {
	const want = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	tests := []struct {
		name  string
		query string
		want  string
		ok    bool
	}{
		{name: "bare id", query: "dQw4w9WgXcQ", want: want, ok: true},
		{name: "padded id", query: "  dQw4w9WgXcQ\n", want: want, ok: true},
		{name: "watch url", query: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", want: want, ok: true},
		{name: "mobile watch", query: "https://m.youtube.com/watch?v=dQw4w9WgXcQ", want: want, ok: true},
		{name: "music", query: "https://music.youtube.com/watch?v=dQw4w9WgXcQ&list=RD", want: want, ok: true},
		{name: "short link", query: "https://youtu.be/dQw4w9WgXcQ?si=abc", want: want, ok: true},
		{name: "schemeless short link", query: "youtu.be/dQw4w9WgXcQ", want: want, ok: true},
		{name: "schemeless watch", query: "www.youtube.com/watch?v=dQw4w9WgXcQ", want: want, ok: true},
		{name: "shorts", query: "https://www.youtube.com/shorts/dQw4w9WgXcQ", want: want, ok: true},
		{name: "embed", query: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", want: want, ok: true},
		{name: "live", query: "https://www.youtube.com/live/dQw4w9WgXcQ", want: want, ok: true},
		{name: "other site", query: "https://vimeo.com/12345", want: "https://vimeo.com/12345", ok: true},
		{name: "youtube channel passes through", query: "https://www.youtube.com/@someone", want: "https://www.youtube.com/@someone", ok: true},
		{name: "free text", query: "never gonna give you up", ok: false},
		{name: "short word", query: "lofi", ok: false},
		{name: "empty", query: "   ", ok: false},
		{name: "ftp", query: "ftp://example.com/file", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Canonicalize(tc.query)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Canonicalize(%q) = (%q, %v), want (%q, %v)", tc.query, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestIsVideoID(t *testing.T) {
	for _, id := range []string{"dQw4w9WgXcQ", "a-b_c-d_e-f"} {
		if !IsVideoID(id) {
			t.Errorf("IsVideoID(%q) = false", id)
		}
	}
	for _, id := range []string{"", "short", "dQw4w9WgXcQx", "dQw4w9WgXc!"} {
		if IsVideoID(id) {
			t.Errorf("IsVideoID(%q) = true", id)
		}
	}
}
