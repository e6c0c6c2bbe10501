package extractor

import "testing"

func TestLastErrorLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "WARNING: x\nERROR: [youtube] abc: Video unavailable\n", want: "[youtube] abc: Video unavailable"},
		{in: "line one\nline two\n\n", want: "line two"},
	}
	for _, tc := range tests {
		if got := lastErrorLine(tc.in); got != tc.want {
			t.Errorf("lastErrorLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
