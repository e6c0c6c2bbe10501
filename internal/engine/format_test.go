package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"ytdlx/internal/services"
)

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{in: `1024`, want: 1024, valid: true},
		{in: `12.5`, want: 12.5, valid: true},
		{in: `"2048"`, want: 2048, valid: true},
		{in: `" 7 "`, want: 7, valid: true},
		{in: `null`},
		{in: `"abc"`},
		{in: `""`},
		{in: `"NaN"`},
		{in: `true`},
		{in: `{}`},
	}
	for _, tc := range tests {
		var n Number
		if err := json.Unmarshal([]byte(tc.in), &n); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", tc.in, err)
		}
		if n.Valid != tc.valid || n.Value != tc.want {
			t.Errorf("Unmarshal(%s) = %+v, want {%v %v}", tc.in, n, tc.want, tc.valid)
		}
	}
}

func TestNumberMarshal(t *testing.T) {
	data, err := json.Marshal(struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c,omitzero"`
	}{A: Num(1.5), B: Number{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"a":1.5,"b":null}` {
		t.Fatalf("got %s", data)
	}
	if Num(3.9).Int64() != 3 || (Number{}).Int64() != 0 {
		t.Fatal("Int64 should truncate and default to zero")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		malformed bool
	}{
		{name: "not json", in: `formats`, malformed: true},
		{name: "truncated", in: `{"formats":[`, malformed: true},
		{name: "missing formats", in: `{"id":"x"}`, malformed: true},
		{name: "null formats", in: `{"formats":null}`, malformed: true},
		{name: "object formats", in: `{"formats":{}}`, malformed: true},
		{name: "string formats", in: `{"formats":"nope"}`, malformed: true},
		{name: "empty formats", in: `{"formats":[]}`},
		{name: "mistyped metadata tolerated", in: `{"formats":[],"title":5}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, err := Parse([]byte(tc.in))
			if tc.malformed {
				if !errors.Is(err, ErrMalformedInput) || !errors.Is(err, services.ErrValidation) {
					t.Fatalf("expected malformed input, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if env.Formats == nil {
				t.Fatal("expected non-nil formats")
			}
		})
	}
}

func TestParseCoercesNumericStrings(t *testing.T) {
	env, err := Parse([]byte(`{
		"id": "abc",
		"duration": "212",
		"view_count": null,
		"formats": [
			{"format_note": "720p", "filesize": "1048576", "vbr": 1500.5, "tbr": "x", "url": "u"}
		]
	}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	f := env.Formats[0]
	if !f.Filesize.Valid || f.Filesize.Value != 1048576 {
		t.Fatalf("filesize = %+v", f.Filesize)
	}
	if f.VBR.Value != 1500.5 || f.TBR.Valid {
		t.Fatalf("unexpected bitrates vbr=%+v tbr=%+v", f.VBR, f.TBR)
	}
	if env.Duration.Value != 212 || env.ViewCount.Valid {
		t.Fatalf("unexpected metadata numbers: %+v %+v", env.Duration, env.ViewCount)
	}

	out, err := Classify(env)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if out.VideoLowF.FilesizeP.String() != "1.00 MB" {
		t.Fatalf("filesizeP = %q", out.VideoLowF.FilesizeP.String())
	}
}
