package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"ytdlx/internal/services"
)

// ErrMalformedInput reports an envelope that cannot be classified at all.
var ErrMalformedInput = fmt.Errorf("%w: malformed extractor output", services.ErrValidation)

// Number is a nullable numeric field. The extractor emits numbers, numeric
// strings, and nulls for the same keys depending on the site and client, so
// decoding accepts all three and anything else is treated as absent.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a valid Number.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// IsZero reports whether the number is absent.
func (n Number) IsZero() bool {
	return !n.Valid
}

// Int64 truncates the value, returning 0 when absent.
func (n Number) Int64() int64 {
	if !n.Valid {
		return 0
	}
	return int64(n.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	raw := string(trimmed)
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = Num(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

// Format is one stream descriptor from the extractor's format list.
type Format struct {
	FormatID         string          `json:"format_id"`
	FormatNote       string          `json:"format_note"`
	Protocol         string          `json:"protocol"`
	Resolution       string          `json:"resolution"`
	Filesize         Number          `json:"filesize"`
	FilesizeApprox   Number          `json:"filesize_approx"`
	VBR              Number          `json:"vbr"`
	ABR              Number          `json:"abr"`
	TBR              Number          `json:"tbr"`
	ASR              Number          `json:"asr"`
	FPS              Number          `json:"fps"`
	Width            Number          `json:"width"`
	Height           Number          `json:"height"`
	AspectRatio      Number          `json:"aspect_ratio"`
	AudioChannels    Number          `json:"audio_channels"`
	Quality          Number          `json:"quality"`
	SourcePreference Number          `json:"source_preference"`
	URL              string          `json:"url"`
	ManifestURL      string          `json:"manifest_url"`
	Ext              string          `json:"ext"`
	ACodec           string          `json:"acodec"`
	VCodec           string          `json:"vcodec"`
	Container        string          `json:"container"`
	DynamicRange     string          `json:"dynamic_range"`
	AudioExt         string          `json:"audio_ext"`
	VideoExt         string          `json:"video_ext"`
	Format           string          `json:"format"`
	Language         string          `json:"language"`
	HasDRM           json.RawMessage `json:"has_drm,omitempty"`
}

// Envelope is the decoded extractor response for a single video.
type Envelope struct {
	Formats []Format `json:"formats"`

	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Channel              string   `json:"channel"`
	Uploader             string   `json:"uploader"`
	Duration             Number   `json:"duration"`
	Thumbnail            string   `json:"thumbnail"`
	AgeLimit             Number   `json:"age_limit"`
	ChannelID            string   `json:"channel_id"`
	Categories           []string `json:"categories"`
	DisplayID            string   `json:"display_id"`
	ViewCount            Number   `json:"view_count"`
	LikeCount            Number   `json:"like_count"`
	Description          string   `json:"description"`
	ChannelURL           string   `json:"channel_url"`
	WebpageURL           string   `json:"webpage_url"`
	LiveStatus           string   `json:"live_status"`
	UploadDate           string   `json:"upload_date"`
	UploaderID           string   `json:"uploader_id"`
	OriginalURL          string   `json:"original_url"`
	UploaderURL          string   `json:"uploader_url"`
	CommentCount         Number   `json:"comment_count"`
	DurationString       string   `json:"duration_string"`
	ChannelFollowerCount Number   `json:"channel_follower_count"`
}

// Parse decodes raw extractor JSON. A missing, null, or non-array formats
// field is reported as ErrMalformedInput; an empty array is not. Mistyped
// passthrough fields elsewhere are left at their zero value.
func Parse(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		if typeErr.Field == "formats" {
			return nil, fmt.Errorf("%w: formats is not an array", ErrMalformedInput)
		}
	}
	if env.Formats == nil {
		return nil, fmt.Errorf("%w: formats missing", ErrMalformedInput)
	}
	return &env, nil
}
