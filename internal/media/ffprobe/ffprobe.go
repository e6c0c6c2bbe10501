package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"ytdlx/internal/deps"
	"ytdlx/internal/logging"
	"ytdlx/internal/services"
)

// Binary is the locator key for ffprobe.
const Binary = "ffprobe"

const component = "ffprobe"

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream reported by ffprobe.
type Stream struct {
	Index          int    `json:"index"`
	CodecName      string `json:"codec_name"`
	CodecType      string `json:"codec_type"`
	Profile        string `json:"profile,omitempty"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
	PixFmt         string `json:"pix_fmt,omitempty"`
	ColorTransfer  string `json:"color_transfer,omitempty"`
	ColorPrimaries string `json:"color_primaries,omitempty"`
	AvgFrameRate   string `json:"avg_frame_rate,omitempty"`
	BitRate        string `json:"bit_rate,omitempty"`
	SampleRate     string `json:"sample_rate,omitempty"`
	Channels       int    `json:"channels,omitempty"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	FormatName string `json:"format_name"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

// Prober runs ffprobe through a binary locator.
type Prober struct {
	locator *deps.Locator
	timeout time.Duration
	logger  *slog.Logger
}

// NewProber returns a Prober. A zero timeout leaves probes bounded only by ctx.
func NewProber(locator *deps.Locator, timeout time.Duration, logger *slog.Logger) *Prober {
	if locator == nil {
		locator = deps.NewLocator(nil)
	}
	return &Prober{locator: locator, timeout: timeout, logger: logging.NewComponentLogger(logger, component)}
}

// Probe inspects target, which may be a local path or a stream URL.
func (p *Prober) Probe(ctx context.Context, target string) (Result, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Result{}, services.Wrap(services.ErrValidation, component, "probe", "empty target", nil)
	}
	binary, err := p.locator.Resolve(Binary)
	if err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, component, "probe", "locate ffprobe", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := []string{"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", target}
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.WithContext(ctx, p.logger).Debug("probing stream", logging.String("target", redact(target)))
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, services.Wrap(services.ErrTimeout, component, "probe", "ffprobe timed out", nil)
		}
		return Result{}, services.Wrap(services.ErrExternalTool, component, "probe", strings.TrimSpace(stderr.String()), err)
	}
	return Parse(stdout.Bytes())
}

// Parse decodes ffprobe's JSON output.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, component, "parse", "decode ffprobe output", err)
	}
	return result, nil
}

// redact drops the query string, which carries signed tokens on stream URLs.
func redact(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		return target[:i] + "?..."
	}
	return target
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	return r.countType("video")
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	return r.countType("audio")
}

func (r Result) countType(kind string) int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, kind) {
			count++
		}
	}
	return count
}

// PrimaryVideo returns the first video stream.
func (r Result) PrimaryVideo() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// IsHDR reports whether the primary video stream uses a PQ or HLG transfer.
func (r Result) IsHDR() bool {
	video, ok := r.PrimaryVideo()
	if !ok {
		return false
	}
	switch strings.ToLower(video.ColorTransfer) {
	case "smpte2084", "arib-std-b67":
		return true
	}
	return false
}

// FrameRate parses avg_frame_rate ("30000/1001") into frames per second.
func (s Stream) FrameRate() float64 {
	num, den, ok := strings.Cut(strings.TrimSpace(s.AvgFrameRate), "/")
	if !ok {
		return parseFloat(num)
	}
	n, d := parseFloat(num), parseFloat(den)
	if d == 0 || math.IsNaN(n) || math.IsNaN(d) {
		return 0
	}
	return n / d
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	rate := parseFloat(r.Format.BitRate)
	if math.IsNaN(rate) || rate < 0 {
		return 0
	}
	return int64(rate)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}

// Summary is a one-line description of the probed stream.
func (r Result) Summary() string {
	parts := []string{r.Format.FormatName}
	if video, ok := r.PrimaryVideo(); ok {
		desc := fmt.Sprintf("%s %dx%d", video.CodecName, video.Width, video.Height)
		if fps := video.FrameRate(); fps > 0 {
			desc += fmt.Sprintf(" @%.3gfps", fps)
		}
		if r.IsHDR() {
			desc += " HDR"
		}
		parts = append(parts, desc)
	}
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			parts = append(parts, fmt.Sprintf("%s %sHz %dch", stream.CodecName, stream.SampleRate, stream.Channels))
			break
		}
	}
	return strings.Join(parts, ", ")
}
