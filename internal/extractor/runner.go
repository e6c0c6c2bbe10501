package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"time"

	"ytdlx/internal/config"
	"ytdlx/internal/deps"
	"ytdlx/internal/engine"
	"ytdlx/internal/logging"
	"ytdlx/internal/retry"
	"ytdlx/internal/services"
)

// Binary is the locator key for the extractor executable.
const Binary = "yt-dlp"

const component = "extractor"

// Options tweak a single extractor invocation.
type Options struct {
	// UseTor routes the request through the configured SOCKS proxy.
	UseTor bool
	// Verbose asks yt-dlp for debug output, which is forwarded to the log.
	Verbose bool
}

// SearchResult is one flat-playlist entry of a ytsearch query.
type SearchResult struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	URL       string        `json:"url"`
	Channel   string        `json:"channel,omitempty"`
	Duration  engine.Number `json:"duration,omitzero"`
	ViewCount engine.Number `json:"view_count,omitzero"`
}

// Runner executes yt-dlp.
type Runner struct {
	locator   *deps.Locator
	timeout   time.Duration
	policy    retry.Policy
	torProxy  string
	extraArgs []string
	logger    *slog.Logger
}

// New builds a Runner from extractor configuration. A nil cfg uses defaults.
func New(cfg *config.Config, locator *deps.Locator, logger *slog.Logger) *Runner {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	if locator == nil {
		locator = deps.NewLocator(map[string]string{Binary: cfg.Extractor.Binary})
	}
	policy := retry.DefaultPolicy()
	policy.MaxRetries = cfg.Extractor.MaxRetries
	policy.InitialBackoff = cfg.MinBackoff()
	policy.MaxBackoff = cfg.MaxBackoff()
	return &Runner{
		locator:   locator,
		timeout:   cfg.ExtractorTimeout(),
		policy:    policy,
		torProxy:  cfg.Extractor.TorProxy,
		extraArgs: append([]string(nil), cfg.Extractor.ExtraArgs...),
		logger:    logging.NewComponentLogger(logger, component),
	}
}

// DumpJSON returns the single-video JSON document yt-dlp prints for url.
func (r *Runner) DumpJSON(ctx context.Context, url string, opts Options) ([]byte, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, services.Wrap(services.ErrValidation, component, "dump", "empty url", nil)
	}
	args := []string{"-J", "--no-warnings", "--no-playlist"}
	if opts.UseTor {
		if r.torProxy == "" {
			return nil, services.Wrap(services.ErrConfiguration, component, "dump", "tor requested but extractor.tor_proxy is empty", nil)
		}
		args = append(args, "--proxy", r.torProxy)
	}
	if opts.Verbose {
		args = append(args, "--verbose")
	}
	args = append(args, r.extraArgs...)
	args = append(args, "--", url)

	out, err := r.run(ctx, "dump", args)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, component, "dump", "yt-dlp produced no output", nil)
	}
	return out, nil
}

// Search runs a ytsearch query and returns up to limit flat entries.
func (r *Runner) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, component, "search", "empty query", nil)
	}
	if limit <= 0 {
		limit = 1
	}
	args := []string{"--flat-playlist", "-J", "--no-warnings"}
	args = append(args, r.extraArgs...)
	args = append(args, "--", "ytsearch"+strconv.Itoa(limit)+":"+query)

	out, err := r.run(ctx, "search", args)
	if err != nil {
		return nil, err
	}
	var playlist struct {
		Entries []SearchResult `json:"entries"`
	}
	if err := json.Unmarshal(out, &playlist); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, component, "search", "decode search output", err)
	}
	results := make([]SearchResult, 0, len(playlist.Entries))
	for _, entry := range playlist.Entries {
		if entry.ID == "" && entry.URL == "" {
			continue
		}
		results = append(results, entry)
	}
	return results, nil
}

// Version reports the extractor's version string.
func (r *Runner) Version(ctx context.Context) (string, error) {
	out, err := r.runOnce(ctx, "version", []string{"--version"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *Runner) run(ctx context.Context, operation string, args []string) ([]byte, error) {
	var out []byte
	observe := func(attempt int, delay time.Duration, err error) {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "extractor attempt failed; retrying", "extractor_retry",
			logging.String("operation", operation),
			logging.Int("attempt", attempt),
			logging.Duration("delay", delay),
			logging.Error(err),
			logging.String(logging.FieldImpact, "lookup delayed"),
			logging.String(logging.FieldErrorHint, "check network connectivity or rate limits"),
		)
	}
	err := retry.Do(ctx, r.policy, services.IsRetryable, observe, func(ctx context.Context) error {
		result, err := r.runOnce(ctx, operation, args)
		if err != nil {
			return err
		}
		out = result
		return nil
	})
	if err != nil {
		if r.policy.MaxRetries > 0 && services.IsRetryable(err) {
			logging.ErrorWithContext(logging.WithContext(ctx, r.logger), "extractor retries exhausted", "extractor_gave_up",
				logging.String("operation", operation),
				logging.Int("retries", r.policy.MaxRetries),
				logging.Error(err),
				logging.Alert("extractor_unavailable"),
				logging.String(logging.FieldErrorHint, "update yt-dlp or wait out upstream rate limiting"),
			)
		}
		return nil, err
	}
	return out, nil
}

func (r *Runner) runOnce(ctx context.Context, operation string, args []string) ([]byte, error) {
	binary, err := r.locator.Resolve(Binary)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, operation, "locate yt-dlp", err)
	}

	cmdCtx := ctx
	cancel := func() {}
	if r.timeout > 0 {
		cmdCtx, cancel = context.WithTimeout(ctx, r.timeout)
	}
	defer cancel()

	logger := logging.WithContext(ctx, r.logger)
	logger.Debug("running yt-dlp", logging.String("operation", operation), logging.Any("args", args))

	cmd := exec.CommandContext(cmdCtx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	logger.Debug("yt-dlp finished",
		logging.String("operation", operation),
		logging.Duration("elapsed", time.Since(start)),
		logging.Int("stdout_bytes", stdout.Len()),
	)
	if stderr.Len() > 0 && slices.Contains(args, "--verbose") {
		logger.Debug("yt-dlp stderr", logging.String("stderr", stderr.String()))
	}
	if runErr == nil {
		return stdout.Bytes(), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		return nil, services.Wrap(services.ErrTimeout, component, operation, fmt.Sprintf("yt-dlp exceeded %s", r.timeout), nil)
	}
	marker := classifyStderr(stderr.String())
	message := lastErrorLine(stderr.String())
	if message == "" {
		message = "yt-dlp failed"
	}
	return nil, services.Wrap(marker, component, operation, message, runErr)
}
