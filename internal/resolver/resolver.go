// Package resolver turns a user query into a classified format set.
//
// A query is either something that canonicalizes to a URL (links and bare
// video ids) or free text, which is searched and the first hit used. The
// extractor output for that URL is parsed and classified by the engine.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytdlx/internal/engine"
	"ytdlx/internal/extractor"
	"ytdlx/internal/history"
	"ytdlx/internal/logging"
	"ytdlx/internal/services"
)

const component = "resolver"

var (
	// ErrNoResults is returned when a search finds nothing to resolve.
	ErrNoResults = fmt.Errorf("%w: no search results", services.ErrNotFound)
	// ErrUpstream is returned when the extractor answered without any formats.
	ErrUpstream = fmt.Errorf("%w: extractor returned no formats", services.ErrExternalTool)
)

// Options is passed through to the extractor.
type Options = extractor.Options

// Extractor is the subset of extractor.Runner the resolver needs.
type Extractor interface {
	DumpJSON(ctx context.Context, url string, opts extractor.Options) ([]byte, error)
	Search(ctx context.Context, query string, limit int) ([]extractor.SearchResult, error)
}

// Recorder stores successful resolutions.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (history.Entry, error)
}

// Result is a classified lookup.
type Result struct {
	RequestID string         `json:"requestId"`
	Query     string         `json:"query"`
	URL       string         `json:"url"`
	Output    *engine.Output `json:"output"`
}

// Resolver wires the extractor to the classifier.
type Resolver struct {
	extractor Extractor
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// New builds a Resolver. recorder may be nil to skip history.
func New(ext Extractor, recorder Recorder, logger *slog.Logger) *Resolver {
	return &Resolver{
		extractor: ext,
		recorder:  recorder,
		logger:    logging.NewComponentLogger(logger, component),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Resolve classifies the formats available for query.
func (r *Resolver) Resolve(ctx context.Context, query string, opts Options) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, component, "resolve", "empty query", nil)
	}

	requestID := r.newID()
	ctx = services.WithRequestID(ctx, requestID)
	ctx = services.WithQuery(ctx, query)
	logger := logging.WithContext(ctx, r.logger)

	url, err := r.URLFor(ctx, query)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved query", logging.String("url", url))

	raw, err := r.extractor.DumpJSON(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	env, err := engine.Parse(raw)
	if err != nil {
		return nil, err
	}
	if len(env.Formats) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, url)
	}
	out, err := engine.Classify(env)
	if err != nil {
		return nil, err
	}

	logger.Info("classified formats",
		logging.String("video_id", out.MetaData.ID),
		logging.Int("formats", len(env.Formats)),
		logging.Int("manifests", len(out.ManifestHigh)),
		logging.Bool("has_audio", out.HasAudio()),
		logging.Bool("has_video", out.HasVideo()),
	)

	result := &Result{RequestID: requestID, Query: query, URL: url, Output: out}
	r.record(ctx, result, len(env.Formats))
	return result, nil
}

// URLFor returns the URL the extractor should fetch for query, searching
// when the query is not a link or id.
func (r *Resolver) URLFor(ctx context.Context, query string) (string, error) {
	if url, ok := Canonicalize(query); ok {
		return url, nil
	}
	results, err := r.extractor.Search(ctx, query, 1)
	if err != nil {
		return "", err
	}
	for _, hit := range results {
		if IsVideoID(hit.ID) {
			return WatchURL(hit.ID), nil
		}
		if url, ok := Canonicalize(hit.URL); ok {
			return url, nil
		}
	}
	return "", fmt.Errorf("%w for %q", ErrNoResults, query)
}

// Search passes a free-text query through to the extractor.
func (r *Resolver) Search(ctx context.Context, query string, limit int) ([]extractor.SearchResult, error) {
	results, err := r.extractor.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoResults, strings.TrimSpace(query))
	}
	return results, nil
}

func (r *Resolver) record(ctx context.Context, result *Result, formatCount int) {
	if r.recorder == nil {
		return
	}
	meta := result.Output.MetaData
	entry := history.Entry{
		RequestID:       result.RequestID,
		Query:           result.Query,
		URL:             result.URL,
		VideoID:         meta.ID,
		Title:           meta.Title,
		Channel:         firstNonEmpty(meta.Channel, meta.Uploader),
		DurationSeconds: meta.Duration.Value,
		AudioPick:       firstNonEmpty(result.Output.AudioHighF.FormatNote, result.Output.AudioLowF.FormatNote),
		VideoPick:       firstNonEmpty(result.Output.VideoHighF.FormatNote, result.Output.VideoLowF.FormatNote),
		FormatCount:     formatCount,
		ResolvedAt:      r.now(),
	}
	if _, err := r.recorder.Record(ctx, entry); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "failed to record lookup history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "lookup missing from history"),
			logging.String(logging.FieldErrorHint, "check history.path permissions"),
		)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
