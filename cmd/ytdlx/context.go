package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"ytdlx/internal/config"
	"ytdlx/internal/deps"
	"ytdlx/internal/extractor"
	"ytdlx/internal/history"
	"ytdlx/internal/logging"
	"ytdlx/internal/media/ffprobe"
	"ytdlx/internal/resolver"
	"ytdlx/internal/services"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	locatorOnce sync.Once
	locator     *deps.Locator

	history *history.Store
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		override := ""
		if c.logLevelFlag != nil {
			override = strings.TrimSpace(*c.logLevelFlag)
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, override)
	})
	return c.logger, c.loggerErr
}

// raiseVerbosity switches logging to debug unless --log-level was given. It
// must run before the logger is first built.
func (c *commandContext) raiseVerbosity() {
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) == "" {
		*c.logLevelFlag = "debug"
	}
}

// binaries returns the shared locator seeded with configured binary paths.
func (c *commandContext) binaries() *deps.Locator {
	c.locatorOnce.Do(func() {
		overrides := map[string]string{}
		if cfg, err := c.ensureConfig(); err == nil {
			overrides[extractor.Binary] = cfg.Extractor.Binary
			overrides["ffmpeg"] = cfg.FFmpeg.FFmpegBinary
			overrides[ffprobe.Binary] = cfg.FFmpeg.FFprobeBinary
		}
		c.locator = deps.NewLocator(overrides)
	})
	return c.locator
}

func (c *commandContext) runner() (*extractor.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return extractor.New(cfg, c.binaries(), logger), nil
}

// openHistory opens the history store once per invocation. It returns nil
// when history is disabled.
func (c *commandContext) openHistory(ctx context.Context) (*history.Store, error) {
	if c.history != nil {
		return c.history, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	c.history = store
	return store, nil
}

func (c *commandContext) resolver(ctx context.Context) (*resolver.Resolver, error) {
	run, err := c.runner()
	if err != nil {
		return nil, err
	}
	logger, _ := c.ensureLogger()

	store, err := c.openHistory(ctx)
	if err != nil {
		logging.WarnWithContext(logger, "lookup history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this lookup will not be recorded"),
			logging.String(logging.FieldErrorHint, "check history.path or disable history"),
		)
	}
	// A nil *history.Store must not become a non-nil Recorder.
	var recorder resolver.Recorder
	if store != nil {
		recorder = store
	}
	return resolver.New(run, recorder, logger), nil
}

func (c *commandContext) prober() (*ffprobe.Prober, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return ffprobe.NewProber(c.binaries(), cfg.ExtractorTimeout(), logger), nil
}

func (c *commandContext) close() error {
	if c.history == nil {
		return nil
	}
	err := c.history.Close()
	c.history = nil
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// exitCode maps error markers to distinct process exit codes so scripts can
// tell a missing video from a broken installation.
func exitCode(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return 2
	case errors.Is(err, services.ErrValidation):
		return 3
	case errors.Is(err, services.ErrConfiguration):
		return 4
	case errors.Is(err, services.ErrTimeout), errors.Is(err, services.ErrTransient):
		return 5
	default:
		return 1
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
