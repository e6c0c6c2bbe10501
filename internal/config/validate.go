package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExtractor(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateExtractor() error {
	if strings.TrimSpace(c.Extractor.Binary) == "" {
		return errors.New("extractor.binary must be set")
	}
	if err := ensurePositiveMap(map[string]int{
		"extractor.timeout_seconds":     c.Extractor.TimeoutSeconds,
		"extractor.min_backoff_ms":      c.Extractor.MinBackoffMillis,
		"extractor.max_backoff_seconds": c.Extractor.MaxBackoffSeconds,
		"extractor.search_limit":        c.Extractor.SearchLimit,
	}); err != nil {
		return err
	}
	if c.Extractor.MaxRetries < 0 {
		return errors.New("extractor.max_retries must be >= 0")
	}
	if c.MinBackoff() > c.MaxBackoff() {
		return errors.New("extractor.min_backoff_ms must not exceed extractor.max_backoff_seconds")
	}
	if proxy := strings.TrimSpace(c.Extractor.TorProxy); proxy != "" {
		parsed, err := url.Parse(proxy)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("extractor.tor_proxy must be a proxy URL such as socks5://127.0.0.1:9050, got %q", proxy)
		}
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if strings.TrimSpace(c.FFmpeg.FFprobeBinary) == "" {
		return errors.New("ffmpeg.ffprobe_binary must be set")
	}
	if strings.TrimSpace(c.FFmpeg.FFmpegBinary) == "" {
		return errors.New("ffmpeg.ffmpeg_binary must be set")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	if c.History.MaxEntries < 0 {
		return errors.New("history.max_entries must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
