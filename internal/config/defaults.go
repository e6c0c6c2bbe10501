package config

const (
	defaultConfigPath          = "~/.config/ytdlx/config.toml"
	defaultDataDir             = "~/.local/share/ytdlx"
	defaultLogDir              = "~/.local/share/ytdlx/logs"
	defaultHistoryFile         = "history.db"
	defaultHistoryMaxEntries   = 500
	defaultExtractorBinary     = "yt-dlp"
	defaultExtractorTimeout    = 120
	defaultExtractorMaxRetries = 3
	defaultMinBackoffMillis    = 500
	defaultMaxBackoffSeconds   = 10
	defaultSearchLimit         = 5
	defaultTorProxy            = "socks5://127.0.0.1:9050"
	defaultFFmpegBinary        = "ffmpeg"
	defaultFFprobeBinary       = "ffprobe"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Extractor: Extractor{
			Binary:            defaultExtractorBinary,
			TimeoutSeconds:    defaultExtractorTimeout,
			MaxRetries:        defaultExtractorMaxRetries,
			MinBackoffMillis:  defaultMinBackoffMillis,
			MaxBackoffSeconds: defaultMaxBackoffSeconds,
			TorProxy:          defaultTorProxy,
			SearchLimit:       defaultSearchLimit,
		},
		FFmpeg: FFmpeg{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		History: History{
			Enabled:    true,
			MaxEntries: defaultHistoryMaxEntries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
