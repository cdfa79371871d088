package config

const (
	defaultContentDir    = "~/torrents/content"
	defaultLogDir        = "~/.local/share/crescendo/logs"
	defaultCacheDir      = "~/.local/share/crescendo/cache"
	defaultUserAgent     = "crescendo/dev"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultSettleSeconds = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ContentDir: defaultContentDir,
			LogDir:     defaultLogDir,
			CacheDir:   defaultCacheDir,
		},
		Tracker: Tracker{
			UserAgent: defaultUserAgent,
		},
		Verify: Verify{
			FullDecode: true,
		},
		Watch: Watch{
			SettleSeconds: defaultSettleSeconds,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
