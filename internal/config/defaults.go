package config

const (
	defaultConfigPath             = "~/.config/amendo/config.toml"
	defaultBaseURL                = "http://amendo.example.com"
	defaultUserAgent              = "amendo-go/dev"
	defaultRequestTimeout         = 30
	defaultClientID               = "Go AmendoClient"
	defaultStateDir               = "~/.local/share/amendo"
	defaultLogDir                 = "~/.local/share/amendo/logs"
	defaultDownloadDir            = "~/.local/share/amendo/results"
	defaultPollingIntervalSeconds = 10
	defaultPollingAttempts        = 3
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Amendo: Amendo{
			BaseURL:        defaultBaseURL,
			UserAgent:      defaultUserAgent,
			RequestTimeout: defaultRequestTimeout,
			VerifyTLS:      true,
		},
		Client: Client{
			ID: defaultClientID,
		},
		Paths: Paths{
			StateDir:    defaultStateDir,
			LogDir:      defaultLogDir,
			DownloadDir: defaultDownloadDir,
		},
		Polling: Polling{
			IntervalSeconds: defaultPollingIntervalSeconds,
			Attempts:        defaultPollingAttempts,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
