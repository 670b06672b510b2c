package config

const (
	defaultStateDir           = "~/.local/share/vctag"
	defaultBinary             = "vorbiscomment"
	defaultTimeoutSeconds     = 0
	defaultLockTimeoutSeconds = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Tool: Tool{
			Binary:             defaultBinary,
			TimeoutSeconds:     defaultTimeoutSeconds,
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
		},
		History: History{
			Enabled: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
