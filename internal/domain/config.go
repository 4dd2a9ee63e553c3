package domain

// Config represents the optional mkr1 configuration loaded from mkr1/mkr1.yaml.
// It never changes where input and output are read and written.
type Config struct {
	Logging LoggingConfig
	History HistoryConfig
}

type LoggingConfig struct {
	Enabled bool
}

type HistoryConfig struct {
	Enabled bool
	Dir     string
}

// DefaultConfig is used when mkr1.yaml is missing or partial.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Enabled: false},
		History: HistoryConfig{
			Enabled: false,
			Dir:     "runs",
		},
	}
}
