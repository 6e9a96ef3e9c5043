package model

import "time"

// Config is the tool-level configuration for the crednorm CLI. The pure
// engine only sees Run; the rest configures the surrounding pipeline.
type Config struct {
	Run         RunConfig         `yaml:"run" mapstructure:"run"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// CacheConfig controls result-envelope memoization keyed by input content hash.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls the batch worker pool.
type ConcurrencyConfig struct {
	Workers int     `yaml:"workers" mapstructure:"workers"`
	Rate    float64 `yaml:"rate" mapstructure:"rate"` // files/sec, 0 = unlimited
}

// OutputConfig controls what the pipeline writes and prints.
type OutputConfig struct {
	Verbose        bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeSummary bool `yaml:"include_summary" mapstructure:"include_summary"`
	Pretty         bool `yaml:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the built-in defaults, overridable by config file,
// CREDNORM_* environment variables and flags.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			DefaultSubjectID: "subject:1",
			CurrencyCode:     "GBP",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
			Rate:    0,
		},
		Output: OutputConfig{
			Verbose:        false,
			IncludeSummary: true,
			Pretty:         true,
		},
	}
}
