// internal/workers/insights/summarize-applications/config.go
package summarizeapplications

import "time"

type Config struct {
	Timeout time.Duration
	// CacheTTL bounds how long a cached summary outlives its generation.
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 5 * time.Minute,
	}
}
