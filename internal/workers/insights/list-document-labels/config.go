// internal/workers/insights/list-document-labels/config.go
package listdocumentlabels

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
