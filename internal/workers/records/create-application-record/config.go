// internal/workers/records/create-application-record/config.go
package createapplicationrecord

import "time"

type Config struct {
	Timeout time.Duration
	// Location decides the calendar day used for a missing dateApplied.
	Location *time.Location
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		Location: time.Local,
	}
}
