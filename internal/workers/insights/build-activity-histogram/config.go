// internal/workers/insights/build-activity-histogram/config.go
package buildactivityhistogram

import (
	"time"

	"jobhunt-tracker/internal/tracker/derive"
)

type Config struct {
	Timeout time.Duration
	// DefaultDays is used when the job does not name a window.
	DefaultDays int
	// Location decides where "today" starts and ends.
	Location *time.Location
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		DefaultDays: derive.WindowWeek,
		Location:    time.Local,
	}
}
