package derive

import (
	"time"

	"jobhunt-tracker/internal/common/errors"
	"jobhunt-tracker/internal/models"
)

// Supported histogram windows, in days.
const (
	WindowWeek  = 7
	WindowMonth = 30
)

type DayBucket struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ValidWindow reports whether days is a supported histogram window.
func ValidWindow(days int) bool {
	return days == WindowWeek || days == WindowMonth
}

// ActivityHistogram counts applications per calendar day over the days
// ending at today, inclusive. It always returns exactly days buckets, oldest
// first. Calendar days are taken in today's location.
func ActivityHistogram(apps []models.Application, days int, today time.Time) ([]DayBucket, error) {
	if !ValidWindow(days) {
		return nil, errors.NewInvalidWindowError(days)
	}

	counts := make(map[string]int, len(apps))
	for _, a := range apps {
		counts[a.DateApplied]++
	}

	layout := "Jan 2"
	if days == WindowWeek {
		layout = "Mon, Jan 2"
	}

	y, m, d := today.Date()
	buckets := make([]DayBucket, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := time.Date(y, m, d-i, 0, 0, 0, 0, today.Location())
		key := day.Format(models.DateLayout)
		buckets = append(buckets, DayBucket{
			Date:  key,
			Label: day.Format(layout),
			Count: counts[key],
		})
	}
	return buckets, nil
}

// HistogramTotal sums the bucket counts.
func HistogramTotal(buckets []DayBucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}
