// Package derive computes read-only views over a snapshot of applications.
// Every function is pure: identical inputs give identical outputs.
package derive

import "jobhunt-tracker/internal/models"

// Summary is the headline count set. Watchlist is not part of it; it
// only shows up in the per-status counts and the distribution.
type Summary struct {
	Total        int `json:"total"`
	Applied      int `json:"applied"`
	Rejected     int `json:"rejected"`
	Interviewing int `json:"interviewing"`
	Success      int `json:"success"`
}

type StatusCount struct {
	Status models.Status `json:"status"`
	Count  int           `json:"count"`
}

// StatusSlice is one non-empty segment of the status distribution.
type StatusSlice struct {
	Status   models.Status `json:"status"`
	Count    int           `json:"count"`
	Color    string        `json:"color"`
	ColorHex string        `json:"colorHex"`
}

func Summarize(apps []models.Application) Summary {
	s := Summary{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case models.StatusApplied:
			s.Applied++
		case models.StatusRejected:
			s.Rejected++
		case models.StatusInterview:
			s.Interviewing++
		case models.StatusSuccess:
			s.Success++
		}
	}
	return s
}

// CountByStatus counts every status in enumeration order, zeros included.
// The counts always sum to len(apps).
func CountByStatus(apps []models.Application) []StatusCount {
	counts := tally(apps)
	out := make([]StatusCount, 0, len(counts))
	for _, st := range models.Statuses() {
		out = append(out, StatusCount{Status: st, Count: counts[st]})
	}
	return out
}

// StatusDistribution returns the statuses that occur at least once, in
// enumeration order, with their display color.
func StatusDistribution(apps []models.Application) []StatusSlice {
	counts := tally(apps)
	out := []StatusSlice{}
	for _, meta := range models.StatusTable() {
		n := counts[meta.Status]
		if n == 0 {
			continue
		}
		out = append(out, StatusSlice{
			Status:   meta.Status,
			Count:    n,
			Color:    meta.Color,
			ColorHex: meta.ColorHex,
		})
	}
	return out
}

func tally(apps []models.Application) map[models.Status]int {
	counts := make(map[models.Status]int, 5)
	for _, a := range apps {
		counts[a.Status]++
	}
	return counts
}
