// internal/workers/insights/build-activity-histogram/models.go
package buildactivityhistogram

import "jobhunt-tracker/internal/tracker/derive"

type Input struct {
	Days int `json:"days"`
}

type Output struct {
	Days    int                `json:"days"`
	Today   string             `json:"today"`
	Buckets []derive.DayBucket `json:"buckets"`
	Total   int                `json:"total"`
}
