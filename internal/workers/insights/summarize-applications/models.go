// internal/workers/insights/summarize-applications/models.go
package summarizeapplications

import "jobhunt-tracker/internal/tracker/derive"

type Input struct{}

type Output struct {
	Summary      derive.Summary       `json:"summary"`
	StatusCounts []derive.StatusCount `json:"statusCounts"`
	Distribution []derive.StatusSlice `json:"distribution"`
	Generation   string               `json:"generation"`
	Cached       bool                 `json:"cached"`
	IsDirty      bool                 `json:"isDirty"`
}

// cachedSummary is the part of Output that depends only on the collection.
type cachedSummary struct {
	Summary      derive.Summary       `json:"summary"`
	StatusCounts []derive.StatusCount `json:"statusCounts"`
	Distribution []derive.StatusSlice `json:"distribution"`
}
