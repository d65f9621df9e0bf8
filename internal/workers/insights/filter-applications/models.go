// internal/workers/insights/filter-applications/models.go
package filterapplications

import "jobhunt-tracker/internal/models"

type Input struct {
	SearchTerm   string `json:"searchTerm"`
	StatusFilter string `json:"statusFilter"`
	TypeFilter   string `json:"typeFilter"`
	SortOrder    string `json:"sortOrder"`
}

type Output struct {
	Applications []models.Application `json:"applications"`
	Count        int                  `json:"count"`
	Total        int                  `json:"total"`
	StatusFilter string               `json:"statusFilter"`
	TypeFilter   string               `json:"typeFilter"`
	SortOrder    string               `json:"sortOrder"`
}
