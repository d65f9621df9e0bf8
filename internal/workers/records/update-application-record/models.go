// internal/workers/records/update-application-record/models.go
package updateapplicationrecord

import "jobhunt-tracker/internal/models"

type Input struct {
	ApplicationID string             `json:"applicationId"`
	Application   models.Application `json:"application"`
}

type Output struct {
	Application models.Application `json:"application"`
	IsDirty     bool               `json:"isDirty"`
}
