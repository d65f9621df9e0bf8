// internal/workers/records/create-application-record/models.go
package createapplicationrecord

import "jobhunt-tracker/internal/models"

// Input carries the submitted record fields at the top level of the job
// variables. id, dateApplied, status and type are optional.
type Input struct {
	models.Application
}

type Output struct {
	ApplicationID string             `json:"applicationId"`
	Application   models.Application `json:"application"`
	IsDirty       bool               `json:"isDirty"`
}
