// internal/workers/records/delete-application-record/models.go
package deleteapplicationrecord

type Input struct {
	ApplicationID string `json:"applicationId"`
	// Confirmed must be set by the caller after the user agreed to delete.
	Confirmed bool `json:"confirmed"`
}

type Output struct {
	ApplicationID string `json:"applicationId"`
	Deleted       bool   `json:"deleted"`
	IsDirty       bool   `json:"isDirty"`
}
