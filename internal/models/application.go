// internal/models/application.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the persisted layout of Application.DateApplied.
const DateLayout = "2006-01-02"

// Application is one tracked job application. The JSON names are the
// persisted names and must not change.
type Application struct {
	ID                 string  `json:"id"`
	DateApplied        string  `json:"dateApplied"`
	JobTitle           string  `json:"jobTitle"`
	CompanyName        string  `json:"companyName"`
	URL                string  `json:"url"`
	Status             Status  `json:"status"`
	ResumeName         string  `json:"resumeName"`
	HasCoverLetter     bool    `json:"hasCoverLetter"`
	CoverLetterName    string  `json:"coverLetterName,omitempty"`
	CoverLetterContent string  `json:"coverLetterContent,omitempty"`
	Type               JobType `json:"type"`
}

// NewApplication returns a draft with a fresh ID and the form defaults.
func NewApplication(today time.Time) Application {
	return Application{
		ID:          NewApplicationID(),
		DateApplied: today.Format(DateLayout),
		Status:      StatusApplied,
		Type:        JobTypeFullTime,
	}
}

// NewApplicationID returns a new unique record identifier.
func NewApplicationID() string {
	return uuid.New().String()
}

// ApplyDefaults fills an empty status or type with the creation defaults.
func (a *Application) ApplyDefaults() {
	if a.Status == "" {
		a.Status = StatusApplied
	}
	if a.Type == "" {
		a.Type = JobTypeFullTime
	}
}

// AppliedOn parses DateApplied in the given location.
func (a Application) AppliedOn(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, a.DateApplied, loc)
}
