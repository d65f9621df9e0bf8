package validation

import (
	"regexp"
	"strings"
	"time"

	"jobhunt-tracker/internal/models"
)

var urlPattern = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)

// ValidateApplication checks the structural shape of a submitted record:
// required text fields, a calendar date and enumeration membership.
func ValidateApplication(app models.Application) *ValidationResult {
	var errs []ValidationError

	required := []struct {
		field string
		value string
	}{
		{"jobTitle", app.JobTitle},
		{"companyName", app.CompanyName},
		{"url", app.URL},
		{"dateApplied", app.DateApplied},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, ValidationError{
				Field:   r.field,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	if app.DateApplied != "" {
		if _, err := time.Parse(models.DateLayout, app.DateApplied); err != nil {
			errs = append(errs, ValidationError{
				Field:   "dateApplied",
				Message: "value must be a YYYY-MM-DD calendar date",
				Code:    "INVALID_DATE",
			})
		}
	}

	if !app.Status.Valid() {
		errs = append(errs, ValidationError{
			Field:   "status",
			Message: "value must be one of " + strings.Join(models.StatusStrings(), ", "),
			Code:    "INVALID_ENUM_VALUE",
		})
	}
	if !app.Type.Valid() {
		errs = append(errs, ValidationError{
			Field:   "type",
			Message: "value must be one of " + strings.Join(models.JobTypeStrings(), ", "),
			Code:    "INVALID_ENUM_VALUE",
		})
	}

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateURL reports whether url looks like an absolute http(s) or ftp URL.
// Records only require a non-empty url; callers use this for warnings.
func ValidateURL(url string) bool {
	return urlPattern.MatchString(url)
}
