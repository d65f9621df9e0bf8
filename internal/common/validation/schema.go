package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"jobhunt-tracker/internal/models"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Summary joins every message into one line.
func (vr *ValidationResult) Summary() string {
	return strings.Join(vr.GetErrorMessages(), "; ")
}

// persistedSchema describes the stored blob: an array of records in the
// exact persisted shape.
func persistedSchema() map[string]interface{} {
	str := map[string]interface{}{"type": "string"}
	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "array",
		"items": map[string]interface{}{
			"type": "object",
			"required": []string{
				"id", "dateApplied", "jobTitle", "companyName", "url",
				"status", "resumeName", "hasCoverLetter", "type",
			},
			"properties": map[string]interface{}{
				"id": map[string]interface{}{"type": "string", "minLength": 1},
				"dateApplied": map[string]interface{}{
					"type":    "string",
					"pattern": `^\d{4}-\d{2}-\d{2}$`,
				},
				"jobTitle":           str,
				"companyName":        str,
				"url":                str,
				"status":             map[string]interface{}{"type": "string", "enum": models.StatusStrings()},
				"type":               map[string]interface{}{"type": "string", "enum": models.JobTypeStrings()},
				"resumeName":         str,
				"hasCoverLetter":     map[string]interface{}{"type": "boolean"},
				"coverLetterName":    str,
				"coverLetterContent": str,
			},
		},
	}
}

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func blobSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(persistedSchema()))
	})
	return compiledSchema, schemaErr
}

// ValidateBlob checks a persisted blob against the record array schema and
// the cross-record invariants the schema cannot express.
func ValidateBlob(data []byte) *ValidationResult {
	schema, err := blobSchema()
	if err != nil {
		return invalid("$", "schema compilation failed: "+err.Error(), "SCHEMA_ERROR")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return invalid("$", "not valid JSON: "+err.Error(), "INVALID_JSON")
	}

	var errs []ValidationError
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	if len(errs) > 0 {
		return &ValidationResult{Valid: false, Errors: errs}
	}

	var records []models.Application
	if err := json.Unmarshal(data, &records); err != nil {
		return invalid("$", err.Error(), "INVALID_JSON")
	}
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if first, dup := seen[r.ID]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%d.id", i),
				Message: fmt.Sprintf("duplicate id %q (first at %d)", r.ID, first),
				Code:    "DUPLICATE_ID",
			})
			continue
		}
		seen[r.ID] = i
		if _, err := r.AppliedOn(time.UTC); err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%d.dateApplied", i),
				Message: "not a calendar date",
				Code:    "INVALID_DATE",
			})
		}
	}

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func invalid(field, message, code string) *ValidationResult {
	return &ValidationResult{
		Valid:  false,
		Errors: []ValidationError{{Field: field, Message: message, Code: code}},
	}
}
