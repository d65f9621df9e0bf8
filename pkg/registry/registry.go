// pkg/registry/registry.go
package registry

import "sort"

var activities = []Activity{
	{
		TaskType:    "create-application-record",
		DisplayName: "Create Application Record",
		Description: "Adds an application to the front of the collection",
		Category:    CategoryRecords,
		Mutates:     true,
		ErrorCodes:  []string{"APPLICATION_VALIDATION_FAILED", "DUPLICATE_APPLICATION"},
	},
	{
		TaskType:    "update-application-record",
		DisplayName: "Update Application Record",
		Description: "Replaces an application in place, keeping its id",
		Category:    CategoryRecords,
		Mutates:     true,
		ErrorCodes:  []string{"APPLICATION_VALIDATION_FAILED", "APPLICATION_NOT_FOUND", "APPLICATION_ID_IMMUTABLE"},
	},
	{
		TaskType:    "delete-application-record",
		DisplayName: "Delete Application Record",
		Description: "Removes a confirmed application from the collection",
		Category:    CategoryRecords,
		Mutates:     true,
		ErrorCodes:  []string{"APPLICATION_VALIDATION_FAILED", "CONFIRMATION_REQUIRED", "APPLICATION_NOT_FOUND"},
	},
	{
		TaskType:    "sync-application-records",
		DisplayName: "Sync Application Records",
		Description: "Writes the whole collection to the storage backend",
		Category:    CategoryRecords,
		Mutates:     false,
		ErrorCodes:  []string{"PERSIST_FAILED"},
	},
	{
		TaskType:    "summarize-applications",
		DisplayName: "Summarize Applications",
		Description: "Headline counts, per-status counts and status distribution",
		Category:    CategoryInsights,
	},
	{
		TaskType:    "filter-applications",
		DisplayName: "Filter Applications",
		Description: "Search, status and type filtering with date ordering",
		Category:    CategoryInsights,
		ErrorCodes:  []string{"INVALID_FILTER_FORMAT"},
	},
	{
		TaskType:    "list-document-labels",
		DisplayName: "List Document Labels",
		Description: "Distinct resume and cover letter names",
		Category:    CategoryInsights,
	},
	{
		TaskType:    "build-activity-histogram",
		DisplayName: "Build Activity Histogram",
		Description: "Applications per day over a 7 or 30 day window",
		Category:    CategoryInsights,
		ErrorCodes:  []string{"INVALID_WINDOW"},
	},
}

// Activities returns a copy of the catalog in registration order.
func Activities() []Activity {
	out := make([]Activity, len(activities))
	copy(out, activities)
	return out
}

func Lookup(taskType string) (Activity, bool) {
	for _, a := range activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// Unknown returns the task types in names that are not in the catalog,
// sorted. Used to catch typos in worker configuration.
func Unknown(names []string) []string {
	var out []string
	for _, n := range names {
		if _, ok := Lookup(n); !ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
