// pkg/registry/schema.go
package registry

// Activity describes one job type served by the worker manager.
type Activity struct {
	TaskType    string   `json:"taskType"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Mutates     bool     `json:"mutates"`
	ErrorCodes  []string `json:"errorCodes"`
}

const (
	CategoryRecords  = "records"
	CategoryInsights = "insights"
)
