// internal/workers/records/sync-application-records/models.go
package syncapplicationrecords

// Input is empty; the whole collection is always written.
type Input struct{}

type Output struct {
	Synced      bool   `json:"synced"`
	RecordCount int    `json:"recordCount"`
	SyncedAt    string `json:"syncedAt"` // RFC 3339
	IsDirty     bool   `json:"isDirty"`
}
