// internal/models/status.go
package models

// Status is the closed set of application states.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusRejected  Status = "Rejected"
	StatusWatchlist Status = "Watchlist"
	StatusInterview Status = "Interview scheduled"
	StatusSuccess   Status = "Success"
)

// JobType is the closed set of position kinds.
type JobType string

const (
	JobTypeWerkstudent JobType = "Werkstudent"
	JobTypePartTime    JobType = "Part-time"
	JobTypeFullTime    JobType = "Full-time"
	JobTypeInternship  JobType = "Uni-internship"
)

// StatusMeta holds the static display metadata of a status.
type StatusMeta struct {
	Status   Status
	Color    string
	ColorHex string
	// Headline statuses are shown in the summary cards.
	Headline bool
}

var statusTable = [...]StatusMeta{
	{Status: StatusApplied, Color: "indigo", ColorHex: "#6366f1", Headline: true},
	{Status: StatusRejected, Color: "red", ColorHex: "#ef4444", Headline: true},
	{Status: StatusWatchlist, Color: "gray", ColorHex: "#94a3b8", Headline: false},
	{Status: StatusInterview, Color: "amber", ColorHex: "#f59e0b", Headline: true},
	{Status: StatusSuccess, Color: "green", ColorHex: "#10b981", Headline: true},
}

var jobTypes = [...]JobType{
	JobTypeWerkstudent,
	JobTypePartTime,
	JobTypeFullTime,
	JobTypeInternship,
}

// Statuses returns every status in enumeration order.
func Statuses() []Status {
	out := make([]Status, len(statusTable))
	for i, m := range statusTable {
		out[i] = m.Status
	}
	return out
}

// StatusTable returns the metadata of every status in enumeration order.
func StatusTable() []StatusMeta {
	out := make([]StatusMeta, len(statusTable))
	copy(out, statusTable[:])
	return out
}

// MetaFor returns the metadata of s.
func MetaFor(s Status) (StatusMeta, bool) {
	for _, m := range statusTable {
		if m.Status == s {
			return m, true
		}
	}
	return StatusMeta{}, false
}

// Valid reports whether s is a member of the enumeration.
func (s Status) Valid() bool {
	_, ok := MetaFor(s)
	return ok
}

// JobTypes returns every job type in enumeration order.
func JobTypes() []JobType {
	out := make([]JobType, len(jobTypes))
	copy(out, jobTypes[:])
	return out
}

// Valid reports whether t is a member of the enumeration.
func (t JobType) Valid() bool {
	for _, jt := range jobTypes {
		if jt == t {
			return true
		}
	}
	return false
}

// StatusStrings returns the literal values of Statuses.
func StatusStrings() []string {
	out := make([]string, len(statusTable))
	for i, m := range statusTable {
		out[i] = string(m.Status)
	}
	return out
}

// JobTypeStrings returns the literal values of JobTypes.
func JobTypeStrings() []string {
	out := make([]string, len(jobTypes))
	for i, t := range jobTypes {
		out[i] = string(t)
	}
	return out
}
