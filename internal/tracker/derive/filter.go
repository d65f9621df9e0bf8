package derive

import (
	"sort"
	"strings"

	"jobhunt-tracker/internal/common/errors"
	"jobhunt-tracker/internal/models"
)

// All is the wildcard accepted by the status and type filters.
const All = "All"

type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// Query selects and orders the filtered view. Empty Status and Type mean All;
// an empty Sort means SortDesc.
type Query struct {
	Search string
	Status string
	Type   string
	Sort   SortOrder
}

// Normalize fills defaults and checks every field against its enumeration.
func (q Query) Normalize() (Query, error) {
	if q.Status == "" || strings.EqualFold(q.Status, All) {
		q.Status = All
	} else if !models.Status(q.Status).Valid() {
		return q, errors.NewInvalidFilterFormatError("unknown status filter: " + q.Status)
	}

	if q.Type == "" || strings.EqualFold(q.Type, All) {
		q.Type = All
	} else if !models.JobType(q.Type).Valid() {
		return q, errors.NewInvalidFilterFormatError("unknown type filter: " + q.Type)
	}

	switch SortOrder(strings.ToLower(string(q.Sort))) {
	case "", SortDesc:
		q.Sort = SortDesc
	case SortAsc:
		q.Sort = SortAsc
	default:
		return q, errors.NewInvalidFilterFormatError("unknown sort order: " + string(q.Sort))
	}
	return q, nil
}

// Matches reports whether a satisfies every predicate of q.
func (q Query) Matches(a models.Application) bool {
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(a.JobTitle), term) &&
			!strings.Contains(strings.ToLower(a.CompanyName), term) {
			return false
		}
	}
	if q.Status != "" && q.Status != All && string(a.Status) != q.Status {
		return false
	}
	if q.Type != "" && q.Type != All && string(a.Type) != q.Type {
		return false
	}
	return true
}

// Filter returns the records matching q ordered by dateApplied. Descending
// order keeps records with equal dates in collection order, so the most
// recently created comes first; ascending order is its exact reverse.
func Filter(apps []models.Application, q Query) []models.Application {
	out := []models.Application{}
	for _, a := range apps {
		if q.Matches(a) {
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateApplied > out[j].DateApplied
	})

	if q.Sort == SortAsc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
