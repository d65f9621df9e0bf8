// internal/workers/insights/list-document-labels/models.go
package listdocumentlabels

import "jobhunt-tracker/internal/tracker/derive"

type Input struct{}

type Output struct {
	derive.Labels
}
