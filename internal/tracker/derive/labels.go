package derive

import "jobhunt-tracker/internal/models"

// Labels are the distinct document names seen across the collection, in
// first-occurrence order.
type Labels struct {
	ResumeNames      []string `json:"resumeNames"`
	CoverLetterNames []string `json:"coverLetterNames"`
}

func DistinctLabels(apps []models.Application) Labels {
	return Labels{
		ResumeNames:      distinct(apps, func(a models.Application) string { return a.ResumeName }),
		CoverLetterNames: distinct(apps, func(a models.Application) string { return a.CoverLetterName }),
	}
}

func distinct(apps []models.Application, field func(models.Application) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, a := range apps {
		v := field(a)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
