package assessment

import "github.com/prepready/prepready/internal/framework"

// SectionProgress is the per-section completion figure backing the
// "N/M compliant" and "N/M assessed" displays.
type SectionProgress struct {
	SectionKey     string `json:"section_key"`
	Label          string `json:"label"`
	TotalItems     int    `json:"total_items"`
	AssessedCount  int    `json:"assessed_count"`
	CompliantCount int    `json:"compliant_count"`
}

// SectionProgressFor derives progress for one section. Codes missing
// from the map count as not_assessed.
func SectionProgressFor(sec framework.Section, answers AnswerMap) SectionProgress {
	p := SectionProgress{
		SectionKey: sec.Key,
		Label:      sec.Label,
		TotalItems: len(sec.Items),
	}
	for _, it := range sec.Items {
		switch answers.Get(it.Code).Status {
		case StatusCompliant:
			p.AssessedCount++
			p.CompliantCount++
		case StatusNonCompliant:
			p.AssessedCount++
		}
	}
	return p
}

// AllSectionProgress derives progress for every section in framework
// order.
func AllSectionProgress(fw *framework.Framework, answers AnswerMap) []SectionProgress {
	out := make([]SectionProgress, 0, len(fw.Sections))
	for _, sec := range fw.Sections {
		out = append(out, SectionProgressFor(sec, answers))
	}
	return out
}

// OverallProgress returns the assessed fraction across the whole
// framework as a value in [0, 1]. An empty framework reports 0.
func OverallProgress(fw *framework.Framework, answers AnswerMap) float64 {
	total := fw.TotalItems()
	if total == 0 {
		return 0
	}
	assessed := 0
	for _, sec := range fw.Sections {
		for _, it := range sec.Items {
			if answers.Get(it.Code).Status != StatusNotAssessed {
				assessed++
			}
		}
	}
	return float64(assessed) / float64(total)
}
