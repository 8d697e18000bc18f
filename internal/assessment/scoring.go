package assessment

import (
	"math"

	"github.com/prepready/prepready/internal/framework"
)

// SeverityBreakdown counts non-compliant answers by severity. Only
// populated on frameworks that declare severities.
type SeverityBreakdown struct {
	Minor    int `json:"minor"`
	Major    int `json:"major"`
	Critical int `json:"critical"`
}

// Outcome is the graded result of scoring an answer map against a
// framework.
type Outcome struct {
	Model             framework.Model   `json:"model"`
	TotalItems        int               `json:"total_items"`
	AssessedCount     int               `json:"assessed_count"`
	CompliantCount    int               `json:"compliant_count"`
	NonCompliantCount int               `json:"non_compliant_count"`
	Severities        SeverityBreakdown `json:"severities"`
	// Value is the predicted outcome: star tier on tiered frameworks,
	// percentage score on percentage frameworks.
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Score computes the graded outcome for an answer map. It is pure:
// answers and fw are read but never mutated, and it is cheap enough to
// recompute on every mutation.
//
// Counting only considers codes that belong to the framework, so a map
// carrying answers from an older item list never inflates the counts
// past TotalItems.
func Score(fw *framework.Framework, answers AnswerMap) Outcome {
	out := Outcome{
		Model:      fw.Model,
		TotalItems: fw.TotalItems(),
	}

	for _, sec := range fw.Sections {
		for _, it := range sec.Items {
			a := answers.Get(it.Code)
			switch a.Status {
			case StatusCompliant:
				out.AssessedCount++
				out.CompliantCount++
			case StatusNonCompliant:
				out.AssessedCount++
				out.NonCompliantCount++
				if len(it.Severities) > 0 {
					switch a.Severity {
					case framework.SeverityMinor:
						out.Severities.Minor++
					case framework.SeverityMajor:
						out.Severities.Major++
					case framework.SeverityCritical:
						out.Severities.Critical++
					}
				}
			}
		}
	}

	switch fw.Model {
	case framework.ModelPercentage:
		if out.AssessedCount > 0 {
			out.Value = int(math.Round(float64(out.CompliantCount) / float64(out.AssessedCount) * 100))
		}
		out.Label = framework.BandLabel(fw.Bands, out.Value)
	case framework.ModelTiered:
		out.Value, out.Label = LookupTier(fw.Tiers, out.Severities)
	}

	return out
}

// LookupTier evaluates an ordered tier ladder top-down and returns the
// first matching row's tier and label. An empty ladder or a breakdown
// no row admits yields tier 0 with an empty label — shipped ladders are
// total, so that only happens with malformed custom frameworks.
func LookupTier(rows []framework.TierRow, b SeverityBreakdown) (int, string) {
	for _, row := range rows {
		if row.Matches(b.Minor, b.Major, b.Critical) {
			return row.Tier, row.Label
		}
	}
	return 0, ""
}
