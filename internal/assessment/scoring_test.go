package assessment

import (
	"testing"

	"github.com/prepready/prepready/internal/framework"
)

// --- Percentage scoring ---

func TestScore_PercentageRounds(t *testing.T) {
	fw := percentageFw(t)
	// 4 of 6 assessed compliant → 66.67 → 67.
	m := AnswerMap{
		"ST-01": {Status: StatusCompliant},
		"ST-02": {Status: StatusCompliant},
		"ST-03": {Status: StatusCompliant},
		"ST-04": {Status: StatusCompliant},
		"PR-01": {Status: StatusNonCompliant},
		"PR-02": {Status: StatusNonCompliant},
	}
	out := Score(fw, m)
	if out.AssessedCount != 6 || out.CompliantCount != 4 {
		t.Fatalf("counts = %d assessed, %d compliant", out.AssessedCount, out.CompliantCount)
	}
	if out.Value != 67 {
		t.Errorf("Value = %d, want 67", out.Value)
	}
	if out.Label != "Needs Improvement" {
		t.Errorf("Label = %q, want Needs Improvement", out.Label)
	}
}

func TestScore_PercentageNothingAssessed(t *testing.T) {
	fw := percentageFw(t)
	out := Score(fw, AnswerMap{})
	if out.Value != 0 {
		t.Errorf("Value with nothing assessed = %d, want 0", out.Value)
	}
	if out.Label != "Non-Compliant" {
		t.Errorf("Label = %q, want the floor band", out.Label)
	}
}

func TestScore_IgnoresCodesOutsideFramework(t *testing.T) {
	fw := percentageFw(t)
	m := AnswerMap{
		"ST-01":     {Status: StatusCompliant},
		"GHOST-01":  {Status: StatusNonCompliant},
		"LEGACY-07": {Status: StatusCompliant},
	}
	out := Score(fw, m)
	if out.AssessedCount != 1 {
		t.Errorf("AssessedCount = %d, want 1 (foreign codes ignored)", out.AssessedCount)
	}
	if out.AssessedCount > out.TotalItems {
		t.Error("assessed count exceeded total items")
	}
	if out.Value != 100 {
		t.Errorf("Value = %d, want 100", out.Value)
	}
}

// --- Tiered scoring ---

func TestScore_TieredSeverityBreakdown(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{
		"TEMP-01": {Status: StatusNonCompliant, Severity: framework.SeverityMinor},
		"TEMP-02": {Status: StatusNonCompliant, Severity: framework.SeverityMinor},
		"HYG-01":  {Status: StatusNonCompliant, Severity: framework.SeverityMajor},
		"CONT-01": {Status: StatusCompliant},
	}
	out := Score(fw, m)
	want := SeverityBreakdown{Minor: 2, Major: 1}
	if out.Severities != want {
		t.Errorf("Severities = %+v, want %+v", out.Severities, want)
	}
	// One major lands in the any-of Poor row.
	if out.Value != 2 || out.Label != "Poor" {
		t.Errorf("outcome = %d %q, want 2 Poor", out.Value, out.Label)
	}
}

func TestScore_TieredSingleCriticalCapsAtTwoStars(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{}
	MarkAllCompliant(fw, m)
	if err := SetStatus(fw, m, "CONT-01", StatusNonCompliant); err != nil {
		t.Fatal(err)
	}
	if err := SetSeverity(fw, m, "CONT-01", framework.SeverityCritical); err != nil {
		t.Fatal(err)
	}
	out := Score(fw, m)
	if out.Value != 2 || out.Label != "Poor" {
		t.Errorf("one critical = %d %q, want 2 Poor", out.Value, out.Label)
	}
}

func TestScore_TieredMinorOnlyLadder(t *testing.T) {
	fw := tieredFw(t)
	cases := []struct {
		minors   int
		wantTier int
	}{
		{0, 5},
		{2, 4},
		{5, 3},
		{7, 2},
	}
	minorCodes := []string{"TEMP-01", "TEMP-02", "TEMP-03", "TEMP-04", "TEMP-05", "HYG-01", "HYG-02"}
	for _, tc := range cases {
		m := AnswerMap{}
		MarkAllCompliant(fw, m)
		for i := 0; i < tc.minors; i++ {
			if err := SetStatus(fw, m, minorCodes[i], StatusNonCompliant); err != nil {
				t.Fatal(err)
			}
			if err := SetSeverity(fw, m, minorCodes[i], framework.SeverityMinor); err != nil {
				t.Fatal(err)
			}
		}
		if out := Score(fw, m); out.Value != tc.wantTier {
			t.Errorf("%d minors = tier %d, want %d", tc.minors, out.Value, tc.wantTier)
		}
	}
}

// --- LookupTier ---

func TestLookupTier_FirstMatchWins(t *testing.T) {
	rows := []framework.TierRow{
		{Minor: &framework.CountRange{Min: 0, Max: -1}, Tier: 3, Label: "Broad"},
		{Minor: &framework.CountRange{Min: 0, Max: 0}, Tier: 5, Label: "Never Reached"},
	}
	tier, label := LookupTier(rows, SeverityBreakdown{})
	if tier != 3 || label != "Broad" {
		t.Errorf("LookupTier = %d %q, want the first matching row", tier, label)
	}
}

func TestLookupTier_NoMatch(t *testing.T) {
	rows := []framework.TierRow{
		{Minor: &framework.CountRange{Min: 0, Max: 0}, Tier: 5, Label: "Clean"},
	}
	tier, label := LookupTier(rows, SeverityBreakdown{Minor: 4})
	if tier != 0 || label != "" {
		t.Errorf("LookupTier with no match = %d %q, want 0 and empty", tier, label)
	}
}

func TestScore_DoesNotMutateAnswers(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{"TEMP-01": {Status: StatusNonCompliant, Severity: framework.SeverityMajor}}
	before := m.Clone()
	_ = Score(fw, m)
	if len(m) != len(before) || m["TEMP-01"] != before["TEMP-01"] {
		t.Error("Score mutated the answer map")
	}
}
