package assessment

import (
	"testing"

	"github.com/prepready/prepready/internal/framework"
)

// --- Helpers ---

func tieredFw(t *testing.T) *framework.Framework {
	t.Helper()
	fw, err := framework.Get("eatsafe")
	if err != nil {
		t.Fatal(err)
	}
	return fw
}

func percentageFw(t *testing.T) *framework.Framework {
	t.Helper()
	fw, err := framework.Get("foodcheck")
	if err != nil {
		t.Fatal(err)
	}
	return fw
}

// --- AnswerMap.Get ---

func TestAnswerMapGet_MissingCodeIsNotAssessed(t *testing.T) {
	m := AnswerMap{}
	if got := m.Get("TEMP-01").Status; got != StatusNotAssessed {
		t.Errorf("Get on missing code = %q, want not_assessed", got)
	}
}

func TestAnswerMapGet_ClearsStaleSeverity(t *testing.T) {
	m := AnswerMap{"TEMP-01": {Status: StatusCompliant, Severity: framework.SeverityMajor}}
	if got := m.Get("TEMP-01").Severity; got != "" {
		t.Errorf("compliant answer read with severity %q, want empty", got)
	}
}

func TestAnswerMapClone_Independent(t *testing.T) {
	m := AnswerMap{"TEMP-01": {Status: StatusCompliant}}
	c := m.Clone()
	c["TEMP-01"] = Answer{Status: StatusNonCompliant}
	if m["TEMP-01"].Status != StatusCompliant {
		t.Error("mutating the clone changed the original")
	}
}

// --- Reconcile ---

func TestReconcile_AnswersWinWhenPresent(t *testing.T) {
	answers := AnswerMap{"TEMP-01": {Status: StatusNonCompliant, Severity: framework.SeverityMajor}}
	responses := map[string]bool{"TEMP-01": true}
	got := Reconcile(answers, responses)
	if got["TEMP-01"].Status != StatusNonCompliant {
		t.Error("responses shape overrode a populated answers map")
	}
}

func TestReconcile_ConvertsResponses(t *testing.T) {
	got := Reconcile(nil, map[string]bool{"ST-01": true, "ST-02": false})
	if got["ST-01"].Status != StatusCompliant {
		t.Errorf("true response = %q, want compliant", got["ST-01"].Status)
	}
	if got["ST-02"].Status != StatusNonCompliant {
		t.Errorf("false response = %q, want non_compliant", got["ST-02"].Status)
	}
	if got["ST-02"].Severity != "" {
		t.Error("converted response carries a severity")
	}
}

func TestReconcile_NeitherShapeYieldsEmptyMap(t *testing.T) {
	got := Reconcile(nil, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Reconcile(nil, nil) = %v, want empty map", got)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	once := Reconcile(nil, map[string]bool{"ST-01": true})
	twice := Reconcile(once, nil)
	if len(twice) != 1 || twice["ST-01"].Status != StatusCompliant {
		t.Errorf("second reconcile changed the map: %v", twice)
	}
}

// --- ToResponses ---

func TestToResponses_RoundTrip(t *testing.T) {
	responses := map[string]bool{"ST-01": true, "ST-02": false}
	got := ToResponses(Reconcile(nil, responses))
	if len(got) != 2 || !got["ST-01"] || got["ST-02"] {
		t.Errorf("round trip = %v, want original responses", got)
	}
}

func TestToResponses_OmitsNotAssessed(t *testing.T) {
	m := AnswerMap{
		"ST-01": {Status: StatusCompliant},
		"ST-02": {Status: StatusNotAssessed},
	}
	got := ToResponses(m)
	if _, ok := got["ST-02"]; ok {
		t.Error("not_assessed entry serialized into responses")
	}
}

// --- SetStatus ---

func TestSetStatus_UnknownCode(t *testing.T) {
	fw := tieredFw(t)
	if err := SetStatus(fw, AnswerMap{}, "NOPE-99", StatusCompliant); err == nil {
		t.Error("SetStatus accepted a code outside the framework")
	}
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	fw := tieredFw(t)
	if err := SetStatus(fw, AnswerMap{}, "TEMP-01", Status("maybe")); err == nil {
		t.Error("SetStatus accepted an unknown status")
	}
}

func TestSetStatus_NonCompliantAssignsDefaultSeverity(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{}
	if err := SetStatus(fw, m, "TEMP-01", StatusNonCompliant); err != nil {
		t.Fatal(err)
	}
	if got := m["TEMP-01"].Severity; got != framework.SeverityMinor {
		t.Errorf("default severity = %q, want minor", got)
	}
}

func TestSetStatus_LeavingNonCompliantClearsSeverity(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{"TEMP-01": {Status: StatusNonCompliant, Severity: framework.SeverityCritical}}
	if err := SetStatus(fw, m, "TEMP-01", StatusCompliant); err != nil {
		t.Fatal(err)
	}
	if m["TEMP-01"].Severity != "" {
		t.Error("severity survived the move away from non_compliant")
	}
}

// --- SetSeverity ---

func TestSetSeverity_NoOpUnlessNonCompliant(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{"TEMP-01": {Status: StatusCompliant}}
	if err := SetSeverity(fw, m, "TEMP-01", framework.SeverityCritical); err != nil {
		t.Fatal(err)
	}
	if m["TEMP-01"].Severity != "" {
		t.Error("severity set on a compliant answer")
	}
}

func TestSetSeverity_OutOfSetSelfHeals(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{}
	// HYG-03 only declares major and critical.
	if err := SetStatus(fw, m, "HYG-03", StatusNonCompliant); err != nil {
		t.Fatal(err)
	}
	if err := SetSeverity(fw, m, "HYG-03", framework.SeverityMinor); err != nil {
		t.Fatal(err)
	}
	if got := m["HYG-03"].Severity; got != framework.SeverityMajor {
		t.Errorf("out-of-set severity = %q, want self-healed major", got)
	}
}

func TestSetSeverity_InSet(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{}
	if err := SetStatus(fw, m, "TEMP-01", StatusNonCompliant); err != nil {
		t.Fatal(err)
	}
	if err := SetSeverity(fw, m, "TEMP-01", framework.SeverityCritical); err != nil {
		t.Fatal(err)
	}
	if got := m["TEMP-01"].Severity; got != framework.SeverityCritical {
		t.Errorf("severity = %q, want critical", got)
	}
}

// --- SetEvidence ---

func TestSetEvidence_RejectedWithoutToggle(t *testing.T) {
	fw := tieredFw(t)
	// TEMP-03 has no evidence toggle.
	if err := SetEvidence(fw, AnswerMap{}, "TEMP-03", true); err == nil {
		t.Error("SetEvidence accepted an item without an evidence toggle")
	}
}

func TestSetEvidence_Toggles(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{}
	if err := SetEvidence(fw, m, "TEMP-01", true); err != nil {
		t.Fatal(err)
	}
	if !m["TEMP-01"].Evidence {
		t.Error("evidence flag not set")
	}
}

// --- MarkAllCompliant ---

func TestMarkAllCompliant_CoversEveryItem(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{}
	MarkAllCompliant(fw, m)
	if len(m) != fw.TotalItems() {
		t.Fatalf("marked %d items, want %d", len(m), fw.TotalItems())
	}
	out := Score(fw, m)
	if out.Value != 5 || out.Label != "Excellent" {
		t.Errorf("all-compliant tiered score = %d %q, want 5 Excellent", out.Value, out.Label)
	}
}

func TestMarkAllCompliant_PreservesCommentsDiscardsSeverity(t *testing.T) {
	fw := tieredFw(t)
	m := AnswerMap{"TEMP-01": {Status: StatusNonCompliant, Severity: framework.SeverityMajor, Comments: "fridge at 8C"}}
	MarkAllCompliant(fw, m)
	a := m["TEMP-01"]
	if a.Comments != "fridge at 8C" {
		t.Error("comments lost")
	}
	if a.Severity != "" {
		t.Error("severity survived")
	}
}

func TestMarkAllCompliant_Percentage(t *testing.T) {
	fw := percentageFw(t)
	m := AnswerMap{}
	MarkAllCompliant(fw, m)
	out := Score(fw, m)
	if out.Value != 100 || out.Label != "Compliant" {
		t.Errorf("all-compliant percentage score = %d %q, want 100 Compliant", out.Value, out.Label)
	}
}
