// Package assessment is the compliance scoring engine: canonical answer
// maps, reconciliation of the two historical persisted shapes, pure
// scoring against a framework, and per-section progress.
//
// Everything here is synchronous and allocation-light — Score and the
// progress functions run on every answer mutation, so they must be safe
// to call on every keystroke and must never mutate their inputs.
package assessment

import (
	"fmt"

	"github.com/prepready/prepready/internal/framework"
)

// --- Answer status enum ---

// Status is the assessed state of one item.
type Status string

const (
	StatusCompliant    Status = "compliant"
	StatusNonCompliant Status = "non_compliant"
	StatusNotAssessed  Status = "not_assessed"
)

// validStatuses is the set of recognized answer statuses.
var validStatuses = map[Status]bool{
	StatusCompliant:    true,
	StatusNonCompliant: true,
	StatusNotAssessed:  true,
}

// ValidateStatus returns an error if the status is not recognized.
func ValidateStatus(s Status) error {
	if !validStatuses[s] {
		return fmt.Errorf("invalid answer status %q: must be one of: compliant, non_compliant, not_assessed", s)
	}
	return nil
}

// --- Core structures ---

// Answer is the canonical per-item answer.
type Answer struct {
	Status Status `json:"status"`
	// Severity is set only when Status is non_compliant and the
	// framework declares severities for the item.
	Severity framework.Severity `json:"severity,omitempty"`
	Comments string             `json:"comments,omitempty"`
	// Evidence is meaningful only on items with HasEvidence.
	Evidence bool `json:"evidence,omitempty"`
}

// AnswerMap is the engine's canonical representation: item code → answer.
// Codes absent from the map are not_assessed.
type AnswerMap map[string]Answer

// Clone returns a shallow copy; answers are value types, so the copy is
// independent of the original.
func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Get returns the answer for a code, defaulting to not_assessed. An
// answer whose status is not non_compliant reads with a cleared
// severity, so stale severities never leak out of the map.
func (m AnswerMap) Get(code string) Answer {
	a, ok := m[code]
	if !ok {
		return Answer{Status: StatusNotAssessed}
	}
	if a.Status == "" {
		a.Status = StatusNotAssessed
	}
	if a.Status != StatusNonCompliant {
		a.Severity = ""
	}
	return a
}

// --- Reconciliation ---

// Reconcile normalizes a persisted assessment record into the canonical
// answer map, regardless of which of the two historical shapes it used.
//
// Severity-model frameworks persisted a full answers map — returned
// unchanged. Percentage-model frameworks persisted a reduced code→bool
// responses map — converted entry by entry, with no severity assigned.
// A record with neither shape (or a malformed one that loaded as nil)
// degrades to an empty map; reconciliation never fails.
func Reconcile(answers AnswerMap, responses map[string]bool) AnswerMap {
	if len(answers) > 0 {
		return answers
	}
	out := AnswerMap{}
	for code, ok := range responses {
		if ok {
			out[code] = Answer{Status: StatusCompliant}
		} else {
			out[code] = Answer{Status: StatusNonCompliant}
		}
	}
	return out
}

// ToResponses serializes a canonical map back into the reduced
// code→bool shape percentage-model frameworks persist. Severity,
// comments and evidence are dropped by design (percentage frameworks
// have none); not_assessed entries are omitted.
func ToResponses(answers AnswerMap) map[string]bool {
	out := map[string]bool{}
	for code, a := range answers {
		switch a.Status {
		case StatusCompliant:
			out[code] = true
		case StatusNonCompliant:
			out[code] = false
		}
	}
	return out
}

// --- Mutation helpers ---
//
// The answer map is exclusively owned by one editing session; these
// helpers mutate it in place and enforce the self-healing rules so the
// map never holds a severity that contradicts its status or its item's
// declared set.

// SetStatus records an item's status. Moving away from non_compliant
// clears any previously assigned severity; moving to non_compliant on
// a severity-model item assigns the item's first declared severity as
// the default until the assessor picks one.
func SetStatus(fw *framework.Framework, answers AnswerMap, code string, status Status) error {
	if err := ValidateStatus(status); err != nil {
		return err
	}
	item, ok := fw.Item(code)
	if !ok {
		return fmt.Errorf("item %q is not part of framework %q", code, fw.Key)
	}

	a := answers.Get(code)
	a.Status = status
	if status == StatusNonCompliant {
		if a.Severity == "" || !item.AllowsSeverity(a.Severity) {
			a.Severity = item.DefaultSeverity()
		}
	} else {
		a.Severity = ""
	}
	answers[code] = a
	return nil
}

// SetSeverity grades an existing non-compliance. On any other status it
// is a tolerated no-op — severity controls should only be exposed for
// non-compliant items, but a stray call must not corrupt the map. A
// severity outside the item's declared set self-heals to the item's
// first declared severity.
func SetSeverity(fw *framework.Framework, answers AnswerMap, code string, sev framework.Severity) error {
	item, ok := fw.Item(code)
	if !ok {
		return fmt.Errorf("item %q is not part of framework %q", code, fw.Key)
	}

	a := answers.Get(code)
	if a.Status != StatusNonCompliant {
		return nil
	}
	if !item.AllowsSeverity(sev) {
		sev = item.DefaultSeverity()
	}
	a.Severity = sev
	answers[code] = a
	return nil
}

// SetComments attaches free-text comments to an item's answer.
func SetComments(fw *framework.Framework, answers AnswerMap, code, comments string) error {
	if _, ok := fw.Item(code); !ok {
		return fmt.Errorf("item %q is not part of framework %q", code, fw.Key)
	}
	a := answers.Get(code)
	a.Comments = comments
	answers[code] = a
	return nil
}

// SetEvidence toggles the evidence flag. Items without an evidence
// toggle reject the call so the flag stays meaningful.
func SetEvidence(fw *framework.Framework, answers AnswerMap, code string, evidence bool) error {
	item, ok := fw.Item(code)
	if !ok {
		return fmt.Errorf("item %q is not part of framework %q", code, fw.Key)
	}
	if !item.HasEvidence {
		return fmt.Errorf("item %q does not carry an evidence toggle", code)
	}
	a := answers.Get(code)
	a.Evidence = evidence
	answers[code] = a
	return nil
}

// MarkAllCompliant sets every item in the framework to compliant,
// preserving existing comments and evidence on each code and discarding
// any severity.
func MarkAllCompliant(fw *framework.Framework, answers AnswerMap) {
	for _, sec := range fw.Sections {
		for _, it := range sec.Items {
			a := answers.Get(it.Code)
			a.Status = StatusCompliant
			a.Severity = ""
			answers[it.Code] = a
		}
	}
}
