// Package framework defines regulatory self-assessment frameworks: the
// ordered sections and items an operator audits against, the scoring
// model that turns answers into an outcome, and the tier/band tables
// that label it.
//
// A framework is pure data. The scoring engine (internal/assessment)
// never branches on a framework key — it only reads the model, the tier
// table, and the bands, so councils with different ladders plug in
// without engine changes.
package framework

import (
	"fmt"
	"strings"
)

// --- Scoring model enum ---

// Model selects how a framework grades an answer set.
type Model string

const (
	// ModelTiered ranks severity counts against an ordered tier table
	// and yields a star rating (0-5 in the shipped eatsafe scheme).
	ModelTiered Model = "tiered"
	// ModelPercentage yields round(compliant/assessed*100) and a band label.
	ModelPercentage Model = "percentage"
)

// validModels is the set of recognized scoring models.
var validModels = map[Model]bool{
	ModelTiered:     true,
	ModelPercentage: true,
}

// ValidateModel returns an error if the model is not recognized.
func ValidateModel(m Model) error {
	if !validModels[m] {
		return fmt.Errorf("invalid scoring model %q: must be one of: tiered, percentage", m)
	}
	return nil
}

// --- Severity enum ---

// Severity grades a non-compliance on a tiered framework.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// validSeverities is the set of recognized severities.
var validSeverities = map[Severity]bool{
	SeverityMinor:    true,
	SeverityMajor:    true,
	SeverityCritical: true,
}

// ValidateSeverity returns an error if the severity is not recognized.
func ValidateSeverity(s Severity) error {
	if !validSeverities[s] {
		return fmt.Errorf("invalid severity %q: must be one of: minor, major, critical", s)
	}
	return nil
}

// --- Core structures ---

// Item is a single auditable question within a section.
type Item struct {
	// Code is unique within its framework (e.g. "TEMP-01").
	Code string `yaml:"code" json:"code"`
	Text string `yaml:"text" json:"text"`
	// Detail is optional guidance shown under the question.
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
	// Severities is the ordered subset of severities an assessor may
	// assign when this item is non-compliant. Empty on percentage
	// frameworks.
	Severities []Severity `yaml:"severities,omitempty" json:"severities,omitempty"`
	// HasEvidence marks items that carry an evidence toggle
	// (photo taken, record sighted).
	HasEvidence bool `yaml:"has_evidence,omitempty" json:"has_evidence,omitempty"`
}

// AllowsSeverity reports whether sev is in the item's declared set.
func (it Item) AllowsSeverity(sev Severity) bool {
	for _, s := range it.Severities {
		if s == sev {
			return true
		}
	}
	return false
}

// DefaultSeverity returns the item's first declared severity, or empty
// when the item declares none. Used to self-heal out-of-set severities.
func (it Item) DefaultSeverity() Severity {
	if len(it.Severities) == 0 {
		return ""
	}
	return it.Severities[0]
}

// Section groups related items. Order is significant for display only.
type Section struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
	Items []Item `yaml:"items" json:"items"`
}

// CountRange bounds a severity count. Max of -1 means "no upper limit".
type CountRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Contains reports whether n falls within the range.
func (r CountRange) Contains(n int) bool {
	if n < r.Min {
		return false
	}
	return r.Max < 0 || n <= r.Max
}

// TierRow is one rung of an ordered tier ladder. Rows are evaluated
// top-down; the first row whose thresholds admit the severity counts
// wins. A nil range is unconstrained on an all-of row and ignored on
// an any-of row.
type TierRow struct {
	Minor    *CountRange `yaml:"minor,omitempty" json:"minor,omitempty"`
	Major    *CountRange `yaml:"major,omitempty" json:"major,omitempty"`
	Critical *CountRange `yaml:"critical,omitempty" json:"critical,omitempty"`
	// AnyOf makes the row match when ANY declared range is satisfied
	// instead of all of them (e.g. "6+ minor OR 1-2 major OR 1 critical").
	AnyOf bool   `yaml:"any_of,omitempty" json:"any_of,omitempty"`
	Tier  int    `yaml:"tier" json:"tier"`
	Label string `yaml:"label" json:"label"`
}

// Matches reports whether the given severity counts satisfy this row.
func (r TierRow) Matches(minor, major, critical int) bool {
	ranges := []struct {
		r *CountRange
		n int
	}{
		{r.Minor, minor},
		{r.Major, major},
		{r.Critical, critical},
	}

	if r.AnyOf {
		for _, c := range ranges {
			if c.r != nil && c.r.Contains(c.n) {
				return true
			}
		}
		return false
	}

	for _, c := range ranges {
		if c.r != nil && !c.r.Contains(c.n) {
			return false
		}
	}
	return true
}

// Band maps a minimum percentage score to a label. Bands are evaluated
// top-down; the first band whose Min is met wins.
type Band struct {
	Min   int    `yaml:"min" json:"min"`
	Label string `yaml:"label" json:"label"`
}

// BandLabel resolves a percentage score against an ordered band list.
// Returns the last band's label as the floor when nothing else matches.
func BandLabel(bands []Band, score int) string {
	for _, b := range bands {
		if score >= b.Min {
			return b.Label
		}
	}
	if len(bands) > 0 {
		return bands[len(bands)-1].Label
	}
	return ""
}

// Framework is a complete self-assessment scheme.
type Framework struct {
	Key      string    `yaml:"key" json:"key"`
	Name     string    `yaml:"name" json:"name"`
	Model    Model     `yaml:"model" json:"model"`
	Sections []Section `yaml:"sections" json:"sections"`
	// Tiers is the ordered ladder for tiered frameworks. Must be empty
	// on percentage frameworks.
	Tiers []TierRow `yaml:"tiers,omitempty" json:"tiers,omitempty"`
	// Bands label percentage scores. Required for percentage frameworks.
	Bands []Band `yaml:"bands,omitempty" json:"bands,omitempty"`
}

// TotalItems returns the number of items across all sections.
func (f *Framework) TotalItems() int {
	n := 0
	for _, s := range f.Sections {
		n += len(s.Items)
	}
	return n
}

// Item looks up an item by code. The second return is false when the
// code is not part of this framework.
func (f *Framework) Item(code string) (Item, bool) {
	for _, s := range f.Sections {
		for _, it := range s.Items {
			if it.Code == code {
				return it, true
			}
		}
	}
	return Item{}, false
}

// Validate checks structural invariants: a recognized model, at least
// one section, unique item codes, recognized severities, a tier table
// present exactly when the model is tiered, and bands present on
// percentage frameworks.
func (f *Framework) Validate() error {
	if strings.TrimSpace(f.Key) == "" {
		return fmt.Errorf("framework key is required")
	}
	if err := ValidateModel(f.Model); err != nil {
		return fmt.Errorf("framework %q: %w", f.Key, err)
	}
	if len(f.Sections) == 0 {
		return fmt.Errorf("framework %q has no sections", f.Key)
	}

	seen := map[string]bool{}
	for _, sec := range f.Sections {
		if strings.TrimSpace(sec.Key) == "" {
			return fmt.Errorf("framework %q: section with empty key", f.Key)
		}
		for _, it := range sec.Items {
			if strings.TrimSpace(it.Code) == "" {
				return fmt.Errorf("framework %q: section %q has an item with empty code", f.Key, sec.Key)
			}
			if seen[it.Code] {
				return fmt.Errorf("framework %q: duplicate item code %q", f.Key, it.Code)
			}
			seen[it.Code] = true
			for _, sev := range it.Severities {
				if err := ValidateSeverity(sev); err != nil {
					return fmt.Errorf("framework %q item %q: %w", f.Key, it.Code, err)
				}
			}
			if f.Model == ModelPercentage && len(it.Severities) > 0 {
				return fmt.Errorf("framework %q item %q: percentage frameworks declare no severities", f.Key, it.Code)
			}
		}
	}

	switch f.Model {
	case ModelTiered:
		if len(f.Tiers) == 0 {
			return fmt.Errorf("framework %q: tiered model requires a tier table", f.Key)
		}
	case ModelPercentage:
		if len(f.Tiers) > 0 {
			return fmt.Errorf("framework %q: percentage model must not declare a tier table", f.Key)
		}
		if len(f.Bands) == 0 {
			return fmt.Errorf("framework %q: percentage model requires score bands", f.Key)
		}
	}

	return nil
}
