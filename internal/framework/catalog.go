package framework

import (
	"fmt"
	"sort"
)

// The shipped catalog covers the two council schemes PrepReady predicts
// outcomes for out of the box:
//
//   - eatsafe:   tiered 0-5 star scheme, severity-graded non-compliances
//   - foodcheck: percentage scheme, plain compliant/non-compliant answers
//
// Additional frameworks load from YAML via LoadDir and register alongside
// these.

// registry holds all known frameworks by key. The shipped catalog is
// registered at init; YAML-loaded frameworks are added by Register.
var registry = map[string]*Framework{}

func init() {
	for _, f := range []*Framework{eatSafe(), foodCheck()} {
		if err := Register(f); err != nil {
			panic(err)
		}
	}
}

// Register validates a framework and adds it to the registry. A
// framework with a duplicate key is rejected.
func Register(f *Framework) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if _, exists := registry[f.Key]; exists {
		return fmt.Errorf("framework %q is already registered", f.Key)
	}
	registry[f.Key] = f
	return nil
}

// Get returns a registered framework by key.
func Get(key string) (*Framework, error) {
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("unknown framework %q (known: %v)", key, Keys())
	}
	return f, nil
}

// Keys returns all registered framework keys in stable order: shipped
// frameworks first, then the rest alphabetically.
func Keys() []string {
	shipped := []string{"eatsafe", "foodcheck"}
	keys := make([]string, 0, len(registry))
	for _, k := range shipped {
		if _, ok := registry[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range registry {
		if k != "eatsafe" && k != "foodcheck" {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// severityAll is the full ordered severity scale used by eatsafe items.
var severityAll = []Severity{SeverityMinor, SeverityMajor, SeverityCritical}

// eatSafe is the tiered 0-5 star council scheme. The ladder is evaluated
// top-down; ranges with max -1 are unbounded.
func eatSafe() *Framework {
	return &Framework{
		Key:   "eatsafe",
		Name:  "Eat Safe Star Rating",
		Model: ModelTiered,
		Tiers: []TierRow{
			{
				Minor: &CountRange{0, 0}, Major: &CountRange{0, 0}, Critical: &CountRange{0, 0},
				Tier: 5, Label: "Excellent",
			},
			{
				Minor: &CountRange{1, 3}, Major: &CountRange{0, 0}, Critical: &CountRange{0, 0},
				Tier: 4, Label: "Very Good",
			},
			{
				Minor: &CountRange{4, 5}, Major: &CountRange{0, 0}, Critical: &CountRange{0, 0},
				Tier: 3, Label: "Good",
			},
			{
				Minor: &CountRange{6, -1}, Major: &CountRange{1, 2}, Critical: &CountRange{1, 1},
				AnyOf: true, Tier: 2, Label: "Poor",
			},
			{
				Major: &CountRange{3, -1}, Critical: &CountRange{2, -1},
				AnyOf: true, Tier: 0, Label: "Non-Compliant",
			},
		},
		Sections: []Section{
			{
				Key:   "temperature",
				Label: "Temperature Control",
				Items: []Item{
					{Code: "TEMP-01", Text: "Cold food held at or below 5°C", Detail: "Check fridge and cold display readings against the log", Severities: severityAll, HasEvidence: true},
					{Code: "TEMP-02", Text: "Hot food held at or above 60°C", Severities: severityAll, HasEvidence: true},
					{Code: "TEMP-03", Text: "Cooked food cooled within the 2hr/4hr rule", Detail: "60°C to 21°C within 2 hours, 21°C to 5°C within a further 4 hours", Severities: severityAll},
					{Code: "TEMP-04", Text: "Frozen food stored frozen hard", Severities: severityAll},
					{Code: "TEMP-05", Text: "Probe thermometer available and sanitised between uses", Severities: []Severity{SeverityMinor, SeverityMajor}},
				},
			},
			{
				Key:   "hygiene",
				Label: "Personal Hygiene",
				Items: []Item{
					{Code: "HYG-01", Text: "Handwash basin stocked with soap and paper towel", Severities: severityAll},
					{Code: "HYG-02", Text: "Food handlers wash hands between tasks", Severities: severityAll},
					{Code: "HYG-03", Text: "Staff with gastro symptoms excluded from food handling", Severities: []Severity{SeverityMajor, SeverityCritical}},
					{Code: "HYG-04", Text: "Clean outer clothing and tied-back hair", Severities: []Severity{SeverityMinor, SeverityMajor}},
				},
			},
			{
				Key:   "contamination",
				Label: "Cross-Contamination",
				Items: []Item{
					{Code: "CONT-01", Text: "Raw and ready-to-eat foods stored separately", Severities: severityAll, HasEvidence: true},
					{Code: "CONT-02", Text: "Separate or sanitised boards for raw protein", Severities: severityAll},
					{Code: "CONT-03", Text: "Allergen matrix current and accessible to staff", Severities: []Severity{SeverityMajor, SeverityCritical}},
					{Code: "CONT-04", Text: "Chemicals stored away from food and packaging", Severities: severityAll},
				},
			},
			{
				Key:   "cleaning",
				Label: "Cleaning & Sanitising",
				Items: []Item{
					{Code: "CLEAN-01", Text: "Food-contact surfaces sanitised to schedule", Severities: severityAll, HasEvidence: true},
					{Code: "CLEAN-02", Text: "Sanitiser at correct dilution with test strips on hand", Severities: []Severity{SeverityMinor, SeverityMajor}},
					{Code: "CLEAN-03", Text: "Waste removed regularly and bin lids closed", Severities: []Severity{SeverityMinor, SeverityMajor}},
				},
			},
			{
				Key:   "pests",
				Label: "Pest Control",
				Items: []Item{
					{Code: "PEST-01", Text: "No evidence of pest activity in food areas", Severities: severityAll, HasEvidence: true},
					{Code: "PEST-02", Text: "External doors sealed or screened", Severities: []Severity{SeverityMinor, SeverityMajor}},
					{Code: "PEST-03", Text: "Pest control service report on file", Severities: []Severity{SeverityMinor, SeverityMajor}},
				},
			},
			{
				Key:   "records",
				Label: "Records & Training",
				Items: []Item{
					{Code: "REC-01", Text: "Temperature logs completed for the current week", Severities: []Severity{SeverityMinor, SeverityMajor}, HasEvidence: true},
					{Code: "REC-02", Text: "Food safety supervisor certificate current", Severities: []Severity{SeverityMajor, SeverityCritical}},
					{Code: "REC-03", Text: "Supplier receipts retained with temperature checks", Severities: []Severity{SeverityMinor, SeverityMajor}},
				},
			},
		},
	}
}

// foodCheck is the percentage scheme: plain yes/no answers, banded score.
func foodCheck() *Framework {
	return &Framework{
		Key:   "foodcheck",
		Name:  "FoodCheck Compliance Score",
		Model: ModelPercentage,
		Bands: []Band{
			{Min: 80, Label: "Compliant"},
			{Min: 50, Label: "Needs Improvement"},
			{Min: 0, Label: "Non-Compliant"},
		},
		Sections: []Section{
			{
				Key:   "storage",
				Label: "Food Storage",
				Items: []Item{
					{Code: "ST-01", Text: "All food stored off the floor"},
					{Code: "ST-02", Text: "Stock rotated first-in first-out"},
					{Code: "ST-03", Text: "Dry goods sealed and labelled", HasEvidence: true},
					{Code: "ST-04", Text: "Fridges and freezers within temperature range"},
				},
			},
			{
				Key:   "preparation",
				Label: "Preparation & Handling",
				Items: []Item{
					{Code: "PR-01", Text: "Thawing done under refrigeration, not on the bench"},
					{Code: "PR-02", Text: "Ready-to-eat food handled with utensils or gloves"},
					{Code: "PR-03", Text: "Prepared food date-marked", HasEvidence: true},
				},
			},
			{
				Key:   "premises",
				Label: "Premises & Equipment",
				Items: []Item{
					{Code: "PM-01", Text: "Floors, walls and ceilings clean and in good repair"},
					{Code: "PM-02", Text: "Equipment surfaces free of grease build-up"},
					{Code: "PM-03", Text: "Adequate lighting and ventilation in prep areas"},
					{Code: "PM-04", Text: "Single-use items protected from contamination"},
				},
			},
			{
				Key:   "management",
				Label: "Management & Records",
				Items: []Item{
					{Code: "MG-01", Text: "Food safety program available on site", HasEvidence: true},
					{Code: "MG-02", Text: "Staff trained for the tasks they perform"},
					{Code: "MG-03", Text: "Complaints and recalls recorded with actions taken"},
				},
			},
		},
	}
}
