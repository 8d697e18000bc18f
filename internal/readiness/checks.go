// Package readiness reduces ten independent operational checks —
// profiles, certificates, logs, registers — into one inspection
// readiness scorecard. It is deliberately independent of the
// item-level assessment engine: a kitchen can score five stars on a
// self-audit and still be missing its pest control report.
package readiness

import (
	"context"
	"fmt"
	"time"
)

// --- Check status enum ---

// Status is the tri-state classification of one check.
type Status string

const (
	StatusReady    Status = "ready"
	StatusWarning  Status = "warning"
	StatusNotReady Status = "not_ready"
)

// --- Classifier kinds ---

// kind selects the classifier contract applied to a check's count.
type kind int

const (
	// kindExistence: count > 0 → ready, else not_ready.
	kindExistence kind = iota
	// kindGraduated: count ≥ target → ready, 0 < count < target →
	// warning, 0 → not_ready.
	kindGraduated
	// kindInverse: count == 0 → ready, else not_ready. Used where the
	// counted thing is the problem (open critical corrective actions).
	kindInverse
)

// classify applies a check kind's contract to a count.
func classify(k kind, count, target int) Status {
	switch k {
	case kindGraduated:
		switch {
		case count >= target:
			return StatusReady
		case count > 0:
			return StatusWarning
		default:
			return StatusNotReady
		}
	case kindInverse:
		if count == 0 {
			return StatusReady
		}
		return StatusNotReady
	default:
		if count > 0 {
			return StatusReady
		}
		return StatusNotReady
	}
}

// --- Data source ---

// Recency windows and targets used by the shipped check list.
const (
	DailyLogWindow     = 7 * 24 * time.Hour
	DailyLogTarget     = 7
	PestControlWindow  = 90 * 24 * time.Hour
	CalibrationWindow  = 365 * 24 * time.Hour
	SelfAuditWindow    = 30 * 24 * time.Hour
)

// Source is the storage collaborator's view for readiness: ten
// independent count/existence queries, each scoped to an organization.
// internal/store satisfies it.
type Source interface {
	CountBusinessProfiles(ctx context.Context, org string) (int, error)
	CountCurrentCertificates(ctx context.Context, org string, now time.Time) (int, error)
	CountTrainingRecords(ctx context.Context, org string) (int, error)
	CountDailyLogsSince(ctx context.Context, org string, since time.Time) (int, error)
	CountOpenCriticalActions(ctx context.Context, org string) (int, error)
	CountCleaningTasks(ctx context.Context, org string) (int, error)
	CountPestVisitsSince(ctx context.Context, org string, since time.Time) (int, error)
	CountCalibrationsSince(ctx context.Context, org string, since time.Time) (int, error)
	CountSuppliers(ctx context.Context, org string) (int, error)
	CountAssessmentsSince(ctx context.Context, org string, since time.Time) (int, error)
}

// --- Check definitions ---

// checkDef is one row of the fixed check list. The list length — not
// how many queries happen to succeed — is the denominator of the
// aggregate score.
type checkDef struct {
	key      string
	label    string
	fixRoute string
	kind     kind
	target   int
	count    func(ctx context.Context, src Source, org string, now time.Time) (int, error)
	detail   func(count int) string
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

// checkList is the fixed list of ten readiness checks, in display order.
var checkList = []checkDef{
	{
		key: "business_profile", label: "Business profile", fixRoute: "profile",
		kind: kindExistence,
		count: func(ctx context.Context, src Source, org string, _ time.Time) (int, error) {
			return src.CountBusinessProfiles(ctx, org)
		},
		detail: func(n int) string {
			if n > 0 {
				return "Business profile completed"
			}
			return "No business profile on file"
		},
	},
	{
		key: "certificates", label: "Food safety certificates", fixRoute: "certificates",
		kind: kindExistence,
		count: func(ctx context.Context, src Source, org string, now time.Time) (int, error) {
			return src.CountCurrentCertificates(ctx, org, now)
		},
		detail: func(n int) string {
			if n > 0 {
				return plural(n, "current certificate on file", "current certificates on file")
			}
			return "No current food safety certificates"
		},
	},
	{
		key: "training", label: "Staff training records", fixRoute: "training",
		kind: kindExistence,
		count: func(ctx context.Context, src Source, org string, _ time.Time) (int, error) {
			return src.CountTrainingRecords(ctx, org)
		},
		detail: func(n int) string {
			if n > 0 {
				return plural(n, "training record", "training records")
			}
			return "No staff training records"
		},
	},
	{
		key: "daily_logs", label: "Daily logs this week", fixRoute: "logs",
		kind: kindGraduated, target: DailyLogTarget,
		count: func(ctx context.Context, src Source, org string, now time.Time) (int, error) {
			return src.CountDailyLogsSince(ctx, org, now.Add(-DailyLogWindow))
		},
		detail: func(n int) string {
			return fmt.Sprintf("%d of %d daily logs recorded in the last 7 days", n, DailyLogTarget)
		},
	},
	{
		key: "corrective_actions", label: "Critical corrective actions", fixRoute: "actions",
		kind: kindInverse,
		count: func(ctx context.Context, src Source, org string, _ time.Time) (int, error) {
			return src.CountOpenCriticalActions(ctx, org)
		},
		detail: func(n int) string {
			if n == 0 {
				return "No open critical corrective actions"
			}
			return plural(n, "open critical corrective action", "open critical corrective actions")
		},
	},
	{
		key: "cleaning_schedule", label: "Cleaning schedule", fixRoute: "cleaning",
		kind: kindExistence,
		count: func(ctx context.Context, src Source, org string, _ time.Time) (int, error) {
			return src.CountCleaningTasks(ctx, org)
		},
		detail: func(n int) string {
			if n > 0 {
				return plural(n, "scheduled cleaning task", "scheduled cleaning tasks")
			}
			return "No cleaning schedule defined"
		},
	},
	{
		key: "pest_control", label: "Pest control visit", fixRoute: "pests",
		kind: kindExistence,
		count: func(ctx context.Context, src Source, org string, now time.Time) (int, error) {
			return src.CountPestVisitsSince(ctx, org, now.Add(-PestControlWindow))
		},
		detail: func(n int) string {
			if n > 0 {
				return "Pest control visit within the last 90 days"
			}
			return "No pest control visit in the last 90 days"
		},
	},
	{
		key: "calibration", label: "Equipment calibration", fixRoute: "equipment",
		kind: kindExistence,
		count: func(ctx context.Context, src Source, org string, now time.Time) (int, error) {
			return src.CountCalibrationsSince(ctx, org, now.Add(-CalibrationWindow))
		},
		detail: func(n int) string {
			if n > 0 {
				return "Equipment calibrated within the last 12 months"
			}
			return "No equipment calibration in the last 12 months"
		},
	},
	{
		key: "suppliers", label: "Supplier register", fixRoute: "suppliers",
		kind: kindExistence,
		count: func(ctx context.Context, src Source, org string, _ time.Time) (int, error) {
			return src.CountSuppliers(ctx, org)
		},
		detail: func(n int) string {
			if n > 0 {
				return plural(n, "approved supplier on the register", "approved suppliers on the register")
			}
			return "Supplier register is empty"
		},
	},
	{
		key: "self_assessment", label: "Self-assessment", fixRoute: "audit",
		kind: kindExistence,
		count: func(ctx context.Context, src Source, org string, now time.Time) (int, error) {
			return src.CountAssessmentsSince(ctx, org, now.Add(-SelfAuditWindow))
		},
		detail: func(n int) string {
			if n > 0 {
				return "Self-assessment completed within the last 30 days"
			}
			return "No self-assessment in the last 30 days"
		},
	},
}

// TotalChecks is the fixed denominator of the aggregate score.
const TotalChecks = 10
