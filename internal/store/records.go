package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepready/prepready/internal/actions"
)

// Operational registers. Each table gets the minimal writes the tool
// surface needs plus the count/existence query the readiness scorecard
// runs against it.

// --- Business profile ---

// BusinessProfile describes the operator.
type BusinessProfile struct {
	Org     string `json:"org"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// UpsertBusinessProfile creates or replaces the profile for an org.
func (s *Store) UpsertBusinessProfile(ctx context.Context, p BusinessProfile) error {
	if p.Org == "" || p.Name == "" {
		return fmt.Errorf("store: business profile requires org and name")
	}
	now := nowStamp()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO business_profiles (org, name, address, contact, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (org) DO UPDATE SET
			name = excluded.name, address = excluded.address,
			contact = excluded.contact, updated_at = excluded.updated_at`,
		p.Org, p.Name, p.Address, p.Contact, now, now,
	)
	if err != nil {
		return fmt.Errorf("store: upsert business profile: %w", err)
	}
	return nil
}

// CountBusinessProfiles reports whether the org has a profile (0 or 1).
func (s *Store) CountBusinessProfiles(ctx context.Context, org string) (int, error) {
	return s.countRow(ctx, `SELECT COUNT(*) FROM business_profiles WHERE org = ?`, org)
}

// --- Certificates ---

// AddCertificate records a food-safety certificate with its expiry day.
func (s *Store) AddCertificate(ctx context.Context, org, holder, certType string, issued, expires time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO certificates (id, org, holder, cert_type, issued_at, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, org, holder, certType,
		issued.UTC().Format(dateOnly), expires.UTC().Format(dateOnly), nowStamp(),
	)
	if err != nil {
		return "", fmt.Errorf("store: add certificate: %w", err)
	}
	return id, nil
}

// CountCurrentCertificates counts certificates that have not expired.
func (s *Store) CountCurrentCertificates(ctx context.Context, org string, now time.Time) (int, error) {
	return s.countRow(ctx,
		`SELECT COUNT(*) FROM certificates WHERE org = ? AND expires_at >= ?`,
		org, now.UTC().Format(dateOnly),
	)
}

// --- Training records ---

// AddTrainingRecord records a completed staff training course.
func (s *Store) AddTrainingRecord(ctx context.Context, org, staff, course string, completed time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO training_records (id, org, staff_name, course, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, org, staff, course, completed.UTC().Format(dateOnly), nowStamp(),
	)
	if err != nil {
		return "", fmt.Errorf("store: add training record: %w", err)
	}
	return id, nil
}

// CountTrainingRecords counts all training records for the org.
func (s *Store) CountTrainingRecords(ctx context.Context, org string) (int, error) {
	return s.countRow(ctx, `SELECT COUNT(*) FROM training_records WHERE org = ?`, org)
}

// --- Daily logs ---

// AddDailyLog records one operational log entry (temperature round,
// cleaning sign-off, delivery check) for a calendar day. Multiple
// entries on the same day are allowed; the readiness check counts
// distinct days.
func (s *Store) AddDailyLog(ctx context.Context, org, kind, notes string, day time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_logs (id, org, log_date, kind, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, org, day.UTC().Format(dateOnly), kind, notes, nowStamp(),
	)
	if err != nil {
		return "", fmt.Errorf("store: add daily log: %w", err)
	}
	return id, nil
}

// CountDailyLogsSince counts distinct logged days on or after the given
// day, so several entries on one day still count once toward the
// weekly target.
func (s *Store) CountDailyLogsSince(ctx context.Context, org string, since time.Time) (int, error) {
	return s.countRow(ctx,
		`SELECT COUNT(DISTINCT log_date) FROM daily_logs WHERE org = ? AND log_date >= ?`,
		org, since.UTC().Format(dateOnly),
	)
}

// --- Corrective actions ---

// AddAction persists a new corrective action after validating it.
func (s *Store) AddAction(ctx context.Context, a *actions.Action) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = actions.StatusOpen
	}
	if a.OpenedAt == "" {
		a.OpenedAt = nowStamp()
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO corrective_actions (id, org, title, detail, severity, item_code, status, opened_at, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Org, a.Title, a.Detail, string(a.Severity), a.ItemCode,
		string(a.Status), a.OpenedAt, nullable(a.ClosedAt),
	)
	if err != nil {
		return fmt.Errorf("store: add corrective action: %w", err)
	}
	return nil
}

// GetAction loads one corrective action by ID.
func (s *Store) GetAction(ctx context.Context, org, id string) (*actions.Action, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, org, title, detail, severity, item_code, status, opened_at, closed_at
		FROM corrective_actions WHERE org = ? AND id = ?`, org, id)

	var a actions.Action
	var detail, itemCode, closedAt sql.NullString
	err := row.Scan(&a.ID, &a.Org, &a.Title, &detail, &a.Severity, &itemCode, &a.Status, &a.OpenedAt, &closedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("store: corrective action %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get corrective action: %w", err)
	}
	a.Detail = detail.String
	a.ItemCode = itemCode.String
	a.ClosedAt = closedAt.String
	return &a, nil
}

// TransitionAction moves an action to a new status, stamping closed_at
// when it leaves the open states and clearing it when it reopens.
func (s *Store) TransitionAction(ctx context.Context, org, id string, to actions.Status) (*actions.Action, error) {
	a, err := s.GetAction(ctx, org, id)
	if err != nil {
		return nil, err
	}
	if err := a.Transition(to); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	if a.Status.IsOpen() {
		a.ClosedAt = ""
	} else if a.ClosedAt == "" {
		a.ClosedAt = nowStamp()
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE corrective_actions SET status = ?, closed_at = ? WHERE org = ? AND id = ?`,
		string(a.Status), nullable(a.ClosedAt), org, id,
	)
	if err != nil {
		return nil, fmt.Errorf("store: transition corrective action: %w", err)
	}
	return a, nil
}

// ListActions returns the org's corrective actions, newest first.
func (s *Store) ListActions(ctx context.Context, org string, limit int) ([]actions.Action, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, org, title, detail, severity, item_code, status, opened_at, closed_at
		FROM corrective_actions WHERE org = ?
		ORDER BY opened_at DESC LIMIT ?`, org, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list corrective actions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []actions.Action
	for rows.Next() {
		var a actions.Action
		var detail, itemCode, closedAt sql.NullString
		if err := rows.Scan(&a.ID, &a.Org, &a.Title, &detail, &a.Severity, &itemCode, &a.Status, &a.OpenedAt, &closedAt); err != nil {
			return nil, fmt.Errorf("store: list corrective actions: %w", err)
		}
		a.Detail = detail.String
		a.ItemCode = itemCode.String
		a.ClosedAt = closedAt.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountOpenCriticalActions counts critical actions still open or in
// progress — the inverse readiness check.
func (s *Store) CountOpenCriticalActions(ctx context.Context, org string) (int, error) {
	return s.countRow(ctx, `
		SELECT COUNT(*) FROM corrective_actions
		WHERE org = ? AND severity = 'critical' AND status IN ('open', 'in_progress')`,
		org,
	)
}

// --- Cleaning schedule ---

// AddCleaningTask adds one scheduled cleaning task (area + frequency).
func (s *Store) AddCleaningTask(ctx context.Context, org, area, frequency string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cleaning_tasks (id, org, area, frequency, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, org, area, frequency, nowStamp(),
	)
	if err != nil {
		return "", fmt.Errorf("store: add cleaning task: %w", err)
	}
	return id, nil
}

// CountCleaningTasks counts the org's scheduled cleaning tasks.
func (s *Store) CountCleaningTasks(ctx context.Context, org string) (int, error) {
	return s.countRow(ctx, `SELECT COUNT(*) FROM cleaning_tasks WHERE org = ?`, org)
}

// --- Pest control ---

// AddPestVisit records a pest-control service visit.
func (s *Store) AddPestVisit(ctx context.Context, org, provider, notes string, visit time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pest_visits (id, org, provider, visit_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, org, provider, visit.UTC().Format(dateOnly), notes, nowStamp(),
	)
	if err != nil {
		return "", fmt.Errorf("store: add pest visit: %w", err)
	}
	return id, nil
}

// CountPestVisitsSince counts visits on or after the given day.
func (s *Store) CountPestVisitsSince(ctx context.Context, org string, since time.Time) (int, error) {
	return s.countRow(ctx,
		`SELECT COUNT(*) FROM pest_visits WHERE org = ? AND visit_date >= ?`,
		org, since.UTC().Format(dateOnly),
	)
}

// --- Calibrations ---

// AddCalibration records an equipment calibration.
func (s *Store) AddCalibration(ctx context.Context, org, equipment string, calibrated time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calibrations (id, org, equipment, calibrated_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, org, equipment, calibrated.UTC().Format(dateOnly), nowStamp(),
	)
	if err != nil {
		return "", fmt.Errorf("store: add calibration: %w", err)
	}
	return id, nil
}

// CountCalibrationsSince counts calibrations on or after the given day.
func (s *Store) CountCalibrationsSince(ctx context.Context, org string, since time.Time) (int, error) {
	return s.countRow(ctx,
		`SELECT COUNT(*) FROM calibrations WHERE org = ? AND calibrated_at >= ?`,
		org, since.UTC().Format(dateOnly),
	)
}

// --- Suppliers ---

// AddSupplier adds an approved supplier to the register.
func (s *Store) AddSupplier(ctx context.Context, org, name, category string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, org, name, category, approved, created_at)
		VALUES (?, ?, ?, ?, 1, ?)`,
		id, org, name, category, nowStamp(),
	)
	if err != nil {
		return "", fmt.Errorf("store: add supplier: %w", err)
	}
	return id, nil
}

// CountSuppliers counts approved suppliers on the register.
func (s *Store) CountSuppliers(ctx context.Context, org string) (int, error) {
	return s.countRow(ctx, `SELECT COUNT(*) FROM suppliers WHERE org = ? AND approved = 1`, org)
}

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
