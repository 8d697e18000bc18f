package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepready/prepready/internal/assessment"
	"github.com/prepready/prepready/internal/framework"
)

// AssessmentRecord is one persisted self-assessment, keyed by
// (org, framework, date). Exactly one of Answers or Responses is
// populated, determined by the framework's scoring model at write time.
type AssessmentRecord struct {
	ID        string               `json:"id"`
	Org       string               `json:"org"`
	Framework string               `json:"framework"`
	Date      string               `json:"date"` // calendar day, 2006-01-02
	Answers   assessment.AnswerMap `json:"answers,omitempty"`
	Responses map[string]bool      `json:"responses,omitempty"`
	// Stars is the denormalized predicted rating on tiered frameworks;
	// Score the percentage on percentage frameworks.
	Stars     *int   `json:"stars,omitempty"`
	Score     *int   `json:"score,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// BuildRecord shapes a canonical answer map into the persisted form the
// framework's scoring model expects: tiered frameworks keep the full
// answers map and the star tier, percentage frameworks reduce to the
// code→bool responses map and the score. Never both.
func BuildRecord(fw *framework.Framework, org, date string, answers assessment.AnswerMap, out assessment.Outcome) *AssessmentRecord {
	rec := &AssessmentRecord{
		Org:       org,
		Framework: fw.Key,
		Date:      date,
	}
	v := out.Value
	switch fw.Model {
	case framework.ModelPercentage:
		rec.Responses = assessment.ToResponses(answers)
		rec.Score = &v
	default:
		rec.Answers = answers
		rec.Stars = &v
	}
	return rec
}

// SaveAssessment upserts the record for its (org, framework, date) key.
// On failure nothing is persisted and the caller's in-memory map is
// untouched, so the user can retry.
func (s *Store) SaveAssessment(ctx context.Context, rec *AssessmentRecord) error {
	if rec.Org == "" || rec.Framework == "" || rec.Date == "" {
		return fmt.Errorf("store: assessment record requires org, framework and date")
	}
	if len(rec.Answers) > 0 && len(rec.Responses) > 0 {
		return fmt.Errorf("store: assessment record must not carry both answers and responses")
	}

	var answersJSON, responsesJSON sql.NullString
	if rec.Answers != nil {
		data, err := json.Marshal(rec.Answers)
		if err != nil {
			return fmt.Errorf("store: marshal answers: %w", err)
		}
		answersJSON = sql.NullString{String: string(data), Valid: true}
	}
	if rec.Responses != nil {
		data, err := json.Marshal(rec.Responses)
		if err != nil {
			return fmt.Errorf("store: marshal responses: %w", err)
		}
		responsesJSON = sql.NullString{String: string(data), Valid: true}
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := nowStamp()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, org, framework, assess_date, answers, responses, stars, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (org, framework, assess_date) DO UPDATE SET
			answers    = excluded.answers,
			responses  = excluded.responses,
			stars      = excluded.stars,
			score      = excluded.score,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Org, rec.Framework, rec.Date,
		answersJSON, responsesJSON, rec.Stars, rec.Score, now, now,
	)
	if err != nil {
		return fmt.Errorf("store: save assessment: %w", err)
	}
	return nil
}

// LoadAssessment returns the record for (org, framework, date), or
// (nil, nil) when none exists. Malformed answer JSON degrades to a
// record with neither shape populated — the reconciler turns that into
// an empty map rather than failing the load.
func (s *Store) LoadAssessment(ctx context.Context, org, fwKey, date string) (*AssessmentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, org, framework, assess_date, answers, responses, stars, score, created_at, updated_at
		FROM assessments
		WHERE org = ? AND framework = ? AND assess_date = ?`,
		org, fwKey, date,
	)
	rec, err := scanAssessment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load assessment: %w", err)
	}
	return rec, nil
}

// RecentAssessments returns up to limit records for (org, framework),
// most recent first.
func (s *Store) RecentAssessments(ctx context.Context, org, fwKey string, limit int) ([]AssessmentRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, org, framework, assess_date, answers, responses, stars, score, created_at, updated_at
		FROM assessments
		WHERE org = ? AND framework = ?
		ORDER BY assess_date DESC
		LIMIT ?`,
		org, fwKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: recent assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("store: recent assessments: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// CountAssessmentsSince counts completed self-assessments (any
// framework) on or after the given day. Feeds the readiness
// self-assessment check.
func (s *Store) CountAssessmentsSince(ctx context.Context, org string, since time.Time) (int, error) {
	return s.countRow(ctx,
		`SELECT COUNT(*) FROM assessments WHERE org = ? AND assess_date >= ?`,
		org, since.UTC().Format(dateOnly),
	)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row scanner) (*AssessmentRecord, error) {
	var rec AssessmentRecord
	var answers, responses sql.NullString
	err := row.Scan(&rec.ID, &rec.Org, &rec.Framework, &rec.Date,
		&answers, &responses, &rec.Stars, &rec.Score, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// Malformed JSON degrades to the empty shape, never an error.
	if answers.Valid {
		var m assessment.AnswerMap
		if json.Unmarshal([]byte(answers.String), &m) == nil {
			rec.Answers = m
		}
	}
	if responses.Valid {
		var m map[string]bool
		if json.Unmarshal([]byte(responses.String), &m) == nil {
			rec.Responses = m
		}
	}
	return &rec, nil
}
