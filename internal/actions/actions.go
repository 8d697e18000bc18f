// Package actions models corrective actions: the follow-up work items a
// non-compliance or an inspection finding generates. Open critical
// actions feed the readiness scorecard's inverse check; the lifecycle
// here keeps statuses and transitions consistent before the store
// persists them.
package actions

import (
	"fmt"

	"github.com/prepready/prepready/internal/framework"
)

// --- Status enum ---

// Status tracks the lifecycle of a corrective action.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
	StatusVerified   Status = "verified"
)

// validStatuses is the set of allowed action statuses.
var validStatuses = map[Status]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusClosed:     true,
	StatusVerified:   true,
}

// ValidateStatus returns an error if the status is not recognized.
func ValidateStatus(s Status) error {
	if !validStatuses[s] {
		return fmt.Errorf("invalid action status %q: must be one of: open, in_progress, closed, verified", s)
	}
	return nil
}

// IsOpen reports whether the status still counts against readiness.
func (s Status) IsOpen() bool {
	return s == StatusOpen || s == StatusInProgress
}

// --- Transitions ---

// transitions maps each status to the statuses it may move to. Verified
// is terminal; a closed action can reopen if verification finds the fix
// didn't hold.
var transitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusClosed},
	StatusInProgress: {StatusClosed, StatusOpen},
	StatusClosed:     {StatusVerified, StatusOpen},
	StatusVerified:   {},
}

// CanTransition checks whether a status change is allowed.
func CanTransition(from, to Status) error {
	if err := ValidateStatus(from); err != nil {
		return err
	}
	if err := ValidateStatus(to); err != nil {
		return err
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("cannot move corrective action from %q to %q", from, to)
}

// --- Record ---

// Action is one corrective action. OpenedAt/ClosedAt are RFC3339.
type Action struct {
	ID       string             `json:"id"`
	Org      string             `json:"org"`
	Title    string             `json:"title"`
	Detail   string             `json:"detail,omitempty"`
	Severity framework.Severity `json:"severity"`
	// ItemCode links back to the assessment item that raised the
	// action, when there is one.
	ItemCode string `json:"item_code,omitempty"`
	Status   Status `json:"status"`
	OpenedAt string `json:"opened_at"`
	ClosedAt string `json:"closed_at,omitempty"`
}

// Validate checks a new action before it is persisted.
func (a *Action) Validate() error {
	if a.Org == "" {
		return fmt.Errorf("corrective action requires an organization")
	}
	if a.Title == "" {
		return fmt.Errorf("corrective action requires a title")
	}
	if err := framework.ValidateSeverity(a.Severity); err != nil {
		return fmt.Errorf("corrective action: %w", err)
	}
	return ValidateStatus(a.Status)
}

// Transition moves the action to a new status after validating the
// edge. Closing timestamps are the caller's concern — the store stamps
// them when it persists.
func (a *Action) Transition(to Status) error {
	if err := CanTransition(a.Status, to); err != nil {
		return err
	}
	a.Status = to
	return nil
}
