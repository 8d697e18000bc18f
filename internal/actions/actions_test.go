package actions

import (
	"testing"

	"github.com/prepready/prepready/internal/framework"
)

// --- Helper ---

func testAction() *Action {
	return &Action{
		ID:       "act-1",
		Org:      "cafe-1",
		Title:    "Replace walk-in fridge seal",
		Severity: framework.SeverityMajor,
		Status:   StatusOpen,
		OpenedAt: "2026-03-01T09:00:00Z",
	}
}

// --- Status ---

func TestValidateStatus_Unknown(t *testing.T) {
	if err := ValidateStatus(Status("pending")); err == nil {
		t.Error("ValidateStatus accepted an unknown status")
	}
}

func TestStatusIsOpen(t *testing.T) {
	cases := map[Status]bool{
		StatusOpen:       true,
		StatusInProgress: true,
		StatusClosed:     false,
		StatusVerified:   false,
	}
	for s, want := range cases {
		if got := s.IsOpen(); got != want {
			t.Errorf("%s.IsOpen() = %v, want %v", s, got, want)
		}
	}
}

// --- CanTransition ---

func TestCanTransition_AllowedEdges(t *testing.T) {
	allowed := [][2]Status{
		{StatusOpen, StatusInProgress},
		{StatusOpen, StatusClosed},
		{StatusInProgress, StatusClosed},
		{StatusInProgress, StatusOpen},
		{StatusClosed, StatusVerified},
		{StatusClosed, StatusOpen},
	}
	for _, edge := range allowed {
		if err := CanTransition(edge[0], edge[1]); err != nil {
			t.Errorf("CanTransition(%s, %s): %v", edge[0], edge[1], err)
		}
	}
}

func TestCanTransition_RejectedEdges(t *testing.T) {
	rejected := [][2]Status{
		{StatusOpen, StatusVerified},
		{StatusInProgress, StatusVerified},
		{StatusVerified, StatusOpen},
		{StatusVerified, StatusClosed},
		{StatusOpen, StatusOpen},
	}
	for _, edge := range rejected {
		if err := CanTransition(edge[0], edge[1]); err == nil {
			t.Errorf("CanTransition(%s, %s) allowed a forbidden edge", edge[0], edge[1])
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	if err := CanTransition(Status("bogus"), StatusClosed); err == nil {
		t.Error("CanTransition accepted an unknown source status")
	}
}

// --- Action.Validate ---

func TestActionValidate_WellFormed(t *testing.T) {
	if err := testAction().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestActionValidate_MissingFields(t *testing.T) {
	a := testAction()
	a.Title = ""
	if err := a.Validate(); err == nil {
		t.Error("Validate accepted an action without a title")
	}

	a = testAction()
	a.Org = ""
	if err := a.Validate(); err == nil {
		t.Error("Validate accepted an action without an organization")
	}

	a = testAction()
	a.Severity = framework.Severity("severe")
	if err := a.Validate(); err == nil {
		t.Error("Validate accepted an unknown severity")
	}
}

// --- Action.Transition ---

func TestActionTransition_UpdatesStatus(t *testing.T) {
	a := testAction()
	if err := a.Transition(StatusInProgress); err != nil {
		t.Fatal(err)
	}
	if a.Status != StatusInProgress {
		t.Errorf("Status = %s, want in_progress", a.Status)
	}
}

func TestActionTransition_RejectedLeavesStatus(t *testing.T) {
	a := testAction()
	if err := a.Transition(StatusVerified); err == nil {
		t.Fatal("Transition allowed open → verified")
	}
	if a.Status != StatusOpen {
		t.Errorf("rejected transition changed status to %s", a.Status)
	}
}

func TestActionTransition_ReopenAfterClose(t *testing.T) {
	a := testAction()
	for _, to := range []Status{StatusInProgress, StatusClosed, StatusOpen} {
		if err := a.Transition(to); err != nil {
			t.Fatalf("Transition to %s: %v", to, err)
		}
	}
	if a.Status != StatusOpen {
		t.Errorf("Status = %s, want open after reopen", a.Status)
	}
}
