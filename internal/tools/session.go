package tools

import (
	"fmt"
	"sync"

	"github.com/prepready/prepready/internal/assessment"
	"github.com/prepready/prepready/internal/framework"
)

// editor is the exclusively-owned in-memory answer map for one
// (org, framework, day) audit. The map is mutated in place by the
// audit tools; it reaches disk only through audit_save, and a failed
// save leaves it untouched so the user can retry.
type editor struct {
	fw      *framework.Framework
	org     string
	date    string
	answers assessment.AnswerMap
}

func (e *editor) key() string {
	return sessionKey(e.org, e.fw.Key, e.date)
}

func sessionKey(org, fwKey, date string) string {
	return org + "|" + fwKey + "|" + date
}

// Sessions is the registry of active editors. One editor per
// (org, framework, day); starting the same audit twice resumes the
// existing editor rather than forking a second copy of the map.
type Sessions struct {
	mu sync.Mutex
	m  map[string]*editor
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{m: map[string]*editor{}}
}

// open creates or resumes the editor for a key, seeding a fresh one
// with the given answers (typically reconciled from a persisted record,
// or empty for a new audit day).
func (s *Sessions) open(fw *framework.Framework, org, date string, seed assessment.AnswerMap) *editor {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(org, fw.Key, date)
	if e, ok := s.m[key]; ok {
		return e
	}
	if seed == nil {
		seed = assessment.AnswerMap{}
	}
	e := &editor{fw: fw, org: org, date: date, answers: seed}
	s.m[key] = e
	return e
}

// current returns the active editor for (org, framework) on the current
// day, or an error directing the caller to audit_start.
func (s *Sessions) current(org, fwKey string) (*editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[sessionKey(org, fwKey, today())]
	if !ok {
		return nil, fmt.Errorf("no active audit for org %q on framework %q — run audit_start first", org, fwKey)
	}
	return e, nil
}

// replace swaps an editor's answer map wholesale (audit_load_previous:
// replace, never merge).
func (s *Sessions) replace(e *editor, answers assessment.AnswerMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.answers = answers
}
