package readiness

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// --- Fake source ---

// fakeSource returns canned counts keyed by check, and an error for
// keys listed in fail. Checks run concurrently, so the recorded
// arguments are guarded by a mutex.
type fakeSource struct {
	counts map[string]int
	fail   map[string]bool

	mu sync.Mutex
	// sinceByKey records the since argument of windowed queries.
	sinceByKey map[string]time.Time
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		counts:     map[string]int{},
		fail:       map[string]bool{},
		sinceByKey: map[string]time.Time{},
	}
}

// allReady returns a source where every check passes.
func allReady() *fakeSource {
	s := newFakeSource()
	for _, key := range []string{
		"business_profile", "certificates", "training", "cleaning_schedule",
		"pest_control", "calibration", "suppliers", "self_assessment",
	} {
		s.counts[key] = 1
	}
	s.counts["daily_logs"] = DailyLogTarget
	s.counts["corrective_actions"] = 0
	return s
}

func (s *fakeSource) answer(key string) (int, error) {
	if s.fail[key] {
		return 0, errors.New("query failed")
	}
	return s.counts[key], nil
}

func (s *fakeSource) recordSince(key string, since time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinceByKey[key] = since
}

func (s *fakeSource) since(key string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sinceByKey[key]
}

func (s *fakeSource) CountBusinessProfiles(ctx context.Context, org string) (int, error) {
	return s.answer("business_profile")
}

func (s *fakeSource) CountCurrentCertificates(ctx context.Context, org string, now time.Time) (int, error) {
	return s.answer("certificates")
}

func (s *fakeSource) CountTrainingRecords(ctx context.Context, org string) (int, error) {
	return s.answer("training")
}

func (s *fakeSource) CountDailyLogsSince(ctx context.Context, org string, since time.Time) (int, error) {
	s.recordSince("daily_logs", since)
	return s.answer("daily_logs")
}

func (s *fakeSource) CountOpenCriticalActions(ctx context.Context, org string) (int, error) {
	return s.answer("corrective_actions")
}

func (s *fakeSource) CountCleaningTasks(ctx context.Context, org string) (int, error) {
	return s.answer("cleaning_schedule")
}

func (s *fakeSource) CountPestVisitsSince(ctx context.Context, org string, since time.Time) (int, error) {
	s.recordSince("pest_control", since)
	return s.answer("pest_control")
}

func (s *fakeSource) CountCalibrationsSince(ctx context.Context, org string, since time.Time) (int, error) {
	s.recordSince("calibration", since)
	return s.answer("calibration")
}

func (s *fakeSource) CountSuppliers(ctx context.Context, org string) (int, error) {
	return s.answer("suppliers")
}

func (s *fakeSource) CountAssessmentsSince(ctx context.Context, org string, since time.Time) (int, error) {
	s.recordSince("self_assessment", since)
	return s.answer("self_assessment")
}

func checkByKey(t *testing.T, report Report, key string) CheckResult {
	t.Helper()
	for _, c := range report.Checks {
		if c.Key == key {
			return c
		}
	}
	t.Fatalf("check %q not in report", key)
	return CheckResult{}
}

// --- classify ---

func TestClassify_Existence(t *testing.T) {
	if got := classify(kindExistence, 0, 0); got != StatusNotReady {
		t.Errorf("existence(0) = %q", got)
	}
	if got := classify(kindExistence, 3, 0); got != StatusReady {
		t.Errorf("existence(3) = %q", got)
	}
}

func TestClassify_Graduated(t *testing.T) {
	cases := map[int]Status{
		0: StatusNotReady,
		3: StatusWarning,
		7: StatusReady,
		9: StatusReady,
	}
	for count, want := range cases {
		if got := classify(kindGraduated, count, 7); got != want {
			t.Errorf("graduated(%d) = %q, want %q", count, got, want)
		}
	}
}

func TestClassify_Inverse(t *testing.T) {
	if got := classify(kindInverse, 0, 0); got != StatusReady {
		t.Errorf("inverse(0) = %q, want ready", got)
	}
	if got := classify(kindInverse, 2, 0); got != StatusNotReady {
		t.Errorf("inverse(2) = %q, want not_ready", got)
	}
}

// --- Run ---

func TestRun_AllChecksPass(t *testing.T) {
	report := New(allReady()).Run(context.Background(), "cafe-1")
	if len(report.Checks) != TotalChecks {
		t.Fatalf("got %d checks, want %d", len(report.Checks), TotalChecks)
	}
	if report.ReadyCount != TotalChecks || report.ScorePct != 100 {
		t.Errorf("ready=%d score=%d, want 10 and 100", report.ReadyCount, report.ScorePct)
	}
	if report.Band != "Ready for Inspection" {
		t.Errorf("Band = %q", report.Band)
	}
}

func TestRun_EightReadyIsEightyPercent(t *testing.T) {
	src := allReady()
	src.counts["pest_control"] = 0
	src.counts["suppliers"] = 0
	report := New(src).Run(context.Background(), "cafe-1")
	if report.ReadyCount != 8 || report.ScorePct != 80 {
		t.Errorf("ready=%d score=%d, want 8 and 80", report.ReadyCount, report.ScorePct)
	}
	if report.Band != "Ready for Inspection" {
		t.Errorf("Band = %q, want Ready for Inspection at exactly 80", report.Band)
	}
}

func TestRun_FailedQueryDegradesToNotReady(t *testing.T) {
	src := allReady()
	src.fail["certificates"] = true
	src.fail["training"] = true
	src.fail["suppliers"] = true
	report := New(src).Run(context.Background(), "cafe-1")

	if len(report.Checks) != TotalChecks {
		t.Fatalf("failed queries shrank the check list to %d", len(report.Checks))
	}
	if got := checkByKey(t, report, "certificates").Status; got != StatusNotReady {
		t.Errorf("failed check status = %q, want not_ready", got)
	}
	if report.ReadyCount != 7 || report.ScorePct != 70 {
		t.Errorf("ready=%d score=%d, want 7 and 70", report.ReadyCount, report.ScorePct)
	}
	if report.Band != "Needs Attention" {
		t.Errorf("Band = %q", report.Band)
	}
}

func TestRun_OpenCriticalActionsBlockReadiness(t *testing.T) {
	src := allReady()
	src.counts["corrective_actions"] = 2
	report := New(src).Run(context.Background(), "cafe-1")
	c := checkByKey(t, report, "corrective_actions")
	if c.Status != StatusNotReady {
		t.Errorf("status with open criticals = %q, want not_ready", c.Status)
	}
	if c.Count != 2 {
		t.Errorf("Count = %d, want 2", c.Count)
	}
}

func TestRun_PartialDailyLogsWarn(t *testing.T) {
	src := allReady()
	src.counts["daily_logs"] = 4
	report := New(src).Run(context.Background(), "cafe-1")
	c := checkByKey(t, report, "daily_logs")
	if c.Status != StatusWarning {
		t.Errorf("status with 4 of 7 logs = %q, want warning", c.Status)
	}
	// A warning is not ready, so it must not count toward the score.
	if report.ReadyCount != 9 {
		t.Errorf("ReadyCount = %d, want 9", report.ReadyCount)
	}
}

func TestRun_EmptyOrgYieldsEmptyReport(t *testing.T) {
	report := New(allReady()).Run(context.Background(), "")
	if len(report.Checks) != 0 || report.ScorePct != 0 || report.Band != "" {
		t.Errorf("empty org report = %+v, want zero value", report)
	}
}

func TestRun_WindowsDerivedFromClock(t *testing.T) {
	src := allReady()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	New(src).WithClock(func() time.Time { return now }).Run(context.Background(), "cafe-1")

	if got := src.since("daily_logs"); !got.Equal(now.Add(-DailyLogWindow)) {
		t.Errorf("daily log window since = %v", got)
	}
	if got := src.since("pest_control"); !got.Equal(now.Add(-PestControlWindow)) {
		t.Errorf("pest control window since = %v", got)
	}
	if got := src.since("self_assessment"); !got.Equal(now.Add(-SelfAuditWindow)) {
		t.Errorf("self-assessment window since = %v", got)
	}
}

func TestRun_ChecksKeepDisplayOrder(t *testing.T) {
	report := New(allReady()).Run(context.Background(), "cafe-1")
	if report.Checks[0].Key != "business_profile" {
		t.Errorf("first check = %q, want business_profile", report.Checks[0].Key)
	}
	if report.Checks[TotalChecks-1].Key != "self_assessment" {
		t.Errorf("last check = %q, want self_assessment", report.Checks[TotalChecks-1].Key)
	}
}
