package readiness

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/prepready/prepready/internal/framework"
)

// bands label the aggregate score, evaluated top-down like framework
// score bands.
var bands = []framework.Band{
	{Min: 80, Label: "Ready for Inspection"},
	{Min: 50, Label: "Needs Attention"},
	{Min: 0, Label: "Not Ready"},
}

// CheckResult is one classified check on the scorecard.
type CheckResult struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Detail   string `json:"detail"`
	Status   Status `json:"status"`
	FixRoute string `json:"fix_route"`
	Count    int    `json:"count"`
}

// Report is the full readiness scorecard.
type Report struct {
	Checks     []CheckResult `json:"checks"`
	ReadyCount int           `json:"ready_count"`
	ScorePct   int           `json:"score_pct"`
	Band       string        `json:"band"`
}

// Aggregator fans the fixed check list out against a Source and joins
// the results into one scorecard.
type Aggregator struct {
	src     Source
	timeNow func() time.Time
}

// New creates an Aggregator over the given source.
func New(src Source) *Aggregator {
	return &Aggregator{src: src, timeNow: time.Now}
}

// WithClock overrides the clock for testing recency windows.
func (a *Aggregator) WithClock(clock func() time.Time) *Aggregator {
	a.timeNow = clock
	return a
}

// Run executes all checks concurrently and computes the aggregate only
// after every result is in — partial results are never scored. A failed
// query degrades that one check to count 0 (classified accordingly,
// fail-open to not ready) without aborting the others.
//
// An empty org means there is no organization context at all; the
// report comes back with no checks and the presentation layer shows
// nothing rather than an error.
func (a *Aggregator) Run(ctx context.Context, org string) Report {
	if org == "" {
		return Report{}
	}

	now := a.timeNow()
	results := make([]CheckResult, len(checkList))

	var wg sync.WaitGroup
	for i, def := range checkList {
		wg.Add(1)
		go func(i int, def checkDef) {
			defer wg.Done()
			count, err := def.count(ctx, a.src, org, now)
			if err != nil {
				log.Printf("WARNING: readiness check %s: %v", def.key, err)
				count = 0
			}
			results[i] = CheckResult{
				Key:      def.key,
				Label:    def.label,
				Detail:   def.detail(count),
				Status:   classify(def.kind, count, def.target),
				FixRoute: def.fixRoute,
				Count:    count,
			}
		}(i, def)
	}
	wg.Wait()

	report := Report{Checks: results}
	for _, r := range results {
		if r.Status == StatusReady {
			report.ReadyCount++
		}
	}
	// The denominator is the fixed list length, never the number of
	// queries that returned data.
	report.ScorePct = int(math.Round(float64(report.ReadyCount) / float64(TotalChecks) * 100))
	report.Band = framework.BandLabel(bands, report.ScorePct)
	return report
}
