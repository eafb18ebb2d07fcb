package runner

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/CoreMedia/joala-sub001/internal/config"
)

// Result represents the outcome of waiting for one target
type Result string

const (
	// ResultPassed indicates the target became ready in time
	ResultPassed Result = "PASSED"
	// ResultFailed indicates the target did not become ready in time
	ResultFailed Result = "FAILED"
	// ResultSkipped indicates an assumed target did not become ready, or the target was not run
	ResultSkipped Result = "SKIPPED"
	// ResultError indicates the wait ended with an error that waiting cannot fix
	ResultError Result = "ERROR"
)

// TargetResult is the outcome of a single target.
type TargetResult struct {
	// Name of the target
	Name string `json:"name"`
	// Kind of check performed
	Kind config.CheckKind `json:"kind"`
	// Description of what was checked, e.g. "GET http://localhost/healthz"
	Description string `json:"description"`
	// Result of the wait
	Result Result `json:"result"`
	// StartTime when the wait began
	StartTime time.Time `json:"start_time"`
	// Duration of the wait
	Duration time.Duration `json:"duration"`
	// Attempts is the number of evaluations, if known
	Attempts int `json:"attempts,omitempty"`
	// Error message if the target did not pass
	Error string `json:"error,omitempty"`
}

// SuiteResult is the outcome of a whole wait plan.
type SuiteResult struct {
	// RunID identifies this run in logs and reports
	RunID string `json:"run_id"`
	// StartTime when the run began
	StartTime time.Time `json:"start_time"`
	// EndTime when the run completed
	EndTime time.Time `json:"end_time"`
	// Duration of the run
	Duration time.Duration `json:"duration"`

	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`

	// Results in plan order
	Results []TargetResult `json:"results"`
}

func (s *SuiteResult) updateCounters() {
	count := func(r Result) int {
		return lo.CountBy(s.Results, func(tr TargetResult) bool { return tr.Result == r })
	}
	s.Total = len(s.Results)
	s.Passed = count(ResultPassed)
	s.Failed = count(ResultFailed)
	s.Skipped = count(ResultSkipped)
	s.Errors = count(ResultError)
}

// NamesWith returns the names of targets with result r.
func (s *SuiteResult) NamesWith(r Result) []string {
	return lo.FilterMap(s.Results, func(tr TargetResult, _ int) (string, bool) {
		return tr.Name, tr.Result == r
	})
}

// Err summarizes the run as an error: an error naming the broken targets if
// any ended in ERROR, a *FailedError if any failed, a *SkippedError if any
// was skipped, and nil if all passed.
func (s *SuiteResult) Err() error {
	switch {
	case s.Errors > 0:
		return fmt.Errorf("could not check %d target(s): %s", s.Errors, strings.Join(s.NamesWith(ResultError), ", "))
	case s.Failed > 0:
		return &FailedError{Targets: s.NamesWith(ResultFailed)}
	case s.Skipped > 0:
		return &SkippedError{Targets: s.NamesWith(ResultSkipped)}
	}
	return nil
}

// FailedError reports targets that did not become ready in time.
type FailedError struct {
	Targets []string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%d target(s) not ready: %s", len(e.Targets), strings.Join(e.Targets, ", "))
}

// SkippedError reports targets whose assumptions did not hold.
type SkippedError struct {
	Targets []string
}

func (e *SkippedError) Error() string {
	return fmt.Sprintf("%d target(s) skipped: %s", len(e.Targets), strings.Join(e.Targets, ", "))
}
