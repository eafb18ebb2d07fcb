package runner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/CoreMedia/joala-sub001/internal/probe"
	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/logging"
)

const subsystem = "Runner"

// errFailFast cancels checks still running after a failure in fail-fast mode.
var errFailFast = errors.New("cancelled after an earlier failure")

// Options controls how a Runner executes checks.
type Options struct {
	// Parallel is the number of checks run concurrently; values below 2 run sequentially
	Parallel int
	// FailFast stops the run after the first failed or broken check
	FailFast bool
	// OnResult, if set, is called for every finished check. Calls are serialized.
	OnResult func(TargetResult)
}

// Runner executes checks and collects their results.
type Runner struct {
	opts  Options
	clock clockwork.Clock
}

// New creates a Runner. A nil clock means the real clock.
func New(opts Options, clock clockwork.Clock) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Runner{opts: opts, clock: clock}
}

// Run executes checks and returns their results in the order of checks.
// The returned error is only set if ctx was cancelled; the outcome of the
// checks themselves is available through SuiteResult.Err.
func (r *Runner) Run(ctx context.Context, checks []probe.Check) (*SuiteResult, error) {
	suite := &SuiteResult{
		RunID:     uuid.NewString(),
		StartTime: r.clock.Now(),
		Results:   make([]TargetResult, len(checks)),
	}
	logging.Info(subsystem, "Run %s: waiting for %d target(s), parallel=%d, failFast=%t",
		suite.RunID, len(checks), r.opts.Parallel, r.opts.FailFast)

	if r.opts.Parallel > 1 {
		r.runParallel(ctx, checks, suite.Results)
	} else {
		r.runSequential(ctx, checks, suite.Results)
	}

	suite.EndTime = r.clock.Now()
	suite.Duration = suite.EndTime.Sub(suite.StartTime)
	suite.updateCounters()

	logging.Info(subsystem, "Run %s finished in %s: %d passed, %d failed, %d skipped, %d errors",
		suite.RunID, suite.Duration, suite.Passed, suite.Failed, suite.Skipped, suite.Errors)

	return suite, ctx.Err()
}

func (r *Runner) runSequential(ctx context.Context, checks []probe.Check, results []TargetResult) {
	stopped := false
	for i, check := range checks {
		if stopped {
			results[i] = notRun(check)
			r.report(results[i])
			continue
		}
		results[i] = r.runCheck(ctx, check)
		r.report(results[i])
		if r.opts.FailFast && stopsRun(results[i].Result) {
			logging.Debug(subsystem, "Fail-fast triggered by target %s", check.Name)
			stopped = true
		}
	}
}

func (r *Runner) runParallel(ctx context.Context, checks []probe.Check, results []TargetResult) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	reports := make(chan TargetResult)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for result := range reports {
			r.report(result)
		}
	}()

	g := &errgroup.Group{}
	g.SetLimit(r.opts.Parallel)
	for i, check := range checks {
		g.Go(func() error {
			if context.Cause(ctx) == errFailFast {
				results[i] = notRun(check)
			} else {
				results[i] = r.runCheck(ctx, check)
				if context.Cause(ctx) == errFailFast && results[i].Result == ResultError {
					// Interrupted by fail-fast rather than broken.
					results[i].Result = ResultSkipped
				}
			}
			reports <- results[i]

			if r.opts.FailFast && stopsRun(results[i].Result) {
				logging.Debug(subsystem, "Fail-fast triggered by target %s", check.Name)
				cancel(errFailFast)
			}
			return nil
		})
	}
	_ = g.Wait()
	close(reports)
	<-done
}

func (r *Runner) runCheck(ctx context.Context, check probe.Check) TargetResult {
	result := TargetResult{
		Name:        check.Name,
		Kind:        check.Kind,
		Description: check.Description,
		StartTime:   r.clock.Now(),
	}

	err := check.Run(ctx)
	result.Duration = r.clock.Since(result.StartTime)
	result.Result = classify(err)
	if err != nil {
		result.Error = err.Error()
		result.Attempts = attempts(err)
	}

	logging.Debug(subsystem, "Target %s: %s after %s", check.Name, result.Result, result.Duration)
	return result
}

func (r *Runner) report(result TargetResult) {
	if r.opts.OnResult != nil {
		r.opts.OnResult(result)
	}
}

func notRun(check probe.Check) TargetResult {
	return TargetResult{
		Name:        check.Name,
		Kind:        check.Kind,
		Description: check.Description,
		Result:      ResultSkipped,
		Error:       "not run: " + errFailFast.Error(),
	}
}

func stopsRun(r Result) bool {
	return r == ResultFailed || r == ResultError
}

// classify maps the error of a check to a Result.
func classify(err error) Result {
	var violation *condition.AssumptionViolation
	var assertion *condition.AssertionError
	switch {
	case err == nil:
		return ResultPassed
	case errors.As(err, &violation):
		return ResultSkipped
	case errors.As(err, &assertion):
		return ResultFailed
	default:
		return ResultError
	}
}

func attempts(err error) int {
	var violation *condition.AssumptionViolation
	if errors.As(err, &violation) {
		return violation.Attempts
	}
	var assertion *condition.AssertionError
	if errors.As(err, &assertion) {
		return assertion.Attempts
	}
	return 0
}
