package condition

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/multierr"

	"github.com/CoreMedia/joala-sub001/pkg/description"
	"github.com/CoreMedia/joala-sub001/pkg/logging"
	"github.com/CoreMedia/joala-sub001/pkg/matcher"
	"github.com/CoreMedia/joala-sub001/pkg/timeout"
)

const subsystem = "Condition"

// expectAnyValue is the expectation of Await, which accepts any value that
// could be evaluated.
const expectAnyValue = "a value without evaluation failure"

type failureKind int

const (
	assertion failureKind = iota
	assumption
)

func (c *Condition[T]) await(ctx context.Context, m matcher.Matcher[T], kind failureKind) (value T, err error) {
	defer func() {
		err = c.runFinally(err)
	}()

	var f *failure
	value, f, err = c.poll(ctx, m)
	if err != nil || f == nil {
		return value, err
	}

	if logging.Enabled(logging.LevelDebug) {
		logging.Debug(subsystem, "%s gave up after %d attempts in %s", description.ToString(c), f.Attempts, f.Elapsed)
	}
	if kind == assumption {
		return value, &AssumptionViolation{failure: *f}
	}
	return value, &AssertionError{failure: *f}
}

// poll evaluates the expression until it is accepted, a fatal error occurs or
// the deadline passes. A non-nil *failure means the deadline passed.
func (c *Condition[T]) poll(ctx context.Context, m matcher.Matcher[T]) (T, *failure, error) {
	var zero T

	budget, err := c.budget()
	if err != nil {
		return zero, nil, err
	}

	start := c.clock.Now()
	deadline := start.Add(budget)

	f := &failure{
		Expression: description.ToString(c.expression),
		Expected:   expectAnyValue,
		Timeout:    budget,
	}
	if m != nil {
		f.Expected = description.ToString(m)
	}
	if c.message != nil {
		f.Message = *c.message
	}

	for {
		f.Attempts++
		value, err := c.expression.Get(ctx)
		switch {
		case err == nil:
			if m == nil {
				return value, nil, nil
			}
			result := matcher.Evaluate(m, value)
			if result.Matched {
				return value, nil, nil
			}
			f.Actual = result.Mismatch
			logging.Debug(subsystem, "attempt %d on %q: %s", f.Attempts, f.Expression, result.Mismatch)
		case IsEvaluationError(err):
			f.Cause = err
			logging.Debug(subsystem, "attempt %d on %q not evaluable: %v", f.Attempts, f.Expression, err)
		default:
			logging.Debug(subsystem, "attempt %d on %q failed fatally: %v", f.Attempts, f.Expression, err)
			return zero, nil, err
		}

		now := c.clock.Now()
		remaining := deadline.Sub(now)
		if remaining <= 0 {
			f.Elapsed = now.Sub(start)
			return zero, f, nil
		}

		if err := c.sleep(ctx, min(c.pollInterval, remaining)); err != nil {
			return zero, nil, fmt.Errorf("waiting for %s interrupted after %d attempts: %w",
				description.ToString(c), f.Attempts, err)
		}
	}
}

// budget returns the provider's current Timeout scaled by the factor.
func (c *Condition[T]) budget() (time.Duration, error) {
	ms, err := c.provider.Get().InScaled(timeout.Milliseconds, c.factor)
	if err != nil {
		return 0, err
	}
	if ms > math.MaxInt64/int64(time.Millisecond) {
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// sleep is the only point where polling blocks.
func (c *Condition[T]) sleep(ctx context.Context, d time.Duration) error {
	timer := c.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

// runFinally runs every finally-callback once. Callback errors are appended
// to err so that the original outcome stays visible to errors.As.
func (c *Condition[T]) runFinally(err error) error {
	for i, fn := range c.finally {
		if ferr := callFinally(fn); ferr != nil {
			logging.Warn(subsystem, "finally callback %d of %s failed: %v", i+1, description.ToString(c), ferr)
			err = multierr.Append(err, fmt.Errorf("finally callback %d: %w", i+1, ferr))
		}
	}
	return err
}

// callFinally turns a panicking callback into an error so that the remaining
// callbacks still run and the outcome of the call is kept.
func callFinally(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFinallyPanicked, r)
		}
	}()
	return fn()
}
