package condition

import (
	"context"
	"fmt"
	"math"

	"github.com/CoreMedia/joala-sub001/pkg/description"
	"github.com/CoreMedia/joala-sub001/pkg/matcher"
	"github.com/CoreMedia/joala-sub001/pkg/timeout"
)

// Condition waits for an Expression to yield an acceptable value.
//
// The time budget comes from a shared timeout.Provider, optionally scaled by
// WithTimeoutFactor. Configure a Condition before calling any blocking method;
// configuration and blocking calls must not run concurrently.
type Condition[T any] struct {
	expression Expression[T]
	provider   *timeout.Provider
	message    *string
	finally    []func() error
	factor     float64
	settings
}

// New creates a Condition evaluating expression within the Timeout of provider.
// It panics if expression or provider is nil.
func New[T any](expression Expression[T], provider *timeout.Provider, opts ...Option) *Condition[T] {
	if expression == nil {
		panic(fmt.Errorf("%w: expression", ErrNilArgument))
	}
	if provider == nil {
		panic(fmt.Errorf("%w: timeout provider", ErrNilArgument))
	}
	return &Condition[T]{
		expression: expression,
		provider:   provider,
		factor:     1,
		settings:   newSettings(opts),
	}
}

// WithMessage adds text to every failure raised by this Condition.
// The message can be set once; a second call panics with ErrMessageAlreadySet.
func (c *Condition[T]) WithMessage(text string) *Condition[T] {
	if c.message != nil {
		panic(fmt.Errorf("%w: %q", ErrMessageAlreadySet, *c.message))
	}
	c.message = &text
	return c
}

// WithTimeoutFactor scales the provider's Timeout for all later blocking calls.
// It replaces a previously set factor and panics with timeout.ErrNegativeFactor
// for negative or NaN factors.
func (c *Condition[T]) WithTimeoutFactor(factor float64) *Condition[T] {
	if factor < 0 || math.IsNaN(factor) {
		panic(fmt.Errorf("%w: %v", timeout.ErrNegativeFactor, factor))
	}
	c.factor = factor
	return c
}

// RunFinally registers fn to run once at the end of every blocking call,
// whatever its outcome. Callbacks run in registration order. An error from fn
// never replaces the call's own error; it is appended to it.
func (c *Condition[T]) RunFinally(fn func() error) *Condition[T] {
	if fn == nil {
		panic(fmt.Errorf("%w: finally callback", ErrNilArgument))
	}
	c.finally = append(c.finally, fn)
	return c
}

// DescribeTo describes the wrapped expression.
func (c *Condition[T]) DescribeTo(d description.Description) {
	d.AppendText("condition on ").AppendDescriptionOf(c.expression)
}

// Get evaluates the expression once and returns its result unmodified.
// It neither retries nor runs finally-callbacks.
func (c *Condition[T]) Get(ctx context.Context) (T, error) {
	return c.expression.Get(ctx)
}

// Await polls until the expression evaluates without an *EvaluationError and
// returns that value. It fails with an *AssertionError at the deadline.
func (c *Condition[T]) Await(ctx context.Context) (T, error) {
	return c.await(ctx, nil, assertion)
}

// AwaitThat polls until the expression yields a value accepted by m and
// returns it. It fails with an *AssertionError at the deadline.
func (c *Condition[T]) AwaitThat(ctx context.Context, m matcher.Matcher[T]) (T, error) {
	mustMatcher(m)
	return c.await(ctx, m, assertion)
}

// AssumeEquals waits for a value equal to expected; it fails with an *AssumptionViolation.
func (c *Condition[T]) AssumeEquals(ctx context.Context, expected T) error {
	return c.AssumeThat(ctx, matcher.EqualTo(expected))
}

// AssumeThat waits for a value accepted by m; it fails with an *AssumptionViolation.
func (c *Condition[T]) AssumeThat(ctx context.Context, m matcher.Matcher[T]) error {
	mustMatcher(m)
	_, err := c.await(ctx, m, assumption)
	return err
}

// AssertEquals waits for a value equal to expected; it fails with an *AssertionError.
func (c *Condition[T]) AssertEquals(ctx context.Context, expected T) error {
	return c.AssertThat(ctx, matcher.EqualTo(expected))
}

// AssertThat waits for a value accepted by m; it fails with an *AssertionError.
func (c *Condition[T]) AssertThat(ctx context.Context, m matcher.Matcher[T]) error {
	mustMatcher(m)
	_, err := c.await(ctx, m, assertion)
	return err
}

func mustMatcher[T any](m matcher.Matcher[T]) {
	if m == nil {
		panic(fmt.Errorf("%w: matcher", ErrNilArgument))
	}
}
