package condition

import (
	"context"
	"fmt"

	"github.com/CoreMedia/joala-sub001/pkg/description"
)

// Expression computes a value that may not be available yet.
//
// Get returns an *EvaluationError (possibly wrapped) when the value cannot be
// computed right now but might be later; a Condition retries those. Any other
// error is treated as fatal and ends polling immediately.
//
// DescribeTo appends a fixed description used in failure messages; it must not
// fail and may append nothing.
type Expression[T any] interface {
	description.SelfDescribing
	Get(ctx context.Context) (T, error)
}

type funcExpression[T any] struct {
	text string
	fn   func(ctx context.Context) (T, error)
}

// NewExpression creates an Expression described by text that evaluates fn.
func NewExpression[T any](text string, fn func(ctx context.Context) (T, error)) Expression[T] {
	if fn == nil {
		panic(fmt.Errorf("%w: expression function", ErrNilArgument))
	}
	return &funcExpression[T]{text: text, fn: fn}
}

// Func creates an Expression without description from fn.
func Func[T any](fn func(ctx context.Context) (T, error)) Expression[T] {
	return NewExpression("", fn)
}

// Value creates an Expression that always yields v.
func Value[T any](v T) Expression[T] {
	return NewExpression(description.ValueString(v), func(context.Context) (T, error) {
		return v, nil
	})
}

func (e *funcExpression[T]) Get(ctx context.Context) (T, error) {
	return e.fn(ctx)
}

func (e *funcExpression[T]) DescribeTo(d description.Description) {
	if e.text != "" {
		d.AppendText(e.text)
	}
}
