package condition

import (
	"context"
	"fmt"

	"github.com/CoreMedia/joala-sub001/pkg/timeout"
)

// Factory creates Conditions sharing one timeout.Provider and one set of options.
type Factory struct {
	provider *timeout.Provider
	opts     []Option
}

// NewFactory creates a Factory. A nil provider gets a fresh one holding
// timeout.DefaultTimeout.
func NewFactory(provider *timeout.Provider, opts ...Option) *Factory {
	if provider == nil {
		provider = timeout.NewProvider()
	}
	return &Factory{provider: provider, opts: opts}
}

// Provider returns the shared provider. Changing its Timeout affects every
// Condition of this Factory from its next blocking call on.
func (f *Factory) Provider() *timeout.Provider {
	return f.provider
}

// For creates a Condition on expression. It is a function rather than a
// method because methods cannot have type parameters.
func For[T any](f *Factory, expression Expression[T]) *Condition[T] {
	if f == nil {
		panic(fmt.Errorf("%w: factory", ErrNilArgument))
	}
	return New(expression, f.provider, f.opts...)
}

// ForFunc creates a Condition on a described function.
func ForFunc[T any](f *Factory, text string, fn func(ctx context.Context) (T, error)) *Condition[T] {
	return For(f, NewExpression(text, fn))
}
