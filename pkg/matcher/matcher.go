// Package matcher provides self-describing predicates over values.
//
// A Matcher decides whether a value is acceptable and can explain both what it
// expects and why a given value was rejected. Conditions use matchers to decide
// when polling is done and to build failure messages.
package matcher

import (
	"errors"
	"fmt"

	"github.com/CoreMedia/joala-sub001/pkg/description"
)

// ErrNilArgument is the panic value when a matcher is built from a nil argument.
var ErrNilArgument = errors.New("required argument is nil")

// Matcher is a self-describing predicate over T.
type Matcher[T any] interface {
	description.SelfDescribing

	// Matches reports whether value is acceptable.
	Matches(value T) bool

	// DescribeMismatch explains why value was rejected.
	DescribeMismatch(value T, d description.Description)
}

// Result is the outcome of applying a Matcher to a value, rendered as text.
type Result struct {
	Matched  bool
	Expected string
	Mismatch string
}

// Evaluate applies m to value and renders the expectation and, on a miss,
// the mismatch description.
func Evaluate[T any](m Matcher[T], value T) Result {
	r := Result{
		Matched:  m.Matches(value),
		Expected: description.ToString(m),
	}
	if !r.Matched {
		d := description.NewStringDescription()
		m.DescribeMismatch(value, d)
		r.Mismatch = d.String()
	}
	return r
}

// base supplies the default mismatch description "was <value>".
type base[T any] struct{}

func (base[T]) DescribeMismatch(value T, d description.Description) {
	d.AppendText("was ").AppendValue(value)
}

type anything[T any] struct{ base[T] }

// Anything matches every value.
func Anything[T any]() Matcher[T] {
	return anything[T]{}
}

func (anything[T]) Matches(T) bool { return true }

func (anything[T]) DescribeTo(d description.Description) {
	d.AppendText("anything")
}

type satisfies[T any] struct {
	base[T]
	text string
	fn   func(T) bool
}

// Satisfies adapts a plain predicate into a Matcher described by text.
func Satisfies[T any](text string, fn func(T) bool) Matcher[T] {
	if fn == nil {
		panic(fmt.Errorf("%w: Satisfies predicate", ErrNilArgument))
	}
	return satisfies[T]{text: text, fn: fn}
}

func (s satisfies[T]) Matches(value T) bool { return s.fn(value) }

func (s satisfies[T]) DescribeTo(d description.Description) {
	d.AppendText(s.text)
}
