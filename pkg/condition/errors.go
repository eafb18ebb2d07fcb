package condition

import (
	"errors"
	"fmt"
	"strings"
	"time"

	pkgstrings "github.com/CoreMedia/joala-sub001/pkg/strings"
)

var (
	// ErrMessageAlreadySet is the panic value of a second WithMessage call on one Condition.
	ErrMessageAlreadySet = errors.New("condition message already set")

	// ErrFinallyPanicked wraps the value of a finally-callback that panicked.
	ErrFinallyPanicked = errors.New("finally callback panicked")

	// ErrNilArgument is the panic value when a required argument is nil.
	ErrNilArgument = errors.New("required argument is nil")
)

// EvaluationError signals that an Expression cannot be evaluated yet.
// Conditions retry evaluations failing with it until their deadline.
type EvaluationError struct {
	Message string
	Cause   error
}

// NewEvaluationError creates a recoverable evaluation failure.
func NewEvaluationError(message string) error {
	return &EvaluationError{Message: message}
}

// EvaluationErrorf creates a recoverable evaluation failure with a formatted message.
func EvaluationErrorf(format string, args ...interface{}) error {
	return &EvaluationError{Message: fmt.Sprintf(format, args...)}
}

// WrapEvaluationError marks cause as recoverable, adding a formatted message.
func WrapEvaluationError(cause error, format string, args ...interface{}) error {
	return &EvaluationError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *EvaluationError) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return e.Message + ": " + e.Cause.Error()
	case e.Cause != nil:
		return e.Cause.Error()
	case e.Message != "":
		return e.Message
	default:
		return "expression cannot be evaluated yet"
	}
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// IsEvaluationError reports whether err carries an *EvaluationError.
//
// The search stops at *AssertionError and *AssumptionViolation: a Condition
// that gave up is a final outcome even though it wraps its last cause.
func IsEvaluationError(err error) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *EvaluationError:
		return true
	case *AssertionError, *AssumptionViolation:
		return false
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if IsEvaluationError(inner) {
				return true
			}
		}
		return false
	}
	return IsEvaluationError(errors.Unwrap(err))
}

// failure is the diagnostic context collected by a Condition that ran out of time.
type failure struct {
	// Message is the custom message set with WithMessage.
	Message string
	// Expression describes what was evaluated.
	Expression string
	// Expected describes the predicate the value had to satisfy.
	Expected string
	// Actual describes why the last obtained value was rejected; empty if no value was obtained.
	Actual string
	// Cause is the last recoverable evaluation failure, if any.
	Cause error
	// Timeout is the effective, scaled time budget.
	Timeout time.Duration
	// Elapsed is the time spent polling.
	Elapsed time.Duration
	// Attempts is the number of evaluations.
	Attempts int
}

func (f *failure) render() string {
	var b strings.Builder

	if f.Message != "" {
		b.WriteString(f.Message)
		b.WriteString("\n")
	}

	b.WriteString("Condition")
	if f.Expression != "" {
		b.WriteString(" on ")
		b.WriteString(f.Expression)
	}
	fmt.Fprintf(&b, " not satisfied within %s (%d attempts, %s elapsed)", f.Timeout, f.Attempts, f.Elapsed)

	b.WriteString("\nExpected: ")
	b.WriteString(pkgstrings.Indent(f.Expected, "          "))
	b.WriteString("\n     but: ")
	if f.Actual != "" {
		b.WriteString(pkgstrings.Indent(f.Actual, "          "))
	} else {
		b.WriteString("no value could be evaluated")
	}

	if f.Cause != nil {
		b.WriteString("\nLast evaluation failure: ")
		b.WriteString(f.Cause.Error())
		if root := rootCause(f.Cause); root.Error() != f.Cause.Error() {
			b.WriteString("\nRoot cause: ")
			b.WriteString(root.Error())
		}
	}

	return b.String()
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// AssertionError reports that a Condition did not become satisfied in time.
// It is returned by Await, AwaitThat, AssertEquals and AssertThat.
type AssertionError struct {
	failure
}

func (e *AssertionError) Error() string {
	return e.render()
}

// Unwrap returns the last recoverable evaluation failure, if any.
func (e *AssertionError) Unwrap() error {
	return e.Cause
}

// AssumptionViolation reports that a Condition did not become satisfied in
// time while only an assumption was checked. Test code should treat it as a
// reason to skip rather than fail; see package conditiontest.
type AssumptionViolation struct {
	failure
}

func (e *AssumptionViolation) Error() string {
	return "assumption violated: " + e.render()
}

// Unwrap returns the last recoverable evaluation failure, if any.
func (e *AssumptionViolation) Unwrap() error {
	return e.Cause
}
