// Package conditiontest connects condition failures to the testing package.
package conditiontest

import (
	"errors"
	"testing"

	"github.com/CoreMedia/joala-sub001/pkg/condition"
)

// Require skips the test when err carries a *condition.AssumptionViolation and
// fails it for any other non-nil error.
func Require(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		return
	}
	var violation *condition.AssumptionViolation
	if errors.As(err, &violation) {
		t.Skip(err.Error())
		return
	}
	t.Fatal(err.Error())
}

// RequireValue returns value after applying Require to err.
func RequireValue[T any](t testing.TB, value T, err error) T {
	t.Helper()
	Require(t, err)
	return value
}
