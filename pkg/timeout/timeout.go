package timeout

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrNegativeAmount is returned when a Timeout is built from a negative amount.
	ErrNegativeAmount = errors.New("timeout amount must not be negative")
	// ErrInvalidUnit is returned when a Timeout is built without a valid unit.
	ErrInvalidUnit = errors.New("timeout unit is missing or unknown")
	// ErrNegativeFactor is returned when a Timeout is scaled by a negative (or NaN) factor.
	ErrNegativeFactor = errors.New("timeout factor must not be negative")
)

// Timeout is an immutable amount of time expressed in a Unit.
type Timeout struct {
	amount int64
	unit   Unit
}

// New creates a Timeout of amount units.
func New(amount int64, unit Unit) (Timeout, error) {
	if !unit.Valid() {
		return Timeout{}, ErrInvalidUnit
	}
	if amount < 0 {
		return Timeout{}, fmt.Errorf("%w: %d %s", ErrNegativeAmount, amount, unit)
	}
	return Timeout{amount: amount, unit: unit}, nil
}

// MustNew is like New but panics on invalid arguments.
func MustNew(amount int64, unit Unit) Timeout {
	t, err := New(amount, unit)
	if err != nil {
		panic(err)
	}
	return t
}

// FromDuration converts a non-negative duration into a Timeout.
// Whole milliseconds are kept in Milliseconds, everything else in Nanoseconds.
func FromDuration(d time.Duration) (Timeout, error) {
	if d%time.Millisecond == 0 {
		return New(int64(d/time.Millisecond), Milliseconds)
	}
	return New(int64(d), Nanoseconds)
}

// Amount returns the amount in the Timeout's own unit.
func (t Timeout) Amount() int64 {
	return t.amount
}

// Unit returns the unit the Timeout was created with.
func (t Timeout) Unit() Unit {
	return t.unit
}

// In converts the Timeout into unit.
func (t Timeout) In(unit Unit) int64 {
	return unit.Convert(t.amount, t.unit)
}

// InScaled converts the Timeout into unit and multiplies it by factor,
// rounding to the nearest integer.
func (t Timeout) InScaled(unit Unit, factor float64) (int64, error) {
	if factor < 0 || math.IsNaN(factor) {
		return 0, fmt.Errorf("%w: %v", ErrNegativeFactor, factor)
	}
	scaled := math.Round(float64(t.In(unit)) * factor)
	if scaled >= math.MaxInt64 {
		return math.MaxInt64, nil
	}
	return int64(scaled), nil
}

// Scale returns a new Timeout in the same unit, multiplied by factor.
func (t Timeout) Scale(factor float64) (Timeout, error) {
	amount, err := t.InScaled(t.unit, factor)
	if err != nil {
		return Timeout{}, err
	}
	return Timeout{amount: amount, unit: t.unit}, nil
}

// Duration returns the Timeout as a time.Duration, saturating at the largest duration.
func (t Timeout) Duration() time.Duration {
	return time.Duration(t.In(Nanoseconds))
}

// String makes Timeout satisfy the fmt.Stringer interface, e.g. "10 seconds".
func (t Timeout) String() string {
	if !t.unit.Valid() {
		return "no timeout"
	}
	name := t.unit.String()
	if t.amount == 1 {
		name = strings.TrimSuffix(name, "s")
	}
	return fmt.Sprintf("%d %s", t.amount, name)
}
