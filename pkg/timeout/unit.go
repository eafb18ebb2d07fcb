package timeout

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Unit is a granularity of time used to express a Timeout.
//
// The zero value is not a valid unit; it stands for "no unit given".
type Unit int

const (
	Nanoseconds Unit = iota + 1
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
)

var unitNanos = map[Unit]int64{
	Nanoseconds:  1,
	Microseconds: int64(time.Microsecond),
	Milliseconds: int64(time.Millisecond),
	Seconds:      int64(time.Second),
	Minutes:      int64(time.Minute),
	Hours:        int64(time.Hour),
	Days:         24 * int64(time.Hour),
}

var unitNames = map[Unit]string{
	Nanoseconds:  "nanoseconds",
	Microseconds: "microseconds",
	Milliseconds: "milliseconds",
	Seconds:      "seconds",
	Minutes:      "minutes",
	Hours:        "hours",
	Days:         "days",
}

// Valid reports whether u is one of the defined units.
func (u Unit) Valid() bool {
	_, ok := unitNanos[u]
	return ok
}

// String makes Unit satisfy the fmt.Stringer interface.
func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Duration returns the length of one u.
func (u Unit) Duration() time.Duration {
	return time.Duration(unitNanos[u])
}

// Convert converts amount given in unit from into u.
// Conversions to a coarser unit truncate; conversions to a finer unit
// saturate at math.MaxInt64 / math.MinInt64 instead of overflowing.
func (u Unit) Convert(amount int64, from Unit) int64 {
	src, dst := unitNanos[from], unitNanos[u]
	if src == 0 || dst == 0 || src == dst {
		return amount
	}
	if src < dst {
		return amount / (dst / src)
	}
	ratio := src / dst
	switch {
	case amount > math.MaxInt64/ratio:
		return math.MaxInt64
	case amount < math.MinInt64/ratio:
		return math.MinInt64
	}
	return amount * ratio
}

// ParseUnit parses a unit from its short ("ms") or long ("milliseconds") name.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ns", "nanosecond", "nanoseconds":
		return Nanoseconds, nil
	case "us", "µs", "microsecond", "microseconds":
		return Microseconds, nil
	case "ms", "millisecond", "milliseconds":
		return Milliseconds, nil
	case "s", "sec", "second", "seconds":
		return Seconds, nil
	case "m", "min", "minute", "minutes":
		return Minutes, nil
	case "h", "hour", "hours":
		return Hours, nil
	case "d", "day", "days":
		return Days, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}
