package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CoreMedia/joala-sub001/pkg/timeout"
)

// Duration is a time.Duration that plan files may also write as an amount and
// a unit, e.g. "2 minutes" or "1 day".
type Duration time.Duration

// Duration returns d as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// ParseDuration accepts Go durations ("90s", "1h30m") and "<amount> <unit>"
// with any unit known to timeout.ParseUnit.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	amountText, unitText, ok := strings.Cut(s, " ")
	if !ok {
		return 0, fmt.Errorf("invalid duration %q: use a Go duration like \"90s\" or an amount and unit like \"2 minutes\"", s)
	}
	amount, err := strconv.ParseInt(amountText, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: amount must be an integer", s)
	}
	unit, err := timeout.ParseUnit(unitText)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	t, err := timeout.New(amount, unit)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return t.Duration(), nil
}
