package condition

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultPollInterval is the pause between two unsuccessful evaluations.
const DefaultPollInterval = 100 * time.Millisecond

type settings struct {
	clock        clockwork.Clock
	pollInterval time.Duration
}

func newSettings(opts []Option) settings {
	s := settings{
		clock:        clockwork.NewRealClock(),
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures a Condition or a Factory.
type Option func(*settings)

// WithClock replaces the real clock, typically with a clockwork.FakeClock in tests.
func WithClock(clock clockwork.Clock) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithPollInterval sets the pause between unsuccessful evaluations.
// Non-positive intervals are ignored.
func WithPollInterval(interval time.Duration) Option {
	return func(s *settings) {
		if interval > 0 {
			s.pollInterval = interval
		}
	}
}
