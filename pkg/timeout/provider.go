package timeout

import (
	"sync/atomic"
)

// DefaultTimeout is what a Provider reports until something else is set.
var DefaultTimeout = MustNew(10, Seconds)

// Provider is a shared, mutable holder of the current Timeout.
//
// Conditions keep a reference to a Provider rather than a Timeout, so tuning
// the Provider affects every Condition bound to it, including ones that are
// polling right now. The zero value is ready to use and reports DefaultTimeout.
type Provider struct {
	current atomic.Pointer[Timeout]
}

// NewProvider creates a Provider holding DefaultTimeout.
func NewProvider() *Provider {
	return &Provider{}
}

// NewProviderWith creates a Provider holding t.
func NewProviderWith(t Timeout) *Provider {
	p := &Provider{}
	p.SetTimeout(t)
	return p
}

// Get returns the current Timeout.
func (p *Provider) Get() Timeout {
	if t := p.current.Load(); t != nil {
		return *t
	}
	return DefaultTimeout
}

// Set replaces the current Timeout with amount units.
func (p *Provider) Set(amount int64, unit Unit) error {
	t, err := New(amount, unit)
	if err != nil {
		return err
	}
	p.SetTimeout(t)
	return nil
}

// SetMilliseconds replaces the current Timeout with ms milliseconds.
func (p *Provider) SetMilliseconds(ms int64) error {
	return p.Set(ms, Milliseconds)
}

// SetTimeout replaces the current Timeout with t.
func (p *Provider) SetTimeout(t Timeout) {
	p.current.Store(&t)
}
