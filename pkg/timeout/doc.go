// Package timeout provides the time budget used by polling conditions.
//
// A Timeout is an immutable amount of time in a Unit with integer unit
// conversion and scaling. A Provider is the shared, adjustable source of the
// current Timeout:
//
//	provider := timeout.NewProvider() // 10 seconds until changed
//	_ = provider.Set(2, timeout.Minutes)
//
//	ms, _ := provider.Get().InScaled(timeout.Milliseconds, 1.5) // 180000
package timeout
