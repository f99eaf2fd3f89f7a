// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the current time. Injected so lifecycle timestamps and
// reminder windows are deterministic under test.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}
