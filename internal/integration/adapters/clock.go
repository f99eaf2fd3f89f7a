// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"time"

	"github.com/amaanah/backend/internal/application/adapter"
)

// systemClock implements the adapter.Clock interface using the wall clock.
type systemClock struct{}

// NewSystemClock creates a clock backed by the system time.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current time in UTC.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
