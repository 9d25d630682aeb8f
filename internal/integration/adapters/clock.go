// Package adapters provides implementations of application adapter interfaces.
package adapters

import (
	"time"

	"github.com/itissulav/Kharcha/internal/application/adapter"
)

type systemClock struct{}

// NewSystemClock returns a clock reading the system time in UTC.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
