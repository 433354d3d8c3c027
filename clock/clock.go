// Package clock supplies the time sources used for the search budget
package clock

import "time"

// Provider is a source of the current time
type Provider interface {
	Now() time.Time
}

// Monotonic provides the real system time with monotonic clock readings
type Monotonic struct{}

// NewMonotonic creates a new monotonic time provider
func NewMonotonic() *Monotonic {
	return &Monotonic{}
}

// Now returns the current time with monotonic clock reading
func (p *Monotonic) Now() time.Time {
	return time.Now()
}

// Since is the elapsed time on p since start
func Since(p Provider, start time.Time) time.Duration {
	return p.Now().Sub(start)
}
