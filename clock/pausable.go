package clock

import (
	"sync"
	"time"
)

// Pausable excludes paused intervals from elapsed time
// The viewer pauses it so a held frame does not eat the search budget
type Pausable struct {
	mu sync.RWMutex

	source    Provider
	startReal time.Time

	paused          bool
	pauseStart      time.Time
	totalPausedTime time.Duration
}

// NewPausable creates a running pausable clock over source
func NewPausable(source Provider) *Pausable {
	if source == nil {
		source = NewMonotonic()
	}
	return &Pausable{
		source:    source,
		startReal: source.Now(),
	}
}

// Now returns the start time plus unpaused elapsed time
func (pc *Pausable) Now() time.Time {
	now := pc.source.Now()

	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.startReal.Add(pc.pauseStart.Sub(pc.startReal) - pc.totalPausedTime)
	}
	return pc.startReal.Add(now.Sub(pc.startReal) - pc.totalPausedTime)
}

// Pause stops time advancement
func (pc *Pausable) Pause() {
	now := pc.source.Now()

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = now
}

// Resume continues time advancement
func (pc *Pausable) Resume() {
	now := pc.source.Now()

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += now.Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *Pausable) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *Pausable) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *Pausable) TotalPauseDuration() time.Duration {
	now := pc.source.Now()

	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += now.Sub(pc.pauseStart)
	}
	return total
}
