package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestMock_Advance(t *testing.T) {
	m := NewMock(epoch)

	m.Advance(250 * time.Millisecond)
	if got := Since(m, epoch); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", got)
	}

	m.SetTime(epoch.Add(time.Hour))
	if got := m.Now(); !got.Equal(epoch.Add(time.Hour)) {
		t.Errorf("expected set time, got %v", got)
	}
}

func TestMock_Step(t *testing.T) {
	m := NewMock(epoch)
	m.SetStep(10 * time.Millisecond)

	first := m.Now()
	second := m.Now()
	if second.Sub(first) != 10*time.Millisecond {
		t.Errorf("expected 10ms between reads, got %v", second.Sub(first))
	}
}

func TestPausable_ExcludesPause(t *testing.T) {
	m := NewMock(epoch)
	pc := NewPausable(m)
	start := pc.Now()

	m.Advance(100 * time.Millisecond)
	pc.Pause()
	m.Advance(5 * time.Second)

	if got := pc.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("expected frozen 100ms while paused, got %v", got)
	}
	if got := pc.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("expected 5s ongoing pause, got %v", got)
	}

	pc.Resume()
	m.Advance(50 * time.Millisecond)

	if got := pc.Now().Sub(start); got != 150*time.Millisecond {
		t.Errorf("expected 150ms after resume, got %v", got)
	}
	if pc.IsPaused() {
		t.Errorf("expected running clock")
	}
}

func TestPausable_Toggle(t *testing.T) {
	pc := NewPausable(NewMock(epoch))

	if !pc.Toggle() {
		t.Errorf("expected paused after first toggle")
	}
	if pc.Toggle() {
		t.Errorf("expected running after second toggle")
	}

	// double pause/resume are no-ops
	pc.Resume()
	pc.Pause()
	pc.Pause()
	if !pc.IsPaused() {
		t.Errorf("expected paused")
	}
}

func TestMonotonic(t *testing.T) {
	p := NewMonotonic()
	a := p.Now()
	b := p.Now()
	if b.Before(a) {
		t.Errorf("expected non-decreasing time")
	}
}
