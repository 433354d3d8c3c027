package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestSoundManagerGracefulDegradation verifies cues are dropped when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlaySolution()
	sm.PlayFreeze()
	sm.Cleanup()

	if n := sm.Played(); n != 0 {
		t.Errorf("expected no cues played, got %d", n)
	}
}

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			if buf[i][0] != buf[i][1] {
				panic("expected mono chime")
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestChimeGenerator_Length(t *testing.T) {
	sr := beep.SampleRate(44100)
	g := NewChimeGenerator(sr, 880, 0.3, 350*time.Millisecond, 5*time.Millisecond, 120*time.Millisecond)

	total, peak := drain(g)

	if total != sr.N(350*time.Millisecond) {
		t.Errorf("expected %d samples, got %d", sr.N(350*time.Millisecond), total)
	}
	if total != g.Len() {
		t.Errorf("expected Len to match streamed samples")
	}
	if peak <= 0 || peak > 0.3 {
		t.Errorf("expected peak within (0, 0.3], got %v", peak)
	}

	// exhausted generator stays exhausted
	if n, ok := g.Stream(make([][2]float64, 8)); n != 0 || ok {
		t.Errorf("expected drained chime, got n=%d ok=%v", n, ok)
	}
}

func TestChimeGenerator_Envelope(t *testing.T) {
	sr := beep.SampleRate(1000)
	g := NewChimeGenerator(sr, 50, 1, time.Second, 100*time.Millisecond, 100*time.Millisecond)

	buf := make([][2]float64, 1000)
	n, _ := g.Stream(buf)
	if n != 1000 {
		t.Fatalf("expected 1000 samples, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("expected silent first sample, got %v", buf[0][0])
	}
	if math.Abs(buf[999][0]) > 0.02 {
		t.Errorf("expected release to fade out, got %v", buf[999][0])
	}
}
