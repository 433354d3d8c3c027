package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChimeGenerator plays a short bell-like tone with an attack/release envelope
// It ends after its duration, so mixers drop it on their own
type ChimeGenerator struct {
	sr      beep.SampleRate
	freq    float64
	volume  float64
	pos     int
	total   int
	attack  int
	release int
}

// NewChimeGenerator creates a finite chime at freq
func NewChimeGenerator(sr beep.SampleRate, freq, volume float64, duration, attack, release time.Duration) *ChimeGenerator {
	return &ChimeGenerator{
		sr:      sr,
		freq:    freq,
		volume:  volume,
		total:   sr.N(duration),
		attack:  max(sr.N(attack), 1),
		release: max(sr.N(release), 1),
	}
}

// Len is the chime length in samples
func (g *ChimeGenerator) Len() int {
	return g.total
}

func (g *ChimeGenerator) envelope() float64 {
	env := 1.0
	if g.pos < g.attack {
		env = float64(g.pos) / float64(g.attack)
	}
	if left := g.total - g.pos; left < g.release {
		env = math.Min(env, float64(left)/float64(g.release))
	}
	// bell decay on top of the gate
	return env * math.Exp(-3*float64(g.pos)/float64(g.total))
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		// fundamental plus a soft fifth
		sample := math.Sin(2*math.Pi*g.freq*t) + 0.35*math.Sin(2*math.Pi*g.freq*1.5*t)
		sample *= g.volume * g.envelope() / 1.35

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
