package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/mars-lander/parameter"
)

const (
	sampleRate = beep.SampleRate(parameter.AudioSampleRate)
)

// SoundManager plays search event cues through one speaker mixer
// Every method is safe to call before Initialize; it then does nothing
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	played      int
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer
// beep has no speaker Close; clearing streamers stops all output
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlaySolution chimes for a new best landing
func (sm *SoundManager) PlaySolution() {
	sm.play(parameter.ChimeBaseFreq)
}

// PlayFreeze chimes once when the search stops
func (sm *SoundManager) PlayFreeze() {
	sm.play(parameter.ChimeFreezeFreq)
}

// Played counts cues handed to the speaker
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

func (sm *SoundManager) play(freq float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	chime := NewChimeGenerator(sampleRate, freq, parameter.ChimeVolume,
		parameter.ChimeDuration, parameter.ChimeAttack, parameter.ChimeRelease)

	speaker.Lock()
	sm.mixer.Add(chime)
	speaker.Unlock()
	sm.played++
}
