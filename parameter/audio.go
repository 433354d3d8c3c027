package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Chime Sound
const (
	ChimeDuration   = 350 * time.Millisecond
	ChimeAttack     = 5 * time.Millisecond
	ChimeRelease    = 120 * time.Millisecond
	ChimeBaseFreq   = 880.0
	ChimeFreezeFreq = 440.0
	ChimeVolume     = 0.3
)
