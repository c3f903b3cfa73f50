package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap between consecutive cues of the same type
	MinSoundGap = 40 * time.Millisecond
)

// Cue shapes
const (
	LaserCueFreq     = 1320.0
	LaserCueDuration = 40 * time.Millisecond

	ExplosionCueDuration = 180 * time.Millisecond

	WarpCueFreq     = 220.0
	WarpCueDuration = 120 * time.Millisecond

	FanfareCueFreq     = 660.0
	FanfareCueDuration = 300 * time.Millisecond

	// CueVolume is the beep effects.Volume exponent applied to every cue (base 2)
	CueVolume = -1.5
)

const (
	BreakoutCueFreq     = 880.0
	BreakoutCueDuration = 60 * time.Millisecond

	GameOverCueFreq     = 110.0
	GameOverCueDuration = 600 * time.Millisecond

	// AudioDrainInterval is how often the audio goroutine empties the event queue
	AudioDrainInterval = 10 * time.Millisecond
)
