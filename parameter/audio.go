package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Cue Sounds
const (
	StepCueDuration  = 40 * time.Millisecond
	StepCueFrequency = 440.0

	BlockedCueDuration  = 80 * time.Millisecond
	BlockedCueFrequency = 110.0

	// RewindCue sweeps downward across its duration
	RewindCueDuration  = 450 * time.Millisecond
	RewindCueStartFreq = 880.0
	RewindCueEndFreq   = 220.0

	GoalCueNoteDuration = 120 * time.Millisecond

	FallCueDuration  = 300 * time.Millisecond
	FallCueFrequency = 330.0

	CueVolume = 0.3
)

// GoalCueNotes is the ascending arpeggio played on goal
var GoalCueNotes = []float64{523.25, 659.25, 783.99, 1046.5}
