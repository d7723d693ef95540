package parameter

import "time"

// World Bounds
const (
	// DefaultFloorZ is the lowest Z an entity may occupy, falling past it removes the entity
	DefaultFloorZ = 0

	// DefaultHeadroom is the number of empty levels added above the loaded level
	DefaultHeadroom = 2

	// MaxLevelDimension rejects absurd headers before allocation
	MaxLevelDimension = 256
)

// Turn Playback
const (
	// HorizontalMoveDuration is the duration of one horizontal cell transition
	HorizontalMoveDuration = 300 * time.Millisecond

	// VerticalMoveDuration is the duration of one falling cell transition
	VerticalMoveDuration = 120 * time.Millisecond

	// InputGraceWindow is how recent buffered input must be at turn end to be consumed
	InputGraceWindow = 100 * time.Millisecond
)

// Debug Playback Speed
const (
	DefaultSpeedMultiplier = 1.0
	MinSpeedMultiplier     = 0.25
	MaxSpeedMultiplier     = 4.0

	// SpeedMultiplierStep is applied multiplicatively per debug key press
	SpeedMultiplierStep = 2.0
)
