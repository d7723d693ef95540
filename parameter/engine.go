package parameter

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventChannelSize is the buffer of the terminal poll channel
	EventChannelSize = 100
)

// Logging
const (
	// LogDir is relative to the working directory
	LogDir = "logs"

	// LogFileName is the active debug log
	LogFileName = "rewind.log"

	// MaxLogSize triggers rotation at startup
	MaxLogSize = 10 * 1024 * 1024
)
