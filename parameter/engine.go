package parameter

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps the dt fed into a single simulation tick
	// Longer stalls (debugger, suspended terminal) are clipped instead of tunnelling entities
	MaxFrameDelta = 100 * time.Millisecond
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 512

	// EventBufferMask is the bitmask for fast modulo operations (512 - 1)
	EventBufferMask = 511
)

// Playfield Defaults in cells
const (
	PlayfieldWidth  = 80
	PlayfieldHeight = 40
)
