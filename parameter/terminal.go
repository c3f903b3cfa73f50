package parameter

import "time"

// Terminal Adapter
const (
	// KeyHoldTimeout releases a movement key after no repeat for this long
	// Terminals report presses and auto-repeats only; it must exceed the
	// typical repeat delay or held keys stutter
	KeyHoldTimeout = 400 * time.Millisecond

	// HUDRows are reserved above the playfield
	HUDRows = 1

	// InputBufferSize is the capacity of the terminal event channel
	InputBufferSize = 100
)
