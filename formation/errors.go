package formation

import (
	"errors"
	"fmt"
)

// Structural errors; all are fatal at level construction
var (
	ErrCapacity        = errors.New("formation capacity exceeded")
	ErrSlotRange       = errors.New("slot out of range")
	ErrSlotOccupied    = errors.New("slot already occupied")
	ErrFillFromRange   = errors.New("fill-from source out of range")
	ErrFillFromSelf    = errors.New("fill-from source refers to its own slot")
	ErrFillFromCycle   = errors.New("fill-from rules contain a cycle")
	ErrFillFromRank    = errors.New("fill-from source is not in a deeper rank")
	ErrFillFromTooMany = errors.New("fill-from list exceeds capacity")
)

// RuleError locates a rejected fill-from entry
type RuleError struct {
	Slot   SlotRef
	Source SlotRef
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("slot %v fill-from %v: %v", e.Slot, e.Source, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }
