package core

// Entity is a non-owning identifier shared by the player, enemies and lasers
// Relations between subsystems hold Entity values, never pointers
type Entity uint64

// EntityNone marks an empty reference
const EntityNone Entity = 0

// EntityAllocator hands out monotonic identifiers; IDs are never reused within a run
type EntityAllocator struct {
	next Entity
}

// Next returns a fresh identifier, never EntityNone
func (a *EntityAllocator) Next() Entity {
	a.next++
	return a.next
}

// Peek returns the identifier the next call to Next would produce
func (a *EntityAllocator) Peek() Entity {
	return a.next + 1
}
