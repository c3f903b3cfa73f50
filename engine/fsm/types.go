package fsm

import (
	"time"

	"github.com/lixenwraith/void-ranks/event"
)

// StateID is a unique identifier for a node
type StateID int

// StateNone marks "no state": the parent of a root node, or an uninitialized machine
const StateNone StateID = 0

// Machine is a hierarchical finite state machine with a single active path
// T is the context passed to actions and guards (e.g. *level.Controller)
type Machine[T any] struct {
	nodes     map[StateID]*Node[T]
	initialID StateID

	activeID    StateID       // Current leaf
	activePath  []StateID     // Root -> ... -> leaf
	timeInState time.Duration // Since the leaf was entered
	compiled    bool
}

// Node is one state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Root -> node, filled by CompilePaths for LCA lookup
	Path []StateID

	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Evaluated in insertion order; first passing transition wins
	Transitions []Transition[T]
}

// Transition links a node to a target
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventTick = evaluated on Update
	Guard    GuardFunc[T]    // nil = always
}

// GuardFunc decides whether a transition fires; elapsed is time in the current leaf
type GuardFunc[T any] func(ctx T, elapsed time.Duration) bool

// ActionFunc executes a side effect on enter, update or exit
type ActionFunc[T any] func(ctx T)
