package fsm

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/void-ranks/event"
)

var (
	ErrUnknownState = errors.New("unknown state")
	ErrParentCycle  = errors.New("state parent chain loops")
	ErrNotCompiled  = errors.New("state graph not compiled")
)

func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters the initial state, running OnEnter from root down to the leaf
func (m *Machine[T]) Init(ctx T) error {
	if !m.compiled {
		return ErrNotCompiled
	}
	node, ok := m.nodes[m.initialID]
	if !ok {
		return fmt.Errorf("initial state %d: %w", m.initialID, ErrUnknownState)
	}

	m.activeID = m.initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)
	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update advances time, runs the leaf's OnUpdate, then evaluates tick
// transitions from the leaf up to the root; at most one fires per call
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeID == StateNone {
		return
	}
	m.timeInState += dt
	runActions(ctx, m.nodes[m.activeID].OnUpdate)
	m.fire(ctx, event.EventTick)
}

// HandleEvent routes an event through the active path, leaf first
// Returns true if a transition fired
func (m *Machine[T]) HandleEvent(ctx T, et event.EventType) bool {
	if m.activeID == StateNone || et == event.EventTick {
		return false
	}
	return m.fire(ctx, et)
}

func (m *Machine[T]) fire(ctx T, et event.EventType) bool {
	for id := m.activeID; id != StateNone; {
		node := m.nodes[id]
		for _, t := range node.Transitions {
			if t.Event != et {
				continue
			}
			if t.Guard == nil || t.Guard(ctx, m.timeInState) {
				m.transition(ctx, t.TargetID)
				return true
			}
		}
		id = node.ParentID
	}
	return false
}

// transition exits up to the lowest common ancestor, then enters down to the target
// A transition to the active leaf is a no-op
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeID == targetID {
		return
	}
	target := m.nodes[targetID]

	lca := -1
	for i := 0; i < len(m.activePath) && i < len(target.Path); i++ {
		if m.activePath[i] != target.Path[i] {
			break
		}
		lca = i
	}

	for i := len(m.activePath) - 1; i > lca; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}

	// Commit before entering so OnEnter actions observe the new state
	m.activeID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], target.Path...)

	for i := lca + 1; i < len(target.Path); i++ {
		runActions(ctx, m.nodes[target.Path[i]].OnEnter)
	}
}

// Reset exits every active state and re-enters the initial one
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.activeID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// State returns the active leaf
func (m *Machine[T]) State() StateID { return m.activeID }

// StateName returns the active leaf's name, empty before Init
func (m *Machine[T]) StateName() string {
	if n, ok := m.nodes[m.activeID]; ok {
		return n.Name
	}
	return ""
}

// In reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) In(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// TimeInState returns time spent in the active leaf
func (m *Machine[T]) TimeInState() time.Duration { return m.timeInState }

func runActions[T any](ctx T, actions []ActionFunc[T]) {
	for _, fn := range actions {
		fn(ctx)
	}
}
