package fsm

import "fmt"

// AddState registers a node and returns it so actions can be attached
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	m.compiled = false
	return node
}

// AddTransition appends a transition to the source node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) error {
	node, ok := m.nodes[sourceID]
	if !ok {
		return fmt.Errorf("transition source %d: %w", sourceID, ErrUnknownState)
	}
	node.Transitions = append(node.Transitions, t)
	return nil
}

// SetInitial selects the leaf entered by Init and Reset
func (m *Machine[T]) SetInitial(id StateID) {
	m.initialID = id
}

// CompilePaths fills Path for every node and validates parents and targets
// Must run after the graph is complete and before Init
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		seen := make(map[StateID]bool, 4)
		curr := node
		for {
			if seen[curr.ID] {
				return fmt.Errorf("node %d: %w", id, ErrParentCycle)
			}
			seen[curr.ID] = true
			path = append(path, curr.ID)
			if curr.ParentID == StateNone {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d: %w", id, curr.ParentID, ErrUnknownState)
			}
			curr = parent
		}

		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		node.Path = path

		for _, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("node %d transition to %d: %w", id, t.TargetID, ErrUnknownState)
			}
		}
	}
	m.compiled = true
	return nil
}
