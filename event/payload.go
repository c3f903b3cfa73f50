package event

import (
	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/vmath"
)

// EnemyDestroyedPayload carries the destroyed enemy and how it ended
type EnemyDestroyedPayload struct {
	ID    core.Entity
	Cause string
	Pos   vmath.Vec2
}

// BreakoutPayload identifies the enemy leaving formation and the slot it held
type BreakoutPayload struct {
	ID   core.Entity
	Rank int
	Slot int
}

// SpawnDroppedPayload describes a rejected spawn
type SpawnDroppedPayload struct {
	Reason string
	Count  int
}

// LevelPayload identifies a level by ordinal and design name
type LevelPayload struct {
	Ordinal int
	Name    string
}
