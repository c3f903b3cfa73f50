package sim

import (
	"math"

	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/enemy"
	"github.com/lixenwraith/void-ranks/vmath"
)

// Category tells the renderer how to draw an entity
type Category uint8

const (
	CategoryPlayer Category = iota
	CategoryEnemyFormation
	CategoryEnemyFree
	CategoryEnemyAttacking
	CategoryLaser
	CategoryWell
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryEnemyFormation:
		return "enemy-formation"
	case CategoryEnemyFree:
		return "enemy-free"
	case CategoryEnemyAttacking:
		return "enemy-attacking"
	case CategoryLaser:
		return "laser"
	case CategoryWell:
		return "well"
	default:
		return "unknown"
	}
}

// Drawable is one entry of the render snapshot
// Orientation is in radians, 0 along +X; wells carry no entity ID
type Drawable struct {
	ID          core.Entity
	Category    Category
	Position    vmath.Vec2
	Orientation float64
}

// Heading of a ship at rest: toward the top edge
const headingForward = -math.Pi / 2

func enemyCategory(k enemy.ModeKind) Category {
	switch k {
	case enemy.ModeFree:
		return CategoryEnemyFree
	case enemy.ModeAttacking:
		return CategoryEnemyAttacking
	default:
		return CategoryEnemyFormation
	}
}

// Snapshot lists every visible entity: wells first, then enemies in roster
// order, lasers, and the player last so it draws on top
func (s *Simulation) Snapshot() []Drawable {
	out := make([]Drawable, 0, s.roster.Len()+len(s.lasers)+4)

	for _, w := range s.ctrl.Wells() {
		if w.Active {
			out = append(out, Drawable{Category: CategoryWell, Position: w.Pos})
		}
	}

	s.roster.Each(func(e *enemy.Enemy) {
		if !e.Alive() {
			return
		}
		// Formation ships face the player; free ships face their heading
		orient := math.Pi / 2
		if e.ModeKind() != enemy.ModeFormation && !e.Vel.IsZero() {
			orient = e.Vel.Angle()
		}
		out = append(out, Drawable{ID: e.ID, Category: enemyCategory(e.ModeKind()), Position: e.Pos, Orientation: orient})
	})

	for i := range s.lasers {
		if l := &s.lasers[i]; l.Active {
			out = append(out, Drawable{ID: l.ID, Category: CategoryLaser, Position: l.Pos, Orientation: l.Vel.Angle()})
		}
	}

	if s.player.Alive {
		out = append(out, Drawable{ID: s.player.ID, Category: CategoryPlayer, Position: s.player.Pos, Orientation: headingForward})
	}
	return out
}
