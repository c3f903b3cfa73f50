package input

import "github.com/lixenwraith/void-ranks/vmath"

// Intent is the player's held movement and triggers
// Handlers mutate it from events; the simulation reads it once per tick
// A trigger stays down until CeaseFire; a tap released within one poll still
// leaves one pending shot
type Intent struct {
	held    [dirCount]bool
	trigger [weaponCount]bool
	pending [weaponCount]bool
}

// Apply maps a movement or fire event onto the intent
// Returns false for kinds the intent does not own
func (in *Intent) Apply(ev Event) bool {
	switch ev.Kind {
	case KindMoveStart:
		if ev.Dir < dirCount {
			in.held[ev.Dir] = true
		}
	case KindMoveStop:
		if ev.Dir < dirCount {
			in.held[ev.Dir] = false
		}
	case KindFire:
		if ev.Weapon < weaponCount {
			in.trigger[ev.Weapon] = true
			in.pending[ev.Weapon] = true
		}
	case KindCeaseFire:
		if ev.Weapon < weaponCount {
			in.trigger[ev.Weapon] = false
		}
	default:
		return false
	}
	return true
}

// Held reports whether d is currently pressed
func (in *Intent) Held(d Dir) bool { return d < dirCount && in.held[d] }

// Thrust returns the unit-per-axis thrust direction; opposite keys cancel
// Screen y grows downward, so Forward is -Y
func (in *Intent) Thrust() vmath.Vec2 {
	var v vmath.Vec2
	if in.held[DirLeft] {
		v.X -= vmath.Scale
	}
	if in.held[DirRight] {
		v.X += vmath.Scale
	}
	if in.held[DirForward] {
		v.Y -= vmath.Scale
	}
	if in.held[DirBack] {
		v.Y += vmath.Scale
	}
	return v
}

// TakeFire reports whether w should fire this tick: a pending tap or a held
// trigger. The pending tap is consumed
func (in *Intent) TakeFire(w Weapon) bool {
	if w >= weaponCount {
		return false
	}
	f := in.pending[w] || in.trigger[w]
	in.pending[w] = false
	return f
}

// Firing reports whether w's trigger is held
func (in *Intent) Firing(w Weapon) bool { return w < weaponCount && in.trigger[w] }

// Clear releases every held direction and trigger and drops pending shots
func (in *Intent) Clear() {
	*in = Intent{}
}
