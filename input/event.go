package input

// Kind is a discrete input event delivered to the simulation
type Kind uint8

const (
	KindNone Kind = iota
	KindMoveStart
	KindMoveStop
	KindFire
	KindCeaseFire
	KindPause
	KindReset
	KindDebugToggle
	KindBreakout // Debug: force one scripted breakout
	KindKillAll  // Debug: destroy every enemy
	KindFocusLost
)

var kindNames = [...]string{
	KindNone:        "none",
	KindMoveStart:   "move-start",
	KindMoveStop:    "move-stop",
	KindFire:        "fire",
	KindCeaseFire:   "cease-fire",
	KindPause:       "pause",
	KindReset:       "reset",
	KindDebugToggle: "debug-toggle",
	KindBreakout:    "breakout",
	KindKillAll:     "kill-all",
	KindFocusLost:   "focus-lost",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Dir is a thrust direction; Forward points away from the player's edge
type Dir uint8

const (
	DirLeft Dir = iota
	DirRight
	DirForward
	DirBack
	dirCount
)

func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirForward:
		return "forward"
	case DirBack:
		return "back"
	default:
		return "unknown"
	}
}

// Weapon selects what a trigger fires
type Weapon uint8

const (
	WeaponLaser Weapon = iota // Single shot toward the top edge
	WeaponRound               // Radial burst around the ship
	weaponCount
)

func (w Weapon) String() string {
	switch w {
	case WeaponLaser:
		return "laser"
	case WeaponRound:
		return "round"
	default:
		return "unknown"
	}
}

// Event is one input occurrence
// Dir is meaningful for MoveStart/MoveStop, Weapon for Fire/CeaseFire
type Event struct {
	Kind   Kind
	Dir    Dir
	Weapon Weapon
}

func MoveStart(d Dir) Event    { return Event{Kind: KindMoveStart, Dir: d} }
func MoveStop(d Dir) Event     { return Event{Kind: KindMoveStop, Dir: d} }
func Fire(w Weapon) Event      { return Event{Kind: KindFire, Weapon: w} }
func CeaseFire(w Weapon) Event { return Event{Kind: KindCeaseFire, Weapon: w} }
