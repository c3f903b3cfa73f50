package input

import "strings"

// Action is what a bound key does
// Movement and fire actions carry press and release semantics; the rest act on press
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionForward
	ActionBack
	ActionFire
	ActionRoundShot
	ActionPause
	ActionReset
	ActionDebug
	ActionBreakout
	ActionKillAll
	ActionMute
	ActionQuit
	actionCount
)

// actionNames maps keymap config names to actions
var actionNames = map[string]Action{
	"none":       ActionNone,
	"left":       ActionLeft,
	"right":      ActionRight,
	"forward":    ActionForward,
	"back":       ActionBack,
	"fire":       ActionFire,
	"round_shot": ActionRoundShot,
	"pause":      ActionPause,
	"reset":      ActionReset,
	"debug":      ActionDebug,
	"breakout":   ActionBreakout,
	"kill_all":   ActionKillAll,
	"mute":       ActionMute,
	"quit":       ActionQuit,
}

var actionStrings = func() [actionCount]string {
	var s [actionCount]string
	for name, a := range actionNames {
		s[a] = name
	}
	return s
}()

func (a Action) String() string {
	if a < actionCount {
		return actionStrings[a]
	}
	return "unknown"
}

// LookupAction resolves a config name, case-insensitive
func LookupAction(name string) (Action, bool) {
	a, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// Dir returns the movement direction of a movement action
func (a Action) Dir() (Dir, bool) {
	switch a {
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	case ActionForward:
		return DirForward, true
	case ActionBack:
		return DirBack, true
	}
	return 0, false
}

// Weapon returns the weapon a fire action triggers
func (a Action) Weapon() (Weapon, bool) {
	switch a {
	case ActionFire:
		return WeaponLaser, true
	case ActionRoundShot:
		return WeaponRound, true
	}
	return 0, false
}

// Press returns the simulation event for a key press
// Mute and Quit are front-end actions and produce no event
func (a Action) Press() (Event, bool) {
	if d, ok := a.Dir(); ok {
		return MoveStart(d), true
	}
	if w, ok := a.Weapon(); ok {
		return Fire(w), true
	}
	switch a {
	case ActionPause:
		return Event{Kind: KindPause}, true
	case ActionReset:
		return Event{Kind: KindReset}, true
	case ActionDebug:
		return Event{Kind: KindDebugToggle}, true
	case ActionBreakout:
		return Event{Kind: KindBreakout}, true
	case ActionKillAll:
		return Event{Kind: KindKillAll}, true
	}
	return Event{}, false
}

// Release returns the event for a key release; movement and triggers have one
func (a Action) Release() (Event, bool) {
	if d, ok := a.Dir(); ok {
		return MoveStop(d), true
	}
	if w, ok := a.Weapon(); ok {
		return CeaseFire(w), true
	}
	return Event{}, false
}
