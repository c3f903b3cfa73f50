package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps terminal keys to actions
// Printable keys arrive as tcell.KeyRune and are looked up in Runes
type KeyTable struct {
	Runes map[rune]Action
	Keys  map[tcell.Key]Action
}

// DefaultKeyTable returns the built-in bindings
// Arrows and wasd steer; space and comma fire the laser, e and period the round shot
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]Action{
			'a': ActionLeft,
			'd': ActionRight,
			'w': ActionForward,
			's': ActionBack,
			'h': ActionLeft,
			'l': ActionRight,
			'k': ActionForward,
			'j': ActionBack,
			' ': ActionFire,
			',': ActionFire,
			'.': ActionRoundShot,
			'e': ActionRoundShot,
			'p': ActionPause,
			'r': ActionReset,
			'm': ActionMute,
			'q': ActionQuit,
			'b': ActionBreakout,
			'x': ActionKillAll,
		},
		Keys: map[tcell.Key]Action{
			tcell.KeyLeft:   ActionLeft,
			tcell.KeyRight:  ActionRight,
			tcell.KeyUp:     ActionForward,
			tcell.KeyDown:   ActionBack,
			tcell.KeyEnter:  ActionFire,
			tcell.KeyEscape: ActionPause,
			tcell.KeyF1:     ActionDebug,
			tcell.KeyCtrlC:  ActionQuit,
		},
	}
}

// Lookup resolves a terminal key event to an action
func (kt *KeyTable) Lookup(key tcell.Key, r rune) Action {
	if key == tcell.KeyRune {
		return kt.Runes[r]
	}
	return kt.Keys[key]
}

// Clone returns a deep copy so merges never mutate the defaults
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Runes: maps.Clone(kt.Runes),
		Keys:  maps.Clone(kt.Keys),
	}
}
