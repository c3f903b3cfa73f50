package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/void-ranks/input"
	"github.com/lixenwraith/void-ranks/parameter"
)

// Translator turns terminal key presses into simulation events
// Terminals deliver no key-up, so a held direction is released once its
// auto-repeat stops for longer than the hold timeout; triggers work the same
type Translator struct {
	table   *input.KeyTable
	timeout time.Duration
	held    map[input.Dir]time.Time
	firing  map[input.Weapon]time.Time
}

func NewTranslator(table *input.KeyTable) *Translator {
	if table == nil {
		table = input.DefaultKeyTable()
	}
	return &Translator{
		table:   table,
		timeout: parameter.KeyHoldTimeout,
		held:    make(map[input.Dir]time.Time, 4),
		firing:  make(map[input.Weapon]time.Time, 2),
	}
}

// Key resolves one press; out receives simulation events and the bound
// action is returned so the caller can handle front-end actions (mute, quit)
func (t *Translator) Key(key tcell.Key, r rune, now time.Time, out []input.Event) ([]input.Event, input.Action) {
	a := t.table.Lookup(key, r)
	if d, ok := a.Dir(); ok {
		if _, down := t.held[d]; !down {
			out = append(out, input.MoveStart(d))
		}
		t.held[d] = now
		return out, a
	}
	if w, ok := a.Weapon(); ok {
		if _, down := t.firing[w]; !down {
			out = append(out, input.Fire(w))
		}
		t.firing[w] = now
		return out, a
	}
	if ev, ok := a.Press(); ok {
		out = append(out, ev)
	}
	return out, a
}

// Expire releases directions and triggers whose repeats have stopped
func (t *Translator) Expire(now time.Time, out []input.Event) []input.Event {
	// Fixed order keeps release events deterministic
	for d := input.DirLeft; d <= input.DirBack; d++ {
		last, down := t.held[d]
		if down && now.Sub(last) >= t.timeout {
			delete(t.held, d)
			out = append(out, input.MoveStop(d))
		}
	}
	for w := input.WeaponLaser; w <= input.WeaponRound; w++ {
		last, down := t.firing[w]
		if down && now.Sub(last) >= t.timeout {
			delete(t.firing, w)
			out = append(out, input.CeaseFire(w))
		}
	}
	return out
}

// ReleaseAll emits a stop for every held direction and trigger, e.g. on focus loss
func (t *Translator) ReleaseAll(out []input.Event) []input.Event {
	for d := input.DirLeft; d <= input.DirBack; d++ {
		if _, down := t.held[d]; down {
			delete(t.held, d)
			out = append(out, input.MoveStop(d))
		}
	}
	for w := input.WeaponLaser; w <= input.WeaponRound; w++ {
		if _, down := t.firing[w]; down {
			delete(t.firing, w)
			out = append(out, input.CeaseFire(w))
		}
	}
	return out
}
