package input

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/void-ranks/vmath"
)

func TestIntentThrust(t *testing.T) {
	var in Intent

	if !in.Thrust().IsZero() {
		t.Errorf("Expected zero thrust at rest, got %+v", in.Thrust())
	}

	in.Apply(MoveStart(DirLeft))
	in.Apply(MoveStart(DirForward))
	got := in.Thrust()
	if got.X != -vmath.Scale || got.Y != -vmath.Scale {
		t.Errorf("Expected (-1,-1), got (%v,%v)", vmath.ToFloat(got.X), vmath.ToFloat(got.Y))
	}

	// Opposite keys cancel
	in.Apply(MoveStart(DirRight))
	if got := in.Thrust(); got.X != 0 {
		t.Errorf("Expected left+right to cancel, got x=%v", vmath.ToFloat(got.X))
	}

	in.Apply(MoveStop(DirLeft))
	in.Apply(MoveStop(DirForward))
	if got := in.Thrust(); got.X != vmath.Scale || got.Y != 0 {
		t.Errorf("Expected (1,0) after releases, got (%v,%v)", vmath.ToFloat(got.X), vmath.ToFloat(got.Y))
	}

	in.Clear()
	if in.Held(DirRight) || !in.Thrust().IsZero() {
		t.Error("Expected Clear to release every direction")
	}
}

func TestIntentTapFiresOnce(t *testing.T) {
	var in Intent
	if in.TakeFire(WeaponLaser) {
		t.Error("Expected no fire pending initially")
	}
	// Press and release inside one poll still leaves one shot
	in.Apply(Fire(WeaponLaser))
	in.Apply(CeaseFire(WeaponLaser))
	if !in.TakeFire(WeaponLaser) {
		t.Error("Expected tapped fire pending")
	}
	if in.TakeFire(WeaponLaser) {
		t.Error("Expected tap consumed by TakeFire")
	}
	if in.Apply(Event{Kind: KindPause}) {
		t.Error("Expected Pause not owned by the intent")
	}
}

func TestIntentHeldTriggerRepeats(t *testing.T) {
	var in Intent
	in.Apply(Fire(WeaponRound))
	for i := 0; i < 3; i++ {
		if !in.TakeFire(WeaponRound) {
			t.Fatalf("Expected held trigger to fire on take %d", i)
		}
	}
	if in.TakeFire(WeaponLaser) || in.Firing(WeaponLaser) {
		t.Error("Expected the laser trigger independent of the round shot")
	}

	in.Apply(CeaseFire(WeaponRound))
	if in.Firing(WeaponRound) || in.TakeFire(WeaponRound) {
		t.Error("Expected cease-fire to stop the repeat")
	}

	in.Apply(Fire(WeaponLaser))
	in.Clear()
	if in.Firing(WeaponLaser) || in.TakeFire(WeaponLaser) {
		t.Error("Expected Clear to drop triggers and pending shots")
	}
}

func TestActionEvents(t *testing.T) {
	tests := []struct {
		action  Action
		press   Event
		pressOK bool
		release Event
		relOK   bool
	}{
		{ActionLeft, MoveStart(DirLeft), true, MoveStop(DirLeft), true},
		{ActionBack, MoveStart(DirBack), true, MoveStop(DirBack), true},
		{ActionFire, Fire(WeaponLaser), true, CeaseFire(WeaponLaser), true},
		{ActionRoundShot, Fire(WeaponRound), true, CeaseFire(WeaponRound), true},
		{ActionPause, Event{Kind: KindPause}, true, Event{}, false},
		{ActionKillAll, Event{Kind: KindKillAll}, true, Event{}, false},
		{ActionMute, Event{}, false, Event{}, false},
		{ActionQuit, Event{}, false, Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			ev, ok := tt.action.Press()
			if ok != tt.pressOK || ev != tt.press {
				t.Errorf("Press: expected (%+v,%v), got (%+v,%v)", tt.press, tt.pressOK, ev, ok)
			}
			rel, ok := tt.action.Release()
			if ok != tt.relOK || rel != tt.release {
				t.Errorf("Release: expected (%+v,%v), got (%+v,%v)", tt.release, tt.relOK, rel, ok)
			}
		})
	}
}

func TestLookupActionNames(t *testing.T) {
	for a := ActionNone; a < actionCount; a++ {
		got, ok := LookupAction(a.String())
		if !ok || got != a {
			t.Errorf("Expected %q to resolve to itself, got %v (ok=%v)", a.String(), got, ok)
		}
	}
	if a, ok := LookupAction(" Kill_All "); !ok || a != ActionKillAll {
		t.Errorf("Expected case-insensitive lookup, got %v", a)
	}
	if _, ok := LookupAction("jump"); ok {
		t.Error("Expected unknown action rejected")
	}
}

func TestKeyTableLookup(t *testing.T) {
	kt := DefaultKeyTable()
	if got := kt.Lookup(tcell.KeyRune, 'w'); got != ActionForward {
		t.Errorf("Expected w=forward, got %s", got)
	}
	if got := kt.Lookup(tcell.KeyUp, 0); got != ActionForward {
		t.Errorf("Expected Up=forward, got %s", got)
	}
	if got := kt.Lookup(tcell.KeyRune, 'e'); got != ActionRoundShot {
		t.Errorf("Expected e=round_shot, got %s", got)
	}
	if got := kt.Lookup(tcell.KeyRune, 'z'); got != ActionNone {
		t.Errorf("Expected unbound rune to be none, got %s", got)
	}
}

func TestParseKeyConfigAndMerge(t *testing.T) {
	overrides, err := ParseKeyConfig(`
[runes]
space = "none"
f = "fire"
"," = "pause"

[keys]
F2 = "kill_all"
Up = "none"
`)
	if err != nil {
		t.Fatalf("ParseKeyConfig failed: %v", err)
	}

	base := DefaultKeyTable()
	merged := MergeKeyTable(base, overrides)

	if _, ok := merged.Runes[' ']; ok {
		t.Error("Expected space unbound by none override")
	}
	if merged.Runes['f'] != ActionFire || merged.Runes[','] != ActionPause {
		t.Errorf("Expected f=fire and comma=pause, got %s and %s", merged.Runes['f'], merged.Runes[','])
	}
	if merged.Keys[tcell.KeyF2] != ActionKillAll {
		t.Errorf("Expected F2=kill_all, got %s", merged.Keys[tcell.KeyF2])
	}
	if _, ok := merged.Keys[tcell.KeyUp]; ok {
		t.Error("Expected Up unbound by none override")
	}

	// Base table is untouched
	if base.Runes[' '] != ActionFire || base.Keys[tcell.KeyUp] != ActionForward {
		t.Error("Expected merge to leave the base table unchanged")
	}
}

func TestParseKeyConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown action", "[runes]\nw = \"jump\"\n"},
		{"multi-char rune", "[runes]\nww = \"fire\"\n"},
		{"unknown key name", "[keys]\nHyper = \"fire\"\n"},
		{"unknown section", "[mouse]\nleft = \"fire\"\n"},
		{"bad toml", "[runes\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKeyConfig(tt.data)
			if !errors.Is(err, ErrInvalidKeymap) {
				t.Errorf("Expected ErrInvalidKeymap, got %v", err)
			}
		})
	}
}
