package sim

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/void-ranks/enemy"
	"github.com/lixenwraith/void-ranks/event"
	"github.com/lixenwraith/void-ranks/formation"
	"github.com/lixenwraith/void-ranks/input"
	"github.com/lixenwraith/void-ranks/level"
	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/status"
	"github.com/lixenwraith/void-ranks/vmath"
)

const tick = 16 * time.Millisecond

// soloDesign is a static single-enemy level at origin
func soloDesign(x, y float64) level.Design {
	return level.Design{
		Name:            "solo",
		Ranks:           1,
		SlotsPerRank:    1,
		FillRule:        formation.RuleNameNone,
		FormationOrigin: level.Point{x, y},
		SlotSpacing:     level.Point{4, 2},
	}
}

func newSim(t *testing.T, warp bool, designs ...level.Design) *Simulation {
	t.Helper()
	s, err := New(Config{
		Designs:         designs,
		Seed:            7,
		WarpSpawnsEnemy: warp,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return s
}

func mustTick(t *testing.T, s *Simulation) {
	t.Helper()
	if err := s.Tick(tick); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
}

func countEvents(evs []event.GameEvent, et event.EventType) int {
	n := 0
	for _, ev := range evs {
		if ev.Type == et {
			n++
		}
	}
	return n
}

func TestTickBeforeStart(t *testing.T) {
	s, err := New(Config{Designs: []level.Design{soloDesign(40, 5)}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Tick(tick); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Expected ErrNotStarted, got %v", err)
	}
}

func TestLaserDestroysEnemyAndClearsLevel(t *testing.T) {
	s := newSim(t, false, soloDesign(40, 10), soloDesign(40, 10))
	s.Events().Consume()

	s.HandleInput(input.Event{Kind: input.KindFire})
	mustTick(t, s)
	if s.Lasers() != 1 {
		t.Fatalf("Expected 1 laser in flight, got %d", s.Lasers())
	}

	// Cooldown blocks the immediate second shot
	s.HandleInput(input.Event{Kind: input.KindFire})
	mustTick(t, s)
	if s.Lasers() != 1 {
		t.Errorf("Expected cooldown to block the second shot, got %d lasers", s.Lasers())
	}
	s.HandleInput(input.CeaseFire(input.WeaponLaser))

	for i := 0; i < 120 && s.Roster().Live() > 0; i++ {
		mustTick(t, s)
	}
	if s.Roster().Live() != 0 {
		t.Fatal("Expected the laser to destroy the enemy")
	}
	if s.Roster().Len() != 0 {
		t.Errorf("Expected destroyed enemy swept, got %d held", s.Roster().Len())
	}
	if got := s.Metrics().Ints.Get(status.KeyKills).Load(); got != 1 {
		t.Errorf("Expected 1 kill, got %d", got)
	}
	if s.Controller().State() != level.StateLevelClearing {
		t.Errorf("Expected LevelClearing on the kill tick, got %s", s.Controller().StateName())
	}

	evs := s.Events().Consume()
	if countEvents(evs, event.EventLaserFired) != 1 {
		t.Errorf("Expected 1 laser event, got %d", countEvents(evs, event.EventLaserFired))
	}
	if countEvents(evs, event.EventEnemyDestroyed) != 1 || countEvents(evs, event.EventLevelCleared) != 1 {
		t.Errorf("Expected destroyed and cleared events, got %v", evs)
	}
	for _, ev := range evs {
		if p, ok := ev.Payload.(*event.EnemyDestroyedPayload); ok && p.Cause != enemy.CauseShot.String() {
			t.Errorf("Expected cause shot, got %s", p.Cause)
		}
	}

	// Input is ignored while clearing
	s.HandleInput(input.MoveStart(input.DirLeft))
	mustTick(t, s)
	if !s.Player().Vel.IsZero() {
		t.Errorf("Expected no thrust outside an active level, got %+v", s.Player().Vel)
	}
}

func TestEnemyCollisionEndsGame(t *testing.T) {
	// Enemy spawns on top of the player
	s := newSim(t, false, soloDesign(40, 37))
	mustTick(t, s)

	if s.Player().Alive {
		t.Fatal("Expected player destroyed by collision")
	}
	if s.Controller().State() != level.StateGameOver {
		t.Fatalf("Expected GameOver, got %s", s.Controller().StateName())
	}
	if s.Roster().Live() != 0 {
		t.Errorf("Expected colliding enemy destroyed, got %d live", s.Roster().Live())
	}
	if got := s.Metrics().Ints.Get(status.KeyKills).Load(); got != 0 {
		t.Errorf("Expected collisions not counted as kills, got %d", got)
	}

	if err := s.HandleInput(input.Event{Kind: input.KindReset}); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !s.Player().Alive || s.Controller().State() != level.StateLevelActive {
		t.Errorf("Expected fresh level after reset, got alive=%v state=%s", s.Player().Alive, s.Controller().StateName())
	}
	if s.Controller().Ordinal() != 1 || s.Roster().Live() != 1 {
		t.Errorf("Expected level 1 with 1 enemy, got ordinal %d live %d", s.Controller().Ordinal(), s.Roster().Live())
	}
}

func TestWarpAround(t *testing.T) {
	for _, warpSpawn := range []bool{false, true} {
		s := newSim(t, warpSpawn, soloDesign(40, 5))
		s.HandleInput(input.MoveStart(input.DirLeft))

		warps := s.Metrics().Ints.Get(status.KeyWarps)
		for i := 0; i < 400 && warps.Load() == 0; i++ {
			mustTick(t, s)
		}
		if warps.Load() != 1 {
			t.Fatalf("Expected exactly one warp, got %d", warps.Load())
		}
		if x := vmath.ToFloat(s.Player().Pos.X); x < 60 {
			t.Errorf("Expected ship on the right edge after wrapping left, got x=%.2f", x)
		}

		want := 1
		if warpSpawn {
			want = 2
		}
		if s.Roster().Live() != want {
			t.Errorf("warpSpawn=%v: expected %d live enemies, got %d", warpSpawn, want, s.Roster().Live())
		}
		if countEvents(s.Events().Consume(), event.EventWarp) != 1 {
			t.Errorf("Expected one warp event")
		}
	}
}

func TestGravityPullsPlayer(t *testing.T) {
	d := soloDesign(40, 5)
	d.Wells = []level.WellDesign{{Position: level.Point{50, 37}, Strength: 18}}
	s := newSim(t, false, d)

	mustTick(t, s)
	if s.Player().Vel.X <= 0 {
		t.Errorf("Expected pull toward the well on +X, got vx=%v", vmath.ToFloat(s.Player().Vel.X))
	}
	if s.Player().Vel.Y != 0 {
		t.Errorf("Expected no vertical pull on a level well, got vy=%v", vmath.ToFloat(s.Player().Vel.Y))
	}
	if g := s.Metrics().Floats.Get(status.KeyGravity).Get(); g <= 0 {
		t.Errorf("Expected gravity metric set, got %v", g)
	}
}

func TestPauseFreezesTicks(t *testing.T) {
	s := newSim(t, false, soloDesign(40, 5))

	s.HandleInput(input.Event{Kind: input.KindPause})
	if !s.Paused() || !s.Metrics().Bools.Get(status.KeyPaused).Load() {
		t.Fatal("Expected paused")
	}
	s.HandleInput(input.MoveStart(input.DirRight))
	mustTick(t, s)
	if s.Frame() != 0 {
		t.Errorf("Expected no frame while paused, got %d", s.Frame())
	}

	s.HandleInput(input.Event{Kind: input.KindPause})
	mustTick(t, s)
	if s.Frame() != 1 {
		t.Errorf("Expected ticking resumed, got frame %d", s.Frame())
	}
	if !s.Player().Vel.IsZero() {
		t.Error("Expected movement pressed during pause to be ignored")
	}
}

func TestFocusLossPauses(t *testing.T) {
	s := newSim(t, false, soloDesign(5, 5))

	s.HandleInput(input.Fire(input.WeaponLaser))
	s.HandleInput(input.Event{Kind: input.KindFocusLost})
	if !s.Paused() {
		t.Fatal("Expected focus loss to pause")
	}
	s.HandleInput(input.Event{Kind: input.KindFocusLost})
	if !s.Paused() {
		t.Fatal("Expected a second focus loss to keep the game paused")
	}

	s.HandleInput(input.Event{Kind: input.KindPause})
	mustTick(t, s)
	if s.Paused() || s.Frame() != 1 {
		t.Errorf("Expected pause key to resume, got paused=%v frame=%d", s.Paused(), s.Frame())
	}
	if s.Lasers() != 0 {
		t.Errorf("Expected trigger released by the pause, got %d lasers", s.Lasers())
	}
}

func TestHeldTriggerAutoFires(t *testing.T) {
	s := newSim(t, false, soloDesign(5, 5))
	s.Events().Consume()

	// 30 ticks of 16ms with a 150ms cooldown: shots on ticks 1, 11 and 21
	s.HandleInput(input.Fire(input.WeaponLaser))
	for i := 0; i < 30; i++ {
		mustTick(t, s)
	}
	if n := countEvents(s.Events().Consume(), event.EventLaserFired); n != 3 {
		t.Errorf("Expected 3 shots from a held trigger, got %d", n)
	}

	s.HandleInput(input.CeaseFire(input.WeaponLaser))
	for i := 0; i < 30; i++ {
		mustTick(t, s)
	}
	if n := countEvents(s.Events().Consume(), event.EventLaserFired); n != 0 {
		t.Errorf("Expected no shots after cease-fire, got %d", n)
	}
}

func TestRoundShotBurst(t *testing.T) {
	s := newSim(t, false, soloDesign(5, 5))
	s.Events().Consume()

	s.HandleInput(input.Fire(input.WeaponRound))
	s.HandleInput(input.CeaseFire(input.WeaponRound))
	mustTick(t, s)
	if s.Lasers() != parameter.RoundShotCount {
		t.Fatalf("Expected %d pellets, got %d", parameter.RoundShotCount, s.Lasers())
	}

	headings := make(map[float64]bool)
	for _, d := range s.Snapshot() {
		if d.Category == CategoryLaser {
			headings[math.Round(d.Orientation*100)/100] = true
		}
	}
	if len(headings) != parameter.RoundShotCount {
		t.Errorf("Expected %d distinct pellet headings, got %d", parameter.RoundShotCount, len(headings))
	}

	// Burst cooldown blocks a second burst but not the laser
	s.HandleInput(input.Fire(input.WeaponRound))
	s.HandleInput(input.CeaseFire(input.WeaponRound))
	s.HandleInput(input.Fire(input.WeaponLaser))
	s.HandleInput(input.CeaseFire(input.WeaponLaser))
	mustTick(t, s)
	if n := countEvents(s.Events().Consume(), event.EventLaserFired); n != 2 {
		t.Errorf("Expected burst then single shot, got %d fire events", n)
	}
}

func TestDebugKeys(t *testing.T) {
	d := soloDesign(40, 5)
	d.SlotsPerRank = 4
	s := newSim(t, false, d)

	s.HandleInput(input.Event{Kind: input.KindBreakout})
	if s.Roster().CountMode(enemy.ModeFree) != 0 {
		t.Error("Expected breakout ignored without debug mode")
	}

	s.HandleInput(input.Event{Kind: input.KindDebugToggle})
	s.HandleInput(input.Event{Kind: input.KindBreakout})
	if s.Roster().CountMode(enemy.ModeFree) != 1 {
		t.Errorf("Expected 1 free enemy after debug breakout, got %d", s.Roster().CountMode(enemy.ModeFree))
	}

	s.HandleInput(input.Event{Kind: input.KindKillAll})
	if s.Roster().Live() != 0 {
		t.Errorf("Expected kill-all to destroy every enemy, got %d", s.Roster().Live())
	}
	for _, f := range s.Controller().Formations() {
		if !f.IsEmpty() {
			t.Error("Expected formation emptied by kill-all")
		}
	}
}

func TestSnapshotCategories(t *testing.T) {
	d := soloDesign(40, 5)
	d.SlotsPerRank = 3
	d.Wells = []level.WellDesign{{Position: level.Point{20, 20}, Strength: 5, Radius: 10}}
	s := newSim(t, false, d)

	snap := s.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("Expected well + 3 enemies + player, got %d drawables", len(snap))
	}
	if snap[0].Category != CategoryWell {
		t.Errorf("Expected well first, got %s", snap[0].Category)
	}
	for _, dr := range snap[1:4] {
		if dr.Category != CategoryEnemyFormation {
			t.Errorf("Expected formation enemy, got %s", dr.Category)
		}
	}
	last := snap[len(snap)-1]
	if last.Category != CategoryPlayer || last.ID != s.Player().ID {
		t.Errorf("Expected player drawn last, got %s id %d", last.Category, last.ID)
	}
}

func TestRunnerDrivesFrames(t *testing.T) {
	s := newSim(t, false, soloDesign(40, 5))
	clock := NewMockClock(time.Unix(0, 0))
	in := &QueueInput{}
	var drawn []Drawable
	r := NewRunner(s, clock, in, SinkFunc(func(d Drawable) { drawn = append(drawn, d) }))

	in.Push(input.Event{Kind: input.KindFire})
	clock.Advance(tick)
	if err := r.Frame(); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if s.Frame() != 1 {
		t.Errorf("Expected 1 simulated frame, got %d", s.Frame())
	}

	lasers := 0
	for _, d := range drawn {
		if d.Category == CategoryLaser {
			lasers++
		}
	}
	if lasers != 1 {
		t.Errorf("Expected the fired laser in the snapshot, got %d", lasers)
	}
	if len(in.Poll()) != 0 {
		t.Error("Expected input drained by the frame")
	}

	// No time passed: no tick
	if err := r.Frame(); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if s.Frame() != 1 {
		t.Errorf("Expected zero dt to skip the tick, got frame %d", s.Frame())
	}
}
