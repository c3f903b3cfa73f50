package level

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/enemy"
	"github.com/lixenwraith/void-ranks/engine/fsm"
	"github.com/lixenwraith/void-ranks/event"
	"github.com/lixenwraith/void-ranks/formation"
	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/physics"
	"github.com/lixenwraith/void-ranks/status"
	"github.com/lixenwraith/void-ranks/vmath"
)

// Level lifecycle states
// LevelActive and LevelClearing share the Playing parent so GameOver is
// reachable from both through one transition
const (
	StateUninitialized fsm.StateID = iota + 1
	StatePlaying
	StateLevelActive
	StateLevelClearing
	StateGameComplete
	StateGameOver
)

// ErrWrongState is returned by lifecycle calls made from a state that does not allow them
var ErrWrongState = errors.New("operation not allowed in current level state")

// Config wires a Controller to the simulation it drives
type Config struct {
	Designs []Design
	Roster  *enemy.Roster
	Events  *event.EventQueue
	Metrics *status.Registry
	Logger  *slog.Logger
	Bounds  physics.Bounds
	Seed    int64

	// WarpSpawnsEnemy spawns one free enemy each time the player wraps around
	WarpSpawnsEnemy bool
}

// Controller owns level progression: the active formations and wells,
// scripted spawns and breakouts, and the lifecycle state machine
type Controller struct {
	designs []Design
	ordinal int    // 1-based; 0 before the first level
	current Design // Scaled design of the active level

	formations []*formation.Formation
	wells      []physics.Well
	pending    []SpawnDesign // Sorted by At; popped as level time passes
	levelTime  time.Duration
	sinceBreak time.Duration
	cleared    bool

	roster    *enemy.Roster
	events    *event.EventQueue
	logger    *slog.Logger
	bounds    physics.Bounds
	rng       *vmath.FastRand
	warpSpawn bool
	frame     int64

	machine *fsm.Machine[*Controller]

	statLevel   *atomic.Int64
	statState   *status.AtomicString
	statDropped *atomic.Int64
	statBreaks  *atomic.Int64
	statWells   *atomic.Int64
}

// NewController builds the lifecycle graph; the controller starts Uninitialized
func NewController(cfg Config) (*Controller, error) {
	if len(cfg.Designs) == 0 {
		return nil, ErrNoLevels
	}
	if cfg.Roster == nil {
		return nil, errors.New("level controller: nil roster")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Events == nil {
		cfg.Events = event.NewEventQueue()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = status.NewRegistry()
	}

	c := &Controller{
		designs:     cfg.Designs,
		roster:      cfg.Roster,
		events:      cfg.Events,
		logger:      cfg.Logger,
		bounds:      cfg.Bounds,
		rng:         vmath.NewFastRand(uint64(cfg.Seed) ^ 0x9e3779b97f4a7c15),
		warpSpawn:   cfg.WarpSpawnsEnemy,
		statLevel:   cfg.Metrics.Ints.Get(status.KeyLevel),
		statState:   cfg.Metrics.Strings.Get(status.KeyLevelState),
		statDropped: cfg.Metrics.Ints.Get(status.KeySpawnDropped),
		statBreaks:  cfg.Metrics.Ints.Get(status.KeyBreakouts),
		statWells:   cfg.Metrics.Ints.Get(status.KeyWells),
	}
	c.roster.SetFormationLookup(c.FormationByID)

	m, err := buildMachine()
	if err != nil {
		return nil, err
	}
	c.machine = m
	if err := m.Init(c); err != nil {
		return nil, err
	}
	return c, nil
}

func buildMachine() (*fsm.Machine[*Controller], error) {
	m := fsm.NewMachine[*Controller]()

	m.AddState(StateUninitialized, "Uninitialized", fsm.StateNone).OnEnter =
		[]fsm.ActionFunc[*Controller]{(*Controller).publishState}
	m.AddState(StatePlaying, "Playing", fsm.StateNone)

	active := m.AddState(StateLevelActive, "LevelActive", StatePlaying)
	active.OnEnter = []fsm.ActionFunc[*Controller]{(*Controller).enterActive, (*Controller).publishState}

	clearing := m.AddState(StateLevelClearing, "LevelClearing", StatePlaying)
	clearing.OnEnter = []fsm.ActionFunc[*Controller]{(*Controller).enterClearing, (*Controller).publishState}

	m.AddState(StateGameComplete, "GameComplete", fsm.StateNone).OnEnter =
		[]fsm.ActionFunc[*Controller]{(*Controller).enterGameComplete, (*Controller).publishState}
	m.AddState(StateGameOver, "GameOver", fsm.StateNone).OnEnter =
		[]fsm.ActionFunc[*Controller]{(*Controller).enterGameOver, (*Controller).publishState}

	transitions := []struct {
		from fsm.StateID
		t    fsm.Transition[*Controller]
	}{
		{StateUninitialized, fsm.Transition[*Controller]{TargetID: StateLevelActive, Event: event.EventLevelStarted}},
		{StateLevelActive, fsm.Transition[*Controller]{TargetID: StateLevelClearing, Guard: levelCleared}},
		{StateLevelClearing, fsm.Transition[*Controller]{TargetID: StateLevelActive, Event: event.EventLevelStarted}},
		{StatePlaying, fsm.Transition[*Controller]{TargetID: StateGameComplete, Event: event.EventGameComplete}},
		{StatePlaying, fsm.Transition[*Controller]{TargetID: StateGameOver, Event: event.EventGameOver}},
	}
	for _, tr := range transitions {
		if err := m.AddTransition(tr.from, tr.t); err != nil {
			return nil, err
		}
	}

	m.SetInitial(StateUninitialized)
	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	return m, nil
}

// levelCleared: every formation empty, no scripted spawn pending, no live enemy
func levelCleared(c *Controller, _ time.Duration) bool {
	if len(c.pending) > 0 || c.roster.Live() > 0 {
		return false
	}
	for _, f := range c.formations {
		if !f.IsEmpty() {
			return false
		}
	}
	return true
}

func (c *Controller) publishState() {
	c.statState.Store(c.machine.StateName())
}

func (c *Controller) enterActive() {
	c.cleared = false
	c.logger.Info("level active", "ordinal", c.ordinal, "name", c.current.Name,
		"enemies", c.roster.Live(), "wells", len(c.wells))
}

func (c *Controller) enterClearing() {
	c.cleared = true
	c.events.Emit(event.EventLevelCleared, &event.LevelPayload{Ordinal: c.ordinal, Name: c.current.Name}, c.frame)
	c.logger.Info("level cleared", "ordinal", c.ordinal, "name", c.current.Name, "elapsed", c.levelTime)
}

func (c *Controller) enterGameComplete() {
	c.logger.Info("game complete", "levels", c.ordinal)
}

func (c *Controller) enterGameOver() {
	c.logger.Info("game over", "ordinal", c.ordinal, "name", c.current.Name)
}

// PrepareFirstLevel builds level 1 and enters LevelActive
// Only legal from Uninitialized; use Reset otherwise
func (c *Controller) PrepareFirstLevel() error {
	if c.machine.State() != StateUninitialized {
		return fmt.Errorf("%w: prepare first level from %s", ErrWrongState, c.machine.StateName())
	}
	c.teardown()
	if err := c.build(1); err != nil {
		return err
	}
	c.events.Emit(event.EventLevelStarted, &event.LevelPayload{Ordinal: c.ordinal, Name: c.current.Name}, c.frame)
	c.machine.HandleEvent(c, event.EventLevelStarted)
	return nil
}

// AdvanceToNextLevel releases every entity of the completed level and builds
// the next one, or enters GameComplete when none is left
// Only legal from LevelClearing
func (c *Controller) AdvanceToNextLevel() error {
	if c.machine.State() != StateLevelClearing {
		return fmt.Errorf("%w: advance from %s", ErrWrongState, c.machine.StateName())
	}
	c.teardown()
	if c.ordinal >= len(c.designs) {
		c.events.Emit(event.EventGameComplete, nil, c.frame)
		c.machine.HandleEvent(c, event.EventGameComplete)
		return nil
	}
	if err := c.build(c.ordinal + 1); err != nil {
		return err
	}
	c.events.Emit(event.EventLevelStarted, &event.LevelPayload{Ordinal: c.ordinal, Name: c.current.Name}, c.frame)
	c.machine.HandleEvent(c, event.EventLevelStarted)
	return nil
}

// Reset tears everything down and starts again from level 1, from any state
func (c *Controller) Reset() error {
	c.teardown()
	c.ordinal = 0
	c.current = Design{}
	if err := c.machine.Reset(c); err != nil {
		return err
	}
	return c.PrepareFirstLevel()
}

// PlayerDestroyed ends the game; ignored outside a level
func (c *Controller) PlayerDestroyed() {
	if !c.machine.In(StatePlaying) {
		return
	}
	c.events.Emit(event.EventGameOver, nil, c.frame)
	c.machine.HandleEvent(c, event.EventGameOver)
}

// Update runs the lifecycle machine: clear detection in LevelActive and the
// timed advance out of LevelClearing
func (c *Controller) Update(dt time.Duration) error {
	c.frame++
	c.machine.Update(c, dt)
	if c.machine.State() == StateLevelClearing && c.machine.TimeInState() >= parameter.ClearingDelay {
		return c.AdvanceToNextLevel()
	}
	return nil
}

// Script advances level time and fires due scripted spawns and breakouts
// Runs before the AI pass; breakout refills complete before it returns
func (c *Controller) Script(dt time.Duration) {
	if c.machine.State() != StateLevelActive {
		return
	}
	c.levelTime += dt

	for len(c.pending) > 0 && c.pending[0].At.Duration <= c.levelTime {
		s := c.pending[0]
		c.pending = c.pending[1:]
		c.spawnRaiders(s.Count)
	}

	interval := c.current.BreakoutInterval.Duration
	if interval <= 0 {
		return
	}
	c.sinceBreak += dt
	for c.sinceBreak >= interval {
		c.sinceBreak -= interval
		c.BreakoutRandom()
	}
}

// BreakoutRandom releases one occupied slot picked by the level PRNG
// Returns the enemy broken out, EntityNone when every formation is empty
func (c *Controller) BreakoutRandom() core.Entity {
	type candidate struct {
		f   *formation.Formation
		ref formation.SlotRef
	}
	var all []candidate
	for _, f := range c.formations {
		for _, ref := range f.OccupiedRefs() {
			all = append(all, candidate{f, ref})
		}
	}
	if len(all) == 0 {
		return core.EntityNone
	}

	pick := all[c.rng.Intn(len(all))]
	id := pick.f.Occupant(pick.ref)
	if err := c.roster.Breakout(id); err != nil {
		c.logger.Warn("breakout failed", "id", id, "slot", pick.ref.String(), "error", err)
		return core.EntityNone
	}
	c.statBreaks.Add(1)
	c.events.Emit(event.EventBreakout, &event.BreakoutPayload{ID: id, Rank: pick.ref.Rank, Slot: pick.ref.Slot}, c.frame)
	return id
}

// PlayerWarpedAround applies the warp penalty policy
// Returns true if an enemy was spawned
func (c *Controller) PlayerWarpedAround(player vmath.Vec2) bool {
	if !c.warpSpawn || c.machine.State() != StateLevelActive {
		return false
	}
	// Directly above the ship, entering from the top edge
	pos := vmath.Vec2{X: vmath.Clamp(player.X, c.bounds.Min.X, c.bounds.Max.X-vmath.Scale), Y: c.bounds.Min.Y}
	return c.spawnRaider(pos)
}

func (c *Controller) spawnRaiders(count int) {
	w := c.bounds.Width()
	for i := 0; i < count; i++ {
		// Evenly spaced across the top edge
		x := c.bounds.Min.X + w*int64(i+1)/int64(count+1)
		c.spawnRaider(vmath.Vec2{X: x, Y: c.bounds.Min.Y})
	}
}

func (c *Controller) spawnRaider(pos vmath.Vec2) bool {
	vel := vmath.Vec2{Y: parameter.BreakoutSpeed}
	if _, ok := c.roster.Spawn(pos, vel, enemy.KindRaider, enemy.FreeFlight{}); !ok {
		c.dropSpawn("roster full", 1)
		return false
	}
	return true
}

func (c *Controller) dropSpawn(reason string, n int) {
	c.statDropped.Add(int64(n))
	c.events.Emit(event.EventSpawnDropped, &event.SpawnDroppedPayload{Reason: reason, Count: n}, c.frame)
}

// build constructs the formation and wells of a 1-based ordinal
func (c *Controller) build(ordinal int) error {
	base := c.designs[ordinal-1]
	if err := base.Validate(); err != nil {
		return err
	}
	d := base.Scaled(ordinal)
	rule, err := d.Rule()
	if err != nil {
		return fmt.Errorf("%w: level %q: %w", ErrInvalidDesign, d.Name, err)
	}

	f := formation.New(d.FormationOrigin.Vec(), d.SlotSpacing.Vec())
	f.SetBounds(c.bounds)
	f.SetVelocity(vmath.Vec2{X: vmath.FromFloat(d.FormationSpeed)})
	f.SetObserver(c.roster)

	dropped := 0
	err = f.Populate(d.Ranks, d.SlotsPerRank, rule, func(ref formation.SlotRef) (core.Entity, bool) {
		e, ok := c.roster.Spawn(f.SlotPosition(ref), vmath.Vec2{}, enemy.KindRanked,
			enemy.InFormation{FormationID: f.ID, Slot: ref})
		if !ok {
			dropped++
			return core.EntityNone, false
		}
		return e.ID, true
	})
	if err != nil {
		return fmt.Errorf("%w: level %q: %w", ErrInvalidDesign, d.Name, err)
	}
	if dropped > 0 {
		c.dropSpawn("roster full", dropped)
	}

	c.formations = append(c.formations, f)
	c.wells = c.wells[:0]
	for _, w := range d.Wells {
		c.wells = append(c.wells, w.Well())
	}
	c.pending = d.Spawns
	c.ordinal = ordinal
	c.current = d
	c.levelTime = 0
	c.sinceBreak = 0
	c.statLevel.Store(int64(ordinal))
	c.statWells.Store(int64(len(c.wells)))
	return nil
}

// teardown releases every enemy, formation and well of the current level
func (c *Controller) teardown() {
	for _, f := range c.formations {
		f.Clear()
	}
	n := c.roster.Clear()
	if n > 0 || len(c.formations) > 0 {
		c.logger.Debug("level teardown", "ordinal", c.ordinal, "enemies", n, "formations", len(c.formations))
	}
	c.formations = c.formations[:0]
	c.wells = c.wells[:0]
	c.pending = nil
	c.statWells.Store(0)
}

// StepWells ages and drifts every well
func (c *Controller) StepWells(dt time.Duration) {
	for i := range c.wells {
		c.wells[i].Step(dt, c.bounds)
	}
	c.statWells.Store(int64(physics.ActiveCount(c.wells)))
}

// DriftFormations moves every formation by its shared velocity
func (c *Controller) DriftFormations(dt time.Duration) {
	dtF := vmath.FromDuration(dt)
	for _, f := range c.formations {
		f.Drift(dtF)
	}
}

// FormationByID resolves a formation of the active level, nil once torn down
func (c *Controller) FormationByID(id uuid.UUID) *formation.Formation {
	for _, f := range c.formations {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (c *Controller) Formations() []*formation.Formation { return c.formations }

// Wells exposes the live well slice; callers may read but not retain it
func (c *Controller) Wells() []physics.Well { return c.wells }

func (c *Controller) State() fsm.StateID { return c.machine.State() }
func (c *Controller) StateName() string  { return c.machine.StateName() }
func (c *Controller) Ordinal() int       { return c.ordinal }
func (c *Controller) Cleared() bool      { return c.cleared }
func (c *Controller) Current() Design    { return c.current }
func (c *Controller) LevelCount() int    { return len(c.designs) }

// Active reports whether gameplay input applies (LevelActive)
func (c *Controller) Active() bool { return c.machine.State() == StateLevelActive }

// PendingSpawns returns the number of scripted spawn groups not yet released
func (c *Controller) PendingSpawns() int { return len(c.pending) }

// AttackChance returns the scaled attack probability in Q32.32
func (c *Controller) AttackChance() int64 { return vmath.FromFloat(c.current.AttackChance) }

// SetWarpSpawn toggles the warp penalty policy
func (c *Controller) SetWarpSpawn(on bool) { c.warpSpawn = on }
