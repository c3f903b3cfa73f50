package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/enemy"
	"github.com/lixenwraith/void-ranks/event"
	"github.com/lixenwraith/void-ranks/input"
	"github.com/lixenwraith/void-ranks/level"
	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/physics"
	"github.com/lixenwraith/void-ranks/status"
	"github.com/lixenwraith/void-ranks/vmath"
)

// ErrNotStarted is returned by Tick before Start
var ErrNotStarted = errors.New("simulation not started")

// Config assembles a Simulation
type Config struct {
	Designs []level.Design
	Width   int // Playfield size in cells; 0 uses the parameter default
	Height  int
	Seed    int64

	WarpSpawnsEnemy bool

	Events  *event.EventQueue
	Metrics *status.Registry
	Logger  *slog.Logger
}

// Simulation owns every gameplay entity and advances them in a fixed order
// It is single-threaded; only the event queue and metrics are shared
type Simulation struct {
	alloc  *core.EntityAllocator
	bounds physics.Bounds

	player Player
	lasers [parameter.MaxLasers]Laser
	intent input.Intent

	roster *enemy.Roster
	ctrl   *level.Controller
	brain  *enemy.Brain

	events  *event.EventQueue
	metrics *status.Registry
	logger  *slog.Logger

	started bool
	paused  bool
	debug   bool
	frame   int64

	statFrame     *atomic.Int64
	statLive      *atomic.Int64
	statFormation *atomic.Int64
	statKills     *atomic.Int64
	statWarps     *atomic.Int64
	statPaused    *atomic.Bool
	statGravity   *status.AtomicFloat
}

// New wires the roster, level controller and AI; call Start to build level 1
func New(cfg Config) (*Simulation, error) {
	if cfg.Width <= 0 {
		cfg.Width = parameter.PlayfieldWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = parameter.PlayfieldHeight
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

	s := &Simulation{
		alloc:   &core.EntityAllocator{},
		bounds:  physics.NewBounds(cfg.Width, cfg.Height),
		brain:   enemy.NewBrain(cfg.Seed),
		events:  cfg.Events,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,

		statFrame:     cfg.Metrics.Ints.Get(status.KeyFrame),
		statLive:      cfg.Metrics.Ints.Get(status.KeyEnemiesLive),
		statFormation: cfg.Metrics.Ints.Get(status.KeyFormation),
		statKills:     cfg.Metrics.Ints.Get(status.KeyKills),
		statWarps:     cfg.Metrics.Ints.Get(status.KeyWarps),
		statPaused:    cfg.Metrics.Bools.Get(status.KeyPaused),
		statGravity:   cfg.Metrics.Floats.Get(status.KeyGravity),
	}
	s.roster = enemy.NewRoster(s.alloc, cfg.Logger)

	ctrl, err := level.NewController(level.Config{
		Designs:         cfg.Designs,
		Roster:          s.roster,
		Events:          cfg.Events,
		Metrics:         cfg.Metrics,
		Logger:          cfg.Logger,
		Bounds:          s.bounds,
		Seed:            cfg.Seed,
		WarpSpawnsEnemy: cfg.WarpSpawnsEnemy,
	})
	if err != nil {
		return nil, fmt.Errorf("level controller: %w", err)
	}
	s.ctrl = ctrl
	return s, nil
}

// Start builds the first level and places the player
func (s *Simulation) Start() error {
	if err := s.ctrl.PrepareFirstLevel(); err != nil {
		return err
	}
	s.spawnPlayer()
	s.started = true
	return nil
}

// Reset restarts from level 1 in any state
func (s *Simulation) Reset() error {
	s.paused = false
	s.statPaused.Store(false)
	s.intent.Clear()
	for i := range s.lasers {
		s.lasers[i] = Laser{}
	}
	if err := s.ctrl.Reset(); err != nil {
		return err
	}
	s.spawnPlayer()
	s.started = true
	s.logger.Info("simulation reset", "frame", s.frame)
	return nil
}

func (s *Simulation) spawnPlayer() {
	x := (s.bounds.Min.X + s.bounds.Max.X) / 2
	y := s.bounds.Max.Y - vmath.FromInt(parameter.PlayerStartRow)
	s.player = Player{
		ID:      s.alloc.Next(),
		Kinetic: physics.Kinetic{Pos: vmath.Vec2{X: x, Y: y}},
		Alive:   true,
	}
}

// HandleInput applies one input event
// Movement and fire only count during an active level; releases always apply
// so a key held across a level change does not stick. Focus loss pauses but
// never resumes
func (s *Simulation) HandleInput(ev input.Event) error {
	switch ev.Kind {
	case input.KindMoveStop, input.KindCeaseFire:
		s.intent.Apply(ev)
	case input.KindMoveStart, input.KindFire:
		if s.ctrl.Active() && !s.paused {
			s.intent.Apply(ev)
		}
	case input.KindPause:
		s.SetPaused(!s.paused)
	case input.KindFocusLost:
		s.SetPaused(true)
	case input.KindReset:
		return s.Reset()
	case input.KindDebugToggle:
		s.debug = !s.debug
		s.logger.Debug("debug toggled", "on", s.debug)
	case input.KindBreakout:
		if s.debug && !s.paused {
			s.ctrl.BreakoutRandom()
		}
	case input.KindKillAll:
		if s.debug && !s.paused {
			s.KillAll()
		}
	}
	return nil
}

// SetPaused freezes or resumes ticking; held directions are released on pause
func (s *Simulation) SetPaused(on bool) {
	if s.paused == on {
		return
	}
	s.paused = on
	if on {
		s.intent.Clear()
	}
	s.statPaused.Store(on)
	s.logger.Info("pause", "on", on, "frame", s.frame)
}

// Tick advances the world by dt
// Order: gravity, player, formation drift, scripted breakouts and spawns,
// enemy AI, lasers and collisions, sweep, level lifecycle
func (s *Simulation) Tick(dt time.Duration) error {
	if !s.started {
		return ErrNotStarted
	}
	if s.paused || dt <= 0 {
		return nil
	}
	dt = min(dt, parameter.MaxFrameDelta)
	dtF := vmath.FromDuration(dt)
	s.frame++

	// Gravity acts on velocity only; integration below moves the ship
	s.ctrl.StepWells(dt)
	if s.player.Alive {
		acc := physics.ApplyGravity(&s.player.Kinetic, s.ctrl.Wells(), dtF)
		s.statGravity.Set(vmath.ToFloat(acc.Len()))
	}

	s.updatePlayer(dt, dtF)

	s.ctrl.DriftFormations(dt)
	s.ctrl.Script(dt)

	s.roster.Update(dt, &enemy.Surroundings{
		Player:       s.player.Pos,
		PlayerAlive:  s.player.Alive,
		Bounds:       s.bounds,
		AttackChance: s.ctrl.AttackChance(),
	}, s.brain)

	s.updateLasers(dtF)
	s.collideLasers()
	s.collidePlayer()

	s.roster.Sweep()

	err := s.ctrl.Update(dt)
	s.publish()
	return err
}

func (s *Simulation) updatePlayer(dt time.Duration, dtF int64) {
	p := &s.player
	if !p.Alive {
		return
	}

	thrust := s.intent.Thrust()
	if thrust.IsZero() {
		physics.Damp(&p.Kinetic, parameter.PlayerDrag, dtF)
	} else {
		physics.ApplyImpulse(&p.Kinetic, thrust.Scale(vmath.Mul(parameter.PlayerThrust, dtF)))
	}
	physics.CapSpeed(&p.Kinetic, parameter.PlayerMaxSpeed)
	physics.Integrate(&p.Kinetic, dtF)

	if physics.WrapBounds(&p.Kinetic, s.bounds) {
		s.statWarps.Add(1)
		s.events.Emit(event.EventWarp, nil, s.frame)
		if s.ctrl.PlayerWarpedAround(p.Pos) {
			s.logger.Debug("warp penalty spawn", "x", vmath.ToFloat(p.Pos.X))
		}
	}

	// A held trigger repeats at the cooldown rate
	if p.cooldown > 0 {
		p.cooldown -= dt
	}
	if p.roundCooldown > 0 {
		p.roundCooldown -= dt
	}
	if s.intent.TakeFire(input.WeaponLaser) && p.cooldown <= 0 {
		s.fire()
	}
	if s.intent.TakeFire(input.WeaponRound) && p.roundCooldown <= 0 {
		s.roundShot()
	}
}

// fire launches a laser from the ship nose; a full laser pool drops the shot
func (s *Simulation) fire() {
	nose := s.player.Pos.Sub(vmath.Vec2{Y: vmath.Scale})
	if !s.spawnLaser(nose, vmath.Vec2{Y: -parameter.LaserSpeed}) {
		return
	}
	s.player.cooldown = parameter.LaserCooldown
	s.events.Emit(event.EventLaserFired, nil, s.frame)
}

// roundShot fires RoundShotCount lasers evenly spaced around the ship,
// starting straight ahead; pellets beyond the free pool are dropped
func (s *Simulation) roundShot() {
	n := 0
	for k := 0; k < parameter.RoundShotCount; k++ {
		a := headingForward + 2*math.Pi*float64(k)/parameter.RoundShotCount
		vel := vmath.V(math.Cos(a)*parameter.LaserSpeedFloat, math.Sin(a)*parameter.LaserSpeedFloat)
		if !s.spawnLaser(s.player.Pos, vel) {
			break
		}
		n++
	}
	if n == 0 {
		return
	}
	s.player.roundCooldown = parameter.RoundShotCooldown
	s.events.Emit(event.EventLaserFired, nil, s.frame)
	s.logger.Debug("round shot", "pellets", n, "frame", s.frame)
}

func (s *Simulation) spawnLaser(pos, vel vmath.Vec2) bool {
	for i := range s.lasers {
		l := &s.lasers[i]
		if l.Active {
			continue
		}
		*l = Laser{
			ID:      s.alloc.Next(),
			Active:  true,
			Kinetic: physics.Kinetic{Pos: pos, Vel: vel},
		}
		return true
	}
	return false
}

func (s *Simulation) updateLasers(dtF int64) {
	for i := range s.lasers {
		l := &s.lasers[i]
		if !l.Active {
			continue
		}
		physics.Integrate(&l.Kinetic, dtF)
		if !s.bounds.Contains(l.Pos) {
			l.Active = false
		}
	}
}

// collideLasers destroys the first live enemy each laser touches
// Formation slots are vacated and refilled before the next laser is tested
func (s *Simulation) collideLasers() {
	for i := range s.lasers {
		l := &s.lasers[i]
		if !l.Active {
			continue
		}
		s.roster.Each(func(e *enemy.Enemy) {
			if !l.Active || !e.Alive() {
				return
			}
			if physics.Overlaps(l.Pos, e.Pos, parameter.EnemyHitDistance) {
				l.Active = false
				s.destroyEnemy(e, enemy.CauseShot)
			}
		})
	}
}

// collidePlayer: any live enemy touching the ship destroys both
func (s *Simulation) collidePlayer() {
	if !s.player.Alive {
		return
	}
	s.roster.Each(func(e *enemy.Enemy) {
		if !s.player.Alive || !e.Alive() {
			return
		}
		if physics.Overlaps(s.player.Pos, e.Pos, parameter.PlayerHitDistance) {
			s.destroyEnemy(e, enemy.CauseCollision)
			s.killPlayer()
		}
	})
}

func (s *Simulation) destroyEnemy(e *enemy.Enemy, cause enemy.Cause) {
	pos := e.Pos
	if err := s.roster.Destroy(e.ID, cause); err != nil {
		s.logger.Warn("destroy enemy", "id", e.ID, "cause", cause.String(), "error", err)
		return
	}
	if cause == enemy.CauseShot {
		s.statKills.Add(1)
	}
	s.events.Emit(event.EventEnemyDestroyed, &event.EnemyDestroyedPayload{ID: e.ID, Cause: cause.String(), Pos: pos}, s.frame)
}

func (s *Simulation) killPlayer() {
	s.player.Alive = false
	s.player.Vel = vmath.Vec2{}
	s.intent.Clear()
	s.logger.Info("player destroyed", "frame", s.frame, "level", s.ctrl.Ordinal())
	s.ctrl.PlayerDestroyed()
}

// KillAll destroys every live enemy; debug aid for skipping levels
func (s *Simulation) KillAll() int {
	n := 0
	s.roster.Each(func(e *enemy.Enemy) {
		if e.Alive() {
			s.destroyEnemy(e, enemy.CauseShot)
			n++
		}
	})
	s.logger.Debug("kill all", "count", n)
	return n
}

func (s *Simulation) publish() {
	s.statFrame.Store(s.frame)
	s.statLive.Store(int64(s.roster.Live()))
	s.statFormation.Store(int64(s.roster.CountMode(enemy.ModeFormation)))
}

func (s *Simulation) Player() Player                { return s.player }
func (s *Simulation) Roster() *enemy.Roster         { return s.roster }
func (s *Simulation) Controller() *level.Controller { return s.ctrl }
func (s *Simulation) Bounds() physics.Bounds        { return s.bounds }
func (s *Simulation) Events() *event.EventQueue     { return s.events }
func (s *Simulation) Metrics() *status.Registry     { return s.metrics }
func (s *Simulation) Paused() bool                  { return s.paused }
func (s *Simulation) Debug() bool                   { return s.debug }
func (s *Simulation) Frame() int64                  { return s.frame }

// Lasers returns the number of lasers in flight
func (s *Simulation) Lasers() int {
	n := 0
	for i := range s.lasers {
		if s.lasers[i].Active {
			n++
		}
	}
	return n
}
