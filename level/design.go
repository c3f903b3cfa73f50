package level

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lixenwraith/void-ranks/formation"
	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/physics"
	"github.com/lixenwraith/void-ranks/vmath"
)

// ErrInvalidDesign wraps every level authoring error
var ErrInvalidDesign = errors.New("invalid level design")

// RuleNameTable selects the explicit per-slot fill table of a design
const RuleNameTable = "table"

// Duration decodes TOML strings like "4s" or "1m30s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Point is an [x, y] pair in playfield cells
type Point [2]float64

func (p Point) Vec() vmath.Vec2 { return vmath.V(p[0], p[1]) }

// WellDesign places one gravity well
type WellDesign struct {
	Position Point    `toml:"position"`
	Velocity Point    `toml:"velocity"`
	Strength float64  `toml:"strength"`
	Radius   float64  `toml:"radius"`
	Lifetime Duration `toml:"lifetime"`
}

// SpawnDesign releases Count free enemies once level time reaches At
type SpawnDesign struct {
	At    Duration `toml:"at"`
	Count int      `toml:"count"`
}

// FillEntry is one row of an explicit fill table: slot [rank, slot] refills from From in order
type FillEntry struct {
	Slot [2]int   `toml:"slot"`
	From [][2]int `toml:"from"`
}

// Design is the authored description of one level
type Design struct {
	Name             string        `toml:"name"`
	Ranks            int           `toml:"ranks"`
	SlotsPerRank     int           `toml:"slots_per_rank"`
	FillRule         string        `toml:"fill_rule"`
	Fill             []FillEntry   `toml:"fill"`
	FormationSpeed   float64       `toml:"formation_speed"`
	FormationOrigin  Point         `toml:"formation_origin"`
	SlotSpacing      Point         `toml:"slot_spacing"`
	BreakoutInterval Duration      `toml:"breakout_interval"`
	AttackChance     float64       `toml:"attack_chance"`
	Wells            []WellDesign  `toml:"well"`
	Spawns           []SpawnDesign `toml:"spawn"`
}

// Rule resolves the fill rule, building the explicit table when selected
func (d *Design) Rule() (formation.FillRule, error) {
	if d.FillRule != RuleNameTable {
		return formation.RuleByName(d.FillRule)
	}
	table := make(map[formation.SlotRef][]formation.SlotRef, len(d.Fill))
	for _, e := range d.Fill {
		ref := formation.SlotRef{Rank: e.Slot[0], Slot: e.Slot[1]}
		if ref.Rank < 0 || ref.Rank >= d.Ranks || ref.Slot < 0 || ref.Slot >= d.SlotsPerRank {
			return nil, fmt.Errorf("fill entry for slot %v: %w", ref, formation.ErrFillFromRange)
		}
		if _, dup := table[ref]; dup {
			return nil, fmt.Errorf("duplicate fill entry for slot %v", ref)
		}
		src := make([]formation.SlotRef, 0, len(e.From))
		for _, f := range e.From {
			src = append(src, formation.SlotRef{Rank: f[0], Slot: f[1]})
		}
		table[ref] = src
	}
	return formation.Table(table), nil
}

// Validate checks a design without building it
// Fill rules are checked by a dry-run populate, so range, self and cycle errors
// surface at load time rather than at level start
func (d *Design) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: level %q: %s", ErrInvalidDesign, d.Name, fmt.Sprintf(format, args...))
	}

	if d.Ranks < 1 || d.Ranks > parameter.MaxFormationRanks {
		return fail("ranks %d outside 1..%d", d.Ranks, parameter.MaxFormationRanks)
	}
	if d.SlotsPerRank < 1 || d.SlotsPerRank > parameter.MaxSlotsPerRank {
		return fail("slots_per_rank %d outside 1..%d", d.SlotsPerRank, parameter.MaxSlotsPerRank)
	}
	if d.FormationSpeed < 0 {
		return fail("formation_speed %v is negative", d.FormationSpeed)
	}
	if d.SlotSpacing[0] <= 0 || d.SlotSpacing[1] <= 0 {
		return fail("slot_spacing %v must be positive", d.SlotSpacing)
	}
	if d.BreakoutInterval.Duration < 0 {
		return fail("breakout_interval %v is negative", d.BreakoutInterval)
	}
	if d.AttackChance < 0 || d.AttackChance > 1 {
		return fail("attack_chance %v outside 0..1", d.AttackChance)
	}
	if len(d.Wells) > parameter.MaxWells {
		return fail("%d wells (max %d)", len(d.Wells), parameter.MaxWells)
	}
	for i, s := range d.Spawns {
		if s.Count < 0 || s.At.Duration < 0 {
			return fail("spawn %d: negative count or time", i)
		}
	}

	rule, err := d.Rule()
	if err != nil {
		return fmt.Errorf("%w: level %q: %w", ErrInvalidDesign, d.Name, err)
	}
	if err := formation.New(vmath.Vec2{}, vmath.Vec2{}).Populate(d.Ranks, d.SlotsPerRank, rule, nil); err != nil {
		return fmt.Errorf("%w: level %q: %w", ErrInvalidDesign, d.Name, err)
	}
	return nil
}

// Scaled returns the design tuned for a 1-based ordinal
// Speed grows by SpeedScalePerLevel per level, breakouts come faster by the
// same factor, and attack chance rises linearly up to 1
func (d Design) Scaled(ordinal int) Design {
	n := float64(max(ordinal, 1) - 1)
	factor := 1 + parameter.SpeedScalePerLevelFloat*n

	out := d
	out.FormationSpeed = d.FormationSpeed * factor
	out.BreakoutInterval.Duration = time.Duration(float64(d.BreakoutInterval.Duration) / factor)
	out.AttackChance = math.Min(1, d.AttackChance+parameter.AttackChanceScalePerLevelFloat*n)

	out.Spawns = append([]SpawnDesign(nil), d.Spawns...)
	sort.SliceStable(out.Spawns, func(i, j int) bool { return out.Spawns[i].At.Duration < out.Spawns[j].At.Duration })
	return out
}

// Well builds the physics well for a well design; negative values clamp to 0
func (w WellDesign) Well() physics.Well {
	return physics.NewWell(w.Position.Vec(), w.Velocity.Vec(), vmath.FromFloat(w.Strength), vmath.FromFloat(w.Radius), w.Lifetime.Duration)
}
