package status

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// Metric keys written by the simulation
const (
	KeyFrame        = "sim.frame"
	KeyLevel        = "level.ordinal"
	KeyLevelState   = "level.state"
	KeyEnemiesLive  = "enemy.live"
	KeyFormation    = "enemy.formation"
	KeySpawnDropped = "spawn.dropped"
	KeyBreakouts    = "enemy.breakouts"
	KeyKills        = "enemy.kills"
	KeyWarps        = "player.warps"
	KeyWells        = "wells.active"
	KeyPaused       = "sim.paused"
	KeyGravity      = "player.gravity"
)

// Registry is the central metrics facade
// Writers cache pointers at construction; per-tick updates hit the atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Lines renders every metric as "key value", grouped by type, keys sorted
func (r *Registry) Lines() []string {
	out := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, fmt.Sprintf("%s %s", k, humanize.Comma(v.Load())))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, fmt.Sprintf("%s %s", k, humanize.FormatFloat("#,###.##", v.Get())))
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out = append(out, fmt.Sprintf("%s %s", k, strconv.FormatBool(v.Load())))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, fmt.Sprintf("%s %s", k, v.Load()))
	})
	return out
}
