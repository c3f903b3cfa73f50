package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/void-ranks/event"
	"github.com/lixenwraith/void-ranks/parameter"
)

// Cue is one synthesized sound effect
type Cue uint8

const (
	CueLaser Cue = iota
	CueExplosion
	CueWarp
	CueBreakout
	CueFanfare
	CueGameOver
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueLaser:
		return "laser"
	case CueExplosion:
		return "explosion"
	case CueWarp:
		return "warp"
	case CueBreakout:
		return "breakout"
	case CueFanfare:
		return "fanfare"
	case CueGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// CueFor maps a game event to its sound; silent events return false
func CueFor(t event.EventType) (Cue, bool) {
	switch t {
	case event.EventLaserFired:
		return CueLaser, true
	case event.EventEnemyDestroyed:
		return CueExplosion, true
	case event.EventWarp:
		return CueWarp, true
	case event.EventBreakout:
		return CueBreakout, true
	case event.EventLevelCleared, event.EventGameComplete:
		return CueFanfare, true
	case event.EventGameOver:
		return CueGameOver, true
	}
	return 0, false
}

// build returns a finite streamer for the cue at the given rate
func build(c Cue, sr beep.SampleRate) (beep.Streamer, error) {
	var s beep.Streamer
	var err error

	switch c {
	case CueLaser:
		s, err = tone(generators.SquareTone, sr, parameter.LaserCueFreq, parameter.LaserCueDuration)
	case CueExplosion:
		s = beep.Take(sr.N(parameter.ExplosionCueDuration), &noise{sr: sr, seed: 0x2545f491})
	case CueWarp:
		s, err = tone(generators.TriangleTone, sr, parameter.WarpCueFreq, parameter.WarpCueDuration)
	case CueBreakout:
		s, err = tone(generators.SineTone, sr, parameter.BreakoutCueFreq, parameter.BreakoutCueDuration)
	case CueFanfare:
		// Rising major third then fifth
		step := parameter.FanfareCueDuration / 3
		var parts []beep.Streamer
		for _, mul := range []float64{1, 1.25, 1.5} {
			p, perr := tone(generators.SineTone, sr, parameter.FanfareCueFreq*mul, step)
			if perr != nil {
				return nil, perr
			}
			parts = append(parts, p)
		}
		s = beep.Seq(parts...)
	case CueGameOver:
		s, err = tone(generators.SawtoothTone, sr, parameter.GameOverCueFreq, parameter.GameOverCueDuration)
	default:
		return nil, fmt.Errorf("unknown cue %d", c)
	}
	if err != nil {
		return nil, err
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: parameter.CueVolume}, nil
}

func tone(gen func(beep.SampleRate, float64) (beep.Streamer, error), sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	s, err := gen(sr, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sr.N(d), s), nil
}

// noise is a decaying crackle with a low rumble
type noise struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

func (g *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 12)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		white := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := 0.4 * math.Sin(2*math.Pi*70*t)

		v := env * (0.6*white + rumble)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }
