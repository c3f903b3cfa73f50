package audio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/void-ranks/event"
	"github.com/lixenwraith/void-ranks/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Player turns game events into fire-and-forget sound cues
// Without an audio device every call is a silent no-op
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	initialized bool
	muted       bool

	// out receives finished cue streamers; the speaker mixer once initialized
	out  func(beep.Streamer)
	now  func() time.Time
	last [cueCount]time.Time

	logger *slog.Logger
}

func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2},
		now:    time.Now,
		logger: logger,
	}
}

// Init opens the speaker; a second call is a no-op
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	p.master.Silent = p.muted
	speaker.Play(p.master)
	p.out = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	p.initialized = true
	return nil
}

// Close stops playback and releases the device
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.out = nil
	p.initialized = false
}

// Play queues one cue; returns false when muted, uninitialized or rate limited
func (p *Player) Play(c Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.out == nil || p.muted || c >= cueCount {
		return false
	}
	now := p.now()
	if now.Sub(p.last[c]) < parameter.MinSoundGap {
		return false
	}

	s, err := build(c, sampleRate)
	if err != nil {
		p.logger.Warn("audio cue", "cue", c.String(), "error", err)
		return false
	}
	p.last[c] = now
	p.out(s)
	return true
}

// SetMuted silences the master bus without dropping the device
func (p *Player) SetMuted(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = on
	if p.initialized {
		speaker.Lock()
		p.master.Silent = on
		speaker.Unlock()
	}
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	on := !p.muted
	p.mu.Unlock()
	p.SetMuted(on)
	return on
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Drain consumes every pending event and plays the mapped cues
// Returns the number of cues played
func (p *Player) Drain(q *event.EventQueue) int {
	n := 0
	for _, ev := range q.Consume() {
		if c, ok := CueFor(ev.Type); ok && p.Play(c) {
			n++
		}
	}
	return n
}

// Run drains q until ctx is done
func (p *Player) Run(ctx context.Context, q *event.EventQueue) {
	ticker := time.NewTicker(parameter.AudioDrainInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Drain(q)
		}
	}
}
