package audio

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/void-ranks/event"
	"github.com/lixenwraith/void-ranks/parameter"
)

// capturePlayer is a Player wired to a slice instead of the speaker
func capturePlayer() (*Player, *[]beep.Streamer, *time.Time) {
	p := NewPlayer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var got []beep.Streamer
	now := time.Unix(100, 0)
	p.out = func(s beep.Streamer) { got = append(got, s) }
	p.now = func() time.Time { return now }
	return p, &got, &now
}

func drainSamples(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer(nil)
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()
	if p.Play(CueLaser) {
		t.Error("Expected Play to report false without a device")
	}
	p.SetMuted(true)
	p.Close()
}

func TestCueStreamsAreFinite(t *testing.T) {
	tests := []struct {
		cue Cue
		dur time.Duration
	}{
		{CueLaser, parameter.LaserCueDuration},
		{CueExplosion, parameter.ExplosionCueDuration},
		{CueWarp, parameter.WarpCueDuration},
		{CueBreakout, parameter.BreakoutCueDuration},
		{CueGameOver, parameter.GameOverCueDuration},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s, err := build(tt.cue, sampleRate)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if got, want := drainSamples(s), sampleRate.N(tt.dur); got != want {
				t.Errorf("Expected %d samples, got %d", want, got)
			}
		})
	}

	s, err := build(CueFanfare, sampleRate)
	if err != nil {
		t.Fatalf("build fanfare failed: %v", err)
	}
	if got := drainSamples(s); got != 3*sampleRate.N(parameter.FanfareCueDuration/3) {
		t.Errorf("Expected three fanfare notes, got %d samples", got)
	}
}

func TestPlayRateLimitAndMute(t *testing.T) {
	p, got, now := capturePlayer()

	if !p.Play(CueLaser) {
		t.Fatal("Expected first cue played")
	}
	if p.Play(CueLaser) {
		t.Error("Expected same cue within MinSoundGap dropped")
	}
	if !p.Play(CueExplosion) {
		t.Error("Expected a different cue unaffected by the gap")
	}

	*now = now.Add(parameter.MinSoundGap)
	if !p.Play(CueLaser) {
		t.Error("Expected cue played once the gap elapsed")
	}

	if !p.ToggleMute() || !p.Muted() {
		t.Fatal("Expected mute on")
	}
	*now = now.Add(time.Second)
	if p.Play(CueWarp) {
		t.Error("Expected muted player to drop cues")
	}
	if len(*got) != 3 {
		t.Errorf("Expected 3 streamers delivered, got %d", len(*got))
	}
}

func TestDrainMapsEvents(t *testing.T) {
	p, got, _ := capturePlayer()
	q := event.NewEventQueue()

	q.Emit(event.EventLaserFired, nil, 1)
	q.Emit(event.EventSpawnDropped, &event.SpawnDroppedPayload{Reason: "roster full", Count: 1}, 1)
	q.Emit(event.EventEnemyDestroyed, &event.EnemyDestroyedPayload{}, 2)
	q.Emit(event.EventLevelStarted, &event.LevelPayload{Ordinal: 2}, 3)
	q.Emit(event.EventGameOver, nil, 4)

	if n := p.Drain(q); n != 3 {
		t.Errorf("Expected 3 cues from 5 events, got %d", n)
	}
	if len(*got) != 3 {
		t.Errorf("Expected 3 streamers, got %d", len(*got))
	}
	if q.Len() != 0 {
		t.Errorf("Expected queue drained, got %d", q.Len())
	}
}
