package sim

import (
	"sync"
	"time"

	"github.com/lixenwraith/void-ranks/input"
)

// InputSource yields the input events gathered since the previous poll
type InputSource interface {
	Poll() []input.Event
}

// Clock supplies frame timestamps
type Clock interface {
	Now() time.Time
}

// Sink receives the render snapshot of one frame
type Sink interface {
	Submit(d Drawable)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(d Drawable)

func (f SinkFunc) Submit(d Drawable) { f(d) }

// RunFrame applies pending input, advances the simulation by dt and submits
// the snapshot; a nil sink skips drawing
func RunFrame(s *Simulation, in InputSource, dt time.Duration, out Sink) error {
	if in != nil {
		for _, ev := range in.Poll() {
			if err := s.HandleInput(ev); err != nil {
				return err
			}
		}
	}
	if err := s.Tick(dt); err != nil {
		return err
	}
	if out != nil {
		for _, d := range s.Snapshot() {
			out.Submit(d)
		}
	}
	return nil
}

// Runner drives RunFrame from a clock, deriving dt between calls
type Runner struct {
	sim   *Simulation
	clock Clock
	input InputSource
	sink  Sink
	last  time.Time
}

func NewRunner(s *Simulation, clock Clock, in InputSource, out Sink) *Runner {
	if clock == nil {
		clock = WallClock{}
	}
	return &Runner{sim: s, clock: clock, input: in, sink: out, last: clock.Now()}
}

// Frame runs one frame; the first call after construction uses the time since NewRunner
func (r *Runner) Frame() error {
	now := r.clock.Now()
	dt := now.Sub(r.last)
	r.last = now
	return RunFrame(r.sim, r.input, dt, r.sink)
}

// WallClock reads the monotonic system clock
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// MockClock is a controllable clock for tests
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// QueueInput is an InputSource fed by Push; safe for a producer goroutine
type QueueInput struct {
	mu     sync.Mutex
	events []input.Event
}

func (q *QueueInput) Push(ev input.Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

func (q *QueueInput) Poll() []input.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}
