package terminal

import (
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/void-ranks/input"
	"github.com/lixenwraith/void-ranks/parameter"
)

// Input is a sim.InputSource reading a tcell screen
// A reader goroutine feeds a buffered channel; Poll drains it without blocking
type Input struct {
	events chan tcell.Event
	tr     *Translator
	now    func() time.Time

	quit    atomic.Bool
	resized atomic.Bool

	// OnMute is called on the mute action; nil ignores it
	OnMute func()
}

func NewInput(tr *Translator) *Input {
	return &Input{
		events: make(chan tcell.Event, parameter.InputBufferSize),
		tr:     tr,
		now:    time.Now,
	}
}

// Listen pumps screen events until the screen is finalized
// Run it with core.Go so a panic restores the terminal
func (in *Input) Listen(s tcell.Screen) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		in.events <- ev
	}
}

// Poll translates every buffered terminal event and expires held keys
func (in *Input) Poll() []input.Event {
	var out []input.Event
	for {
		select {
		case ev := <-in.events:
			out = in.handle(ev, out)
		default:
			return in.tr.Expire(in.now(), out)
		}
	}
}

func (in *Input) handle(ev tcell.Event, out []input.Event) []input.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		var a input.Action
		out, a = in.tr.Key(e.Key(), e.Rune(), in.now(), out)
		switch a {
		case input.ActionQuit:
			in.quit.Store(true)
		case input.ActionMute:
			if in.OnMute != nil {
				in.OnMute()
			}
		}
	case *tcell.EventResize:
		in.resized.Store(true)
	case *tcell.EventFocus:
		if !e.Focused {
			out = in.tr.ReleaseAll(out)
			out = append(out, input.Event{Kind: input.KindFocusLost})
		}
	}
	return out
}

// Quit reports whether the quit action was pressed
func (in *Input) Quit() bool { return in.quit.Load() }

// Resized reports and clears a pending resize
func (in *Input) Resized() bool { return in.resized.Swap(false) }
