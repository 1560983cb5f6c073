package command

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmux-dojo/dojo/internal/backend"
	"github.com/tmux-dojo/dojo/internal/engine"
	"github.com/tmux-dojo/dojo/internal/logging/events"
)

// TimerMsg delivers an engine timer once its delay has elapsed.
type TimerMsg struct {
	Timer engine.Timer
}

// DroppedMsg reports a persistence request the recorder could not accept.
type DroppedMsg struct {
	Request backend.Request
}

// Bus turns engine timers and persistence requests into Bubble Tea
// commands.
type Bus struct {
	submit  func(backend.Request) bool
	manual  bool
	pending []engine.Timer
}

// New initialises a command bus. submit may be nil when progress is not
// persisted.
func New(submit func(backend.Request) bool) *Bus {
	return &Bus{submit: submit}
}

// Manual switches the bus to holding timers until Drain is called instead
// of ticking them on the wall clock.
func (b *Bus) Manual() {
	b.manual = true
}

// Drain returns and forgets the held timers.
func (b *Bus) Drain() []engine.Timer {
	out := b.pending
	b.pending = nil
	return out
}

// Schedule wraps a timer into a tick command while emitting trace logs.
func (b *Bus) Schedule(t engine.Timer) tea.Cmd {
	id := fmt.Sprintf("timer:%s:%d", t.Kind, t.Gen)
	events.Command.Queue(id, t.Delay.String())
	if b.manual {
		b.pending = append(b.pending, t)
		return nil
	}
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		msg := TimerMsg{Timer: t}
		events.Command.Result(id, t.Delay.String(), fmt.Sprintf("%T", msg))
		return msg
	})
}

// Record hands a request to the recorder. The returned command yields a
// DroppedMsg when the request could not be queued.
func (b *Bus) Record(req backend.Request) tea.Cmd {
	id := "record:" + req.Kind.String()
	events.Command.Queue(id, req.Title+req.Stat)
	if b.submit == nil {
		events.Command.Skip(id, req.Title+req.Stat)
		return nil
	}
	submit := b.submit
	return func() tea.Msg {
		if submit(req) {
			events.Command.NoOp(id, req.Title+req.Stat)
			return nil
		}
		msg := DroppedMsg{Request: req}
		events.Command.Result(id, req.Title+req.Stat, fmt.Sprintf("%T", msg))
		return msg
	}
}
