package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmux-dojo/dojo/internal/ui/command"
)

// Harness drives the UI model programmatically for integration tests.
// Timers are held on the bus and only fire through FireTimers. Models
// built with a Recorder would block on its event stream, so tests feed
// recorder events through Send instead.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model and runs its Init
// commands.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model}
	if model == nil {
		return h
	}
	model.bus.Manual()
	h.processCmd(model.Init())
	return h
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Keys sends each string as a key press. Single characters become rune
// keys; anything else is looked up as a named key such as "ctrl+b".
func (h *Harness) Keys(keys ...string) {
	for _, k := range keys {
		h.Send(keyMsg(k))
	}
}

// FireTimers delivers every held timer in scheduling order, including
// timers scheduled while firing, and returns how many fired.
func (h *Harness) FireTimers() int {
	if h.model == nil {
		return 0
	}
	fired := 0
	for {
		pending := h.model.bus.Drain()
		if len(pending) == 0 {
			return fired
		}
		for _, t := range pending {
			h.Send(command.TimerMsg{Timer: t})
			fired++
		}
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range m {
			h.processCmd(c)
		}
		return
	case tea.QuitMsg:
		h.quit = true
		return
	}
	h.Send(msg)
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

var namedKeys = map[string]tea.KeyType{
	"ctrl+b":    tea.KeyCtrlB,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+h":    tea.KeyCtrlH,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+o":    tea.KeyCtrlO,
	"ctrl+p":    tea.KeyCtrlP,
	"ctrl+r":    tea.KeyCtrlR,
	"ctrl+t":    tea.KeyCtrlT,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+w":    tea.KeyCtrlW,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
}

func keyMsg(k string) tea.KeyMsg {
	if t, ok := namedKeys[k]; ok {
		if t == tea.KeySpace {
			return tea.KeyMsg{Type: t, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
