package engine

import (
	"fmt"

	"github.com/tmux-dojo/dojo/internal/layout"
	"github.com/tmux-dojo/dojo/internal/logging/events"
	"github.com/tmux-dojo/dojo/internal/token"
)

var arrowMoves = map[string]layout.Move{
	token.ArrowLeft:  layout.MoveLeft,
	token.ArrowRight: layout.MoveRight,
	token.ArrowUp:    layout.MoveUp,
	token.ArrowDown:  layout.MoveDown,
}

// handleCommand interprets the token following an armed prefix. Every
// command token is compared against the expected action afterwards,
// whether or not it changed anything.
func (e *Engine) handleCommand(tok string, res *Result) {
	e.prefix = false
	if e.mode == ModeFlash && tok != "q" {
		e.setMode(ModeIdle, "command")
	}
	if e.mode == ModeCopy {
		e.setMode(ModeIdle, "command")
	}

	if tok == token.Prefix {
		// a second prefix re-arms rather than running a command
		e.prefix = true
		events.Mode.Prefix(true)
		e.sess.AppendActive("Prefix activated: " + token.Label(token.Prefix))
		e.compare(tok, res)
		return
	}
	events.Mode.Prefix(false)
	e.sess.AppendActive(fmt.Sprintf("Command captured: %q", token.Label(tok)))

	w := e.sess.ActiveWindow()
	switch tok {
	case "%":
		e.split(layout.Vertical)
	case `"`:
		e.split(layout.Horizontal)
	case "c":
		created := e.sess.CreateWindow("")
		events.Window.Create(created.ID, created.Name, e.sess.WindowCount())
		res.Effect = EffectNewWindow
	case "n", "p":
		from := e.sess.ActiveIndex()
		delta := 1
		if tok == "p" {
			delta = -1
		}
		e.sess.CycleWindow(delta)
		events.Window.Switch(from, e.sess.ActiveIndex())
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		from := e.sess.ActiveIndex()
		n, _ := token.Digit(tok)
		if e.sess.SelectWindow(n) {
			events.Window.Switch(from, n)
		}
	case "z":
		events.Pane.Zoom(w.ActivePane, e.sess.ToggleZoom())
	case "t":
		e.sess.ShowClock(w.ActivePane)
		events.Pane.Clock(w.ActivePane, true)
		res.Effect = EffectClock
	case "q":
		e.setMode(ModeFlash, "command")
		res.Timers = append(res.Timers, e.schedule(TimerFlash, e.opts.FlashTimeout))
		res.Effect = EffectFlash
	case "x":
		e.target = TargetPane
		e.setMode(ModeConfirm, "command")
		e.sess.AppendActive("Kill pane? (y/n)")
	case "&":
		e.target = TargetWindow
		e.setMode(ModeConfirm, "command")
		e.sess.AppendActive("Kill window? (y/n)")
	case ",":
		e.input = nil
		e.setMode(ModeRename, "command")
		events.Window.RenamePrompt(w.ID)
	case ":":
		e.input = nil
		e.setMode(ModePrompt, "command")
	case "w":
		e.listing = ListWindows
		e.listCursor = e.sess.ActiveIndex()
		e.setMode(ModeListing, "command")
	case "s":
		e.listing = ListSessions
		e.listCursor = 0
		e.setMode(ModeListing, "command")
	case token.ArrowLeft, token.ArrowRight, token.ArrowUp, token.ArrowDown:
		if e.sess.MoveFocus(arrowMoves[tok]) {
			events.Pane.Focus(w.ID, w.ActivePane, e.sess.ActivePane())
		}
	case token.RotateKey:
		if e.sess.RotateActive() {
			events.Pane.Rotate(w.ID, layout.PaneIDs(e.sess.ActiveWindow().Layout))
		}
	case "{", "}":
		offset := -1
		if tok == "}" {
			offset = 1
		}
		if e.sess.SwapActive(offset) {
			events.Pane.Swap(w.ID, offset, layout.PaneIDs(e.sess.ActiveWindow().Layout))
		}
	case token.Space:
		if e.sess.ToggleLayout() {
			events.Pane.Layout(w.ID, layout.String(e.sess.ActiveWindow().Layout))
		}
	case "o":
		if e.sess.NextPane() {
			events.Pane.Focus(w.ID, w.ActivePane, e.sess.ActivePane())
		}
	case "d":
		e.setMode(ModeDetached, "command")
	case "[":
		e.setMode(ModeCopy, "command")
	}
	e.compare(tok, res)
}

func (e *Engine) split(dir layout.Direction) {
	w := e.sess.ActiveWindow()
	if created := e.sess.SplitActive(dir); created != "" {
		events.Pane.Split(w.ID, w.ActivePane, created, dir.String())
	}
}
