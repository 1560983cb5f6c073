package engine

import (
	"time"

	"github.com/tmux-dojo/dojo/internal/logging/events"
	"github.com/tmux-dojo/dojo/internal/token"
)

// Handle processes one input token to completion.
//
// Interceptors are consulted in a fixed order: a finished level (only
// Enter/Space, once feedback is visible), detached client, choose-tree
// list, armed prefix, clock on the active pane, pane index flash, kill
// confirmation, rename and command prompts, copy mode, and finally the
// idle grammar.
// Overlays never see the token that follows an armed prefix.
func (e *Engine) Handle(tok string) Result {
	res := Result{Token: tok}
	e.lastKey = tok
	tapped := e.lastTap
	e.lastTap = time.Time{}

	if e.status == StatusSucceeded {
		if e.feedbackReady && (tok == token.Enter || tok == token.Space) {
			var read *Completion
			if len(e.level.Actions) == 0 {
				// reading a level with nothing to press counts once the
				// player moves on
				read = e.record()
			}
			adv := e.Advance()
			adv.Token = tok
			adv.Completion = read
			return adv
		}
		events.Mode.Swallow("succeeded", tok)
		return res
	}

	active := e.sess.ActivePane()
	switch {
	case e.mode == ModeDetached:
		e.setMode(ModeIdle, "attach")
	case e.mode == ModeListing:
		e.handleListing(tok, &res)
	case e.prefix:
		e.handleCommand(tok, &res)
	case tok != token.Prefix && e.sess.HasClock(active):
		e.handleClock(tok, active, &res)
	case tok != token.Prefix && e.mode == ModeFlash:
		e.handleFlash(tok, &res)
	case e.mode == ModeConfirm:
		e.handleConfirm(tok, &res)
	case e.mode == ModeRename:
		e.handleTextEntry(tok, &res, e.submitRename, e.cancelRename)
	case e.mode == ModePrompt:
		e.handleTextEntry(tok, &res, e.submitPrompt, e.cancelPrompt)
	case tok != token.Prefix && e.mode == ModeCopy:
		e.handleCopy(tok, &res)
	default:
		return e.handleIdle(tok, tapped, res)
	}
	return res
}

func (e *Engine) listLen() int {
	if e.listing == ListSessions {
		return 1
	}
	return e.sess.WindowCount()
}

func (e *Engine) handleListing(tok string, res *Result) {
	n := e.listLen()
	switch tok {
	case token.ArrowUp:
		e.listCursor = ((e.listCursor-1)%n + n) % n
		events.Window.ListCursor(e.listCursor)
		e.compareFree(tok, res)
	case token.ArrowDown:
		e.listCursor = (e.listCursor + 1) % n
		events.Window.ListCursor(e.listCursor)
		e.compareFree(tok, res)
	case token.Enter:
		events.Window.ListClose(events.ReasonSelect, e.listCursor)
		if e.listing == ListWindows {
			from := e.sess.ActiveIndex()
			e.sess.SelectWindow(e.listCursor)
			events.Window.Switch(from, e.sess.ActiveIndex())
		}
		e.setMode(ModeIdle, "select")
		e.compare(tok, res)
	case token.Escape, "q":
		events.Window.ListClose(events.ReasonEscape, e.listCursor)
		e.setMode(ModeIdle, "escape")
		e.compare(tok, res)
	default:
		events.Mode.Swallow(ModeListing.String(), tok)
	}
}

func (e *Engine) handleClock(tok, pane string, res *Result) {
	if tok != token.Escape {
		events.Mode.Swallow("clock", tok)
		return
	}
	e.sess.HideClock(pane)
	events.Pane.Clock(pane, false)
	e.compare(tok, res)
}

func (e *Engine) handleFlash(tok string, res *Result) {
	n, isDigit := token.Digit(tok)
	if !isDigit {
		e.setMode(ModeIdle, "dismiss")
		return
	}
	from := e.sess.ActivePane()
	if e.sess.SelectPaneIndex(n) {
		events.Pane.Focus(e.sess.ActiveWindow().ID, from, e.sess.ActivePane())
	}
	e.setMode(ModeIdle, "jump")
	e.compare(tok, res)
}

func (e *Engine) handleConfirm(tok string, res *Result) {
	switch tok {
	case "y":
		w := e.sess.ActiveWindow()
		switch e.target {
		case TargetPane:
			outcome := e.sess.KillActivePane()
			events.Pane.Kill(w.ID, w.ActivePane, outcome.String())
		case TargetWindow:
			if e.sess.CloseActiveWindow() {
				events.Window.Kill(w.ID, e.sess.WindowCount())
			}
		}
		e.target = TargetNone
		e.setMode(ModeIdle, "confirm")
		e.compare(tok, res)
	case "n", token.Escape:
		e.target = TargetNone
		e.setMode(ModeIdle, "cancel")
		events.Level.Mismatch(e.level.ID, e.progress, tok, e.Expected())
		res.Accepted = true
		res.ResetProgress = true
		e.progress = 0
	default:
		events.Mode.Swallow(ModeConfirm.String(), tok)
	}
}

// handleTextEntry edits the shared input line of the rename and command
// prompts. Enter and Escape end the prompt and are compared against the
// expected action; typing is free.
func (e *Engine) handleTextEntry(tok string, res *Result, submit func(string), cancel func()) {
	switch {
	case tok == token.Enter:
		submit(string(e.input))
		e.input = nil
		e.setMode(ModeIdle, "submit")
		e.compare(tok, res)
	case tok == token.Escape:
		cancel()
		e.input = nil
		e.setMode(ModeIdle, "escape")
		e.compare(tok, res)
	case tok == token.Backspace:
		if len(e.input) > 0 {
			e.input = e.input[:len(e.input)-1]
		}
	case token.IsRune(tok):
		e.input = append(e.input, []rune(tok)...)
	default:
		events.Mode.Swallow(e.mode.String(), tok)
	}
}

func (e *Engine) submitRename(name string) {
	w := e.sess.ActiveWindow()
	e.sess.RenameWindow(e.sess.ActiveIndex(), name)
	events.Window.SubmitRename(w.ID, e.sess.ActiveWindow().Name)
}

func (e *Engine) cancelRename() {
	events.Window.CancelRename(e.sess.ActiveWindow().ID, events.ReasonEscape)
}

// submitPrompt acknowledges the command line without running it.
func (e *Engine) submitPrompt(command string) {
	events.Mode.Prompt(command)
	e.sess.AppendActive("Command executed.")
}

func (e *Engine) cancelPrompt() {}

func (e *Engine) handleCopy(tok string, res *Result) {
	if tok == "q" || tok == token.Escape {
		e.setMode(ModeIdle, "exit")
		e.compare(tok, res)
		return
	}
	events.Mode.Swallow(ModeCopy.String(), tok)
}

func (e *Engine) handleIdle(tok string, tapped time.Time, res Result) Result {
	if tok == token.Prefix {
		e.prefix = true
		events.Mode.Prefix(true)
		e.sess.AppendActive("Prefix activated: " + token.Label(token.Prefix))
		e.compare(tok, &res)
		return res
	}
	if tok != e.opts.ResetKey {
		e.compare(tok, &res)
		return res
	}
	now := e.opts.Now()
	if !tapped.IsZero() && now.Sub(tapped) <= e.opts.ResetWindow {
		e.compare(tok, &res)
		if res.Completion != nil {
			return res
		}
		reset := e.Reset()
		reset.Token = tok
		reset.Accepted = true
		return reset
	}
	e.lastTap = now
	e.compare(tok, &res)
	return res
}
