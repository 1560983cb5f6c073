package events

import "github.com/tmux-dojo/dojo/internal/logging"

type WindowTracer struct{}

type windowReason string

const (
	ReasonEscape windowReason = "escape"
	ReasonSelect windowReason = "select"
)

var Window = WindowTracer{}

func (WindowTracer) Create(id, name string, count int) {
	logging.Trace("window.create", map[string]interface{}{"id": id, "name": name, "count": count})
}

func (WindowTracer) Switch(from, to int) {
	logging.Trace("window.switch", map[string]interface{}{"from": from, "to": to})
}

func (WindowTracer) Kill(id string, remaining int) {
	logging.Trace("window.kill", map[string]interface{}{"id": id, "remaining": remaining})
}

func (WindowTracer) RenamePrompt(target string) {
	logging.Trace("window.rename.prompt", map[string]interface{}{"target": target})
}

func (WindowTracer) SubmitRename(target, name string) {
	logging.Trace("window.rename.submit", map[string]interface{}{"target": target, "name": name})
}

func (WindowTracer) CancelRename(target string, reason windowReason) {
	logging.Trace("window.rename.cancel", map[string]interface{}{"target": target, "reason": string(reason)})
}

func (WindowTracer) ListCursor(cursor int) {
	logging.Trace("window.list.cursor", map[string]interface{}{"cursor": cursor})
}

func (WindowTracer) ListClose(reason windowReason, selected int) {
	logging.Trace("window.list.close", map[string]interface{}{"reason": string(reason), "selected": selected})
}
