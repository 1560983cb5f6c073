package events

import "github.com/tmux-dojo/dojo/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(raw, token string) {
	logging.Trace("ui.key", map[string]interface{}{"raw": raw, "token": token})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) PickerOpen(levelID int) {
	logging.Trace("picker.open", map[string]interface{}{"level": levelID})
}

func (UITracer) PickerCursor(cursor int) {
	logging.Trace("picker.cursor", map[string]interface{}{"cursor": cursor})
}

func (UITracer) PickerClose(selected int, ok bool) {
	logging.Trace("picker.close", map[string]interface{}{"level": selected, "selected": ok})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Changed(filter string, matches int) {
	logging.Trace("filter.change", map[string]interface{}{"filter": filter, "matches": matches})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
