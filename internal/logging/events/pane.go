package events

import "github.com/tmux-dojo/dojo/internal/logging"

type PaneTracer struct{}

var Pane = PaneTracer{}

func (PaneTracer) Split(window, target, created, direction string) {
	logging.Trace("pane.split", map[string]interface{}{"window": window, "target": target, "created": created, "direction": direction})
}

func (PaneTracer) Kill(window, target, outcome string) {
	logging.Trace("pane.kill", map[string]interface{}{"window": window, "target": target, "outcome": outcome})
}

func (PaneTracer) Focus(window, from, to string) {
	logging.Trace("pane.focus", map[string]interface{}{"window": window, "from": from, "to": to})
}

func (PaneTracer) Rotate(window string, order []string) {
	logging.Trace("pane.rotate", map[string]interface{}{"window": window, "order": order})
}

func (PaneTracer) Swap(window string, offset int, order []string) {
	logging.Trace("pane.swap", map[string]interface{}{"window": window, "offset": offset, "order": order})
}

func (PaneTracer) Layout(window, layout string) {
	logging.Trace("pane.layout", map[string]interface{}{"window": window, "layout": layout})
}

func (PaneTracer) Zoom(target string, zoomed bool) {
	logging.Trace("pane.zoom", map[string]interface{}{"target": target, "zoomed": zoomed})
}

func (PaneTracer) Clock(target string, shown bool) {
	logging.Trace("pane.clock", map[string]interface{}{"target": target, "shown": shown})
}
