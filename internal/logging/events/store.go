package events

import "github.com/tmux-dojo/dojo/internal/logging"

type StoreTracer struct{}

var Store = StoreTracer{}

func (StoreTracer) Open(path string) {
	logging.Trace("store.open", map[string]interface{}{"path": path})
}

func (StoreTracer) Completion(level, count int) {
	logging.Trace("store.completion", map[string]interface{}{"level": level, "count": count})
}

func (StoreTracer) Stat(name string, total int) {
	logging.Trace("store.stat", map[string]interface{}{"name": name, "total": total})
}

func (StoreTracer) Medal(id string) {
	logging.Trace("store.medal", map[string]interface{}{"medal": id})
}

func (StoreTracer) Dropped(kind string) {
	logging.Trace("store.dropped", map[string]interface{}{"kind": kind})
}
