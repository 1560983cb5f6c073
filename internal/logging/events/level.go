package events

import "github.com/tmux-dojo/dojo/internal/logging"

type LevelTracer struct{}

type ModeTracer struct{}

var (
	Level = LevelTracer{}
	Mode  = ModeTracer{}
)

func (LevelTracer) Load(id int, title, reason string) {
	logging.Trace("level.load", map[string]interface{}{"level": id, "title": title, "reason": reason})
}

func (LevelTracer) Progress(id, progress, total int, token string) {
	logging.Trace("level.progress", map[string]interface{}{"level": id, "progress": progress, "total": total, "token": token})
}

func (LevelTracer) Mismatch(id, was int, token, expected string) {
	logging.Trace("level.mismatch", map[string]interface{}{"level": id, "was": was, "token": token, "expected": expected})
}

func (LevelTracer) Complete(id, count int) {
	logging.Trace("level.complete", map[string]interface{}{"level": id, "count": count})
}

func (LevelTracer) Feedback(id int) {
	logging.Trace("level.feedback", map[string]interface{}{"level": id})
}

func (LevelTracer) Fallback(id int, err error) {
	logging.Trace("level.fallback", map[string]interface{}{"level": id, "error": err.Error()})
}

func (ModeTracer) Enter(mode string) {
	logging.Trace("mode.enter", map[string]interface{}{"mode": mode})
}

func (ModeTracer) Exit(mode, reason string) {
	logging.Trace("mode.exit", map[string]interface{}{"mode": mode, "reason": reason})
}

func (ModeTracer) Prefix(armed bool) {
	logging.Trace("mode.prefix", map[string]interface{}{"armed": armed})
}

func (ModeTracer) Prompt(command string) {
	logging.Trace("mode.prompt", map[string]interface{}{"command": command})
}

func (ModeTracer) Swallow(mode, token string) {
	logging.Trace("mode.swallow", map[string]interface{}{"mode": mode, "token": token})
}

func (ModeTracer) TimerStale(kind string, gen uint64) {
	logging.Trace("mode.timer.stale", map[string]interface{}{"kind": kind, "gen": gen})
}
