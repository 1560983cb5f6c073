package ui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmux-dojo/dojo/internal/backend"
	"github.com/tmux-dojo/dojo/internal/engine"
	"github.com/tmux-dojo/dojo/internal/logging/events"
	"github.com/tmux-dojo/dojo/internal/store"
	"github.com/tmux-dojo/dojo/internal/ui/command"
)

const infoTTL = 5 * time.Second

// statForEffect maps engine effects to the counters medals are based on.
var statForEffect = map[engine.Effect]string{
	engine.EffectClock:     store.StatClocks,
	engine.EffectFlash:     store.StatFlashes,
	engine.EffectNewWindow: store.StatWindows,
}

// applyResult turns what the engine did into commands: timers to tick and
// progress to persist.
func (m *Model) applyResult(res engine.Result) tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range res.Timers {
		cmds = append(cmds, m.bus.Schedule(t))
	}
	if stat, ok := statForEffect[res.Effect]; ok {
		cmds = append(cmds, m.bus.Record(backend.Request{Kind: backend.KindStat, Stat: stat}))
	}
	if c := res.Completion; c != nil {
		events.Action.Success(fmt.Sprintf("level %d complete (x%d)", c.LevelID, c.Count))
		cmds = append(cmds, m.bus.Record(backend.Request{
			Kind:    backend.KindCompletion,
			LevelID: c.LevelID,
			Title:   c.Title,
		}))
	}
	switch res.Effect {
	case engine.EffectAdvance, engine.EffectReset:
		m.errMsg = ""
		m.forceClearInfo()
	}
	return batch(cmds)
}

func (m *Model) handleTimerMsg(msg tea.Msg) tea.Cmd {
	timer, ok := msg.(command.TimerMsg)
	if !ok {
		return nil
	}
	return m.applyResult(m.eng.Fire(timer.Timer))
}

func (m *Model) handleDroppedMsg(msg tea.Msg) tea.Cmd {
	dropped, ok := msg.(command.DroppedMsg)
	if !ok {
		return nil
	}
	m.errMsg = fmt.Sprintf("progress not saved (%s)", dropped.Request.Kind)
	events.Action.Error(errors.New(m.errMsg))
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}
