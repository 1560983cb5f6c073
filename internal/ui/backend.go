package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmux-dojo/dojo/internal/backend"
	"github.com/tmux-dojo/dojo/internal/store"
)

func waitForRecorderEvent(r *backend.Recorder) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-r.Events()
		if !ok {
			return recorderDoneMsg{}
		}
		return recorderEventMsg{event: evt}
	}
}

type recorderEventMsg struct {
	event backend.Event
}

type recorderDoneMsg struct{}

func (m *Model) handleRecorderEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(recorderEventMsg)
	if !ok {
		return nil
	}
	m.applyRecorderEvent(eventMsg.event)
	if m.recorder != nil {
		return waitForRecorderEvent(m.recorder)
	}
	return nil
}

func (m *Model) handleRecorderDoneMsg(tea.Msg) tea.Cmd {
	m.recorder = nil
	return nil
}

func (m *Model) applyRecorderEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.errMsg = fmt.Sprintf("progress store: %v", res.Err)
		return
	}
	if res.ProgressUpdated {
		m.eng.SetCompletions(m.progress.Progress().Counts)
		m.picker.UpdateEntries(m.pickerEntries())
	}
	if len(res.Awarded) > 0 {
		m.announceMedals()
	}
}

// announceMedals drains queued medals into the info line.
func (m *Model) announceMedals() {
	var titles []string
	for {
		id, ok := m.medals.Pop()
		if !ok {
			break
		}
		if medal, found := store.MedalByID(id); found {
			titles = append(titles, medal.Title)
		}
	}
	if len(titles) == 0 {
		return
	}
	m.setInfo("Medal earned: " + strings.Join(titles, ", "))
}
