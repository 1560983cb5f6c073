package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmux-dojo/dojo/internal/logging"
	"github.com/tmux-dojo/dojo/internal/logging/events"
	uistate "github.com/tmux-dojo/dojo/internal/ui/state"
)

// pickerEntries lists every catalog level with its completion mark.
func (m *Model) pickerEntries() []uistate.Entry {
	levels := m.catalog.Levels()
	entries := make([]uistate.Entry, 0, len(levels))
	for _, lvl := range levels {
		group := ""
		if g, ok := m.catalog.GroupOf(lvl.ID); ok {
			group = g.Title
		}
		entries = append(entries, uistate.Entry{
			ID:    lvl.ID,
			Title: lvl.Title,
			Group: group,
			Done:  m.eng.Completed(lvl.ID),
		})
	}
	return entries
}

// newFilterInput builds the picker's search field. The cursor does not
// blink so the field never schedules ticks of its own.
func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "» "
	ti.Placeholder = "(type to search)"
	ti.CharLimit = 48
	ti.PromptStyle = *styles.FilterPrompt
	ti.TextStyle = *styles.Filter
	ti.PlaceholderStyle = *styles.FilterPlaceholder
	ti.Cursor.Style = *styles.Cursor
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return ti
}

func (m *Model) openPicker() {
	m.picker.UpdateEntries(m.pickerEntries())
	m.resetFilter()
	m.picker.Select(m.eng.Level().ID)
	m.pickerOpen = true
	events.UI.PickerOpen(m.eng.Level().ID)
}

func (m *Model) closePicker() {
	m.pickerOpen = false
	m.resetFilter()
	events.UI.PickerClose(-1, false)
}

func (m *Model) resetFilter() {
	m.filter.Reset()
	m.picker.SetFilter("")
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	p := m.picker
	rows := m.maxPickerRows()
	moved := false
	switch msg.String() {
	case "esc", "ctrl+t":
		m.closePicker()
		return nil
	case "enter":
		return m.selectPickerEntry()
	case "up", "ctrl+p":
		moved = p.Step(-1)
	case "down", "ctrl+n":
		moved = p.Step(1)
	case "pgup":
		moved = p.SetCursor(p.Cursor - rows)
	case "pgdown":
		moved = p.SetCursor(p.Cursor + rows)
	case "home":
		moved = p.SetCursor(0)
	case "end":
		moved = p.SetCursor(len(p.Entries) - 1)
	default:
		return m.updateFilter(msg)
	}
	if moved {
		events.UI.PickerCursor(p.Cursor)
	}
	return nil
}

// updateFilter hands the key to the search field and re-ranks the picker
// when the query text changed.
func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	query := m.filter.Value()
	if query == before {
		return cmd
	}
	m.picker.SetFilter(query)
	if query == "" {
		events.Filter.Cleared()
	} else {
		events.Filter.Changed(query, len(m.picker.Entries))
	}
	return cmd
}

func (m *Model) selectPickerEntry() tea.Cmd {
	entry, ok := m.picker.Current()
	if !ok {
		return nil
	}
	m.pickerOpen = false
	m.resetFilter()
	events.UI.PickerClose(entry.ID, true)
	res, err := m.eng.GoTo(entry.ID)
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return nil
	}
	cmd := m.applyResult(res)
	m.setInfo(fmt.Sprintf("Jumped to level %d", entry.ID))
	return cmd
}

// maxPickerRows is how many entries fit between the picker header and the
// filter prompt.
func (m *Model) maxPickerRows() int {
	rows := m.viewHeight() - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}
