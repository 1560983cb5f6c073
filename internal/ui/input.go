package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmux-dojo/dojo/internal/logging/events"
	"github.com/tmux-dojo/dojo/internal/token"
)

// keyMap holds the dojo's own bindings. Everything else is forwarded to
// the engine as a token.
type keyMap struct {
	Quit   key.Binding
	Reset  key.Binding
	Picker key.Binding
	Skip   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
		Picker: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "levels")),
		Skip:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "skip")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Picker, k.Skip, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// normalizeKey maps a terminal key to an engine token, or "" for keys the
// simulation does not understand.
func normalizeKey(msg tea.KeyMsg) string {
	if msg.Alt {
		return ""
	}
	switch msg.Type {
	case tea.KeyCtrlB:
		return token.Prefix
	case tea.KeyUp:
		return token.ArrowUp
	case tea.KeyDown:
		return token.ArrowDown
	case tea.KeyLeft:
		return token.ArrowLeft
	case tea.KeyRight:
		return token.ArrowRight
	case tea.KeyEnter:
		return token.Enter
	case tea.KeyEsc:
		return token.Escape
	case tea.KeyBackspace, tea.KeyCtrlH:
		return token.Backspace
	case tea.KeyCtrlO:
		return token.RotateKey
	case tea.KeySpace:
		return token.Space
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return ""
		}
		if tok := string(msg.Runes); token.IsRune(tok) {
			return tok
		}
	}
	return ""
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	if m.pickerOpen {
		return m.handlePickerKey(keyMsg)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Reset):
		return m.applyResult(m.eng.Reset())
	case key.Matches(keyMsg, m.keys.Picker):
		m.openPicker()
		return nil
	case key.Matches(keyMsg, m.keys.Skip):
		return m.applyResult(m.eng.Advance())
	}
	tok := normalizeKey(keyMsg)
	events.UI.Key(keyMsg.String(), tok)
	if tok == "" {
		return nil
	}
	return m.applyResult(m.eng.Handle(tok))
}
