package session

import (
	"errors"
	"fmt"

	"github.com/tmux-dojo/dojo/internal/layout"
)

// ErrInvalidSnapshot is returned by Restore for snapshots that would break
// the session invariants.
var ErrInvalidSnapshot = errors.New("invalid session snapshot")

// WindowSnapshot describes one window of a Snapshot. An empty ActivePane
// selects the first pane of the layout.
type WindowSnapshot struct {
	ID         string
	Name       string
	Layout     layout.Node
	ActivePane string
}

// Snapshot is a serialisable description of a whole session, used for a
// level's initial state.
type Snapshot struct {
	Windows []WindowSnapshot
	Active  int
	Content map[string][]string
}

// Restore builds a session from snap. The session shares no mutable state
// with snap: layout trees are immutable and content slices are copied.
func Restore(snap Snapshot) (*Session, error) {
	if len(snap.Windows) == 0 {
		return nil, fmt.Errorf("%w: no windows", ErrInvalidSnapshot)
	}
	if snap.Active < 0 || snap.Active >= len(snap.Windows) {
		return nil, fmt.Errorf("%w: active window %d out of range", ErrInvalidSnapshot, snap.Active)
	}
	s := &Session{
		content: make(map[string][]string),
		clocks:  make(map[string]struct{}),
		active:  snap.Active,
	}
	seenPanes := make(map[string]bool)
	seenWindows := make(map[string]bool)
	for i, ws := range snap.Windows {
		if ws.Layout == nil {
			return nil, fmt.Errorf("%w: window %d has no layout", ErrInvalidSnapshot, i)
		}
		for _, id := range layout.PaneIDs(ws.Layout) {
			if id == "" {
				return nil, fmt.Errorf("%w: window %d has a pane without id", ErrInvalidSnapshot, i)
			}
			if seenPanes[id] {
				return nil, fmt.Errorf("%w: duplicate pane id %q", ErrInvalidSnapshot, id)
			}
			seenPanes[id] = true
			if n, ok := numericSuffix(id, '%'); ok && n >= s.nextPane {
				s.nextPane = n + 1
			}
		}
		active := ws.ActivePane
		if active == "" {
			active = layout.FirstPane(ws.Layout)
		}
		if !layout.Contains(ws.Layout, active) {
			return nil, fmt.Errorf("%w: active pane %q not in window %d", ErrInvalidSnapshot, active, i)
		}
		w := Window{ID: ws.ID, Name: normaliseName(ws.Name), Layout: ws.Layout, ActivePane: active}
		if w.ID != "" {
			if seenWindows[w.ID] {
				return nil, fmt.Errorf("%w: duplicate window id %q", ErrInvalidSnapshot, w.ID)
			}
			seenWindows[w.ID] = true
			if n, ok := numericSuffix(w.ID, '@'); ok && n >= s.nextWindow {
				s.nextWindow = n + 1
			}
		}
		s.windows = append(s.windows, w)
	}
	for i := range s.windows {
		if s.windows[i].ID == "" {
			s.windows[i].ID = s.newWindowID()
		}
	}
	for id := range seenPanes {
		if lines, ok := snap.Content[id]; ok {
			s.content[id] = nil
			for _, line := range lines {
				s.Append(id, line)
			}
			continue
		}
		s.seedPane(id)
	}
	return s, nil
}

// snapshot captures the current session. Clock overlays and zoom are
// transient and not included.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		Windows: make([]WindowSnapshot, len(s.windows)),
		Active:  s.active,
		Content: make(map[string][]string, len(s.content)),
	}
	for i, w := range s.windows {
		snap.Windows[i] = WindowSnapshot{ID: w.ID, Name: w.Name, Layout: w.Layout, ActivePane: w.ActivePane}
	}
	for id := range s.content {
		snap.Content[id] = s.Content(id)
	}
	return snap
}
