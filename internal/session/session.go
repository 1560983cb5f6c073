// Package session holds the simulated tmux session: an ordered list of
// windows, each owning a layout tree and an active pane, plus the per-pane
// content buffers and clock overlays that belong to pane identity.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmux-dojo/dojo/internal/layout"
)

const (
	// DefaultWindowName is used for new windows and blank renames.
	DefaultWindowName = "bash"
	// MaxContentLines caps each pane's buffer to the most recent lines.
	MaxContentLines = 15
)

// WelcomeLines seed the buffer of every freshly created pane.
var WelcomeLines = []string{
	"Welcome to tmux practice session...",
	"Waiting for command...",
}

// Window is one tab of the session.
type Window struct {
	ID         string
	Name       string
	Layout     layout.Node
	ActivePane string
}

// PaneCount returns the number of panes in the window.
func (w Window) PaneCount() int {
	return layout.CountLeaves(w.Layout)
}

// Session is the mutable window list owned by a single controller. Layout
// trees stored inside are never mutated in place, so Window values handed
// out by accessors stay valid snapshots.
type Session struct {
	windows    []Window
	active     int
	zoomed     bool
	content    map[string][]string
	clocks     map[string]struct{}
	nextPane   int
	nextWindow int
}

// New returns a session with a single default window holding one pane.
func New() *Session {
	s := &Session{
		content: make(map[string][]string),
		clocks:  make(map[string]struct{}),
	}
	s.CreateWindow(DefaultWindowName)
	return s
}

// Windows returns the window list in tab order.
func (s *Session) Windows() []Window {
	out := make([]Window, len(s.windows))
	copy(out, s.windows)
	return out
}

// WindowCount returns the number of windows.
func (s *Session) WindowCount() int {
	return len(s.windows)
}

// ActiveIndex returns the index of the active window.
func (s *Session) ActiveIndex() int {
	return s.active
}

// ActiveWindow returns the active window.
func (s *Session) ActiveWindow() Window {
	return s.windows[s.active]
}

// ActivePane returns the active pane id of the active window.
func (s *Session) ActivePane() string {
	return s.windows[s.active].ActivePane
}

// Zoomed reports whether the active pane is shown full-screen.
func (s *Session) Zoomed() bool {
	return s.zoomed
}

// ToggleZoom flips the display-only zoom flag and returns the new value.
func (s *Session) ToggleZoom() bool {
	s.zoomed = !s.zoomed
	return s.zoomed
}

// Content returns a copy of the pane's display lines.
func (s *Session) Content(paneID string) []string {
	lines := s.content[paneID]
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Append adds a line to the pane's buffer, dropping the oldest lines past
// MaxContentLines.
func (s *Session) Append(paneID, line string) {
	lines := append(s.content[paneID], line)
	if over := len(lines) - MaxContentLines; over > 0 {
		lines = append([]string(nil), lines[over:]...)
	}
	s.content[paneID] = lines
}

// AppendActive adds a line to the active pane's buffer.
func (s *Session) AppendActive(line string) {
	s.Append(s.ActivePane(), line)
}

// ShowClock marks the pane as displaying the clock overlay.
func (s *Session) ShowClock(paneID string) {
	s.clocks[paneID] = struct{}{}
}

// HideClock removes the clock overlay from the pane. It reports whether a
// clock was showing.
func (s *Session) HideClock(paneID string) bool {
	if _, ok := s.clocks[paneID]; !ok {
		return false
	}
	delete(s.clocks, paneID)
	return true
}

// HasClock reports whether the pane shows the clock overlay.
func (s *Session) HasClock(paneID string) bool {
	_, ok := s.clocks[paneID]
	return ok
}

// ClockCount returns the number of panes showing a clock.
func (s *Session) ClockCount() int {
	return len(s.clocks)
}

// CreateWindow appends a window with a single fresh pane and makes it
// active. A blank name falls back to DefaultWindowName.
func (s *Session) CreateWindow(name string) Window {
	paneID := s.newPaneID()
	s.seedPane(paneID)
	w := Window{
		ID:         s.newWindowID(),
		Name:       normaliseName(name),
		Layout:     layout.NewPane(paneID),
		ActivePane: paneID,
	}
	s.windows = append(s.windows, w)
	s.active = len(s.windows) - 1
	return w
}

// CloseActiveWindow removes the active window when more than one exists.
// The previous window becomes active.
func (s *Session) CloseActiveWindow() bool {
	return s.closeWindow(s.active)
}

func (s *Session) closeWindow(idx int) bool {
	if len(s.windows) <= 1 || idx < 0 || idx >= len(s.windows) {
		return false
	}
	for _, id := range layout.PaneIDs(s.windows[idx].Layout) {
		s.forgetPane(id)
	}
	s.windows = append(s.windows[:idx], s.windows[idx+1:]...)
	if idx <= s.active {
		s.active = max(0, s.active-1)
	}
	if s.active >= len(s.windows) {
		s.active = len(s.windows) - 1
	}
	return true
}

// ClosePane removes paneID from the window at idx. When panes remain, the
// first pane in flatten order becomes active. Removing the window's last
// pane is refused; callers decide whether to close the window instead.
func (s *Session) ClosePane(idx int, paneID string) bool {
	if idx < 0 || idx >= len(s.windows) {
		return false
	}
	w := s.windows[idx]
	next, ok := layout.RemovePane(w.Layout, paneID)
	if !ok || next == nil {
		return false
	}
	w.Layout = next
	w.ActivePane = layout.FirstPane(next)
	s.windows[idx] = w
	s.forgetPane(paneID)
	return true
}

// KillOutcome describes what KillActivePane did.
type KillOutcome int

const (
	KillNone KillOutcome = iota
	KillPane
	KillWindow
)

func (k KillOutcome) String() string {
	switch k {
	case KillPane:
		return "pane"
	case KillWindow:
		return "window"
	default:
		return "none"
	}
}

// KillActivePane removes the active pane. The last pane of a window takes
// its window with it unless it is the only window left, in which case
// nothing happens.
func (s *Session) KillActivePane() KillOutcome {
	w := s.windows[s.active]
	if w.PaneCount() > 1 {
		if s.ClosePane(s.active, w.ActivePane) {
			return KillPane
		}
		return KillNone
	}
	if s.CloseActiveWindow() {
		return KillWindow
	}
	return KillNone
}

// CycleWindow moves the active index by delta with wraparound.
func (s *Session) CycleWindow(delta int) {
	n := len(s.windows)
	s.active = ((s.active+delta)%n + n) % n
}

// SelectWindow activates the window at idx; out of range is ignored.
func (s *Session) SelectWindow(idx int) bool {
	if idx < 0 || idx >= len(s.windows) {
		return false
	}
	s.active = idx
	return true
}

// RenameWindow sets the name of the window at idx. Blank names become
// DefaultWindowName.
func (s *Session) RenameWindow(idx int, name string) bool {
	if idx < 0 || idx >= len(s.windows) {
		return false
	}
	s.windows[idx].Name = normaliseName(name)
	return true
}

// SplitActive splits the active pane and focuses the new pane, whose id is
// returned.
func (s *Session) SplitActive(dir layout.Direction) string {
	w := s.windows[s.active]
	newID := s.newPaneID()
	next, ok := layout.SplitPane(w.Layout, w.ActivePane, newID, dir)
	if !ok {
		return ""
	}
	s.seedPane(newID)
	w.Layout = next
	w.ActivePane = newID
	s.windows[s.active] = w
	return newID
}

// NextPane focuses the pane after the active one in flatten order.
func (s *Session) NextPane() bool {
	w := s.windows[s.active]
	ids := layout.PaneIDs(w.Layout)
	if len(ids) < 2 {
		return false
	}
	i := layout.IndexOf(w.Layout, w.ActivePane)
	s.windows[s.active].ActivePane = ids[(i+1)%len(ids)]
	return true
}

// SelectPaneIndex focuses the pane at position idx in flatten order.
func (s *Session) SelectPaneIndex(idx int) bool {
	ids := layout.PaneIDs(s.windows[s.active].Layout)
	if idx < 0 || idx >= len(ids) {
		return false
	}
	s.windows[s.active].ActivePane = ids[idx]
	return true
}

// MoveFocus focuses the spatial neighbour of the active pane.
func (s *Session) MoveFocus(move layout.Move) bool {
	w := s.windows[s.active]
	id, ok := layout.Neighbor(w.Layout, w.ActivePane, move)
	if !ok {
		return false
	}
	s.windows[s.active].ActivePane = id
	return true
}

// RotateActive rotates pane ids clockwise in the active window. Content is
// keyed by id and therefore travels with the rotation; focus stays on the
// same screen position.
func (s *Session) RotateActive() bool {
	w := s.windows[s.active]
	if w.PaneCount() < 2 {
		return false
	}
	s.reorder(layout.Rotate(w.Layout))
	return true
}

// SwapActive exchanges the active pane with its neighbour offset positions
// away in flatten order. Focus stays on the same screen position.
func (s *Session) SwapActive(offset int) bool {
	w := s.windows[s.active]
	if w.PaneCount() < 2 {
		return false
	}
	s.reorder(layout.SwapAdjacent(w.Layout, w.ActivePane, offset))
	return true
}

func (s *Session) reorder(next layout.Node) {
	w := s.windows[s.active]
	pos := layout.IndexOf(w.Layout, w.ActivePane)
	w.Layout = next
	if ids := layout.PaneIDs(next); pos >= 0 && pos < len(ids) {
		w.ActivePane = ids[pos]
	}
	s.windows[s.active] = w
}

// ToggleLayout flips every split of the active window.
func (s *Session) ToggleLayout() bool {
	w := s.windows[s.active]
	if w.PaneCount() < 2 {
		return false
	}
	s.windows[s.active].Layout = layout.ToggleOrientation(w.Layout)
	return true
}

func (s *Session) seedPane(id string) {
	s.content[id] = append([]string(nil), WelcomeLines...)
}

func (s *Session) forgetPane(id string) {
	delete(s.content, id)
	delete(s.clocks, id)
}

func (s *Session) hasPane(id string) bool {
	for _, w := range s.windows {
		if layout.Contains(w.Layout, id) {
			return true
		}
	}
	return false
}

func (s *Session) hasWindow(id string) bool {
	for _, w := range s.windows {
		if w.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) newPaneID() string {
	for {
		id := fmt.Sprintf("%%%d", s.nextPane)
		s.nextPane++
		if !s.hasPane(id) {
			return id
		}
	}
}

func (s *Session) newWindowID() string {
	for {
		id := fmt.Sprintf("@%d", s.nextWindow)
		s.nextWindow++
		if !s.hasWindow(id) {
			return id
		}
	}
}

// normaliseName keeps the name as typed unless it is blank.
func normaliseName(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultWindowName
	}
	return name
}

// numericSuffix parses ids such as "%12" or "@3".
func numericSuffix(id string, sigil byte) (int, bool) {
	if len(id) < 2 || id[0] != sigil {
		return 0, false
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
