package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/tmux-dojo/dojo/internal/engine"
	"github.com/tmux-dojo/dojo/internal/layout"
	"github.com/tmux-dojo/dojo/internal/token"
)

const (
	maxDescriptionLines = 3
	minPaneRows         = 6
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.pickerOpen {
		return m.viewPicker()
	}
	return m.viewLevel()
}

func (m *Model) viewLevel() string {
	width := m.viewWidth()
	height := m.viewHeight()

	top := m.headerLines(width)
	bottom := []string{
		m.statusBar(width),
		m.messageLine(width),
		m.footerLine(width),
	}
	rows := height - len(top) - len(bottom)
	if rows < minPaneRows {
		rows = minPaneRows
		// drop header detail before squeezing the panes
		if keep := height - len(bottom) - rows; keep < len(top) {
			if keep < 1 {
				keep = 1
			}
			top = top[:keep]
		}
	}
	lines := make([]string, 0, height)
	lines = append(lines, top...)
	lines = append(lines, m.paneArea(width, rows))
	lines = append(lines, bottom...)
	return strings.Join(lines, "\n")
}

func (m *Model) headerLines(width int) []string {
	lvl := m.eng.Level()
	title := styles.Title.Render(fmt.Sprintf("Level %d · %s", lvl.ID, lvl.Title))
	right := ""
	if g, ok := m.catalog.GroupOf(lvl.ID); ok {
		right = styles.Info.Render(fmt.Sprintf("%s  %d/%d", g.Title, m.catalog.Index(lvl.ID)+1, m.catalog.Len()))
	}
	lines := []string{joinEnds(title, right, width)}

	desc := strings.Split(strings.TrimSpace(lvl.Description), "\n")
	if len(desc) > maxDescriptionLines {
		desc = desc[:maxDescriptionLines]
	}
	for _, d := range desc {
		if d = strings.TrimSpace(d); d != "" {
			lines = append(lines, fit(styles.Description.Render(d), width))
		}
	}
	for _, o := range lvl.Objective {
		lines = append(lines, fit(styles.Objective.Render("  "+o), width))
	}
	if len(lvl.Commands) > 0 {
		keys := make([]string, len(lvl.Commands))
		for i, c := range lvl.Commands {
			keys[i] = styles.Command.Render(c)
		}
		lines = append(lines, fit("Keys: "+strings.Join(keys, "  "), width))
	}
	progress := styles.Progress.Render(progressDots(m.eng.Progress(), len(lvl.Actions)))
	if lvl.Hint != "" {
		progress += "  " + styles.Hint.Render(lvl.Hint)
	}
	lines = append(lines, fit(progress, width))
	return lines
}

func progressDots(done, total int) string {
	if total == 0 {
		return "(nothing to press)"
	}
	return strings.Repeat("●", done) + strings.Repeat("○", total-done) + fmt.Sprintf(" %d/%d", done, total)
}

// paneArea draws the active window, or the overlay that replaces it.
func (m *Model) paneArea(width, height int) string {
	cv := newCanvas(width, height)
	switch m.eng.Mode() {
	case engine.ModeDetached:
		cv.centerIn(layout.Rect{W: width, H: height}, "[detached (from session "+sessionName+")]", styles.Info)
		return cv.render()
	case engine.ModeListing:
		m.drawChooseTree(cv)
		return cv.render()
	}

	sess := m.eng.Session()
	win := sess.ActiveWindow()
	zoomed := ""
	if sess.Zoomed() {
		zoomed = win.ActivePane
	}
	rects := layout.ViewRects(win.Layout, layout.Rect{W: width, H: height}, zoomed)
	for idx, id := range layout.PaneIDs(win.Layout) {
		r, ok := rects[id]
		if !ok {
			continue
		}
		active := id == win.ActivePane
		border := styles.PaneBorder
		if active {
			border = styles.ActivePaneBorder
		}
		cv.box(r, border)
		cv.text(r.X+2, r.Y, " "+id+" ", r.W-4, border)
		inner := layout.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
		if inner.Empty() {
			continue
		}
		switch {
		case sess.HasClock(id):
			cv.centerIn(inner, m.now().Format("15:04"), styles.Clock)
		case m.eng.Flashing():
			cv.centerIn(inner, " "+strconv.Itoa(idx)+" ", styles.FlashNumber)
		default:
			content := sess.Content(id)
			if len(content) > inner.H {
				content = content[len(content)-inner.H:]
			}
			for i, line := range content {
				cv.text(inner.X, inner.Y+i, line, inner.W, styles.PaneText)
			}
		}
		if active && m.eng.Mode() == engine.ModeCopy {
			tag := "[0/0]"
			cv.text(inner.X+inner.W-len(tag), inner.Y, tag, len(tag), styles.ModeBadge)
		}
	}
	return cv.render()
}

func (m *Model) drawChooseTree(cv *canvas) {
	area := layout.Rect{W: cv.w, H: cv.h}
	cv.box(area, styles.ActivePaneBorder)
	cv.text(2, 0, " choose-tree ", cv.w-4, styles.ActivePaneBorder)
	sess := m.eng.Session()
	var lines []string
	if m.eng.Listing() == engine.ListSessions {
		lines = []string{fmt.Sprintf("(0) %s: %d windows (attached)", sessionName, sess.WindowCount())}
	} else {
		for i, w := range sess.Windows() {
			mark := " "
			if i == sess.ActiveIndex() {
				mark = "*"
			}
			lines = append(lines, fmt.Sprintf("(%d) %d: %s%s (%d panes)", i, i, w.Name, mark, w.PaneCount()))
		}
	}
	for i, line := range lines {
		if i+1 >= cv.h-1 {
			break
		}
		style := styles.Item
		if i == m.eng.ListCursor() {
			style = styles.SelectedItem
			line = padTo(line, cv.w-2)
		}
		cv.text(1, i+1, line, cv.w-2, style)
	}
}

func (m *Model) statusBar(width int) string {
	sess := m.eng.Session()
	left := styles.StatusSession.Render("[" + sessionName + "] ")
	for i, w := range sess.Windows() {
		label := fmt.Sprintf("%d:%s", i, w.Name)
		if i == sess.ActiveIndex() {
			left += styles.ActiveTab.Render(label+"*") + styles.StatusBar.Render(" ")
			continue
		}
		left += styles.WindowTab.Render(label+" ") + styles.StatusBar.Render(" ")
	}

	var mid string
	switch m.eng.Mode() {
	case engine.ModeConfirm:
		what := "kill-pane " + sess.ActivePane()
		if m.eng.ConfirmTarget() == engine.TargetWindow {
			what = "kill-window " + sess.ActiveWindow().Name
		}
		mid = styles.PrefixBadge.Render(" " + what + "? (y/n) ")
	case engine.ModeRename:
		mid = styles.PrefixBadge.Render(" (rename-window) " + m.eng.InputBuffer() + "_ ")
	case engine.ModePrompt:
		mid = styles.PrefixBadge.Render(" :" + m.eng.InputBuffer() + "_ ")
	case engine.ModeCopy, engine.ModeFlash, engine.ModeListing:
		mid = styles.ModeBadge.Render(" " + strings.ToUpper(m.eng.Mode().String()) + " ")
	}
	if m.eng.PrefixArmed() {
		mid += styles.PrefixBadge.Render(" PREFIX ")
	}

	right := ""
	if last := m.eng.LastKey(); last != "" {
		right = styles.LastKey.Render("key: " + token.Label(last))
	}
	return joinEnds(left+" "+mid, right, width)
}

func (m *Model) messageLine(width int) string {
	if m.errMsg != "" {
		return fit(styles.Error.Render("Error: "+m.errMsg), width)
	}
	if m.eng.Status() == engine.StatusSucceeded {
		if m.eng.FeedbackReady() {
			tally := ""
			if count := m.eng.Count(m.eng.Level().ID); count > 0 {
				tally = fmt.Sprintf("  (x%d)", count)
			}
			return fit(styles.Success.Render("✓ Level complete")+
				styles.Info.Render(tally+"  Press Enter for the next level"), width)
		}
		return fit(styles.Progress.Render("✓"), width)
	}
	if info := m.currentInfo(); info != "" {
		if strings.HasPrefix(info, "Medal") {
			return fit(styles.Medal.Render(info), width)
		}
		return fit(styles.Info.Render(info), width)
	}
	return ""
}

func (m *Model) footerLine(width int) string {
	score := ""
	if m.progress.Loaded() {
		score = styles.Footer.Render(m.progress.Progress().Score().String())
	}
	return joinEnds(m.help.View(m.keys), score, width)
}

func (m *Model) viewPicker() string {
	width := m.viewWidth()
	height := m.viewHeight()
	p := m.picker

	done := 0
	for _, e := range p.Full {
		if e.Done {
			done++
		}
	}
	lines := []string{
		styles.Title.Render(fmt.Sprintf("Levels  %d/%d complete", done, len(p.Full))),
	}
	if len(p.Entries) == 0 {
		msg := "(no levels)"
		if p.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", p.Filter)
		}
		lines = append(lines, styles.Info.Render(msg))
	}
	start, end := p.Window(m.maxPickerRows())
	for i := start; i < end; i++ {
		e := p.Entries[i]
		mark := "  "
		if e.Done {
			mark = styles.DoneMark.Render("✓ ")
		}
		label := fmt.Sprintf("%2d  %s", e.ID, e.Label())
		indicator := styles.ItemIndicator.Render("▌")
		style := styles.Item
		if i == p.Cursor {
			indicator = styles.SelectedItemIndicator.Render("▌")
			style = styles.SelectedItem
		}
		row := indicator + " " + mark + style.Render(label)
		if lipgloss.Width(row) > width {
			row = truncate.StringWithTail(row, uint(width-1), "…")
		}
		lines = append(lines, row)
	}
	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	lines = append(lines, styles.Footer.Render("↑/↓ move  enter play  esc close  type to filter"))
	lines = append(lines, m.filterPrompt())
	return strings.Join(lines, "\n")
}

func (m *Model) filterPrompt() string {
	if m.filter.Value() == "" {
		// placeholder drawn here so it never depends on the input width
		return m.filter.PromptStyle.Render(m.filter.Prompt) + styles.FilterPlaceholder.Render(m.filter.Placeholder)
	}
	return m.filter.View()
}

// fit truncates an already styled line to width cells.
func fit(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func padTo(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// joinEnds places left and right on one line of the given width, dropping
// right when both do not fit.
func joinEnds(left, right string, width int) string {
	lw, rw := ansi.StringWidth(left), ansi.StringWidth(right)
	if right == "" || lw+rw+1 > width {
		return fit(left, width)
	}
	return left + strings.Repeat(" ", width-lw-rw) + right
}
