package state

import (
	"strconv"
	"strings"
)

// Entry is one selectable level in the picker.
type Entry struct {
	ID    int
	Title string
	Group string
	Done  bool
}

// Key is the textual id used for id matches.
func (e Entry) Key() string { return strconv.Itoa(e.ID) }

// Label is the text shown and fuzzy-matched for the entry.
func (e Entry) Label() string { return e.Title + " (" + e.Group + ")" }

// Picker holds the level list behind the picker overlay: every level, the
// subset matching the current filter, the highlighted row and the first
// visible row. Text editing lives in the UI's input widget; the picker
// only sees the resulting query.
type Picker struct {
	Full    []Entry
	Entries []Entry
	Filter  string
	Cursor  int
	Offset  int

	// highlighted id before a filter was typed, restored once it clears
	saved int
}

// NewPicker constructs a picker over entries with the cursor on the first.
func NewPicker(entries []Entry) *Picker {
	p := &Picker{saved: -1}
	p.UpdateEntries(entries)
	return p
}

// UpdateEntries swaps in a fresh level list, for example after completion
// marks change, keeping the highlighted level when it is still visible.
func (p *Picker) UpdateEntries(entries []Entry) {
	current, ok := p.Current()
	p.Full = append([]Entry(nil), entries...)
	p.Entries = Rank(p.Full, p.Filter)
	if ok && p.Select(current.ID) {
		return
	}
	p.SetCursor(p.Cursor)
}

// SetFilter narrows the visible entries to query. The best match is
// highlighted while a query is active; clearing the query returns to the
// level that was highlighted before typing began.
func (p *Picker) SetFilter(query string) {
	active := strings.TrimSpace(query) != ""
	wasActive := strings.TrimSpace(p.Filter) != ""
	if active && !wasActive {
		p.saved = -1
		if e, ok := p.Current(); ok {
			p.saved = e.ID
		}
	}
	p.Filter = query
	p.Entries = Rank(p.Full, query)
	p.Offset = 0
	switch {
	case active:
		p.SetCursor(BestMatchIndex(p.Entries, query))
	case wasActive:
		if !p.Select(p.saved) {
			p.SetCursor(0)
		}
		p.saved = -1
	default:
		p.SetCursor(p.Cursor)
	}
}

// IndexOf returns the visible index of the level with the given id.
func (p *Picker) IndexOf(id int) int {
	for i, e := range p.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Select moves the cursor to the given level when it is visible.
func (p *Picker) Select(id int) bool {
	idx := p.IndexOf(id)
	if idx < 0 {
		return false
	}
	p.Cursor = idx
	return true
}

// Current returns the entry under the cursor.
func (p *Picker) Current() (Entry, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Entries) {
		return Entry{}, false
	}
	return p.Entries[p.Cursor], true
}

// SetCursor moves the cursor to idx, clamped to the visible entries, and
// reports whether it moved.
func (p *Picker) SetCursor(idx int) bool {
	if last := len(p.Entries) - 1; idx > last {
		idx = last
	}
	if idx < 0 {
		idx = 0
	}
	moved := idx != p.Cursor
	p.Cursor = idx
	return moved
}

// Step moves the cursor by delta rows, wrapping past either end.
func (p *Picker) Step(delta int) bool {
	n := len(p.Entries)
	if n == 0 {
		return p.SetCursor(0)
	}
	return p.SetCursor(((p.Cursor+delta)%n + n) % n)
}

// Window scrolls so the cursor sits inside a viewport of rows entries and
// returns the visible slice bounds.
func (p *Picker) Window(rows int) (start, end int) {
	n := len(p.Entries)
	if rows <= 0 || n == 0 {
		p.Offset = 0
		return 0, 0
	}
	if p.Cursor < p.Offset {
		p.Offset = p.Cursor
	}
	if p.Cursor >= p.Offset+rows {
		p.Offset = p.Cursor - rows + 1
	}
	if maxOffset := n - rows; p.Offset > maxOffset {
		p.Offset = max(maxOffset, 0)
	}
	end = min(p.Offset+rows, n)
	return p.Offset, end
}
