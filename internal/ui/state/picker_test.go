package state

import "testing"

func newTestPicker(titles ...string) *Picker {
	entries := make([]Entry, len(titles))
	for i, title := range titles {
		entries[i] = Entry{ID: i, Title: title, Group: "Test"}
	}
	return NewPicker(entries)
}

func TestSetFilterHighlightsBestMatchAndRestores(t *testing.T) {
	p := newTestPicker("one", "two", "three")
	p.Cursor = 2

	p.SetFilter("two")
	if len(p.Entries) != 1 || p.Entries[0].Title != "two" {
		t.Fatalf("expected only 'two', got %#v", p.Entries)
	}
	if p.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", p.Cursor)
	}

	p.SetFilter("tw")
	p.SetFilter("")
	if p.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", p.Cursor)
	}
	if len(p.Entries) != 3 {
		t.Fatalf("expected all entries back, got %d", len(p.Entries))
	}
}

func TestSetFilterWithNoMatches(t *testing.T) {
	p := newTestPicker("one", "two")
	p.SetFilter("zzz")
	if len(p.Entries) != 0 {
		t.Fatalf("expected no entries, got %#v", p.Entries)
	}
	if _, ok := p.Current(); ok {
		t.Fatal("expected no current entry")
	}
}

func TestUpdateEntriesKeepsHighlightedLevel(t *testing.T) {
	p := newTestPicker("a", "b", "c")
	p.Select(1)
	p.UpdateEntries([]Entry{
		{ID: 0, Title: "a"},
		{ID: 1, Title: "b", Done: true},
		{ID: 2, Title: "c"},
	})
	e, ok := p.Current()
	if !ok || e.ID != 1 || !e.Done {
		t.Fatalf("expected refreshed entry 1, got %#v", e)
	}

	p.UpdateEntries([]Entry{{ID: 0, Title: "a"}})
	if p.Cursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", p.Cursor)
	}
}

func TestSetCursorClamps(t *testing.T) {
	p := newTestPicker("a", "b", "c")
	if !p.SetCursor(10) || p.Cursor != 2 {
		t.Fatalf("expected clamp to 2, got %d", p.Cursor)
	}
	if p.SetCursor(2) {
		t.Fatal("expected no movement when already there")
	}
	if !p.SetCursor(-4) || p.Cursor != 0 {
		t.Fatalf("expected clamp to 0, got %d", p.Cursor)
	}
	empty := newTestPicker()
	if empty.SetCursor(3) || empty.Cursor != 0 {
		t.Fatalf("expected empty picker to stay at 0, got %d", empty.Cursor)
	}
}

func TestStepWraps(t *testing.T) {
	p := newTestPicker("a", "b", "c")
	if !p.Step(-1) || p.Cursor != 2 {
		t.Fatalf("expected wrap to the last entry, got %d", p.Cursor)
	}
	p.Step(1)
	if p.Cursor != 0 {
		t.Fatalf("expected wrap back to 0, got %d", p.Cursor)
	}
	if newTestPicker().Step(1) {
		t.Fatal("expected no movement for empty picker")
	}
}

func TestWindowFollowsCursor(t *testing.T) {
	p := newTestPicker("a", "b", "c", "d", "e")
	p.Cursor = 4
	if start, end := p.Window(2); start != 3 || end != 5 {
		t.Fatalf("expected rows 3-5, got %d-%d", start, end)
	}
	p.Cursor = 1
	if start, end := p.Window(3); start != 1 || end != 4 {
		t.Fatalf("expected rows 1-4, got %d-%d", start, end)
	}
	if start, end := p.Window(10); start != 0 || end != 5 {
		t.Fatalf("expected every row, got %d-%d", start, end)
	}
	if start, end := p.Window(0); start != 0 || end != 0 {
		t.Fatalf("expected empty window, got %d-%d", start, end)
	}
}

func TestSelectAndCurrent(t *testing.T) {
	p := newTestPicker("a", "b", "c")
	if !p.Select(2) {
		t.Fatal("expected select of visible id")
	}
	e, ok := p.Current()
	if !ok || e.Title != "c" {
		t.Fatalf("expected current entry c, got %#v", e)
	}
	if p.Select(9) {
		t.Fatal("expected select of unknown id to fail")
	}
}
