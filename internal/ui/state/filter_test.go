package state

import (
	"reflect"
	"testing"
)

func TestRank(t *testing.T) {
	entries := []Entry{
		{ID: 6, Title: "Split Right", Group: "The Splits"},
		{ID: 15, Title: "Move Left", Group: "Navigation"},
	}
	if got := Rank(entries, "splr"); len(got) != 1 || got[0].ID != 6 {
		t.Fatalf("unexpected fuzzy results %#v", got)
	}
	if got := Rank(entries, "navigation"); len(got) != 1 || got[0].ID != 15 {
		t.Fatalf("expected group match, got %#v", got)
	}
	if got := Rank(entries, "15"); len(got) != 1 || got[0].ID != 15 {
		t.Fatalf("expected id match, got %#v", got)
	}
	if len(Rank(entries, "zzz")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
	if !reflect.DeepEqual(Rank(entries, " "), entries) {
		t.Fatal("expected blank query to keep everything")
	}
}

func TestRankKeepsCatalogOrder(t *testing.T) {
	entries := []Entry{
		{ID: 0, Title: "Pane Zoom", Group: "Panes"},
		{ID: 1, Title: "Zoom", Group: "Panes"},
	}
	got := Rank(entries, "zoom")
	if len(got) != 2 || got[0].ID != 0 || got[1].ID != 1 {
		t.Fatalf("expected catalog order, got %#v", got)
	}
}

func TestBestMatchIndex(t *testing.T) {
	entries := []Entry{
		{ID: 0, Title: "First", Group: "G"},
		{ID: 1, Title: "Second", Group: "G"},
		{ID: 2, Title: "Third", Group: "G"},
	}

	if idx := BestMatchIndex(entries, "second"); idx != 1 {
		t.Fatalf("expected exact title match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(entries, "2"); idx != 2 {
		t.Fatalf("expected id match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(entries, "th"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(entries, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}
