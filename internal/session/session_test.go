package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmux-dojo/dojo/internal/layout"
)

func TestNewSessionDefaults(t *testing.T) {
	s := New()
	require.Equal(t, 1, s.WindowCount())
	w := s.ActiveWindow()
	assert.Equal(t, "@0", w.ID)
	assert.Equal(t, DefaultWindowName, w.Name)
	assert.Equal(t, "%0", w.ActivePane)
	assert.Equal(t, WelcomeLines, s.Content("%0"))
}

func TestSplitActiveFocusesNewPane(t *testing.T) {
	s := New()
	id := s.SplitActive(layout.Vertical)
	assert.Equal(t, "%1", id)
	assert.Equal(t, "%1", s.ActivePane())
	assert.Equal(t, "v(%0,%1)", layout.String(s.ActiveWindow().Layout))
	assert.Equal(t, WelcomeLines, s.Content("%1"))
}

func TestCreateAndCloseWindow(t *testing.T) {
	s := New()
	s.CreateWindow("")
	s.CreateWindow("logs")
	require.Equal(t, 3, s.WindowCount())
	assert.Equal(t, 2, s.ActiveIndex())
	assert.Equal(t, "logs", s.ActiveWindow().Name)

	assert.True(t, s.CloseActiveWindow())
	assert.Equal(t, 1, s.ActiveIndex())

	s.SelectWindow(0)
	assert.True(t, s.CloseActiveWindow())
	assert.Equal(t, 0, s.ActiveIndex())
	assert.False(t, s.CloseActiveWindow(), "last window must survive")
	assert.Equal(t, 1, s.WindowCount())
}

func TestCycleAndSelectWindow(t *testing.T) {
	s := New()
	s.CreateWindow("")
	s.CreateWindow("")
	s.CycleWindow(1)
	assert.Equal(t, 0, s.ActiveIndex())
	s.CycleWindow(-1)
	assert.Equal(t, 2, s.ActiveIndex())
	assert.False(t, s.SelectWindow(3))
	assert.Equal(t, 2, s.ActiveIndex())
	assert.True(t, s.SelectWindow(1))
	assert.Equal(t, 1, s.ActiveIndex())
}

func TestRenameWindowBlankFallsBack(t *testing.T) {
	s := New()
	s.RenameWindow(0, "  editor ")
	assert.Equal(t, "  editor ", s.ActiveWindow().Name, "non-blank names are kept verbatim")
	s.RenameWindow(0, "   ")
	assert.Equal(t, DefaultWindowName, s.ActiveWindow().Name)
	assert.False(t, s.RenameWindow(4, "x"))
}

func TestKillActivePanePolicy(t *testing.T) {
	s := New()
	s.SplitActive(layout.Vertical)
	s.ShowClock("%1")
	assert.Equal(t, KillPane, s.KillActivePane())
	assert.Equal(t, "%0", s.ActivePane())
	assert.Empty(t, s.Content("%1"))
	assert.False(t, s.HasClock("%1"))

	assert.Equal(t, KillNone, s.KillActivePane(), "only pane of only window")
	assert.Equal(t, "%0", s.ActivePane())

	s.CreateWindow("")
	assert.Equal(t, KillWindow, s.KillActivePane())
	assert.Equal(t, 1, s.WindowCount())
}

func TestClosePaneSelectsFirstLeaf(t *testing.T) {
	s := New()
	s.SplitActive(layout.Vertical)
	s.SplitActive(layout.Horizontal)
	require.True(t, s.ClosePane(0, "%1"))
	assert.Equal(t, "%0", s.ActivePane())
	assert.False(t, s.ClosePane(0, "%9"))
}

func TestNextPaneAndIndexSelect(t *testing.T) {
	s := New()
	assert.False(t, s.NextPane())
	s.SplitActive(layout.Vertical)
	s.SplitActive(layout.Horizontal)
	require.Equal(t, "%2", s.ActivePane())
	s.NextPane()
	assert.Equal(t, "%0", s.ActivePane())
	assert.True(t, s.SelectPaneIndex(1))
	assert.Equal(t, "%1", s.ActivePane())
	assert.False(t, s.SelectPaneIndex(3))
}

func TestRotateKeepsFocusPosition(t *testing.T) {
	s, err := Restore(Snapshot{Windows: []WindowSnapshot{{
		Layout: layout.NewSplit(layout.Horizontal, layout.NewPane("A"),
			layout.NewSplit(layout.Horizontal, layout.NewPane("B"), layout.NewPane("C"))),
		ActivePane: "A",
	}}, Content: map[string][]string{"C": {"from C"}}})
	require.NoError(t, err)

	require.True(t, s.RotateActive())
	assert.Equal(t, []string{"C", "A", "B"}, layout.PaneIDs(s.ActiveWindow().Layout))
	// the top slot now carries C's identity and therefore C's content
	assert.Equal(t, "C", s.ActivePane())
	assert.Equal(t, []string{"from C"}, s.Content(s.ActivePane()))
}

func TestSwapKeepsFocusPosition(t *testing.T) {
	s := New()
	s.SplitActive(layout.Vertical)
	require.True(t, s.SwapActive(-1))
	assert.Equal(t, "v(%1,%0)", layout.String(s.ActiveWindow().Layout))
	assert.Equal(t, "%0", s.ActivePane())
}

func TestToggleLayoutAndSinglePaneNoops(t *testing.T) {
	s := New()
	assert.False(t, s.ToggleLayout())
	assert.False(t, s.RotateActive())
	assert.False(t, s.SwapActive(1))
	assert.False(t, s.MoveFocus(layout.MoveLeft))
	s.SplitActive(layout.Vertical)
	assert.True(t, s.ToggleLayout())
	assert.Equal(t, "h(%0,%1)", layout.String(s.ActiveWindow().Layout))
	assert.True(t, s.MoveFocus(layout.MoveUp))
	assert.Equal(t, "%0", s.ActivePane())
}

func TestAppendCapsBuffer(t *testing.T) {
	s := New()
	for i := 0; i < 20; i++ {
		s.AppendActive(fmt.Sprintf("line %d", i))
	}
	lines := s.Content("%0")
	require.Len(t, lines, MaxContentLines)
	assert.Equal(t, "line 5", lines[0])
	assert.Equal(t, "line 19", lines[len(lines)-1])
}

func TestRestoreValidates(t *testing.T) {
	cases := map[string]Snapshot{
		"empty":        {},
		"bad active":   {Windows: []WindowSnapshot{{Layout: layout.NewPane("%0")}}, Active: 1},
		"nil layout":   {Windows: []WindowSnapshot{{Name: "x"}}},
		"dup pane":     {Windows: []WindowSnapshot{{Layout: layout.NewPane("%0")}, {Layout: layout.NewPane("%0")}}},
		"stray active": {Windows: []WindowSnapshot{{Layout: layout.NewPane("%0"), ActivePane: "%5"}}},
		"dup window":   {Windows: []WindowSnapshot{{ID: "@1", Layout: layout.NewPane("%0")}, {ID: "@1", Layout: layout.NewPane("%1")}}},
	}
	for name, snap := range cases {
		_, err := Restore(snap)
		if !errors.Is(err, ErrInvalidSnapshot) {
			t.Fatalf("%s: expected ErrInvalidSnapshot, got %v", name, err)
		}
	}
}

func TestRestoreSkipsReservedIDs(t *testing.T) {
	s, err := Restore(Snapshot{Windows: []WindowSnapshot{
		{ID: "@4", Name: "editor", Layout: layout.NewSplit(layout.Vertical, layout.NewPane("%3"), layout.NewPane("%7"))},
	}})
	require.NoError(t, err)
	assert.Equal(t, "%3", s.ActivePane())
	assert.Equal(t, "%8", s.SplitActive(layout.Horizontal))
	w := s.CreateWindow("")
	assert.Equal(t, "@5", w.ID)
	assert.Equal(t, "%9", w.ActivePane)
}

func TestSnapshotRoundTripIsIndependent(t *testing.T) {
	s := New()
	s.SplitActive(layout.Vertical)
	snap := s.snapshot()
	restored, err := Restore(snap)
	require.NoError(t, err)

	restored.AppendActive("only in restored")
	restored.SplitActive(layout.Horizontal)
	assert.NotContains(t, s.Content("%1"), "only in restored")
	assert.Equal(t, "v(%0,%1)", layout.String(s.ActiveWindow().Layout))
	assert.Equal(t, "v(%0,h(%1,%2))", layout.String(restored.ActiveWindow().Layout))
}
