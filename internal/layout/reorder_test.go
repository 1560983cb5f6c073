package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func threeRow() Node {
	return NewSplit(Horizontal, NewPane("A"), NewSplit(Horizontal, NewPane("B"), NewPane("C")))
}

func TestRotateMovesLastToFront(t *testing.T) {
	rotated := Rotate(threeRow())
	assert.Equal(t, []string{"C", "A", "B"}, PaneIDs(rotated))
	assert.Equal(t, "h(C,h(A,B))", String(rotated))
}

func TestRotateFullCycleIsIdentity(t *testing.T) {
	trees := []Node{threeRow(), threeWay(), NewSplit(Vertical, NewPane("x"), NewPane("y"))}
	for _, tree := range trees {
		got := tree
		for i := 0; i < CountLeaves(tree); i++ {
			got = Rotate(got)
		}
		if !Equal(tree, got) {
			t.Fatalf("expected %s after full rotation, got %s", String(tree), String(got))
		}
	}
}

func TestRotateSinglePaneNoop(t *testing.T) {
	assert.True(t, Equal(NewPane("%0"), Rotate(NewPane("%0"))))
}

func TestSwapAdjacentWraps(t *testing.T) {
	tree := threeRow()
	assert.Equal(t, []string{"B", "A", "C"}, PaneIDs(SwapAdjacent(tree, "A", 1)))
	assert.Equal(t, []string{"C", "B", "A"}, PaneIDs(SwapAdjacent(tree, "A", -1)))
	assert.Equal(t, []string{"C", "B", "A"}, PaneIDs(SwapAdjacent(tree, "C", 1)))
	assert.Equal(t, []string{"A", "C", "B"}, PaneIDs(SwapAdjacent(tree, "C", -1)))
}

func TestSwapAdjacentKeepsShape(t *testing.T) {
	swapped := SwapAdjacent(threeWay(), "%0", 1)
	assert.Equal(t, "v(%1,h(%0,%2))", String(swapped))
	assert.True(t, Equal(threeWay(), SwapAdjacent(threeWay(), "nope", 1)))
}

func TestToggleOrientation(t *testing.T) {
	flipped := ToggleOrientation(threeWay())
	assert.Equal(t, "h(%0,v(%1,%2))", String(flipped))
	assert.True(t, Equal(threeWay(), ToggleOrientation(flipped)))
	assert.Equal(t, PaneIDs(threeWay()), PaneIDs(flipped))
}

func TestReassignShortList(t *testing.T) {
	got := Reassign(threeRow(), []string{"Z"})
	assert.Equal(t, []string{"Z", "B", "C"}, PaneIDs(got))
}

func TestRects(t *testing.T) {
	rects := Rects(threeWay(), Rect{W: 81, H: 21})
	assert.Equal(t, Rect{X: 0, Y: 0, W: 40, H: 21}, rects["%0"])
	assert.Equal(t, Rect{X: 40, Y: 0, W: 41, H: 10}, rects["%1"])
	assert.Equal(t, Rect{X: 40, Y: 10, W: 41, H: 11}, rects["%2"])

	zoomed := ViewRects(threeWay(), Rect{W: 81, H: 21}, "%2")
	assert.Len(t, zoomed, 1)
	assert.Equal(t, Rect{W: 81, H: 21}, zoomed["%2"])
}
