package layout

// Rect is a cell-addressed rectangle.
type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Rects divides area between the panes of tree. Each split hands its first
// child the floor of half the available extent and the remainder to the
// second child, so the returned rectangles tile area exactly.
func Rects(tree Node, area Rect) map[string]Rect {
	out := make(map[string]Rect, CountLeaves(tree))
	rectsForNode(tree, area, out)
	return out
}

// ViewRects is Rects with zoom applied: when zoomedID names a pane of the
// tree, that pane alone fills area.
func ViewRects(tree Node, area Rect, zoomedID string) map[string]Rect {
	if zoomedID != "" && Contains(tree, zoomedID) {
		return map[string]Rect{zoomedID: area}
	}
	return Rects(tree, area)
}

func rectsForNode(node Node, rect Rect, out map[string]Rect) {
	if rect.Empty() {
		return
	}
	switch n := node.(type) {
	case Pane:
		out[n.ID] = rect
	case Split:
		if n.Dir == Vertical {
			w := rect.W / 2
			rectsForNode(n.First, Rect{X: rect.X, Y: rect.Y, W: w, H: rect.H}, out)
			rectsForNode(n.Second, Rect{X: rect.X + w, Y: rect.Y, W: rect.W - w, H: rect.H}, out)
			return
		}
		h := rect.H / 2
		rectsForNode(n.First, Rect{X: rect.X, Y: rect.Y, W: rect.W, H: h}, out)
		rectsForNode(n.Second, Rect{X: rect.X, Y: rect.Y + h, W: rect.W, H: rect.H - h}, out)
	}
}
