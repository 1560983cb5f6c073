package layout

type step struct {
	split  Split
	branch int // 0 = first child, 1 = second child
}

// pathTo returns the ancestor splits of id from the root downwards.
func pathTo(tree Node, id string) ([]step, bool) {
	switch n := tree.(type) {
	case Pane:
		return nil, n.ID == id
	case Split:
		if rest, ok := pathTo(n.First, id); ok {
			return append([]step{{split: n, branch: 0}}, rest...), true
		}
		if rest, ok := pathTo(n.Second, id); ok {
			return append([]step{{split: n, branch: 1}}, rest...), true
		}
	}
	return nil, false
}

// Neighbor finds the pane adjacent to fromID in the given direction.
//
// The nearest ancestor whose axis matches the move and whose other child
// lies in the requested direction is selected; the search then descends
// into that child along the edge facing the origin. ok is false when the
// origin already sits on the boundary in that direction.
func Neighbor(tree Node, fromID string, move Move) (string, bool) {
	path, found := pathTo(tree, fromID)
	if !found {
		return "", false
	}
	for i := len(path) - 1; i >= 0; i-- {
		st := path[i]
		if st.split.Dir != move.axis() {
			continue
		}
		if move.backward() && st.branch == 1 {
			return edgePane(st.split.First, true), true
		}
		if !move.backward() && st.branch == 0 {
			return edgePane(st.split.Second, false), true
		}
	}
	return "", false
}

// edgePane walks to the last leaf (last=true) or first leaf of a subtree.
func edgePane(tree Node, last bool) string {
	for {
		switch n := tree.(type) {
		case Pane:
			return n.ID
		case Split:
			if last {
				tree = n.Second
			} else {
				tree = n.First
			}
		default:
			return ""
		}
	}
}
