package layout

import "strings"

// SplitPane replaces the pane targetID with a split of dir whose first child
// keeps targetID and whose second child is a new pane newID. The second
// return value is false, and the tree is returned unchanged, when targetID
// is not present.
func SplitPane(tree Node, targetID, newID string, dir Direction) (Node, bool) {
	switch n := tree.(type) {
	case Pane:
		if n.ID != targetID {
			return n, false
		}
		return Split{Dir: dir, First: Pane{ID: n.ID}, Second: Pane{ID: newID}}, true
	case Split:
		if first, ok := SplitPane(n.First, targetID, newID, dir); ok {
			return Split{Dir: n.Dir, First: first, Second: n.Second}, true
		}
		if second, ok := SplitPane(n.Second, targetID, newID, dir); ok {
			return Split{Dir: n.Dir, First: n.First, Second: second}, true
		}
		return n, false
	}
	return tree, false
}

// RemovePane drops the pane targetID and promotes its sibling in place of
// the parent split. Removing the only pane yields nil. The second return
// value reports whether the pane was found.
func RemovePane(tree Node, targetID string) (Node, bool) {
	switch n := tree.(type) {
	case Pane:
		if n.ID == targetID {
			return nil, true
		}
		return n, false
	case Split:
		if first, ok := RemovePane(n.First, targetID); ok {
			if first == nil {
				return n.Second, true
			}
			return Split{Dir: n.Dir, First: first, Second: n.Second}, true
		}
		if second, ok := RemovePane(n.Second, targetID); ok {
			if second == nil {
				return n.First, true
			}
			return Split{Dir: n.Dir, First: n.First, Second: second}, true
		}
		return n, false
	}
	return tree, false
}

// CountLeaves returns the number of panes in the tree.
func CountLeaves(tree Node) int {
	switch n := tree.(type) {
	case Pane:
		return 1
	case Split:
		return CountLeaves(n.First) + CountLeaves(n.Second)
	}
	return 0
}

// CountSplits returns the number of split nodes in the tree.
func CountSplits(tree Node) int {
	if n, ok := tree.(Split); ok {
		return 1 + CountSplits(n.First) + CountSplits(n.Second)
	}
	return 0
}

// PaneIDs lists pane ids depth-first, first child before second. This is
// the canonical order for cycling, index flashes and rotation.
func PaneIDs(tree Node) []string {
	ids := make([]string, 0, 4)
	return appendPaneIDs(ids, tree)
}

func appendPaneIDs(ids []string, tree Node) []string {
	switch n := tree.(type) {
	case Pane:
		return append(ids, n.ID)
	case Split:
		ids = appendPaneIDs(ids, n.First)
		return appendPaneIDs(ids, n.Second)
	}
	return ids
}

// Contains reports whether id names a pane in the tree.
func Contains(tree Node, id string) bool {
	return IndexOf(tree, id) >= 0
}

// IndexOf returns the flatten-order position of id, or -1.
func IndexOf(tree Node, id string) int {
	for i, paneID := range PaneIDs(tree) {
		if paneID == id {
			return i
		}
	}
	return -1
}

// FirstPane returns the leftmost (first in flatten order) pane id.
func FirstPane(tree Node) string {
	for {
		switch n := tree.(type) {
		case Pane:
			return n.ID
		case Split:
			tree = n.First
		default:
			return ""
		}
	}
}

// Equal reports whether two trees have the same shape, directions and ids.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Pane:
		y, ok := b.(Pane)
		return ok && x.ID == y.ID
	case Split:
		y, ok := b.(Split)
		return ok && x.Dir == y.Dir && Equal(x.First, y.First) && Equal(x.Second, y.Second)
	case nil:
		return b == nil
	}
	return false
}

// String renders a compact form such as "v(%0,h(%1,%2))".
func String(tree Node) string {
	var b strings.Builder
	writeNode(&b, tree)
	return b.String()
}

func writeNode(b *strings.Builder, tree Node) {
	switch n := tree.(type) {
	case Pane:
		b.WriteString(n.ID)
	case Split:
		if n.Dir == Vertical {
			b.WriteString("v(")
		} else {
			b.WriteString("h(")
		}
		writeNode(b, n.First)
		b.WriteByte(',')
		writeNode(b, n.Second)
		b.WriteByte(')')
	default:
		b.WriteString("<empty>")
	}
}
