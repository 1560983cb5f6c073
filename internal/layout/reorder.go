package layout

// Reassign rebuilds the tree with the same shape, handing out ids to the
// leaves in flatten order. Leaves beyond len(ids) keep their id.
func Reassign(tree Node, ids []string) Node {
	next := 0
	var walk func(Node) Node
	walk = func(node Node) Node {
		switch n := node.(type) {
		case Pane:
			id := n.ID
			if next < len(ids) {
				id = ids[next]
			}
			next++
			return Pane{ID: id}
		case Split:
			first := walk(n.First)
			second := walk(n.Second)
			return Split{Dir: n.Dir, First: first, Second: second}
		}
		return node
	}
	return walk(tree)
}

// RotateIDs moves the last id to the front: [a b c] becomes [c a b].
func RotateIDs(ids []string) []string {
	if len(ids) < 2 {
		return append([]string(nil), ids...)
	}
	out := make([]string, 0, len(ids))
	out = append(out, ids[len(ids)-1])
	return append(out, ids[:len(ids)-1]...)
}

// Rotate shifts pane ids one slot clockwise across the leaves.
func Rotate(tree Node) Node {
	ids := PaneIDs(tree)
	if len(ids) < 2 {
		return tree
	}
	return Reassign(tree, RotateIDs(ids))
}

// SwapAdjacent exchanges id with its neighbour offset positions away in
// flatten order, wrapping at both ends.
func SwapAdjacent(tree Node, id string, offset int) Node {
	ids := PaneIDs(tree)
	n := len(ids)
	if n < 2 {
		return tree
	}
	i := -1
	for idx, paneID := range ids {
		if paneID == id {
			i = idx
			break
		}
	}
	if i < 0 {
		return tree
	}
	j := ((i+offset)%n + n) % n
	if i == j {
		return tree
	}
	ids[i], ids[j] = ids[j], ids[i]
	return Reassign(tree, ids)
}

// ToggleOrientation flips the direction of every split.
func ToggleOrientation(tree Node) Node {
	switch n := tree.(type) {
	case Split:
		return Split{Dir: n.Dir.Flip(), First: ToggleOrientation(n.First), Second: ToggleOrientation(n.Second)}
	case Pane:
		return Pane{ID: n.ID}
	}
	return tree
}
