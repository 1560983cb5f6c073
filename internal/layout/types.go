// Package layout implements the binary pane-layout tree of a window.
//
// A tree is either a Pane leaf or a Split with exactly two children, so a
// tree with N panes always has N-1 splits. Every operation is pure: it
// returns a new tree and never mutates its input, which lets callers keep
// earlier snapshots around without aliasing concerns.
package layout

import "fmt"

// Direction is the axis a split divides along.
type Direction int

const (
	// Vertical places the children side by side (first left, second right).
	Vertical Direction = iota
	// Horizontal stacks the children (first top, second bottom).
	Horizontal
)

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Flip returns the opposite axis.
func (d Direction) Flip() Direction {
	if d == Vertical {
		return Horizontal
	}
	return Vertical
}

// ParseDirection converts "vertical"/"horizontal" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	default:
		return 0, fmt.Errorf("layout: unknown direction %q", s)
	}
}

// Move is a spatial navigation request.
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveUp
	MoveDown
)

func (m Move) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	default:
		return "unknown"
	}
}

// axis is the split direction a move crosses.
func (m Move) axis() Direction {
	if m == MoveLeft || m == MoveRight {
		return Vertical
	}
	return Horizontal
}

// backward reports whether the move heads towards the first child.
func (m Move) backward() bool {
	return m == MoveLeft || m == MoveUp
}

// Node is a layout tree node: either Pane or Split.
type Node interface {
	isNode()
}

// Pane is a leaf region identified by a unique id.
type Pane struct {
	ID string
}

// Split divides its area between exactly two children.
type Split struct {
	Dir    Direction
	First  Node
	Second Node
}

func (Pane) isNode()  {}
func (Split) isNode() {}

// NewPane returns a single-pane tree.
func NewPane(id string) Node {
	return Pane{ID: id}
}

// NewSplit returns a split node over the given children.
func NewSplit(dir Direction, first, second Node) Node {
	return Split{Dir: dir, First: first, Second: second}
}
