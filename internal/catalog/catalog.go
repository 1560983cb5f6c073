// Package catalog loads the ordered list of dojo levels and turns a level's
// optional initial state into a fresh session.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tmux-dojo/dojo/internal/layout"
	"github.com/tmux-dojo/dojo/internal/session"
)

//go:embed levels.yaml
var defaultLevels []byte

var (
	// ErrUnknownLevel is returned when a level id is not in the catalog.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrInvalidSnapshot marks a level whose initial state cannot be built.
	ErrInvalidSnapshot = errors.New("invalid initial state")
)

// Level is one scripted exercise.
type Level struct {
	ID          int           `yaml:"id"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Objective   []string      `yaml:"objective"`
	Actions     []string      `yaml:"actions"`
	Commands    []string      `yaml:"commands"`
	Hint        string        `yaml:"hint"`
	Initial     *InitialState `yaml:"initial,omitempty"`
}

// Group is a titled run of consecutive levels.
type Group struct {
	ID     int     `yaml:"id"`
	Title  string  `yaml:"title"`
	Levels []Level `yaml:"levels"`
}

// InitialState is the YAML form of a session snapshot.
type InitialState struct {
	Active  int                 `yaml:"active"`
	Windows []WindowSpec        `yaml:"windows"`
	Content map[string][]string `yaml:"content,omitempty"`
}

// WindowSpec describes one window of an InitialState.
type WindowSpec struct {
	ID     string    `yaml:"id,omitempty"`
	Name   string    `yaml:"name,omitempty"`
	Active string    `yaml:"active,omitempty"`
	Layout *NodeSpec `yaml:"layout"`
}

// NodeSpec is either {pane: id} or {split: dir, first: ..., second: ...}.
type NodeSpec struct {
	Pane   string    `yaml:"pane,omitempty"`
	Split  string    `yaml:"split,omitempty"`
	First  *NodeSpec `yaml:"first,omitempty"`
	Second *NodeSpec `yaml:"second,omitempty"`
}

// Node converts n into a layout tree.
func (n *NodeSpec) Node() (layout.Node, error) {
	if n == nil {
		return nil, errors.New("missing layout node")
	}
	if n.Split == "" {
		if n.Pane == "" {
			return nil, errors.New("pane node without id")
		}
		if n.First != nil || n.Second != nil {
			return nil, fmt.Errorf("pane %q has children", n.Pane)
		}
		return layout.NewPane(n.Pane), nil
	}
	if n.Pane != "" {
		return nil, fmt.Errorf("split node carries pane id %q", n.Pane)
	}
	dir, err := layout.ParseDirection(n.Split)
	if err != nil {
		return nil, err
	}
	first, err := n.First.Node()
	if err != nil {
		return nil, fmt.Errorf("first: %w", err)
	}
	second, err := n.Second.Node()
	if err != nil {
		return nil, fmt.Errorf("second: %w", err)
	}
	return layout.NewSplit(dir, first, second), nil
}

// Snapshot converts the initial state into a session snapshot.
func (s *InitialState) Snapshot() (session.Snapshot, error) {
	snap := session.Snapshot{Active: s.Active, Content: make(map[string][]string, len(s.Content))}
	for i, w := range s.Windows {
		tree, err := w.Layout.Node()
		if err != nil {
			return session.Snapshot{}, fmt.Errorf("window %d: %w", i, err)
		}
		snap.Windows = append(snap.Windows, session.WindowSnapshot{
			ID:         w.ID,
			Name:       w.Name,
			Layout:     tree,
			ActivePane: w.Active,
		})
	}
	for id, lines := range s.Content {
		snap.Content[id] = append([]string(nil), lines...)
	}
	return snap, nil
}

// Catalog is an ordered, read-only level list.
type Catalog struct {
	groups []Group
	levels []Level
	index  map[int]int
	group  map[int]int
}

type document struct {
	Groups []Group `yaml:"groups"`
}

// Parse decodes a catalog document. Level ids must be unique; malformed
// initial states are tolerated here and reported by Lint.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := &Catalog{
		groups: doc.Groups,
		index:  make(map[int]int),
		group:  make(map[int]int),
	}
	for gi, g := range doc.Groups {
		for _, lvl := range g.Levels {
			if _, dup := c.index[lvl.ID]; dup {
				return nil, fmt.Errorf("decode catalog: duplicate level id %d", lvl.ID)
			}
			c.index[lvl.ID] = len(c.levels)
			c.group[lvl.ID] = gi
			c.levels = append(c.levels, lvl)
		}
	}
	if len(c.levels) == 0 {
		return nil, errors.New("decode catalog: no levels")
	}
	return c, nil
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultLevels)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Levels returns every level in play order.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	copy(out, c.levels)
	return out
}

// Groups returns the level groups in play order.
func (c *Catalog) Groups() []Group {
	out := make([]Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// First returns the first level.
func (c *Catalog) First() Level {
	return c.levels[0]
}

// Level looks up a level by id.
func (c *Catalog) Level(id int) (Level, error) {
	i, ok := c.index[id]
	if !ok {
		return Level{}, fmt.Errorf("level %d: %w", id, ErrUnknownLevel)
	}
	return c.levels[i], nil
}

// Index returns the play-order position of a level id, or -1.
func (c *Catalog) Index(id int) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Next returns the level after id, wrapping to the first.
func (c *Catalog) Next(id int) Level {
	i := c.Index(id)
	return c.levels[(i+1)%len(c.levels)]
}

// GroupOf returns the group containing the level id.
func (c *Catalog) GroupOf(id int) (Group, bool) {
	gi, ok := c.group[id]
	if !ok {
		return Group{}, false
	}
	return c.groups[gi], true
}

// Build constructs a fresh session for the level: from its initial state
// when present, otherwise a single default pane. Each call returns an
// independent session.
func Build(lvl Level) (*session.Session, error) {
	if lvl.Initial == nil {
		return session.New(), nil
	}
	snap, err := lvl.Initial.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("level %d: %w: %v", lvl.ID, ErrInvalidSnapshot, err)
	}
	s, err := session.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w: %v", lvl.ID, ErrInvalidSnapshot, err)
	}
	return s, nil
}
