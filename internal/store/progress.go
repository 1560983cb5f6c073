package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tmux-dojo/dojo/internal/catalog"
)

// Points awarded per distinct completed level and per repeat completion.
const (
	MasteryPoints = 500
	MemoryPoints  = 10
)

// Progress is a read-only view of everything persisted.
type Progress struct {
	ProfileID     string
	Counts        map[int]int
	Titles        map[int]string
	LastCompleted map[int]time.Time
	Stats         map[string]int
	Medals        map[string]time.Time
}

// Clone returns a deep copy of p.
func (p Progress) Clone() Progress {
	out := Progress{
		ProfileID:     p.ProfileID,
		Counts:        make(map[int]int, len(p.Counts)),
		Titles:        make(map[int]string, len(p.Titles)),
		LastCompleted: make(map[int]time.Time, len(p.LastCompleted)),
		Stats:         make(map[string]int, len(p.Stats)),
		Medals:        make(map[string]time.Time, len(p.Medals)),
	}
	for k, v := range p.Counts {
		out.Counts[k] = v
	}
	for k, v := range p.Titles {
		out.Titles[k] = v
	}
	for k, v := range p.LastCompleted {
		out.LastCompleted[k] = v
	}
	for k, v := range p.Stats {
		out.Stats[k] = v
	}
	for k, v := range p.Medals {
		out.Medals[k] = v
	}
	return out
}

// Score splits points into mastery (first completions) and memory
// (repeats).
type Score struct {
	Distinct int
	Total    int
	Mastery  int
	Memory   int
}

// Points returns the combined score.
func (s Score) Points() int { return s.Mastery + s.Memory }

// String renders the score with thousands separators.
func (s Score) String() string {
	return fmt.Sprintf("%s pts (%s mastery, %s memory)",
		humanize.Comma(int64(s.Points())),
		humanize.Comma(int64(s.Mastery)),
		humanize.Comma(int64(s.Memory)))
}

// Score computes the points for p.
func (p Progress) Score() Score {
	var s Score
	for _, n := range p.Counts {
		if n <= 0 {
			continue
		}
		s.Distinct++
		s.Total += n
	}
	s.Mastery = MasteryPoints * s.Distinct
	s.Memory = MemoryPoints * (s.Total - s.Distinct)
	return s
}

// LastSeen describes when a level was last completed relative to now.
func (p Progress) LastSeen(levelID int, now time.Time) string {
	t, ok := p.LastCompleted[levelID]
	if !ok {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Medal describes an achievement.
type Medal struct {
	ID          string
	Title       string
	Description string
	earned      func(Progress, *catalog.Catalog) bool
}

// Medals lists every achievement in display order.
var Medals = []Medal{
	{
		ID: "first-steps", Title: "First Steps", Description: "Complete any level",
		earned: func(p Progress, _ *catalog.Catalog) bool { return p.Score().Distinct > 0 },
	},
	{
		ID: "splitter", Title: "Splitter", Description: "Complete every level in The Splits",
		earned: groupDone("The Splits"),
	},
	{
		ID: "navigator", Title: "Navigator", Description: "Complete every level in Navigation",
		earned: groupDone("Navigation"),
	},
	{
		ID: "timekeeper", Title: "Timekeeper", Description: "Open the clock 10 times",
		earned: statAtLeast(StatClocks, 10),
	},
	{
		ID: "flasher", Title: "Flasher", Description: "Flash pane numbers 10 times",
		earned: statAtLeast(StatFlashes, 10),
	},
	{
		ID: "window-smith", Title: "Window Smith", Description: "Create 10 windows",
		earned: statAtLeast(StatWindows, 10),
	},
	{
		ID: "dojo-master", Title: "Dojo Master", Description: "Complete every level",
		earned: func(p Progress, cat *catalog.Catalog) bool {
			for _, lvl := range cat.Levels() {
				if p.Counts[lvl.ID] <= 0 {
					return false
				}
			}
			return cat.Len() > 0
		},
	},
}

// MedalByID looks up a medal definition.
func MedalByID(id string) (Medal, bool) {
	for _, m := range Medals {
		if m.ID == id {
			return m, true
		}
	}
	return Medal{}, false
}

func groupDone(name string) func(Progress, *catalog.Catalog) bool {
	return func(p Progress, cat *catalog.Catalog) bool {
		for _, g := range cat.Groups() {
			if g.Title != name {
				continue
			}
			if len(g.Levels) == 0 {
				return false
			}
			for _, lvl := range g.Levels {
				if p.Counts[lvl.ID] <= 0 {
					return false
				}
			}
			return true
		}
		return false
	}
}

func statAtLeast(name string, n int) func(Progress, *catalog.Catalog) bool {
	return func(p Progress, _ *catalog.Catalog) bool { return p.Stats[name] >= n }
}

// DeriveMedals returns the ids of every medal p qualifies for, sorted.
func DeriveMedals(p Progress, cat *catalog.Catalog) []string {
	var ids []string
	for _, m := range Medals {
		if m.earned(p, cat) {
			ids = append(ids, m.ID)
		}
	}
	sort.Strings(ids)
	return ids
}
