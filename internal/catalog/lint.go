package catalog

import (
	"fmt"

	"github.com/tmux-dojo/dojo/internal/token"
)

// Issue is a problem found in a level definition.
type Issue struct {
	LevelID int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("level %d: %s", i.LevelID, i.Message)
}

// Lint reports levels that cannot be built, use tokens the engine never
// produces, or open with a bare key and later require the prefix. The last
// group was only completable under the old rule that set progress to one
// on a stray prefix; they still work but deserve a second look.
func Lint(c *Catalog) []Issue {
	var issues []Issue
	for _, lvl := range c.levels {
		if lvl.Title == "" {
			issues = append(issues, Issue{lvl.ID, "missing title"})
		}
		for i, tok := range lvl.Actions {
			if !token.Valid(tok) {
				issues = append(issues, Issue{lvl.ID, fmt.Sprintf("action %d: unknown token %q", i, tok)})
			}
		}
		if lvl.Initial != nil {
			if _, err := Build(lvl); err != nil {
				issues = append(issues, Issue{lvl.ID, err.Error()})
			}
		}
		if reliesOnPrefixQuirk(lvl.Actions) {
			issues = append(issues, Issue{lvl.ID, fmt.Sprintf("opens with bare %q but later expects the prefix", lvl.Actions[0])})
		}
	}
	return issues
}

func reliesOnPrefixQuirk(actions []string) bool {
	if len(actions) == 0 || actions[0] == token.Prefix {
		return false
	}
	for _, tok := range actions[1:] {
		if tok == token.Prefix {
			return true
		}
	}
	return false
}
