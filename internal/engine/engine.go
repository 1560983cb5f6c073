// Package engine interprets normalised input tokens against the simulated
// session and tracks progress through the current level.
//
// The engine is single-threaded: callers feed one token at a time through
// Handle and deliver scheduled timers back through Fire. Nothing inside
// blocks or starts goroutines.
package engine

import (
	"time"

	"github.com/tmux-dojo/dojo/internal/catalog"
	"github.com/tmux-dojo/dojo/internal/logging"
	"github.com/tmux-dojo/dojo/internal/logging/events"
	"github.com/tmux-dojo/dojo/internal/session"
)

// Engine owns the session, interaction modes and level progress.
type Engine struct {
	opts    Options
	catalog *catalog.Catalog
	level   catalog.Level
	sess    *session.Session

	prefix     bool
	mode       Mode
	target     Target
	input      []rune
	listing    Listing
	listCursor int

	progress      int
	status        Status
	feedbackReady bool
	completed     map[int]struct{}
	counts        map[int]int

	lastKey string
	lastTap time.Time
	gens    [timerKinds]uint64
}

// New returns an engine positioned on the first catalog level. Call Start
// to (re)load the level the session should begin with.
func New(cat *catalog.Catalog, opts Options) *Engine {
	def := DefaultOptions()
	if opts.ResetKey == "" {
		opts.ResetKey = def.ResetKey
	}
	if opts.ResetWindow <= 0 {
		opts.ResetWindow = def.ResetWindow
	}
	if opts.FlashTimeout <= 0 {
		opts.FlashTimeout = def.FlashTimeout
	}
	if opts.SuccessDelay < 0 {
		opts.SuccessDelay = def.SuccessDelay
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	e := &Engine{
		opts:      opts,
		catalog:   cat,
		completed: make(map[int]struct{}),
		counts:    make(map[int]int),
	}
	e.prepare(cat.First(), "init")
	return e
}

// Start loads the level the session begins with. Levels without actions
// are finished on load but only counted once the player moves past them.
func (e *Engine) Start(levelID int) (Result, error) {
	lvl, err := e.catalog.Level(levelID)
	if err != nil {
		return Result{}, err
	}
	return e.load(lvl, "start"), nil
}

// SetCompletions seeds completion counts from persisted progress.
func (e *Engine) SetCompletions(counts map[int]int) {
	for id, n := range counts {
		if n <= 0 {
			continue
		}
		e.counts[id] = n
		e.completed[id] = struct{}{}
	}
}

// Session exposes the simulated session for rendering.
func (e *Engine) Session() *session.Session { return e.sess }

// Level returns the current level.
func (e *Engine) Level() catalog.Level { return e.level }

func (e *Engine) Mode() Mode { return e.mode }
func (e *Engine) PrefixArmed() bool { return e.prefix }
func (e *Engine) ConfirmTarget() Target { return e.target }
func (e *Engine) InputBuffer() string { return string(e.input) }
func (e *Engine) Listing() Listing { return e.listing }
func (e *Engine) ListCursor() int { return e.listCursor }
func (e *Engine) Progress() int { return e.progress }
func (e *Engine) Status() Status { return e.status }
func (e *Engine) FeedbackReady() bool { return e.feedbackReady }
func (e *Engine) LastKey() string { return e.lastKey }
func (e *Engine) Count(levelID int) int { return e.counts[levelID] }
func (e *Engine) Flashing() bool { return e.mode == ModeFlash }
func (e *Engine) Completed(id int) bool {
	_, ok := e.completed[id]
	return ok
}

// Expected returns the next required token, or "" when none remain.
func (e *Engine) Expected() string {
	if e.progress < len(e.level.Actions) {
		return e.level.Actions[e.progress]
	}
	return ""
}

// Reset rebuilds the current level from scratch.
func (e *Engine) Reset() Result {
	res := e.load(e.level, "reset")
	res.Effect = EffectReset
	return res
}

// Advance moves to the next level, wrapping after the last.
func (e *Engine) Advance() Result {
	res := e.load(e.catalog.Next(e.level.ID), "advance")
	res.Effect = EffectAdvance
	return res
}

// GoTo loads an arbitrary level.
func (e *Engine) GoTo(id int) (Result, error) {
	lvl, err := e.catalog.Level(id)
	if err != nil {
		return Result{}, err
	}
	res := e.load(lvl, "goto")
	res.Effect = EffectReset
	return res, nil
}

// Fire applies a previously scheduled timer. Superseded timers and timers
// whose overlay is already gone are ignored.
func (e *Engine) Fire(t Timer) Result {
	res := Result{}
	if t.Kind < 0 || t.Kind >= timerKinds || t.Gen != e.gens[t.Kind] {
		events.Mode.TimerStale(t.Kind.String(), t.Gen)
		return res
	}
	e.gens[t.Kind]++
	switch t.Kind {
	case TimerFlash:
		if e.mode == ModeFlash {
			e.setMode(ModeIdle, "timeout")
		}
	case TimerFeedback:
		if e.status == StatusSucceeded && !e.feedbackReady {
			e.feedbackReady = true
			res.Effect = EffectFeedback
			events.Level.Feedback(e.level.ID)
		}
	}
	return res
}

func (e *Engine) load(lvl catalog.Level, reason string) Result {
	e.prepare(lvl, reason)
	res := Result{}
	if len(lvl.Actions) == 0 {
		e.finish(&res)
	}
	return res
}

func (e *Engine) prepare(lvl catalog.Level, reason string) {
	sess, err := catalog.Build(lvl)
	if err != nil {
		logging.Warn("level initial state unusable, using default session", map[string]interface{}{
			"level": lvl.ID,
			"error": err.Error(),
		})
		events.Level.Fallback(lvl.ID, err)
		sess = session.New()
	}
	e.level = lvl
	e.sess = sess
	e.prefix = false
	e.mode = ModeIdle
	e.target = TargetNone
	e.input = nil
	e.listing = ListWindows
	e.listCursor = 0
	e.progress = 0
	e.status = StatusInProgress
	e.feedbackReady = false
	e.lastTap = time.Time{}
	for i := range e.gens {
		e.gens[i]++
	}
	events.Level.Load(lvl.ID, lvl.Title, reason)
}

func (e *Engine) schedule(kind TimerKind, delay time.Duration) Timer {
	e.gens[kind]++
	return Timer{Kind: kind, Gen: e.gens[kind], Delay: delay}
}

func (e *Engine) cancel(kind TimerKind) {
	e.gens[kind]++
}

func (e *Engine) setMode(m Mode, reason string) {
	if e.mode == m {
		return
	}
	if e.mode != ModeIdle {
		events.Mode.Exit(e.mode.String(), reason)
	}
	if e.mode == ModeFlash {
		e.cancel(TimerFlash)
	}
	e.mode = m
	if m != ModeIdle {
		events.Mode.Enter(m.String())
	}
}

// compare matches tok against the expected action: a match advances,
// anything else resets progress to zero.
func (e *Engine) compare(tok string, res *Result) {
	res.Accepted = true
	expected := e.Expected()
	if expected != "" && tok == expected {
		e.progress++
		res.Progressed = true
		events.Level.Progress(e.level.ID, e.progress, len(e.level.Actions), tok)
		if e.progress == len(e.level.Actions) {
			e.succeed(res)
		}
		return
	}
	events.Level.Mismatch(e.level.ID, e.progress, tok, expected)
	e.progress = 0
	res.ResetProgress = true
}

// compareFree advances on a match and otherwise leaves progress alone.
func (e *Engine) compareFree(tok string, res *Result) {
	if expected := e.Expected(); expected != "" && tok == expected {
		e.compare(tok, res)
	}
}

func (e *Engine) succeed(res *Result) {
	e.finish(res)
	res.Completion = e.record()
}

// finish marks the level done and schedules the feedback signal.
func (e *Engine) finish(res *Result) {
	e.status = StatusSucceeded
	res.Timers = append(res.Timers, e.schedule(TimerFeedback, e.opts.SuccessDelay))
}

func (e *Engine) record() *Completion {
	e.completed[e.level.ID] = struct{}{}
	e.counts[e.level.ID]++
	count := e.counts[e.level.ID]
	events.Level.Complete(e.level.ID, count)
	return &Completion{LevelID: e.level.ID, Title: e.level.Title, Count: count}
}
