package engine

import "time"

// Mode is the modal condition that intercepts input before the default
// prefix/command grammar. The prefix-armed flag and per-pane clocks are
// tracked separately because they can coexist with a mode.
type Mode int

const (
	ModeIdle Mode = iota
	ModeListing
	ModeFlash
	ModeConfirm
	ModeRename
	ModeCopy
	ModeDetached
	ModePrompt
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeListing:
		return "listing"
	case ModeFlash:
		return "flash"
	case ModeConfirm:
		return "confirm"
	case ModeRename:
		return "rename"
	case ModeCopy:
		return "copy"
	case ModeDetached:
		return "detached"
	case ModePrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// Listing is what the choose-tree overlay shows.
type Listing int

const (
	ListWindows Listing = iota
	ListSessions
)

func (l Listing) String() string {
	if l == ListSessions {
		return "sessions"
	}
	return "windows"
}

// Target is what a pending kill confirmation applies to.
type Target int

const (
	TargetNone Target = iota
	TargetPane
	TargetWindow
)

func (t Target) String() string {
	switch t {
	case TargetPane:
		return "pane"
	case TargetWindow:
		return "window"
	default:
		return "none"
	}
}

// Status is the level progression state.
type Status int

const (
	StatusInProgress Status = iota
	StatusSucceeded
)

func (s Status) String() string {
	if s == StatusSucceeded {
		return "succeeded"
	}
	return "in-progress"
}

// TimerKind identifies a scheduled transition.
type TimerKind int

const (
	// TimerFlash dismisses the pane index overlay.
	TimerFlash TimerKind = iota
	// TimerFeedback exposes the level-complete signal.
	TimerFeedback
	timerKinds
)

func (k TimerKind) String() string {
	switch k {
	case TimerFlash:
		return "flash"
	case TimerFeedback:
		return "feedback"
	default:
		return "unknown"
	}
}

// Timer is a cancelable scheduled transition. The caller arranges for Fire
// to be called with it after Delay; the engine ignores timers whose
// generation has since been superseded.
type Timer struct {
	Kind  TimerKind
	Gen   uint64
	Delay time.Duration
}

// Effect marks side effects the outside world counts (stats, pacing).
type Effect int

const (
	EffectNone Effect = iota
	EffectClock
	EffectFlash
	EffectNewWindow
	EffectReset
	EffectAdvance
	EffectFeedback
)

func (e Effect) String() string {
	switch e {
	case EffectClock:
		return "clock"
	case EffectFlash:
		return "flash"
	case EffectNewWindow:
		return "new-window"
	case EffectReset:
		return "reset"
	case EffectAdvance:
		return "advance"
	case EffectFeedback:
		return "feedback"
	default:
		return "none"
	}
}

// Completion is emitted once per successful level attempt.
type Completion struct {
	LevelID int
	Title   string
	Count   int
}

// Result describes what one input token or timer did.
type Result struct {
	Token string
	// Accepted is true when the token was compared against the expected
	// action; swallowed tokens are not.
	Accepted      bool
	Progressed    bool
	ResetProgress bool
	Effect        Effect
	Timers        []Timer
	Completion    *Completion
}

// Options tunes timing and the double-tap reset key.
type Options struct {
	ResetKey     string
	ResetWindow  time.Duration
	FlashTimeout time.Duration
	SuccessDelay time.Duration
	Now          func() time.Time
}

// DefaultOptions returns the stock timings.
func DefaultOptions() Options {
	return Options{
		ResetKey:     "d",
		ResetWindow:  400 * time.Millisecond,
		FlashTimeout: 3 * time.Second,
		SuccessDelay: 800 * time.Millisecond,
		Now:          time.Now,
	}
}
