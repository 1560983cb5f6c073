package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmux-dojo/dojo/internal/backend"
	"github.com/tmux-dojo/dojo/internal/catalog"
	"github.com/tmux-dojo/dojo/internal/data/dispatcher"
	"github.com/tmux-dojo/dojo/internal/engine"
	"github.com/tmux-dojo/dojo/internal/logging"
	"github.com/tmux-dojo/dojo/internal/logging/events"
	"github.com/tmux-dojo/dojo/internal/state"
	"github.com/tmux-dojo/dojo/internal/store"
	"github.com/tmux-dojo/dojo/internal/theme"
	"github.com/tmux-dojo/dojo/internal/ui/command"
	uistate "github.com/tmux-dojo/dojo/internal/ui/state"
)

const (
	defaultWidth  = 100
	defaultHeight = 32
	sessionName   = "dojo"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Catalog *catalog.Catalog
	Engine  engine.Options
	// StartLevel is the level to open; -1 resumes at the first level
	// without a recorded completion.
	StartLevel int
	// Width and Height pin the view size; zero follows the terminal.
	Width  int
	Height int
	// InitialWidth and InitialHeight size the first frame before the
	// terminal reports its dimensions.
	InitialWidth  int
	InitialHeight int
	// Progress seeds completion counts before the recorder reports.
	Progress store.Progress
	// Recorder persists progress; nil plays without saving.
	Recorder *backend.Recorder
}

// Model implements the Bubble Tea model for the dojo.
type Model struct {
	eng     *engine.Engine
	catalog *catalog.Catalog

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	now        func() time.Time

	picker     *uistate.Picker
	pickerOpen bool
	filter     textinput.Model

	keys keyMap
	help help.Model

	handlers map[reflect.Type]msgHandler

	bus        *command.Bus
	recorder   *backend.Recorder
	progress   state.ProgressStore
	medals     state.MedalStore
	dispatcher *dispatcher.Dispatcher
	start      *engine.Result
}

// NewModel initialises the UI state and loads the starting level.
func NewModel(opts Options) *Model {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	progress := state.NewProgressStore()
	medals := state.NewMedalStore()
	var submit func(backend.Request) bool
	if opts.Recorder != nil {
		submit = opts.Recorder.Submit
	}
	m := &Model{
		eng:        engine.New(cat, opts.Engine),
		catalog:    cat,
		now:        time.Now,
		keys:       defaultKeyMap(),
		help:       help.New(),
		bus:        command.New(submit),
		recorder:   opts.Recorder,
		progress:   progress,
		medals:     medals,
		dispatcher: dispatcher.New(progress, medals),
	}
	m.width, m.height = opts.InitialWidth, opts.InitialHeight
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Width = m.viewWidth()
	if opts.Progress.Counts != nil {
		m.progress.SetProgress(opts.Progress)
		m.eng.SetCompletions(opts.Progress.Counts)
	}

	start := opts.StartLevel
	if start < 0 {
		start = m.resumeLevel()
	}
	res, err := m.eng.Start(start)
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		res, _ = m.eng.Start(cat.First().ID)
	}
	m.start = &res
	m.picker = uistate.NewPicker(m.pickerEntries())
	m.filter = newFilterInput()
	m.registerHandlers()
	return m
}

// resumeLevel returns the first level without a completion, or the first
// level when everything is done.
func (m *Model) resumeLevel() int {
	for _, lvl := range m.catalog.Levels() {
		if !m.eng.Completed(lvl.ID) {
			return lvl.ID
		}
	}
	return m.catalog.First().ID
}

// Engine exposes the interpreter for tests and the app layer.
func (m *Model) Engine() *engine.Engine {
	return m.eng
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.start != nil {
		cmds = append(cmds, m.applyResult(*m.start))
		m.start = nil
	}
	if m.recorder != nil {
		cmds = append(cmds, waitForRecorderEvent(m.recorder))
	}
	return batch(cmds)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, batch(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(command.TimerMsg{}):   m.handleTimerMsg,
		reflect.TypeOf(command.DroppedMsg{}): m.handleDroppedMsg,
		reflect.TypeOf(recorderEventMsg{}):   m.handleRecorderEventMsg,
		reflect.TypeOf(recorderDoneMsg{}):    m.handleRecorderDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.help.Width = m.viewWidth()
	events.UI.Resize(m.viewWidth(), m.viewHeight())
	return nil
}

func (m *Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

func batch(cmds []tea.Cmd) tea.Cmd {
	live := cmds[:0:0]
	for _, c := range cmds {
		if c != nil {
			live = append(live, c)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	default:
		return tea.Batch(live...)
	}
}
