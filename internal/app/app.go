package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tmux-dojo/dojo/internal/backend"
	"github.com/tmux-dojo/dojo/internal/catalog"
	"github.com/tmux-dojo/dojo/internal/engine"
	"github.com/tmux-dojo/dojo/internal/format/table"
	"github.com/tmux-dojo/dojo/internal/logging"
	"github.com/tmux-dojo/dojo/internal/logging/events"
	"github.com/tmux-dojo/dojo/internal/store"
	"github.com/tmux-dojo/dojo/internal/ui"
)

// Command selects what the binary does.
type Command string

const (
	CommandPlay   Command = "play"
	CommandLevels Command = "levels"
	CommandStats  Command = "stats"
)

// Valid reports whether c names a known subcommand.
func (c Command) Valid() bool {
	switch c {
	case CommandPlay, CommandLevels, CommandStats:
		return true
	}
	return false
}

// Config describes user-provided application options.
type Config struct {
	Command Command
	// Level is the level to open; -1 resumes at the first unfinished one.
	Level        int
	LevelsPath   string
	DBPath       string
	NoStore      bool
	Width        int
	Height       int
	// TermWidth and TermHeight are the terminal size seen at startup,
	// used until the first resize arrives.
	TermWidth    int
	TermHeight   int
	ResetKey     string
	ResetWindow  time.Duration
	FlashTimeout time.Duration
	SuccessDelay time.Duration
}

// EngineOptions converts the timing settings for the engine.
func (c Config) EngineOptions() engine.Options {
	return engine.Options{
		ResetKey:     c.ResetKey,
		ResetWindow:  c.ResetWindow,
		FlashTimeout: c.FlashTimeout,
		SuccessDelay: c.SuccessDelay,
	}
}

// Run executes the configured subcommand.
func Run(cfg Config) error {
	err := run(context.Background(), cfg, os.Stdout)
	events.App.Exit(err)
	return err
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	cmd := cfg.Command
	if cmd == "" {
		cmd = CommandPlay
	}
	events.App.Subcommand(string(cmd))
	cat, err := loadCatalog(cfg.LevelsPath)
	if err != nil {
		return err
	}
	switch cmd {
	case CommandPlay:
		return play(ctx, cfg, cat)
	case CommandLevels:
		return listLevels(ctx, cfg, cat, out, time.Now())
	case CommandStats:
		return showStats(ctx, cfg, cat, out, time.Now())
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}
	for _, issue := range catalog.Lint(cat) {
		logging.Warn("level catalog issue", map[string]interface{}{
			"path":  path,
			"issue": issue.String(),
		})
	}
	return cat, nil
}

// openProgress opens the store and reads the current progress. A nil
// store means progress is not persisted.
func openProgress(ctx context.Context, cfg Config) (*store.Store, store.Progress, error) {
	if cfg.NoStore {
		return nil, store.Progress{}, nil
	}
	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, store.Progress{}, err
	}
	progress, err := st.Snapshot(ctx)
	if err != nil {
		_ = st.Close()
		return nil, store.Progress{}, err
	}
	return st, progress, nil
}

func play(ctx context.Context, cfg Config, cat *catalog.Catalog) error {
	st, progress, err := openProgress(ctx, cfg)
	if err != nil {
		return err
	}
	var recorder *backend.Recorder
	if st != nil {
		defer st.Close()
		recorder = backend.NewRecorder(st, cat)
		defer func() {
			recorder.Stop()
			recorder.Wait()
		}()
	}
	model := ui.NewModel(ui.Options{
		Catalog:       cat,
		Engine:        cfg.EngineOptions(),
		StartLevel:    cfg.Level,
		Width:         cfg.Width,
		Height:        cfg.Height,
		InitialWidth:  cfg.TermWidth,
		InitialHeight: cfg.TermHeight,
		Progress:      progress,
		Recorder:      recorder,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func listLevels(ctx context.Context, cfg Config, cat *catalog.Catalog, out io.Writer, now time.Time) error {
	var progress store.Progress
	if !cfg.NoStore && cfg.DBPath != "" {
		st, p, err := openProgress(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		progress = p
	}
	rows := [][]string{{"ID", "GROUP", "TITLE", "KEYS", "DONE", "LAST"}}
	for _, lvl := range cat.Levels() {
		group := ""
		if g, ok := cat.GroupOf(lvl.ID); ok {
			group = g.Title
		}
		rows = append(rows, []string{
			strconv.Itoa(lvl.ID),
			group,
			lvl.Title,
			strings.Join(lvl.Commands, ", "),
			humanize.Comma(int64(progress.Counts[lvl.ID])),
			progress.LastSeen(lvl.ID, now),
		})
	}
	aligns := []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignLeft}
	for _, line := range table.Format(rows, aligns) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func showStats(ctx context.Context, cfg Config, cat *catalog.Catalog, out io.Writer, now time.Time) error {
	if cfg.NoStore {
		return errors.New("stats needs the progress store; drop --no-store")
	}
	st, progress, err := openProgress(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	score := progress.Score()
	var b strings.Builder
	fmt.Fprintf(&b, "Profile   %s\n", progress.ProfileID)
	fmt.Fprintf(&b, "Score     %s\n", score)
	fmt.Fprintf(&b, "Levels    %d/%d complete, %s completions\n",
		score.Distinct, cat.Len(), humanize.Comma(int64(score.Total)))

	b.WriteString("\nMedals\n")
	rows := make([][]string, 0, len(store.Medals))
	for _, m := range store.Medals {
		earned := "-"
		if t, ok := progress.Medals[m.ID]; ok {
			earned = humanize.RelTime(t, now, "ago", "from now")
		}
		rows = append(rows, []string{"  " + m.Title, m.Description, earned})
	}
	for _, line := range table.Format(rows, nil) {
		b.WriteString(line + "\n")
	}

	b.WriteString("\nCounters\n")
	counters := [][]string{
		{"  clocks opened", humanize.Comma(int64(progress.Stats[store.StatClocks]))},
		{"  pane flashes", humanize.Comma(int64(progress.Stats[store.StatFlashes]))},
		{"  windows created", humanize.Comma(int64(progress.Stats[store.StatWindows]))},
	}
	for _, line := range table.Format(counters, []table.Alignment{table.AlignLeft, table.AlignRight}) {
		b.WriteString(line + "\n")
	}
	_, err = io.WriteString(out, b.String())
	return err
}
