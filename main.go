package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tmux-dojo/dojo/internal/app"
	"github.com/tmux-dojo/dojo/internal/config"
	"github.com/tmux-dojo/dojo/internal/logging"
	"github.com/tmux-dojo/dojo/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := probeTerminal(stdDescriptors(), term.IsTerminal, term.GetSize)
	events.App.Start(startupTracePayload(runtimeCfg, tty))

	appCfg, err := withTerminal(runtimeCfg.App, tty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := app.Run(appCfg); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errNotInteractive = errors.New("play needs a terminal on stdin and stdout; use `tmux-dojo levels` or `tmux-dojo stats` when piping")

// withTerminal refuses to start the game without a terminal and hands the
// detected size to the UI for its first frame.
func withTerminal(cfg app.Config, tty terminal) (app.Config, error) {
	if cfg.Command != app.CommandPlay && cfg.Command != "" {
		return cfg, nil
	}
	if !tty.interactive() {
		return cfg, errNotInteractive
	}
	cfg.TermWidth, cfg.TermHeight = tty.Width, tty.Height
	return cfg, nil
}

type descriptor struct {
	name string
	fd   int
}

func stdDescriptors() []descriptor {
	return []descriptor{
		{"stdin", int(os.Stdin.Fd())},
		{"stdout", int(os.Stdout.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

// terminal is what the standard descriptors reported at startup. Width and
// Height come from the first descriptor that answered a size query.
type terminal struct {
	TTY    map[string]bool `json:"tty"`
	Source string          `json:"source,omitempty"`
	Width  int             `json:"width,omitempty"`
	Height int             `json:"height,omitempty"`
	Errors []string        `json:"errors,omitempty"`
}

func (t terminal) interactive() bool {
	return t.TTY["stdin"] && t.TTY["stdout"]
}

func probeTerminal(fds []descriptor, isTerminal func(int) bool, getSize func(int) (int, int, error)) terminal {
	t := terminal{TTY: make(map[string]bool, len(fds))}
	for _, d := range fds {
		if d.fd < 0 || !isTerminal(d.fd) {
			t.TTY[d.name] = false
			continue
		}
		t.TTY[d.name] = true
		w, h, err := getSize(d.fd)
		if err != nil {
			t.Errors = append(t.Errors, d.name+": "+err.Error())
			continue
		}
		if t.Source == "" {
			t.Source, t.Width, t.Height = d.name, w, h
		}
	}
	return t
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty terminal) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"command":  string(cfg.App.Command),
		"terminal": tty,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}
