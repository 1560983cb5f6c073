package main

import (
	"errors"
	"testing"

	"github.com/tmux-dojo/dojo/internal/app"
	"github.com/tmux-dojo/dojo/internal/config"
)

func fakeTerminal(ttys map[int]bool, sizes map[int][2]int) (func(int) bool, func(int) (int, int, error)) {
	isTerminal := func(fd int) bool { return ttys[fd] }
	getSize := func(fd int) (int, int, error) {
		s, ok := sizes[fd]
		if !ok {
			return 0, 0, errors.New("no size")
		}
		return s[0], s[1], nil
	}
	return isTerminal, getSize
}

func testDescriptors() []descriptor {
	return []descriptor{{"stdin", 0}, {"stdout", 1}, {"stderr", 2}}
}

func TestProbeTerminalTakesFirstReportedSize(t *testing.T) {
	isTerminal, getSize := fakeTerminal(
		map[int]bool{0: true, 1: true, 2: true},
		map[int][2]int{1: {120, 40}, 2: {80, 24}},
	)
	tty := probeTerminal(testDescriptors(), isTerminal, getSize)
	if !tty.interactive() {
		t.Fatalf("expected interactive terminal, got %#v", tty)
	}
	if tty.Source != "stdout" || tty.Width != 120 || tty.Height != 40 {
		t.Fatalf("expected stdout size 120x40, got %s %dx%d", tty.Source, tty.Width, tty.Height)
	}
	if len(tty.Errors) != 1 {
		t.Fatalf("expected stdin size error recorded, got %v", tty.Errors)
	}
}

func TestProbeTerminalPiped(t *testing.T) {
	isTerminal, getSize := fakeTerminal(map[int]bool{2: true}, map[int][2]int{2: {90, 30}})
	tty := probeTerminal(testDescriptors(), isTerminal, getSize)
	if tty.interactive() {
		t.Fatal("expected piped stdin/stdout to be non-interactive")
	}
	if tty.Width != 90 {
		t.Fatalf("expected stderr size to be recorded, got %d", tty.Width)
	}
}

func TestWithTerminalRequiresTTYForPlay(t *testing.T) {
	piped := terminal{TTY: map[string]bool{"stdin": false, "stdout": true}}
	if _, err := withTerminal(app.Config{Command: app.CommandPlay}, piped); !errors.Is(err, errNotInteractive) {
		t.Fatalf("expected errNotInteractive, got %v", err)
	}
	if _, err := withTerminal(app.Config{Command: app.CommandLevels}, piped); err != nil {
		t.Fatalf("levels should not need a terminal, got %v", err)
	}

	tty := terminal{TTY: map[string]bool{"stdin": true, "stdout": true}, Width: 132, Height: 43}
	cfg, err := withTerminal(app.Config{Command: app.CommandPlay}, tty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TermWidth != 132 || cfg.TermHeight != 43 {
		t.Fatalf("expected terminal size carried over, got %dx%d", cfg.TermWidth, cfg.TermHeight)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Command: app.CommandPlay,
			Level:   6,
			DBPath:  "progress.db",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "dojo.toml",
		Flags: map[string]string{
			"level":   "6",
			"db":      "progress.db",
			"noStore": "false",
		},
		Args: []string{"--level", "6", "play"},
	}
	tty := terminal{TTY: map[string]bool{"stdin": true}, Source: "stdin", Width: 80, Height: 24}

	payload := startupTracePayload(cfg, tty)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["level"] != "6" {
		t.Fatalf("expected level flag %q, got %v", "6", flagsValue["level"])
	}
	if flagsValue["db"] != "progress.db" {
		t.Fatalf("expected db flag %q, got %v", "progress.db", flagsValue["db"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["command"] != "play" {
		t.Fatalf("expected command play, got %v", payload["command"])
	}
	if payload["configFile"] != "dojo.toml" {
		t.Fatalf("expected config file dojo.toml, got %v", payload["configFile"])
	}
	if got, ok := payload["terminal"].(terminal); !ok || got.Width != 80 {
		t.Fatalf("expected terminal details in payload, got %#v", payload["terminal"])
	}
}
