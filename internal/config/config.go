package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"github.com/tmux-dojo/dojo/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// File is the on-disk TOML form. Durations are Go duration strings.
type File struct {
	Level        *int   `toml:"level"`
	Levels       string `toml:"levels"`
	DB           string `toml:"db"`
	NoStore      bool   `toml:"no_store"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	ResetKey     string `toml:"reset_key"`
	ResetWindow  string `toml:"reset_window"`
	FlashTimeout string `toml:"flash_timeout"`
	SuccessDelay string `toml:"success_delay"`
	Logging      struct {
		File  string `toml:"file"`
		Trace bool   `toml:"trace"`
	} `toml:"logging"`
}

const (
	envConfig       = "TMUX_DOJO_CONFIG"
	envLevel        = "TMUX_DOJO_LEVEL"
	envLevels       = "TMUX_DOJO_LEVELS"
	envDB           = "TMUX_DOJO_DB"
	envNoStore      = "TMUX_DOJO_NO_STORE"
	envWidth        = "TMUX_DOJO_WIDTH"
	envHeight       = "TMUX_DOJO_HEIGHT"
	envTrace        = "TMUX_DOJO_TRACE"
	envLogFile      = "TMUX_DOJO_LOG_FILE"
	envResetKey     = "TMUX_DOJO_RESET_KEY"
	envResetWindow  = "TMUX_DOJO_RESET_WINDOW"
	envFlashTimeout = "TMUX_DOJO_FLASH_TIMEOUT"
	envSuccessDelay = "TMUX_DOJO_SUCCESS_DELAY"
)

// Defaults returns the built-in configuration.
func Defaults() app.Config {
	return app.Config{
		Command:      app.CommandPlay,
		Level:        -1,
		DBPath:       defaultDBPath(),
		ResetKey:     "d",
		ResetWindow:  400 * time.Millisecond,
		FlashTimeout: 3 * time.Second,
		SuccessDelay: 800 * time.Millisecond,
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tmux-dojo.db"
	}
	return filepath.Join(dir, "tmux-dojo", "progress.db")
}

// DefaultConfigPath returns the config file consulted when none is given.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tmux-dojo", "config.toml")
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values are
// layered flag > env > file > default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path, explicit := scanConfigFlag(args)
	if !explicit {
		if v, ok := env[envConfig]; ok && strings.TrimSpace(v) != "" {
			path, explicit = v, true
		} else {
			path = DefaultConfigPath()
		}
	}
	base := Defaults()
	logs := Logging{}
	if path != "" {
		if err := applyFile(path, explicit, &base, &logs); err != nil {
			return Config{}, err
		}
	}

	fs := pflag.NewFlagSet("tmux-dojo", pflag.ContinueOnError)
	var usage strings.Builder
	fs.SetOutput(&usage)
	fs.Usage = func() {
		fmt.Fprintf(&usage, "Usage: tmux-dojo [flags] [play|levels|stats]\n\nFlags:\n%s", fs.FlagUsages())
	}

	fs.String("config", path, "path to a TOML config file")
	level := fs.Int("level", envOrInt(env, envLevel, base.Level), "level id to start on (-1 resumes at the first unfinished level)")
	levels := fs.String("levels", envOrDefault(env, envLevels, base.LevelsPath), "path to an external level catalog (YAML)")
	db := fs.String("db", envOrDefault(env, envDB, base.DBPath), "path to the progress database")
	noStore := fs.Bool("no-store", envOrBool(env, envNoStore, base.NoStore), "do not read or write progress")
	width := fs.Int("width", envOrInt(env, envWidth, base.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, base.Height), "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, logs.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, logs.FilePath), "path to the log file")
	resetKey := fs.String("reset-key", envOrDefault(env, envResetKey, base.ResetKey), "key that resets the level when tapped twice")
	resetWindow := fs.Duration("reset-window", envOrDuration(env, envResetWindow, base.ResetWindow), "maximum gap between the two reset taps")
	flashTimeout := fs.Duration("flash-timeout", envOrDuration(env, envFlashTimeout, base.FlashTimeout), "how long pane numbers stay visible")
	successDelay := fs.Duration("success-delay", envOrDuration(env, envSuccessDelay, base.SuccessDelay), "pause before success feedback appears")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, &HelpError{Usage: usage.String()}
		}
		return Config{}, err
	}

	command := app.CommandPlay
	if fs.NArg() > 0 {
		command = app.Command(fs.Arg(0))
		if !command.Valid() {
			return Config{}, fmt.Errorf("unknown command %q (want play, levels or stats)", fs.Arg(0))
		}
	}
	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args()[1:], " "))
	}

	cfg := Config{
		App: app.Config{
			Command:      command,
			Level:        *level,
			LevelsPath:   *levels,
			DBPath:       *db,
			NoStore:      *noStore,
			Width:        *width,
			Height:       *height,
			ResetKey:     *resetKey,
			ResetWindow:  *resetWindow,
			FlashTimeout: *flashTimeout,
			SuccessDelay: *successDelay,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: path,
		Flags: map[string]string{
			"level":        strconv.Itoa(*level),
			"levels":       *levels,
			"db":           *db,
			"noStore":      strconv.FormatBool(*noStore),
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
			"resetKey":     *resetKey,
			"resetWindow":  resetWindow.String(),
			"flashTimeout": flashTimeout.String(),
			"successDelay": successDelay.String(),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// scanConfigFlag finds --config before the full flag set exists, since the
// file supplies the other flags' defaults.
func scanConfigFlag(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v, true
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

// applyFile overlays the TOML file onto base. A missing file is only an
// error when it was asked for explicitly.
func applyFile(path string, explicit bool, base *app.Config, logs *Logging) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if f.Level != nil {
		base.Level = *f.Level
	}
	if f.Levels != "" {
		base.LevelsPath = f.Levels
	}
	if f.DB != "" {
		base.DBPath = f.DB
	}
	base.NoStore = f.NoStore
	if f.Width != 0 {
		base.Width = f.Width
	}
	if f.Height != 0 {
		base.Height = f.Height
	}
	if f.ResetKey != "" {
		base.ResetKey = f.ResetKey
	}
	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"reset_window", f.ResetWindow, &base.ResetWindow},
		{"flash_timeout", f.FlashTimeout, &base.FlashTimeout},
		{"success_delay", f.SuccessDelay, &base.SuccessDelay},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("config %s: %s: %w", path, d.name, err)
		}
		*d.dst = parsed
	}
	logs.FilePath = f.Logging.File
	logs.Trace = f.Logging.Trace
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// HelpError is returned when the arguments ask for usage text.
type HelpError struct {
	Usage string
}

func (e *HelpError) Error() string { return pflag.ErrHelp.Error() }

func (e *HelpError) Unwrap() error { return pflag.ErrHelp }

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		os.Exit(report(os.Stderr, err))
	}
	return cfg
}

// report writes a load failure for the user and returns the exit code.
func report(w io.Writer, err error) int {
	var help *HelpError
	if errors.As(err, &help) {
		fmt.Fprint(w, help.Usage)
		return 0
	}
	fmt.Fprintf(w, "Configuration error: %v\n", err)
	return 2
}

// Validate rejects values the engine cannot run with.
func Validate(cfg Config) error {
	a := cfg.App
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.Level < -1 {
		return fmt.Errorf("level must be >= -1 (got %d)", a.Level)
	}
	if utf8.RuneCountInString(a.ResetKey) != 1 || strings.TrimSpace(a.ResetKey) == "" {
		return fmt.Errorf("reset key must be a single printable character (got %q)", a.ResetKey)
	}
	for name, d := range map[string]time.Duration{
		"reset-window":  a.ResetWindow,
		"flash-timeout": a.FlashTimeout,
		"success-delay": a.SuccessDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative (got %s)", name, d)
		}
	}
	if !a.NoStore && strings.TrimSpace(a.DBPath) == "" && a.Command != app.CommandLevels {
		return errors.New("db path is empty; pass --db or --no-store")
	}
	return nil
}
