package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmux-dojo/dojo/internal/app"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.toml")
	cfg, err := LoadArgs(nil, []string{envConfig + "=" + missing})
	// an explicit env config that does not exist is an error
	require.Error(t, err)

	cfg, err = LoadArgs([]string{"--db", "p.db"}, nil)
	require.NoError(t, err)
	assert.Equal(t, app.CommandPlay, cfg.App.Command)
	assert.Equal(t, -1, cfg.App.Level)
	assert.Equal(t, "d", cfg.App.ResetKey)
	assert.Equal(t, 400*time.Millisecond, cfg.App.ResetWindow)
	assert.Equal(t, 3*time.Second, cfg.App.FlashTimeout)
	assert.Equal(t, 800*time.Millisecond, cfg.App.SuccessDelay)
	assert.Equal(t, "p.db", cfg.App.DBPath)
	assert.False(t, cfg.Logging.Trace)
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		envLevel + "=3",
		envWidth + "=90",
		envHeight + "=30",
		envTrace + "=true",
		envLogFile + "=env.log",
		envFlashTimeout + "=1s",
	}
	cfg, err := LoadArgs([]string{"--level", "7", "--width", "120", "--log-file", "flag.log"}, env)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.App.Level)
	assert.Equal(t, 120, cfg.App.Width)
	assert.Equal(t, 30, cfg.App.Height)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, "flag.log", cfg.Logging.FilePath)
	assert.Equal(t, time.Second, cfg.App.FlashTimeout)
	assert.Equal(t, "7", cfg.Flags["level"])
	assert.Equal(t, "120", cfg.Flags["width"])
	assert.Equal(t, "1s", cfg.Flags["flashTimeout"])
}

func TestLoadArgsFileLayer(t *testing.T) {
	path := writeConfig(t, `
level = 12
db = "file.db"
width = 100
reset_key = "r"
success_delay = "250ms"

[logging]
file = "file.log"
trace = true
`)
	cfg, err := LoadArgs([]string{"--config", path, "--width", "80"}, []string{envDB + "=env.db"})
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, 12, cfg.App.Level)
	assert.Equal(t, "env.db", cfg.App.DBPath)
	assert.Equal(t, 80, cfg.App.Width)
	assert.Equal(t, "r", cfg.App.ResetKey)
	assert.Equal(t, 250*time.Millisecond, cfg.App.SuccessDelay)
	assert.Equal(t, "file.log", cfg.Logging.FilePath)
	assert.True(t, cfg.Logging.Trace)
}

func TestLoadArgsConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "no_store = true\nlevel = 0\n")
	cfg, err := LoadArgs(nil, []string{envConfig + "=" + path})
	require.NoError(t, err)
	assert.True(t, cfg.App.NoStore)
	assert.Equal(t, 0, cfg.App.Level)
}

func TestLoadArgsBadFile(t *testing.T) {
	path := writeConfig(t, "level = [\n")
	_, err := LoadArgs([]string{"--config=" + path}, nil)
	require.Error(t, err)

	path = writeConfig(t, `flash_timeout = "soon"`)
	_, err = LoadArgs([]string{"--config", path}, nil)
	require.Error(t, err)
}

func TestLoadArgsSubcommands(t *testing.T) {
	cfg, err := LoadArgs([]string{"levels"}, nil)
	require.NoError(t, err)
	assert.Equal(t, app.CommandLevels, cfg.App.Command)

	cfg, err = LoadArgs([]string{"--no-store", "stats"}, nil)
	require.NoError(t, err)
	assert.Equal(t, app.CommandStats, cfg.App.Command)
	assert.True(t, cfg.App.NoStore)

	_, err = LoadArgs([]string{"train"}, nil)
	require.Error(t, err)

	_, err = LoadArgs([]string{"play", "extra"}, nil)
	require.Error(t, err)

	_, err = LoadArgs([]string{"--bogus"}, nil)
	require.Error(t, err)
}

func TestInvalidEnvFallsBack(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{envWidth + "=wide", envTrace + "=maybe", envResetWindow + "=later"})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.App.Width)
	assert.False(t, cfg.Logging.Trace)
	assert.Equal(t, 400*time.Millisecond, cfg.App.ResetWindow)
}

func TestValidate(t *testing.T) {
	valid := Config{App: Defaults()}
	valid.App.DBPath = "p.db"
	require.NoError(t, Validate(valid))

	cases := map[string]func(*app.Config){
		"negative width":   func(c *app.Config) { c.Width = -1 },
		"negative height":  func(c *app.Config) { c.Height = -5 },
		"level below -1":   func(c *app.Config) { c.Level = -2 },
		"long reset key":   func(c *app.Config) { c.ResetKey = "dd" },
		"blank reset key":  func(c *app.Config) { c.ResetKey = " " },
		"negative window":  func(c *app.Config) { c.ResetWindow = -time.Second },
		"negative delay":   func(c *app.Config) { c.SuccessDelay = -time.Millisecond },
		"missing database": func(c *app.Config) { c.DBPath = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg.App)
			assert.Error(t, Validate(cfg))
		})
	}

	noDB := valid
	noDB.App.DBPath = ""
	noDB.App.NoStore = true
	assert.NoError(t, Validate(noDB))
	noDB.App.NoStore = false
	noDB.App.Command = app.CommandLevels
	assert.NoError(t, Validate(noDB))
}

func TestHelpPrintsUsage(t *testing.T) {
	_, err := LoadArgs([]string{"--help"}, nil)
	require.ErrorIs(t, err, pflag.ErrHelp)

	var out strings.Builder
	assert.Equal(t, 0, report(&out, err))
	assert.Contains(t, out.String(), "Usage: tmux-dojo [flags] [play|levels|stats]")
	assert.Contains(t, out.String(), "--no-store")
	assert.Contains(t, out.String(), "--reset-window")
}

func TestReportConfigurationError(t *testing.T) {
	_, err := LoadArgs([]string{"--bogus"}, nil)
	require.Error(t, err)

	var out strings.Builder
	assert.Equal(t, 2, report(&out, err))
	assert.Contains(t, out.String(), "Configuration error: unknown flag: --bogus")
}
