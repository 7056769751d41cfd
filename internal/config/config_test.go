package config_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/tomatoclock/tomato/internal/config"
)

func TestWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	got, err := config.New(config.WithViperConfig(path))
	require.NoError(t, err)

	want := config.Default()
	want.Path = path

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("first run config mismatch (-want +got):\n%s", diff)
	}

	require.FileExists(t, path)

	again, err := config.New(config.WithViperConfig(path))
	require.NoError(t, err)

	if diff := cmp.Diff(want, again); diff != "" {
		t.Errorf("reloaded config mismatch (-want +got):\n%s", diff)
	}
}

func TestReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	content := `workflow:
  default: Long Work Session
status:
  default: study
notifications:
  enabled: false
  sound: /usr/share/sounds/bell.ogg
waybar:
  format: "{phase} {remaining}"
  interval: 2s
hooks:
  phase_cmd: notify-send "$TOMATO_EVENT"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := config.New(config.WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, "Long Work Session", c.Workflow.Default)
	assert.Equal(t, "study", c.Status.Default)
	assert.False(t, c.Notifications.Enabled)
	assert.Equal(t, "/usr/share/sounds/bell.ogg", c.Notifications.Sound)
	assert.Equal(t, "{phase} {remaining}", c.Waybar.Format)
	assert.Equal(t, 2*time.Second, c.Waybar.Interval)
	assert.True(t, c.Waybar.Enabled, "unset keys keep their defaults")
	assert.True(t, c.Daemon.Metrics)
	assert.Equal(t, `notify-send "$TOMATO_EVENT"`, c.Hooks.PhaseCmd)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		Name   string
		Modify func(c *config.Config)
		Valid  bool
	}{
		{Name: "defaults", Modify: func(*config.Config) {}, Valid: true},
		{Name: "empty workflow", Modify: func(c *config.Config) { c.Workflow.Default = " " }},
		{Name: "empty status", Modify: func(c *config.Config) { c.Status.Default = "" }},
		{Name: "empty format", Modify: func(c *config.Config) { c.Waybar.Format = "" }},
		{Name: "interval too short", Modify: func(c *config.Config) { c.Waybar.Interval = time.Millisecond }},
		{Name: "interval too long", Modify: func(c *config.Config) { c.Waybar.Interval = time.Hour }},
		{Name: "bad log level", Modify: func(c *config.Config) { c.Log.Level = "loud" }},
		{Name: "bad sound", Modify: func(c *config.Config) { c.Notifications.Sound = "bell.aiff" }},
		{
			Name:   "good sound",
			Modify: func(c *config.Config) { c.Notifications.Sound = "bell.WAV" },
			Valid:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			c := config.Default()
			tc.Modify(c)

			err := c.Validate()
			if tc.Valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestInvalidFileIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("waybar:\n  interval: 1h\n"), 0o600))

	_, err := config.New(config.WithViperConfig(path))
	assert.Error(t, err)
}

func TestCLIOverrides(t *testing.T) {
	var got *config.Config

	app := &cli.App{
		Name: "tomato",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "disable-notification"},
			&cli.BoolFlag{Name: "no-waybar"},
			&cli.BoolFlag{Name: "verbose"},
			&cli.StringFlag{Name: "log-level"},
			&cli.StringFlag{Name: "sound"},
			&cli.StringFlag{Name: "phase-cmd"},
		},
		Action: func(ctx *cli.Context) error {
			var err error
			got, err = config.New(config.WithCLIConfig(ctx))

			return err
		},
	}

	err := app.Run([]string{
		"tomato",
		"--disable-notification",
		"--no-waybar",
		"--verbose",
		"--sound", "ding.mp3",
		"--phase-cmd", "echo hi",
	})
	require.NoError(t, err)

	assert.False(t, got.Notifications.Enabled)
	assert.False(t, got.Waybar.Enabled)
	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, "ding.mp3", got.Notifications.Sound)
	assert.Equal(t, "echo hi", got.Hooks.PhaseCmd)
	assert.Equal(t, config.DefaultWorkflow, got.Workflow.Default)
}

func TestWatchReloadsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	_, err := config.New(config.WithViperConfig(path))
	require.NoError(t, err)

	var format atomic.Value

	err = config.Watch(path, nil, func(c *config.Config) {
		format.Store(c.Waybar.Format)
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("waybar:\n  format: \"{phase}\"\n"), 0o600))

	assert.Eventually(t, func() bool {
		v, _ := format.Load().(string)
		return v == "{phase}"
	}, 5*time.Second, 50*time.Millisecond)
}
