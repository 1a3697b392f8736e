package app

import (
	"errors"
	"flag"
	"path/filepath"
	"testing"

	"dreamvoid/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsLayerOverConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("DREAM_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "dream.yaml")
	file := config.DefaultConfig()
	file.Flight.Seed = 7
	file.Display.Scale = 3
	require.NoError(t, file.Save(path))

	f := NewFlags()
	fs := flag.NewFlagSet("dreamgl", flag.ContinueOnError)
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{
		"-config", path,
		"-flight", "warp",
		"-tps", "30",
		"-set", "world.step_max=450",
		"-set", "flight.max_speed=900",
	}))

	cfg, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "warp", cfg.Flight.Name)
	assert.Equal(t, 30, cfg.Flight.TPS)
	assert.Equal(t, int64(7), cfg.Flight.Seed, "unset flag keeps the file value")
	assert.Equal(t, 3, cfg.Display.Scale)
	assert.Equal(t, 450.0, cfg.World.StepMax)
	assert.Equal(t, "900", cfg.Flight.Params["max_speed"])
	assert.False(t, cfg.Display.Sound)
}

func TestFlagsRejectBadOverrides(t *testing.T) {
	f := NewFlags()
	f.Config = filepath.Join(t.TempDir(), "missing.yaml")
	f.Sets = setList{"nonsense"}
	_, err := f.Load()
	assert.Error(t, err)

	f.Sets = setList{"flight.tps=0"}
	_, err = f.Load()
	assert.True(t, errors.Is(err, config.ErrInvalid), "got %v", err)
}
