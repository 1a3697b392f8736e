package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dreamvoid/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("DREAM_LOG_LEVEL", "")
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "cruise", cfg.Flight.Name)
	assert.Equal(t, world.DefaultConfig(), cfg.World)
	assert.Equal(t, 30*time.Second, cfg.OracleTimeout())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTripKeepsOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "dream.yaml")

	cfg := DefaultConfig()
	cfg.World.RenderDistance = 6000
	cfg.World.SetRarity("NEBULA", "PORTAL", 0.97)
	cfg.Flight.Name = "drift"
	cfg.Oracle.Seeds = []string{"a staircase of moths"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "dream.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  step_min: 250\nflight:\n  name: warp\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.World.StepMin)
	assert.Equal(t, world.DefaultStepMax, cfg.World.StepMax)
	assert.Equal(t, "warp", cfg.Flight.Name)
	assert.Equal(t, 60, cfg.Flight.TPS)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dream.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world: [unterminated"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "generic")
	t.Setenv("DREAM_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	assert.Equal(t, "generic", cfg.Oracle.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)

	t.Setenv("GEMINI_API_KEY", "gemini")
	cfg.applyEnvOverrides()
	assert.Equal(t, "gemini", cfg.Oracle.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.World.StepMin = 0
	err := cfg.Validate()
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.True(t, errors.Is(err, world.ErrInvalidConfig))

	cfg = DefaultConfig()
	cfg.Flight.TPS = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = DefaultConfig()
	cfg.Logging.Level = "chatty"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = DefaultConfig()
	cfg.Oracle.Timeout = "soon"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestApplySets(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Apply(map[string]string{
		"world.step_max":            "450",
		"world.rarity.VOID.WHISPER": "0.85",
		"flight.name":               "warp",
		"flight.seed":               "7",
		"flight.accel":              "1.05",
	}))
	assert.Equal(t, 450.0, cfg.World.StepMax)
	assert.Equal(t, 0.85, cfg.World.Rarity["VOID"]["WHISPER"])
	assert.Equal(t, "warp", cfg.Flight.Name)
	assert.Equal(t, int64(7), cfg.Flight.Seed)
	assert.Equal(t, "1.05", cfg.Flight.Params["accel"])

	assert.ErrorIs(t, cfg.Apply(map[string]string{"speed": "1"}), ErrInvalid)
	assert.ErrorIs(t, cfg.Apply(map[string]string{"audio.volume": "1"}), ErrInvalid)
	assert.ErrorIs(t, cfg.Apply(map[string]string{"flight.seed": "x"}), ErrInvalid)
}

func TestWatchReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "dream.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	reloaded := make(chan *Config, 4)
	done, err := watch(ctx, path, 40*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.World.RenderDistance = 7000
	require.NoError(t, cfg.Save(path))

	select {
	case got := <-reloaded:
		assert.Equal(t, 7000.0, got.World.RenderDistance)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not picked up")
	}

	cancel()
	<-done
}

func TestWatchIgnoresSiblings(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "dream.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 1)
	done, err := watch(ctx, path, 20*time.Millisecond, func(*Config, error) {
		select {
		case calls <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0644))
	select {
	case <-calls:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	<-done
}
