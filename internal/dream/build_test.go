package dream

import (
	"errors"
	"testing"

	"dreamvoid/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Flight.Params = map[string]string{"speed": "80"}
	cfg.Oracle.PoolSize = 2

	d, err := FromConfig(cfg, zap.NewNop(), "one", "two", "three")
	require.NoError(t, err)
	assert.Equal(t, "cruise", d.Flight().Name())
	assert.Equal(t, []string{"two", "three"}, d.Pool().Phrases())
	assert.Equal(t, d.Pool().Phrases(), d.Window().TextPool())

	p, ok := d.Parameters().Lookup("speed")
	require.True(t, ok)
	assert.Equal(t, "80", p.Value)
}

func TestFromConfigErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Flight.Name = "teleport"
	_, err := FromConfig(cfg, nil)
	assert.True(t, errors.Is(err, ErrUnknownFlight), "got %v", err)

	cfg = config.DefaultConfig()
	cfg.World.StepMin = -1
	_, err = FromConfig(cfg, nil)
	assert.Error(t, err)
}
