package dream

import (
	"errors"
	"fmt"
	"strings"

	"dreamvoid/internal/config"
	"dreamvoid/internal/core"
	"dreamvoid/internal/oracle"
	"dreamvoid/internal/world"

	"go.uber.org/zap"
)

// ErrUnknownFlight is returned when the configured flight is not registered.
var ErrUnknownFlight = errors.New("unknown flight")

// NewFlight builds the flight named in cfg from the registry.
func NewFlight(cfg config.FlightConfig) (core.Flight, error) {
	factory, ok := core.Flights()[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFlight, cfg.Name, strings.Join(core.Names(), ", "))
	}
	return factory(cfg.Params), nil
}

// FromConfig starts a dream described by cfg. initial phrases seed the text
// pool.
func FromConfig(cfg *config.Config, log *zap.Logger, initial ...string) (*Dream, error) {
	flight, err := NewFlight(cfg.Flight)
	if err != nil {
		return nil, err
	}
	gen, err := world.NewGenerator(cfg.World)
	if err != nil {
		return nil, fmt.Errorf("build generator: %w", err)
	}
	pool := oracle.NewPool(max(cfg.Oracle.PoolSize, 1), initial...)
	d := Start(flight, gen, cfg.Flight.Seed, pool, log)
	if log != nil {
		log.Info("dream started",
			zap.String("flight", flight.Name()),
			zap.Int64("seed", cfg.Flight.Seed),
			zap.Float64("depth", d.Camera().Depth),
			zap.Int("entities", len(d.Entities())),
			zap.Stringer("biome", d.Biome()),
		)
	}
	return d, nil
}
