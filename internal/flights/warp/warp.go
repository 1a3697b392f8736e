// Package warp implements the black-hole plunge: velocity compounds every tick
// until it reaches the event horizon cap, then collapses back to the floor.
package warp

import (
	"math"
	"strconv"

	"dreamvoid/internal/core"
	rng "dreamvoid/pkg/core"
)

// Config controls the warp flight.
type Config struct {
	MinSpeed    float64
	MaxSpeed    float64
	Accel       float64
	StartSpread float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{MinSpeed: 10, MaxSpeed: 400, Accel: 1.02, StartSpread: 15000}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["min_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.MinSpeed = parsed
		}
	}
	if v, ok := cfg["max_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.MaxSpeed = parsed
		}
	}
	if c.MaxSpeed < c.MinSpeed {
		c.MaxSpeed = c.MinSpeed
	}
	if v, ok := cfg["accel"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 1 {
			c.Accel = parsed
		}
	}
	if v, ok := cfg["start_spread"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.StartSpread = parsed
		}
	}
	return c
}

// Flight is the warp camera.
type Flight struct {
	cfg      Config
	depth    float64
	speed    float64
	throttle float64
	plunges  int
}

// New returns a warp flight with the provided configuration.
func New(cfg Config) *Flight {
	f := &Flight{cfg: cfg, throttle: 1}
	f.Reset(0)
	return f
}

// Name returns the flight identifier.
func (f *Flight) Name() string { return "warp" }

// Reset picks a start depth derived from seed and drops to the speed floor.
func (f *Flight) Reset(seed int64) {
	f.depth = math.Floor(rng.NewRNG(seed).Range(0, f.cfg.StartSpread))
	f.speed = f.cfg.MinSpeed
	f.plunges = 0
}

// Throttle scales the speed.
func (f *Flight) Throttle(factor float64) { f.throttle = math.Max(0, math.Min(8, factor)) }

// Plunges counts how many times the speed has collapsed back to the floor.
func (f *Flight) Plunges() int { return f.plunges }

// Step advances the camera by one tick.
func (f *Flight) Step() core.Camera {
	v := f.speed * f.throttle
	f.depth += v
	f.speed *= f.cfg.Accel
	if f.speed > f.cfg.MaxSpeed {
		f.speed = f.cfg.MinSpeed
		f.plunges++
	}
	return core.Camera{Depth: f.depth, Velocity: v}
}

// Parameters reports the flight tunables.
func (f *Flight) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Warp",
		Params: []core.Parameter{
			core.FloatParam("min_speed", "Min speed", f.cfg.MinSpeed),
			core.FloatParam("max_speed", "Max speed", f.cfg.MaxSpeed),
			core.FloatParam("accel", "Acceleration", f.cfg.Accel),
			core.FloatParam("start_spread", "Start spread", f.cfg.StartSpread),
		},
	}}}
}

func init() {
	core.Register("warp", func(cfg map[string]string) core.Flight {
		return New(FromMap(cfg))
	})
}
