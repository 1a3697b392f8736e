// Package cruise implements the infinite flythrough: the camera moves forward
// at a base speed that slowly swells and ebbs like a scroll gesture.
package cruise

import (
	"math"
	"strconv"

	"dreamvoid/internal/core"
	rng "dreamvoid/pkg/core"
)

// Config controls the cruise flight.
type Config struct {
	Speed       float64
	Swell       float64
	SwellPeriod int
	StartSpread float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Speed: 40, Swell: 0.35, SwellPeriod: 600, StartSpread: 15000}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Speed = parsed
		}
	}
	if v, ok := cfg["swell"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed < 1 {
			c.Swell = parsed
		}
	}
	if v, ok := cfg["swell_period"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.SwellPeriod = parsed
		}
	}
	if v, ok := cfg["start_spread"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.StartSpread = parsed
		}
	}
	return c
}

// Flight is the cruise camera.
type Flight struct {
	cfg      Config
	depth    float64
	tick     int
	throttle float64
}

// New returns a cruise flight with the provided configuration.
func New(cfg Config) *Flight {
	f := &Flight{cfg: cfg, throttle: 1}
	f.Reset(0)
	return f
}

// Name returns the flight identifier.
func (f *Flight) Name() string { return "cruise" }

// Reset picks a start depth derived from seed.
func (f *Flight) Reset(seed int64) {
	f.depth = math.Floor(rng.NewRNG(seed).Range(0, f.cfg.StartSpread))
	f.tick = 0
}

// Throttle scales the speed. Negative factors fly backwards.
func (f *Flight) Throttle(factor float64) { f.throttle = clamp(factor, -8, 8) }

// Step advances the camera by one tick.
func (f *Flight) Step() core.Camera {
	phase := 2 * math.Pi * float64(f.tick) / float64(f.cfg.SwellPeriod)
	v := f.cfg.Speed * (1 + f.cfg.Swell*math.Sin(phase)) * f.throttle
	f.depth += v
	f.tick++
	return core.Camera{Depth: f.depth, Velocity: v}
}

// Parameters reports the flight tunables.
func (f *Flight) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Cruise",
		Params: []core.Parameter{
			core.FloatParam("speed", "Speed", f.cfg.Speed),
			core.FloatParam("swell", "Swell", f.cfg.Swell),
			core.IntParam("swell_period", "Swell period", f.cfg.SwellPeriod),
			core.FloatParam("start_spread", "Start spread", f.cfg.StartSpread),
		},
	}}}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func init() {
	core.Register("cruise", func(cfg map[string]string) core.Flight {
		return New(FromMap(cfg))
	})
}
