// Package drift implements the infinite zoom that breathes in and out: the
// camera oscillates along the depth axis with a small forward bias, so the
// window is regularly asked to fill in behind the viewer.
package drift

import (
	"math"
	"strconv"

	"dreamvoid/internal/core"
	rng "dreamvoid/pkg/core"
)

// Config controls the drift flight.
type Config struct {
	Amplitude   float64
	Bias        float64
	Period      int
	StartSpread float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Amplitude: 60, Bias: 8, Period: 900, StartSpread: 15000}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["amplitude"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Amplitude = parsed
		}
	}
	if v, ok := cfg["bias"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Bias = parsed
		}
	}
	if v, ok := cfg["period"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Period = parsed
		}
	}
	if v, ok := cfg["start_spread"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.StartSpread = parsed
		}
	}
	return c
}

// Flight is the drift camera.
type Flight struct {
	cfg      Config
	depth    float64
	tick     int
	throttle float64
}

// New returns a drift flight with the provided configuration.
func New(cfg Config) *Flight {
	f := &Flight{cfg: cfg, throttle: 1}
	f.Reset(0)
	return f
}

// Name returns the flight identifier.
func (f *Flight) Name() string { return "drift" }

// Reset picks a start depth derived from seed.
func (f *Flight) Reset(seed int64) {
	f.depth = math.Floor(rng.NewRNG(seed).Range(0, f.cfg.StartSpread))
	f.tick = 0
}

// Throttle scales the oscillation.
func (f *Flight) Throttle(factor float64) { f.throttle = math.Max(0, math.Min(8, factor)) }

// Step advances the camera by one tick.
func (f *Flight) Step() core.Camera {
	phase := 2 * math.Pi * float64(f.tick) / float64(f.cfg.Period)
	v := (f.cfg.Amplitude*math.Sin(phase) + f.cfg.Bias) * f.throttle
	f.depth += v
	f.tick++
	return core.Camera{Depth: f.depth, Velocity: v}
}

// Parameters reports the flight tunables.
func (f *Flight) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Drift",
		Params: []core.Parameter{
			core.FloatParam("amplitude", "Amplitude", f.cfg.Amplitude),
			core.FloatParam("bias", "Forward bias", f.cfg.Bias),
			core.IntParam("period", "Period", f.cfg.Period),
			core.FloatParam("start_spread", "Start spread", f.cfg.StartSpread),
		},
	}}}
}

func init() {
	core.Register("drift", func(cfg map[string]string) core.Flight {
		return New(FromMap(cfg))
	})
}
