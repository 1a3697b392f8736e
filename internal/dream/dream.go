// Package dream ties a camera flight to a world window. Hosts call Step once
// per tick and draw whatever Entities returns.
package dream

import (
	"dreamvoid/internal/core"
	"dreamvoid/internal/logging"
	"dreamvoid/internal/oracle"
	"dreamvoid/internal/render"
	"dreamvoid/internal/world"

	"go.uber.org/zap"
)

// Dream is one running flythrough. It is owned by the host loop.
type Dream struct {
	flight core.Flight
	window *world.Window
	pool   *oracle.Pool
	log    *zap.Logger

	cam      core.Camera
	throttle float64
	mood     oracle.Mood
	crossed  []world.Entity
	ticks    int
	rejected int
}

// New starts a dream. The window should have been built around the flight's
// starting depth; Step corrects it on the first tick otherwise.
func New(flight core.Flight, window *world.Window, pool *oracle.Pool, log *zap.Logger) *Dream {
	if pool == nil {
		pool = oracle.NewPool(16)
	}
	d := &Dream{
		flight:   flight,
		window:   window,
		pool:     pool,
		log:      logging.OrNop(log),
		throttle: 1,
		mood:     oracle.MoodNeutral,
		cam:      core.Camera{Depth: window.LastGeneratedDepth()},
	}
	if pool.Len() > 0 {
		window.SetTextPool(pool.Phrases())
	}
	return d
}

// Start resets flight with seed, takes its first step and builds a window
// around the resulting depth.
func Start(flight core.Flight, gen *world.Generator, seed int64, pool *oracle.Pool, log *zap.Logger) *Dream {
	flight.Reset(seed)
	first := flight.Step()
	start := first.Depth
	if !world.ValidDepth(start) {
		start = 0
	}
	d := New(flight, world.NewWindow(gen, seed, start), pool, log)
	d.cam = core.Camera{Depth: start, Velocity: first.Velocity}
	return d
}

// Step advances the flight one tick and updates the window. It reports
// whether the entity set changed.
func (d *Dream) Step() bool {
	prev := d.cam.Depth
	cam := d.flight.Step()
	d.ticks++
	if !world.ValidDepth(cam.Depth) {
		d.rejected++
		d.log.Warn("ignoring invalid camera depth", zap.Float64("depth", cam.Depth), zap.String("flight", d.flight.Name()))
		d.crossed = nil
		return false
	}
	d.cam = cam
	d.window.SetVelocity(cam.Velocity)
	entities, changed := d.window.OnCameraDepth(cam.Depth)
	d.crossed = render.Crossed(entities, world.KindPortal, prev, cam.Depth)
	if changed {
		d.log.Debug("window regenerated",
			zap.Float64("depth", cam.Depth),
			zap.Int("entities", len(entities)),
			zap.Stringer("biome", d.Biome()))
	}
	return changed
}

// Camera returns the current camera.
func (d *Dream) Camera() core.Camera { return d.cam }

// Entities returns the live window.
func (d *Dream) Entities() []world.Entity { return d.window.Entities() }

// Window exposes the underlying window.
func (d *Dream) Window() *world.Window { return d.window }

// Flight exposes the camera flight.
func (d *Dream) Flight() core.Flight { return d.flight }

// Biome is the biome at the camera.
func (d *Dream) Biome() world.Biome { return d.window.Generator().BiomeAt(d.cam.Depth) }

// Crossed lists the portals the camera passed through during the last Step.
func (d *Dream) Crossed() []world.Entity { return d.crossed }

// Ticks reports how many steps ran, and how many of them produced an
// unusable depth.
func (d *Dream) Ticks() (total, rejected int) { return d.ticks, d.rejected }

// Mood is the mood of the most recent oracle answer.
func (d *Dream) Mood() oracle.Mood { return d.mood }

// Throttle is the user-selected speed factor.
func (d *Dream) Throttle() float64 { return d.throttle }

// SetThrottle changes the user speed factor; the mood pace multiplies it.
func (d *Dream) SetThrottle(f float64) {
	d.throttle = f
	d.flight.Throttle(d.throttle * d.mood.Pace())
}

// SetMood changes the pace of the flight to match m.
func (d *Dream) SetMood(m oracle.Mood) {
	d.mood = m
	d.flight.Throttle(d.throttle * d.mood.Pace())
}

// Pool returns the text pool feeding new whispers.
func (d *Dream) Pool() *oracle.Pool { return d.pool }

// Whisper adds a phrase to the text pool so that it will drift past later.
func (d *Dream) Whisper(text string) {
	if d.pool.Add(text) {
		d.window.SetTextPool(d.pool.Phrases())
	}
}

// Absorb folds an oracle answer into the dream: its echo joins the pool and
// its mood sets the pace.
func (d *Dream) Absorb(f oracle.Fragment) {
	d.Whisper(f.Echo)
	d.SetMood(f.Mood)
	d.log.Info("fragment absorbed", zap.String("id", f.ID), zap.String("mood", string(f.Mood)))
}

// Reset restarts the flight and rebuilds the window around its new start.
func (d *Dream) Reset(seed int64) {
	d.flight.Reset(seed)
	first := d.flight.Step()
	start := first.Depth
	if !world.ValidDepth(start) {
		start = 0
	}
	d.window.Reset(seed, start)
	d.cam = core.Camera{Depth: start, Velocity: first.Velocity}
	d.crossed = nil
	d.ticks = 0
	d.rejected = 0
}

// Reconfigure applies a new world configuration, keeping the text pool.
func (d *Dream) Reconfigure(cfg world.Config) error {
	return d.window.Reconfigure(cfg)
}

// Parameters merges the window and flight tunables.
func (d *Dream) Parameters() core.ParameterSnapshot {
	snaps := []core.ParameterSnapshot{d.window.Parameters()}
	if src, ok := d.flight.(core.ParameterSource); ok {
		snaps = append(snaps, src.Parameters())
	}
	return core.Merge(snaps...)
}

// ParameterControls lists the HUD-adjustable tunables.
func (d *Dream) ParameterControls() []core.ParameterControl {
	return d.window.ParameterControls()
}

// SetFloatParameter adjusts a window tunable.
func (d *Dream) SetFloatParameter(key string, value float64) bool {
	ok := d.window.SetFloatParameter(key, value)
	if ok {
		d.log.Debug("parameter changed", zap.String("key", key), zap.Float64("value", value))
	}
	return ok
}
