package world

import (
	"math"
	"slices"

	"dreamvoid/pkg/core"
)

// Window keeps the live set of entities around a moving camera. It is owned by
// a single host loop and is not safe for concurrent use.
type Window struct {
	cfg  Config
	gen  *Generator
	rng  *core.RNG
	seed int64

	entities []Entity
	last     float64
	velocity float64
	pool     []string
}

// NewWindow builds a window around start and runs the initial population
// sweep. The seed drives the spacing between generated entities.
func NewWindow(gen *Generator, seed int64, start float64) *Window {
	w := &Window{
		cfg:  gen.Config(),
		gen:  gen,
		rng:  core.NewRNG(seed),
		seed: seed,
	}
	w.entities = w.sweep(start)
	w.last = start
	return w
}

// Entities returns the current set sorted by depth. The slice is shared with
// the window and must be treated as read-only.
func (w *Window) Entities() []Entity { return w.entities }

// LastGeneratedDepth is the camera depth at which the set was last recomputed.
func (w *Window) LastGeneratedDepth() float64 { return w.last }

// Config returns the active configuration.
func (w *Window) Config() Config { return w.cfg.Clone() }

// Generator exposes the generator backing the window.
func (w *Window) Generator() *Generator { return w.gen }

// SetVelocity records the camera velocity used for subsequent generation.
func (w *Window) SetVelocity(v float64) { w.velocity = v }

// SetTextPool replaces the phrases handed to newly generated whispers.
// Existing entities keep their text.
func (w *Window) SetTextPool(pool []string) {
	w.pool = slices.Clone(pool)
}

// TextPool returns a copy of the active text pool.
func (w *Window) TextPool() []string { return slices.Clone(w.pool) }

// Horizons returns the rear and lead horizons for a camera at depth.
func (w *Window) Horizons(depth float64) (rear, lead float64) {
	return depth - w.cfg.RearMargin, depth + w.cfg.RenderDistance
}

// OnCameraDepth updates the window for a camera at depth. Movements within the
// regeneration threshold of the last recomputation are ignored. The boolean
// reports whether the returned set differs from the previous one.
func (w *Window) OnCameraDepth(depth float64) ([]Entity, bool) {
	if math.Abs(depth-w.last) <= w.cfg.RegenThreshold {
		return w.entities, false
	}
	rear, lead := w.Horizons(depth)
	limit := lead + w.cfg.ForwardSlack

	kept := make([]Entity, 0, len(w.entities))
	pruned := false
	for _, e := range w.entities {
		if e.Depth <= rear || e.Depth > limit {
			pruned = true
			continue
		}
		kept = append(kept, e)
	}
	w.last = depth

	if len(kept) == 0 {
		w.entities = w.sweep(depth)
		return w.entities, true
	}

	var front []Entity
	for maxDepth := kept[len(kept)-1].Depth; maxDepth < lead; {
		maxDepth += w.step()
		front = append(front, w.generate(maxDepth))
	}

	var back []Entity
	for minDepth := kept[0].Depth; ; {
		next := minDepth - w.step()
		if next <= rear {
			break
		}
		minDepth = next
		back = append(back, w.generate(minDepth))
	}

	if !pruned && len(front) == 0 && len(back) == 0 {
		return w.entities, false
	}

	next := make([]Entity, 0, len(back)+len(kept)+len(front))
	for i := len(back) - 1; i >= 0; i-- {
		next = append(next, back[i])
	}
	next = append(next, kept...)
	next = append(next, front...)
	w.entities = next
	return w.entities, true
}

// Reconfigure swaps the tunables and rebuilds the set around the last
// generated depth.
func (w *Window) Reconfigure(cfg Config) error {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return err
	}
	w.gen = gen
	w.cfg = gen.Config()
	w.entities = w.sweep(w.last)
	return nil
}

// Reset reseeds the spacing RNG and repopulates around start.
func (w *Window) Reset(seed int64, start float64) {
	w.seed = seed
	w.rng = core.NewRNG(seed)
	w.entities = w.sweep(start)
	w.last = start
}

// sweep populates (depth-RearMargin, depth+RenderDistance] from scratch.
func (w *Window) sweep(depth float64) []Entity {
	rear, lead := w.Horizons(depth)
	out := make([]Entity, 0, int((lead-rear)/w.cfg.StepMin)+1)
	for d := rear; d < lead; {
		d += w.step()
		out = append(out, w.generate(d))
	}
	return out
}

func (w *Window) step() float64 {
	return w.rng.Range(w.cfg.StepMin, w.cfg.StepMax)
}

func (w *Window) generate(depth float64) Entity {
	return w.gen.Generate(depth, w.velocity, w.pool)
}
