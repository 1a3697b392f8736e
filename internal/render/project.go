// Package render turns window entities into screen-space sprites and text
// frames. It is shared by the terminal and ebiten hosts.
package render

import (
	"math"
	"sort"

	"dreamvoid/internal/world"
)

// View describes the viewport and the perspective camera.
type View struct {
	W, H float64
	// Focal is the relative depth at which lateral offsets map 1:1 onto the
	// viewport.
	Focal float64
	Near  float64
	Far   float64
	// Unit converts entity scale into a radius at the focal plane.
	Unit float64
	// Aspect squashes vertical offsets; terminal cells are about twice as tall
	// as they are wide.
	Aspect float64
	// NearFade is the depth band in front of Near over which sprites fade out
	// as the camera passes through them.
	NearFade float64
}

// DefaultView returns the perspective used by the hosts for a w x h viewport.
func DefaultView(w, h float64) View {
	return View{
		W:        w,
		H:        h,
		Focal:    600,
		Near:     20,
		Far:      world.DefaultRenderDistance,
		Unit:     w / 80,
		Aspect:   1,
		NearFade: 120,
	}
}

// Sprite is an entity placed on screen.
type Sprite struct {
	Entity world.Entity
	X, Y   float64
	Radius float64
	Alpha  float64
	// Rel is the entity depth relative to the camera.
	Rel float64
}

// Project places e as seen from a camera at depth cam. Entities at or behind
// the near plane or beyond the far plane are not visible.
func Project(cam float64, e world.Entity, v View) (Sprite, bool) {
	rel := e.Depth - cam
	if rel <= v.Near || rel > v.Far || v.Focal <= 0 {
		return Sprite{}, false
	}
	k := v.Focal / rel
	aspect := v.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	s := Sprite{
		Entity: e,
		X:      v.W/2 + (e.Lateral.X-50)/100*v.W*k,
		Y:      v.H/2 + (e.Lateral.Y-50)/100*v.H*k*aspect,
		Radius: e.Scale * k * v.Unit,
		Alpha:  1,
		Rel:    rel,
	}
	if fadeStart := v.Far * 0.75; rel > fadeStart {
		s.Alpha = (v.Far - rel) / (v.Far - fadeStart)
	}
	if v.NearFade > 0 && rel < v.Near+v.NearFade {
		s.Alpha = math.Min(s.Alpha, (rel-v.Near)/v.NearFade)
	}
	return s, true
}

// ProjectAll projects every visible entity and orders the result far to near
// so that painting in order leaves the nearest sprite on top.
func ProjectAll(cam float64, entities []world.Entity, v View) []Sprite {
	out := make([]Sprite, 0, len(entities))
	for _, e := range entities {
		if s, ok := Project(cam, e, v); ok {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rel > out[j].Rel })
	return out
}

// Crossed reports entities of kind whose depth lies in (from, to], the span the
// camera travelled this tick. Hosts use it to trigger portal effects.
func Crossed(entities []world.Entity, kind world.Kind, from, to float64) []world.Entity {
	if to < from {
		from, to = to, from
	}
	var out []world.Entity
	for _, e := range entities {
		if e.Kind() == kind && e.Depth > from && e.Depth <= to {
			out = append(out, e)
		}
	}
	return out
}
