package ui

import (
	"image/color"
	"math"

	"dreamvoid/internal/render"
	"dreamvoid/internal/world"
)

// GaugeMark is one tick on the depth gauge. Y runs from 0 at the lead horizon
// to height at the rear horizon.
type GaugeMark struct {
	Y      float64
	Color  color.RGBA
	Major  bool
	Camera bool
}

// DepthGauge lays the window out along a vertical strip of the given height.
// Entities outside [rear, lead] are skipped. The camera mark is always last.
func DepthGauge(cam, rear, lead float64, entities []world.Entity, height float64) []GaugeMark {
	span := lead - rear
	if span <= 0 || height <= 0 {
		return nil
	}
	toY := func(depth float64) float64 {
		return height * (lead - depth) / span
	}
	marks := make([]GaugeMark, 0, len(entities)+1)
	for _, e := range entities {
		if e.Depth < rear || e.Depth > lead {
			continue
		}
		marks = append(marks, GaugeMark{
			Y:     toY(e.Depth),
			Color: render.KindColor(e),
			Major: e.Kind().Major(),
		})
	}
	marks = append(marks, GaugeMark{
		Y:      math.Max(0, math.Min(height, toY(cam))),
		Color:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Camera: true,
	})
	return marks
}

// LaneMarks projects the lane anchor at each lane boundary ahead of the
// camera, nearest first. Hosts draw them as crosshairs.
func LaneMarks(gen *world.Generator, cam float64, v render.View) []render.Sprite {
	period := gen.Config().LanePeriod
	if period <= 0 {
		return nil
	}
	var out []render.Sprite
	first := math.Floor(cam/period+1) * period
	for d := first; d-cam <= v.Far; d += period {
		probe := world.Entity{Depth: d, Lateral: gen.LaneAnchor(d), Scale: 1, Body: world.Portal{}}
		if s, ok := render.Project(cam, probe, v); ok {
			out = append(out, s)
		}
	}
	return out
}
