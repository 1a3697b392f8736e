package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamvoid/internal/render"
	"dreamvoid/internal/world"
)

func TestDepthGaugeMapsWindow(t *testing.T) {
	entities := []world.Entity{
		{ID: "behind", Depth: -500, Body: world.Blob{}},
		{ID: "rear", Depth: 0, Body: world.Blob{}},
		{ID: "mid", Depth: 500, Body: world.Portal{}},
		{ID: "lead", Depth: 1000, Body: world.Galaxy{Hue: 120}},
		{ID: "beyond", Depth: 1500, Body: world.Blob{}},
	}
	marks := DepthGauge(250, 0, 1000, entities, 200)
	require.Len(t, marks, 4)
	assert.Equal(t, 200.0, marks[0].Y)
	assert.Equal(t, 100.0, marks[1].Y)
	assert.True(t, marks[1].Major)
	assert.Equal(t, 0.0, marks[2].Y)

	cam := marks[len(marks)-1]
	assert.True(t, cam.Camera)
	assert.Equal(t, 150.0, cam.Y)
}

func TestDepthGaugeClampsCamera(t *testing.T) {
	marks := DepthGauge(5000, 0, 1000, nil, 100)
	require.Len(t, marks, 1)
	assert.Equal(t, 0.0, marks[0].Y)
	assert.Nil(t, DepthGauge(0, 10, 10, nil, 100))
}

func TestLaneMarksAhead(t *testing.T) {
	gen, err := world.NewGenerator(world.DefaultConfig())
	require.NoError(t, err)
	v := render.DefaultView(800, 600)

	marks := LaneMarks(gen, 250, v)
	require.NotEmpty(t, marks)
	period := gen.Config().LanePeriod
	for i, s := range marks {
		assert.Greater(t, s.Rel, 0.0)
		assert.LessOrEqual(t, s.Rel, v.Far)
		assert.Equal(t, gen.LaneAnchor(s.Entity.Depth), s.Entity.Lateral)
		if i > 0 {
			assert.InDelta(t, period, s.Rel-marks[i-1].Rel, 1e-9)
		}
	}
	assert.InDelta(t, 750, marks[0].Rel, 1e-9)
}
