package dream

import (
	"math"
	"testing"

	"dreamvoid/internal/core"
	"dreamvoid/internal/flights/cruise"
	"dreamvoid/internal/oracle"
	"dreamvoid/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedFlight replays a fixed list of depths.
type scriptedFlight struct {
	depths   []float64
	i        int
	throttle float64
}

func (f *scriptedFlight) Name() string       { return "scripted" }
func (f *scriptedFlight) Reset(int64)        { f.i = 0 }
func (f *scriptedFlight) Throttle(v float64) { f.throttle = v }
func (f *scriptedFlight) Step() core.Camera {
	d := f.depths[min(f.i, len(f.depths)-1)]
	f.i++
	return core.Camera{Depth: d, Velocity: 10}
}

func generator(t *testing.T) *world.Generator {
	t.Helper()
	gen, err := world.NewGenerator(world.DefaultConfig())
	require.NoError(t, err)
	return gen
}

func TestStartBuildsWindowAtFirstDepth(t *testing.T) {
	f := cruise.New(cruise.DefaultConfig())
	d := Start(f, generator(t), 42, nil, nil)
	assert.Equal(t, d.Camera().Depth, d.Window().LastGeneratedDepth())
	assert.NotEmpty(t, d.Entities())

	changed := false
	for i := 0; i < 200; i++ {
		changed = d.Step() || changed
	}
	assert.True(t, changed, "cruising 200 ticks must regenerate the window")
	total, rejected := d.Ticks()
	assert.Equal(t, 200, total)
	assert.Zero(t, rejected)
}

func TestStepRejectsInvalidDepth(t *testing.T) {
	f := &scriptedFlight{depths: []float64{0, math.NaN(), math.Inf(1), 900}}
	d := Start(f, generator(t), 1, nil, nil)
	before := d.Entities()

	assert.False(t, d.Step())
	assert.False(t, d.Step())
	assert.Equal(t, 0.0, d.Camera().Depth)
	assert.Equal(t, before, d.Entities())

	assert.True(t, d.Step())
	assert.Equal(t, 900.0, d.Camera().Depth)
	_, rejected := d.Ticks()
	assert.Equal(t, 2, rejected)
}

func TestCrossedPortals(t *testing.T) {
	gen := generator(t)
	var portal float64
	for depth := 6000.0; depth < 9000; depth++ {
		if gen.Generate(depth, 0, nil).Kind() == world.KindPortal {
			portal = depth
			break
		}
	}
	require.NotZero(t, portal, "nebula should hold a portal")

	// Step onto exactly that depth so the window is certain to contain it.
	f := &scriptedFlight{depths: []float64{portal - 5000, portal - 300, portal + 300}}
	d := Start(f, gen, 3, nil, nil)
	d.Step()
	inWindow := false
	for _, e := range d.Entities() {
		if e.Kind() == world.KindPortal && e.Depth > portal-300 && e.Depth <= portal+300 {
			inWindow = true
		}
	}
	d.Step()
	if inWindow {
		assert.NotEmpty(t, d.Crossed())
	}
	for _, e := range d.Crossed() {
		assert.Equal(t, world.KindPortal, e.Kind())
	}
}

func TestAbsorbFeedsPoolAndPace(t *testing.T) {
	f := &scriptedFlight{depths: []float64{0}}
	pool := oracle.NewPool(4, "seed phrase")
	d := Start(f, generator(t), 5, pool, nil)
	assert.Equal(t, []string{"seed phrase"}, d.Window().TextPool())

	d.SetThrottle(2)
	d.Absorb(oracle.Fragment{ID: "x", Echo: "a door of rain", Mood: oracle.MoodNightmare})
	assert.Equal(t, []string{"seed phrase", "a door of rain"}, d.Window().TextPool())
	assert.Equal(t, oracle.MoodNightmare, d.Mood())
	assert.Equal(t, 2*oracle.MoodNightmare.Pace(), f.throttle)

	d.Whisper("   ")
	assert.Len(t, d.Window().TextPool(), 2)
}

func TestParametersMergeFlightAndWindow(t *testing.T) {
	d := Start(cruise.New(cruise.DefaultConfig()), generator(t), 9, nil, nil)
	snap := d.Parameters()
	_, ok := snap.Lookup("render_distance")
	assert.True(t, ok)
	_, ok = snap.Lookup("speed")
	assert.True(t, ok)

	assert.True(t, d.SetFloatParameter("rear_margin", 2500))
	assert.Equal(t, 2500.0, d.Window().Config().RearMargin)
	assert.NotEmpty(t, d.ParameterControls())
}

func TestResetReplays(t *testing.T) {
	run := func(d *Dream) []float64 {
		var out []float64
		for i := 0; i < 300; i++ {
			d.Step()
			out = append(out, d.Camera().Depth)
		}
		return out
	}
	d := Start(cruise.New(cruise.DefaultConfig()), generator(t), 77, nil, nil)
	first := run(d)
	d.Reset(77)
	assert.Equal(t, first, run(d))
}
