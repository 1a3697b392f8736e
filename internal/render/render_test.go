package render

import (
	"image/color"
	"strings"
	"testing"

	"dreamvoid/internal/core"
	"dreamvoid/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityAt(depth float64, body world.Body) world.Entity {
	return world.Entity{ID: "z-test", Depth: depth, Lateral: world.Lateral{X: 50, Y: 50}, Scale: 1, Body: body}
}

func TestProjectVisibilityBounds(t *testing.T) {
	v := DefaultView(100, 50)
	_, ok := Project(1000, entityAt(1000+v.Near, world.Portal{}), v)
	assert.False(t, ok, "near plane is exclusive")
	_, ok = Project(1000, entityAt(900, world.Portal{}), v)
	assert.False(t, ok, "behind the camera")
	_, ok = Project(1000, entityAt(1000+v.Far+1, world.Portal{}), v)
	assert.False(t, ok, "beyond the far plane")

	s, ok := Project(1000, entityAt(1000+v.Far, world.Portal{}), v)
	require.True(t, ok, "far plane is inclusive")
	assert.InDelta(t, 0, s.Alpha, 1e-9)
}

func TestProjectPerspective(t *testing.T) {
	v := DefaultView(200, 100)
	e := entityAt(0, world.Blob{Hue: 10})
	e.Lateral = world.Lateral{X: 100, Y: 50}

	s, ok := Project(-v.Focal, e, v)
	require.True(t, ok)
	assert.InDelta(t, 200, s.X, 1e-9, "at the focal plane lateral 100%% maps to the right edge")
	assert.InDelta(t, 50, s.Y, 1e-9)
	assert.InDelta(t, v.Unit, s.Radius, 1e-9)
	assert.Equal(t, 1.0, s.Alpha)

	far, ok := Project(-2*v.Focal, e, v)
	require.True(t, ok)
	assert.InDelta(t, 150, far.X, 1e-9, "twice as far converges halfway to the centre")
	assert.Less(t, far.Radius, s.Radius)
}

func TestProjectAllOrdersFarToNear(t *testing.T) {
	v := DefaultView(80, 24)
	entities := []world.Entity{
		entityAt(300, world.Portal{}),
		entityAt(2000, world.Galaxy{Hue: 30}),
		entityAt(-50, world.Blob{}),
		entityAt(900, world.Flicker{}),
	}
	sprites := ProjectAll(0, entities, v)
	require.Len(t, sprites, 3)
	assert.Equal(t, 2000.0, sprites[0].Entity.Depth)
	assert.Equal(t, 300.0, sprites[2].Entity.Depth)
}

func TestCrossed(t *testing.T) {
	entities := []world.Entity{
		entityAt(100, world.Portal{}),
		entityAt(150, world.Blob{}),
		entityAt(200, world.Portal{}),
	}
	assert.Len(t, Crossed(entities, world.KindPortal, 100, 200), 1)
	assert.Len(t, Crossed(entities, world.KindPortal, 250, 50), 2, "reversed span")
	assert.Empty(t, Crossed(entities, world.KindPortal, 201, 300))
}

func TestPalette(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, HueColor(360, 1, 1))
	assert.Equal(t, HueColor(-120, 1, 1), HueColor(240, 1, 1))

	galaxy := KindColor(entityAt(0, world.Galaxy{Hue: 120}))
	assert.Greater(t, galaxy.G, galaxy.R)
	assert.Equal(t, dataStreamGreen, KindColor(entityAt(0, world.Whisper{Text: "0101"})))

	for _, b := range world.Biomes() {
		assert.Equal(t, uint8(255), Background(b).A, b.String())
	}
	assert.Equal(t, Background(world.BiomeVoid), BackgroundAt(100, 3000))
	assert.Equal(t, Background(world.BiomeStarField), BackgroundAt(2999.9999, 3000))

	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, black, Fade(white, black, 0))
	assert.Equal(t, white, Fade(white, black, 2))
}

func TestRasterizeNearestWins(t *testing.T) {
	grid := core.NewCellGrid(40, 12)
	sprites := []Sprite{
		{Entity: entityAt(500, world.Whisper{Text: "near"}), X: 20, Y: 6, Alpha: 1, Rel: 100},
		{Entity: entityAt(900, world.Galaxy{Hue: 200}), X: 20, Y: 6, Radius: 2, Alpha: 1, Rel: 900},
	}
	Rasterize(grid, sprites, color.RGBA{A: 255})
	row := grid.Rows()[6]
	assert.Contains(t, row, "near")
	assert.Contains(t, grid.Rows()[5], "*", "galaxy disc around the whisper")
}

func TestFrameDrawsWindow(t *testing.T) {
	gen, err := world.NewGenerator(world.DefaultConfig())
	require.NoError(t, err)
	w := world.NewWindow(gen, 42, 0)

	grid := core.NewCellGrid(100, 30)
	sprites := Frame(grid, 0, w.Entities(), Background(gen.BiomeAt(0)))
	require.NotEmpty(t, sprites)
	assert.NotEqual(t, strings.Repeat(" ", 100*30), strings.Join(grid.Rows(), ""))
}

func TestFillRGBA(t *testing.T) {
	tint := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	edge := color.RGBA{A: 255}
	buf := make([]byte, 9*9*4)
	FillVignetteRGBA(buf, 9, 9, tint, edge)
	centre := (4*9 + 4) * 4
	assert.Greater(t, buf[centre], buf[0], "centre brighter than the corner")

	grid := core.NewCellGrid(2, 1)
	grid.Plot(1, 0, core.Cell{Rune: '*', Color: tint})
	px := make([]byte, 2*4)
	FillCellsRGBA(px, grid, edge)
	assert.Equal(t, []byte{0, 0, 0, 255, 200, 100, 50, 255}, px)
}
