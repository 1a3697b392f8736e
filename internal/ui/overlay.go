//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"dreamvoid/internal/core"
	"dreamvoid/internal/dream"
	"dreamvoid/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	gaugeWidth   = 14
	gaugeMargin  = 10
	minimapCols  = 96
	minimapRows  = 48
	minimapScale = 2
)

// Overlay draws optional debugging visuals on top of the dream view.
//
//	1  depth gauge: window horizons, entities and the camera
//	2  lane crosshairs ahead of the camera
//	3  text-frame minimap
//	4  window statistics
type Overlay struct {
	dream     *dream.Dream
	showGauge bool
	showLanes bool
	showMap   bool
	showStats bool

	grid   *core.CellGrid
	mapImg *ebiten.Image
	mapBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(d *dream.Dream) *Overlay {
	return &Overlay{dream: d}
}

// Update toggles overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showGauge = !o.showGauge
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showLanes = !o.showLanes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showMap = !o.showMap
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit4) {
		o.showStats = !o.showStats
	}
}

// Draw renders the enabled layers onto a view of the given size.
func (o *Overlay) Draw(screen *ebiten.Image, v render.View) {
	if o == nil || o.dream == nil {
		return
	}
	if o.showLanes {
		o.drawLanes(screen, v)
	}
	if o.showGauge {
		o.drawGauge(screen, v)
	}
	if o.showMap {
		o.drawMinimap(screen, v)
	}
	if o.showStats {
		o.drawStats(screen, v)
	}
}

func (o *Overlay) drawGauge(screen *ebiten.Image, v render.View) {
	cam := o.dream.Camera().Depth
	rear, lead := o.dream.Window().Horizons(cam)
	height := v.H - 2*gaugeMargin
	x := float32(gaugeMargin)
	top := float32(gaugeMargin)
	vector.DrawFilledRect(screen, x, top, gaugeWidth, float32(height), color.RGBA{R: 20, G: 20, B: 28, A: 180}, false)
	for _, m := range DepthGauge(cam, rear, lead, o.dream.Entities(), height) {
		y := top + float32(m.Y)
		switch {
		case m.Camera:
			vector.StrokeLine(screen, x-4, y, x+gaugeWidth+4, y, 2, m.Color, false)
		case m.Major:
			vector.StrokeLine(screen, x, y, x+gaugeWidth, y, 2, m.Color, false)
		default:
			vector.StrokeLine(screen, x+gaugeWidth/2, y, x+gaugeWidth, y, 1, m.Color, false)
		}
	}
}

func (o *Overlay) drawLanes(screen *ebiten.Image, v render.View) {
	cam := o.dream.Camera().Depth
	cx, cy := float32(v.W/2), float32(v.H/2)
	for _, s := range LaneMarks(o.dream.Window().Generator(), cam, v) {
		alpha := uint8(40 + 140*s.Alpha)
		col := color.RGBA{R: 120, G: 200, B: 255, A: alpha}
		x, y := float32(s.X), float32(s.Y)
		r := float32(s.Radius)
		if r < 3 {
			r = 3
		}
		vector.StrokeLine(screen, cx, cy, x, y, 1, color.RGBA{R: 60, G: 90, B: 120, A: alpha / 2}, false)
		vector.StrokeLine(screen, x-r, y, x+r, y, 1, col, false)
		vector.StrokeLine(screen, x, y-r, x, y+r, 1, col, false)
	}
}

func (o *Overlay) drawMinimap(screen *ebiten.Image, v render.View) {
	if o.grid == nil {
		o.grid = core.NewCellGrid(minimapCols, minimapRows)
		o.mapImg = ebiten.NewImage(minimapCols, minimapRows)
		o.mapBuf = make([]byte, 4*minimapCols*minimapRows)
	}
	cam := o.dream.Camera().Depth
	bg := render.BackgroundAt(cam, o.dream.Window().Config().BandWidth)
	render.Frame(o.grid, cam, o.dream.Entities(), bg)
	render.FillCellsRGBA(o.mapBuf, o.grid, bg)
	o.mapImg.WritePixels(o.mapBuf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(minimapScale, minimapScale)
	op.GeoM.Translate(v.W-minimapCols*minimapScale-gaugeMargin, v.H-minimapRows*minimapScale-gaugeMargin)
	screen.DrawImage(o.mapImg, op)
}

func (o *Overlay) drawStats(screen *ebiten.Image, v render.View) {
	w := o.dream.Window()
	ticks, rejected := o.dream.Ticks()
	lines := []string{
		fmt.Sprintf("entities %d", len(o.dream.Entities())),
		fmt.Sprintf("last generated %.0f", w.LastGeneratedDepth()),
		fmt.Sprintf("ticks %d (rejected %d)", ticks, rejected),
		fmt.Sprintf("pool %d", o.dream.Pool().Len()),
	}
	x := int(v.W) - 200
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, x, gaugeMargin+13+i*16, color.RGBA{R: 200, G: 200, B: 210, A: 220})
	}
}
