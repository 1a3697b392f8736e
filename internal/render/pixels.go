package render

import (
	"image/color"
	"math"

	"dreamvoid/internal/core"
)

// FillVignetteRGBA paints a w x h radial gradient into buf: tint at the
// centre falling off to edge at the corners.
func FillVignetteRGBA(buf []byte, w, h int, tint, edge color.RGBA) {
	cx, cy := float64(w)/2, float64(h)/2
	maxDist := math.Hypot(cx, cy)
	if maxDist == 0 {
		maxDist = 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / maxDist
			col := Lerp(tint, edge, d*d)
			base := (y*w + x) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}

// FillCellsRGBA converts a cell grid into RGBA pixels, one pixel per cell.
// Blank cells take bg.
func FillCellsRGBA(buf []byte, grid *core.CellGrid, bg color.RGBA) {
	for i, c := range grid.Cells() {
		col := c.Color
		if c.Rune == ' ' {
			col = bg
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
