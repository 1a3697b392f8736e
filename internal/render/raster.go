package render

import (
	"image/color"
	"math"

	"dreamvoid/internal/core"
	"dreamvoid/internal/world"
)

const maxGlyphRadius = 8

// Rasterize paints sprites into grid, which must share the sprites' view
// dimensions. Nearer sprites win overlapping cells regardless of order.
func Rasterize(grid *core.CellGrid, sprites []Sprite, bg color.RGBA) {
	for _, s := range sprites {
		col := Fade(KindColor(s.Entity), bg, s.Alpha)
		cx, cy := int(math.Round(s.X)), int(math.Round(s.Y))
		r := int(math.Min(maxGlyphRadius, math.Round(s.Radius)))
		cell := func(ch rune) core.Cell { return core.Cell{Rune: ch, Color: col, Depth: s.Rel} }

		switch body := s.Entity.Body.(type) {
		case world.Whisper:
			text := body.Text
			if s.Alpha < 0.35 {
				text = "."
			}
			plotText(grid, cx, cy, text, cell)
		case world.Galaxy:
			disc(grid, cx, cy, r, cell('*'))
			grid.Plot(cx, cy, cell('@'))
		case world.Flicker:
			n := 1 + int(body.Streak*3)
			ch := '.'
			if n > 1 {
				ch = '|'
			}
			for i := 0; i < n; i++ {
				grid.Plot(cx, cy+i, cell(ch))
			}
		case world.Portal:
			ring(grid, cx, cy, max(r, 1), cell('o'))
			grid.Plot(cx, cy, cell('O'))
		case world.Blob:
			disc(grid, cx, cy, r/2, cell('~'))
		case world.WidgetInput:
			plotText(grid, cx, cy, "[_____]", cell)
		}
	}
}

// Frame projects and rasterises a window in one call.
func Frame(grid *core.CellGrid, cam float64, entities []world.Entity, bg color.RGBA) []Sprite {
	v := DefaultView(float64(grid.W), float64(grid.H))
	v.Aspect = 0.5
	v.Unit = float64(grid.W) / 120
	sprites := ProjectAll(cam, entities, v)
	grid.Clear()
	Rasterize(grid, sprites, bg)
	return sprites
}

func plotText(grid *core.CellGrid, cx, cy int, text string, cell func(rune) core.Cell) {
	runes := []rune(text)
	x := cx - len(runes)/2
	for i, ch := range runes {
		grid.Plot(x+i, cy, cell(ch))
	}
}

func disc(grid *core.CellGrid, cx, cy, r int, c core.Cell) {
	for dy := -r; dy <= r; dy++ {
		for dx := -2 * r; dx <= 2*r; dx++ {
			// Cells are twice as tall as wide; stretch horizontally.
			if float64(dx*dx)/4+float64(dy*dy) <= float64(r*r) {
				grid.Plot(cx+dx, cy+dy, c)
			}
		}
	}
}

func ring(grid *core.CellGrid, cx, cy, r int, c core.Cell) {
	steps := 8 * r
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		grid.Plot(cx+int(math.Round(2*float64(r)*math.Cos(a))), cy+int(math.Round(float64(r)*math.Sin(a))), c)
	}
}
