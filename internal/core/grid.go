package core

import "image/color"

// Cell is one character cell of a text frame.
type Cell struct {
	Rune  rune
	Color color.RGBA
	// Depth orders overlapping writes; nearer (smaller) wins.
	Depth float64
}

// CellGrid stores a 2D frame of character cells in row-major order.
type CellGrid struct {
	W, H int
	data []Cell
}

// NewCellGrid allocates a grid with the given dimensions.
func NewCellGrid(w, h int) *CellGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &CellGrid{W: w, H: h, data: make([]Cell, w*h)}
	g.Clear()
	return g
}

// Cells exposes the backing slice so callers can read values directly.
func (g *CellGrid) Cells() []Cell { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *CellGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g *CellGrid) In(x, y int) bool { return x >= 0 && y >= 0 && x < g.W && y < g.H }

// At returns the cell at (x, y). Out-of-range coordinates yield a blank cell.
func (g *CellGrid) At(x, y int) Cell {
	if !g.In(x, y) {
		return Cell{Rune: ' '}
	}
	return g.data[g.Index(x, y)]
}

// Plot writes c at (x, y) unless a nearer cell already occupies it.
func (g *CellGrid) Plot(x, y int, c Cell) bool {
	if !g.In(x, y) {
		return false
	}
	i := g.Index(x, y)
	if g.data[i].Rune != ' ' && g.data[i].Depth <= c.Depth {
		return false
	}
	g.data[i] = c
	return true
}

// Resize reallocates the grid when the dimensions change.
func (g *CellGrid) Resize(w, h int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if w == g.W && h == g.H {
		return
	}
	g.W, g.H = w, h
	g.data = make([]Cell, w*h)
	g.Clear()
}

// Clear blanks every cell.
func (g *CellGrid) Clear() {
	for i := range g.data {
		g.data[i] = Cell{Rune: ' '}
	}
}

// Rows renders the grid as plain strings, one per row.
func (g *CellGrid) Rows() []string {
	rows := make([]string, g.H)
	buf := make([]rune, g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			buf[x] = g.data[g.Index(x, y)].Rune
		}
		rows[y] = string(buf)
	}
	return rows
}
