//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"dreamvoid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBackground = color.RGBA{R: 12, G: 12, B: 18, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor        = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	headerColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
)

// HUD renders the control panel to the right of the dream view.
type HUD struct {
	panel        *Panel
	image        *ebiten.Image
	panelOffsetX int
	status       []string
}

// NewHUD constructs a HUD over src with the given panel width.
func NewHUD(src core.ParameterSource, title string, width int) *HUD {
	return &HUD{panel: NewPanel(src, title, width)}
}

// SetStatus replaces the read-only lines drawn under the controls.
func (h *HUD) SetStatus(lines ...string) {
	if h == nil {
		return
	}
	h.status = append(h.status[:0], lines...)
}

// Update refreshes parameter values and handles clicks on the panel.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.panel.Refresh()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	h.panel.Click(mx-h.panelOffsetX, my)
}

// Draw paints the HUD anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.panel.Width() <= 0 || height <= 0 {
		return
	}
	width := h.panel.Width()
	if h.image == nil || h.image.Bounds().Dx() != width || h.image.Bounds().Dy() != height {
		h.image = ebiten.NewImage(width, height)
	}
	h.image.Fill(panelBackground)
	bottom := h.drawControls()
	h.drawStatus(bottom)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.image, op)
}

func (h *HUD) drawControls() int {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.image, h.panel.Title(), face, panelPadding, headerY, headerColor)
	controls := h.panel.Controls()
	if len(controls) == 0 {
		text.Draw(h.image, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, dimColor)
		return headerY + infoSpacing
	}
	for i, state := range controls {
		labelY := state.Top + labelBaseline
		text.Draw(h.image, state.Control.Label, face, panelPadding, labelY, labelColor)
		valueColor := labelColor
		if !state.HasValue {
			valueColor = dimColor
		}
		valueWidth := text.BoundString(face, state.Value).Dx()
		text.Draw(h.image, state.Value, face, state.MinusRect.Min.X-buttonGap-valueWidth, labelY, valueColor)
		h.drawButton(state.MinusRect, "-", h.panel.CanAdjust(i, -1))
		h.drawButton(state.PlusRect, "+", h.panel.CanAdjust(i, 1))
	}
	return controls[len(controls)-1].Top + lineHeight
}

func (h *HUD) drawStatus(top int) {
	face := basicfont.Face7x13
	y := top + infoSpacing
	for _, line := range h.status {
		text.Draw(h.image, line, face, panelPadding, y, dimColor)
		y += 18
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	vector.DrawFilledRect(h.image, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.image, label, face, x, y, fg)
}
