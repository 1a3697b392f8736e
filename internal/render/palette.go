package render

import (
	"image/color"
	"math"

	"dreamvoid/internal/world"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var biomeBackgrounds = map[world.Biome]color.RGBA{
	world.BiomeVoid:       {R: 4, G: 4, B: 10, A: 255},
	world.BiomeStarField:  {R: 8, G: 10, B: 32, A: 255},
	world.BiomeNebula:     {R: 34, G: 10, B: 48, A: 255},
	world.BiomeDataStream: {R: 0, G: 22, B: 14, A: 255},
	world.BiomeOrganic:    {R: 40, G: 12, B: 22, A: 255},
}

var kindColors = map[world.Kind]color.RGBA{
	world.KindWhisper:     {R: 235, G: 235, B: 245, A: 255},
	world.KindFlicker:     {R: 255, G: 255, B: 255, A: 255},
	world.KindPortal:      {R: 168, G: 85, B: 247, A: 255},
	world.KindWidgetInput: {R: 34, G: 211, B: 238, A: 255},
}

// dataStreamGreen tints data stream whispers.
var dataStreamGreen = color.RGBA{R: 80, G: 255, B: 140, A: 255}

// Background returns the backdrop colour of biome b.
func Background(b world.Biome) color.RGBA {
	return biomeBackgrounds[b]
}

// BackgroundAt blends towards the next band over the last tenth of the
// current one so that band edges do not pop.
func BackgroundAt(depth, bandWidth float64) color.RGBA {
	if bandWidth <= 0 {
		bandWidth = world.DefaultBandWidth
	}
	here := world.BiomeAt(depth, bandWidth)
	into := (depth - world.BandStart(depth, bandWidth)) / bandWidth
	if into < 0.9 {
		return Background(here)
	}
	next := world.BiomeAt(world.BandStart(depth, bandWidth)+bandWidth, bandWidth)
	return Lerp(Background(here), Background(next), (into-0.9)/0.1)
}

// HueColor converts a hue in degrees into an opaque colour.
func HueColor(hue, saturation, value float64) color.RGBA {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsv(hue, saturation, value).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// KindColor returns the display colour of e.
func KindColor(e world.Entity) color.RGBA {
	switch body := e.Body.(type) {
	case world.Galaxy:
		return HueColor(body.Hue, 0.55, 1)
	case world.Blob:
		return HueColor(body.Hue, 0.7, 0.85)
	case world.Whisper:
		if body.Text != "" && isGlyphs(body.Text) {
			return dataStreamGreen
		}
	}
	if c, ok := kindColors[e.Kind()]; ok {
		return c
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// Fade blends c towards bg by 1-alpha.
func Fade(c, bg color.RGBA, alpha float64) color.RGBA {
	return Lerp(bg, c, alpha)
}

// Lerp interpolates between a and b in RGB space; t is clamped to [0,1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func isGlyphs(s string) bool {
	for _, r := range s {
		if r != '0' && r != '1' {
			return false
		}
	}
	return true
}
