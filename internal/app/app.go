//go:build ebiten

package app

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"
	"time"

	"dreamvoid/internal/dream"
	"dreamvoid/internal/logging"
	"dreamvoid/internal/oracle"
	"dreamvoid/internal/render"
	"dreamvoid/internal/ui"
	"dreamvoid/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

const (
	throttleStep = 0.25
	maxThrottle  = 8
	maxInput     = 80
	visionFade   = 0.35
)

// Whisperer answers whispers. *oracle.Oracle satisfies it.
type Whisperer interface {
	Whisper(ctx context.Context, text string) (oracle.Fragment, <-chan oracle.Vision)
}

// Chimer plays the portal chime. *audio.Player satisfies it.
type Chimer interface {
	Chime(b world.Biome) error
}

// Options configures the window.
type Options struct {
	Width    int
	Height   int
	HUDWidth int
	Seed     int64
	Oracle   Whisperer
	Chimer   Chimer
	Logger   *zap.Logger
	// Reconfigure delivers world configurations from a file watcher.
	Reconfigure <-chan world.Config
}

// Game adapts a dream to the ebiten.Game interface.
type Game struct {
	ctx     context.Context
	dream   *dream.Dream
	hud     *ui.HUD
	overlay *ui.Overlay
	opts    Options
	log     *zap.Logger
	view    render.View

	bg    *ebiten.Image
	bgBuf []byte
	bgKey color.RGBA

	vision    *ebiten.Image
	fragments chan oracle.Fragment
	visions   chan image.Image

	paused   bool
	tickOnce bool
	typing   bool
	input    []rune
	echo     string
	seed     int64
}

// New constructs a Game for the provided dream. ctx bounds oracle calls.
func New(ctx context.Context, d *dream.Dream, opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = 960
	}
	if opts.Height <= 0 {
		opts.Height = 640
	}
	title := strings.ToUpper(d.Flight().Name()[:1]) + d.Flight().Name()[1:]
	return &Game{
		ctx:       ctx,
		dream:     d,
		hud:       ui.NewHUD(d, title, opts.HUDWidth),
		overlay:   ui.NewOverlay(d),
		opts:      opts,
		log:       logging.OrNop(opts.Logger),
		view:      render.DefaultView(float64(opts.Width), float64(opts.Height)),
		fragments: make(chan oracle.Fragment, 4),
		visions:   make(chan image.Image, 2),
		seed:      opts.Seed,
	}
}

// Reset restarts the dream with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.dream.Reset(seed)
	g.tickOnce = false
	g.vision = nil
}

// Update handles per-frame logic and advances the dream.
func (g *Game) Update() error {
	g.drain()
	if g.typing {
		g.updateTyping()
	} else if quit := g.updateKeys(); quit {
		return ebiten.Termination
	}

	g.overlay.Update()
	g.hud.Update(g.opts.Width)

	if !g.paused || g.tickOnce {
		g.step()
		g.tickOnce = false
	}
	cam := g.dream.Camera()
	g.hud.SetStatus(
		fmt.Sprintf("depth %.0f", cam.Depth),
		fmt.Sprintf("velocity %.1f", cam.Velocity),
		fmt.Sprintf("biome %s", g.dream.Biome()),
		fmt.Sprintf("mood %s", strings.ToLower(string(g.dream.Mood()))),
		fmt.Sprintf("throttle %.2f", g.dream.Throttle()),
		fmt.Sprintf("seed %d", g.seed),
	)
	return nil
}

func (g *Game) updateKeys() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.dream.SetThrottle(math.Min(maxThrottle, g.dream.Throttle()+throttleStep))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.dream.SetThrottle(math.Max(0, g.dream.Throttle()-throttleStep))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		g.typing = true
		g.input = g.input[:0]
	}
	return false
}

func (g *Game) updateTyping() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.typing = false
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.typing = false
		g.submit(string(g.input))
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.input) > 0:
		g.input = g.input[:len(g.input)-1]
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if len(g.input) < maxInput {
			g.input = append(g.input, r)
		}
	}
}

func (g *Game) step() {
	g.dream.Step()
	if g.opts.Chimer == nil {
		return
	}
	for range g.dream.Crossed() {
		if err := g.opts.Chimer.Chime(g.dream.Biome()); err != nil {
			g.log.Warn("chime failed", zap.Error(err))
		}
	}
}

func (g *Game) submit(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if g.opts.Oracle == nil {
		g.dream.Whisper(text)
		g.echo = text
		return
	}
	go func() {
		frag, visions := g.opts.Oracle.Whisper(g.ctx, text)
		select {
		case g.fragments <- frag:
		case <-g.ctx.Done():
			return
		}
		for v := range visions {
			img, _, err := image.Decode(bytes.NewReader(v.Data))
			if err != nil {
				g.log.Warn("vision undecodable", zap.String("fragment", v.FragmentID), zap.String("mime", v.MIME), zap.Error(err))
				continue
			}
			select {
			case g.visions <- img:
			case <-g.ctx.Done():
				return
			}
		}
	}()
}

// drain applies results that arrived since the last frame.
func (g *Game) drain() {
	for {
		select {
		case frag := <-g.fragments:
			g.dream.Absorb(frag)
			g.echo = frag.Echo
		case img := <-g.visions:
			g.vision = ebiten.NewImageFromImage(img)
		case cfg := <-g.opts.Reconfigure:
			if err := g.dream.Reconfigure(cfg); err != nil {
				g.log.Warn("reload rejected", zap.Error(err))
			}
		default:
			return
		}
	}
}

// Draw renders the current dream state.
func (g *Game) Draw(screen *ebiten.Image) {
	cam := g.dream.Camera().Depth
	bg := render.BackgroundAt(cam, g.dream.Window().Config().BandWidth)
	g.drawBackground(screen, bg)
	g.drawVision(screen)
	for _, s := range render.ProjectAll(cam, g.dream.Entities(), g.view) {
		drawSprite(screen, s, bg)
	}
	g.overlay.Draw(screen, g.view)
	g.drawPrompt(screen)
	g.hud.Draw(screen, g.opts.Width, g.opts.Height)
}

func (g *Game) drawBackground(screen *ebiten.Image, bg color.RGBA) {
	w, h := g.opts.Width/4, g.opts.Height/4
	if g.bg == nil {
		g.bg = ebiten.NewImage(w, h)
		g.bgBuf = make([]byte, 4*w*h)
	}
	tint := render.Lerp(bg, g.dream.Mood().Tint(), 0.25)
	if tint != g.bgKey {
		render.FillVignetteRGBA(g.bgBuf, w, h, tint, bg)
		g.bg.WritePixels(g.bgBuf)
		g.bgKey = tint
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(4, 4)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.bg, op)
}

func (g *Game) drawVision(screen *ebiten.Image) {
	if g.vision == nil {
		return
	}
	b := g.vision.Bounds()
	sx := float64(g.opts.Width) / float64(b.Dx())
	sy := float64(g.opts.Height) / float64(b.Dy())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.ColorScale.ScaleAlpha(visionFade)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.vision, op)
}

func drawSprite(screen *ebiten.Image, s render.Sprite, bg color.RGBA) {
	col := render.Fade(render.KindColor(s.Entity), bg, s.Alpha)
	x, y, r := float32(s.X), float32(s.Y), float32(math.Max(1, s.Radius))
	switch body := s.Entity.Body.(type) {
	case world.Whisper:
		w := text.BoundString(basicfont.Face7x13, body.Text).Dx()
		text.Draw(screen, body.Text, basicfont.Face7x13, int(s.X)-w/2, int(s.Y), col)
	case world.Galaxy:
		vector.DrawFilledCircle(screen, x, y, r, render.Fade(col, bg, 0.3), true)
		vector.DrawFilledCircle(screen, x, y, r/3, col, true)
	case world.Flicker:
		tail := r * float32(1+8*body.Streak)
		vector.StrokeLine(screen, x, y-tail/2, x, y+tail/2, 1, col, true)
	case world.Portal:
		vector.StrokeCircle(screen, x, y, r, 2, col, true)
		vector.StrokeCircle(screen, x, y, r*0.6, 1, col, true)
	case world.Blob:
		vector.DrawFilledCircle(screen, x, y, r, col, true)
	case world.WidgetInput:
		vector.StrokeRect(screen, x-3*r, y-r/2, 6*r, r, 1, col, true)
	}
}

func (g *Game) drawPrompt(screen *ebiten.Image) {
	face := basicfont.Face7x13
	y := g.opts.Height - 12
	switch {
	case g.typing:
		text.Draw(screen, "whisper> "+string(g.input)+"_", face, 12, y, color.White)
	case g.echo != "":
		text.Draw(screen, g.echo, face, 12, y, color.RGBA{R: 180, G: 180, B: 200, A: 255})
	}
	if g.paused {
		text.Draw(screen, "paused", face, 12, 20, color.White)
	}
}

// Layout returns the logical screen size: the dream view plus the HUD.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width + g.opts.HUDWidth, g.opts.Height
}
