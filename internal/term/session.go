// Package term hosts a dream in a terminal.
package term

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"dreamvoid/internal/core"
	"dreamvoid/internal/dream"
	"dreamvoid/internal/logging"
	"dreamvoid/internal/oracle"
	"dreamvoid/internal/render"
	"dreamvoid/internal/world"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const (
	maxWhisperLen = 80
	throttleStep  = 0.25
	maxThrottle   = 8
)

// Whisperer answers whispers. *oracle.Oracle satisfies it.
type Whisperer interface {
	Whisper(ctx context.Context, text string) (oracle.Fragment, <-chan oracle.Vision)
}

// Chimer plays the portal chime. *audio.Player satisfies it.
type Chimer interface {
	Chime(b world.Biome) error
}

// Options wires the optional collaborators of a Session.
type Options struct {
	TPS    int
	Oracle Whisperer
	Chimer Chimer
	Logger *zap.Logger
	// Reconfigure delivers world configurations from a file watcher.
	Reconfigure <-chan world.Config
}

// Session runs the terminal flythrough.
type Session struct {
	screen tcell.Screen
	dream  *dream.Dream
	clock  *core.FixedStep
	grid   *core.CellGrid
	opts   Options
	log    *zap.Logger

	paused    bool
	typing    bool
	input     []rune
	echo      string
	status    string
	fragments chan oracle.Fragment
}

// NewSession prepares a session on an initialised screen.
func NewSession(screen tcell.Screen, d *dream.Dream, opts Options) *Session {
	w, h := screen.Size()
	return &Session{
		screen:    screen,
		dream:     d,
		clock:     core.NewFixedStep(opts.TPS),
		grid:      core.NewCellGrid(w, max(h-2, 1)),
		opts:      opts,
		log:       logging.OrNop(opts.Logger),
		fragments: make(chan oracle.Fragment, 4),
	}
}

// Run drives the session until the user quits or ctx ends. The screen is
// finalised on return.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.screen.Fini()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(s.clock.Interval())
	defer ticker.Stop()

	s.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !s.HandleEvent(ctx, ev) {
				return nil
			}

		case frag := <-s.fragments:
			s.absorb(frag)

		case cfg, ok := <-s.opts.Reconfigure:
			if !ok {
				s.opts.Reconfigure = nil
				continue
			}
			if err := s.dream.Reconfigure(cfg); err != nil {
				s.log.Warn("config reload rejected", zap.Error(err))
				s.status = "config rejected"
				continue
			}
			s.log.Info("config reloaded")
			s.status = "config reloaded"

		case <-ticker.C:
			for n := s.clock.Due(); n > 0; n-- {
				s.Tick()
			}
			s.Draw()
		}
	}
}

// Tick advances the dream one step unless paused.
func (s *Session) Tick() {
	if s.paused {
		return
	}
	s.dream.Step()
	if s.opts.Chimer == nil {
		return
	}
	for range s.dream.Crossed() {
		if err := s.opts.Chimer.Chime(s.dream.Biome()); err != nil {
			s.log.Warn("chime failed", zap.Error(err))
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user asks
// to quit.
func (s *Session) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := s.screen.Size()
		s.grid.Resize(w, max(h-2, 1))
		s.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if s.typing {
			s.handleTyping(ctx, ev)
			return true
		}
		switch ev.Key() {
		case tcell.KeyEscape:
			return false
		case tcell.KeyEnter, tcell.KeyTab:
			s.typing = true
			s.input = s.input[:0]
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				s.paused = !s.paused
			case '+', '=':
				s.dream.SetThrottle(min(s.dream.Throttle()+throttleStep, maxThrottle))
			case '-', '_':
				s.dream.SetThrottle(max(s.dream.Throttle()-throttleStep, 0))
			case '/':
				s.typing = true
				s.input = s.input[:0]
			}
		}
	}
	return true
}

func (s *Session) handleTyping(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.typing = false
	case tcell.KeyEnter:
		s.typing = false
		s.submit(ctx, string(s.input))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(s.input) > 0 {
			s.input = s.input[:len(s.input)-1]
		}
	case tcell.KeyRune:
		if len(s.input) < maxWhisperLen {
			s.input = append(s.input, ev.Rune())
		}
	}
}

// submit hands text to the oracle in the background. Without an oracle the
// whisper itself drifts back.
func (s *Session) submit(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if s.opts.Oracle == nil {
		s.dream.Whisper(text)
		s.echo = text
		return
	}
	s.status = "the dream is listening..."
	go func() {
		frag, visions := s.opts.Oracle.Whisper(ctx, text)
		select {
		case s.fragments <- frag:
		case <-ctx.Done():
		}
		// A terminal cannot show the vision; record that it arrived.
		for v := range visions {
			s.log.Info("vision manifested", zap.String("fragment", v.FragmentID), zap.Int("bytes", len(v.Data)))
		}
	}()
}

func (s *Session) absorb(frag oracle.Fragment) {
	s.dream.Absorb(frag)
	s.echo = frag.Echo
	s.status = strings.ToLower(string(frag.Mood))
}

// Draw renders the window and the status lines.
func (s *Session) Draw() {
	s.screen.Clear()
	cam := s.dream.Camera()
	bg := render.BackgroundAt(cam.Depth, s.dream.Window().Config().BandWidth)
	tint := render.Lerp(bg, s.dream.Mood().Tint(), 0.15)
	render.Frame(s.grid, cam.Depth, s.dream.Entities(), tint)

	base := tcell.StyleDefault.Background(rgb(tint))
	w, _ := s.screen.Size()
	for y := 0; y < s.grid.H; y++ {
		for x := 0; x < s.grid.W && x < w; x++ {
			c := s.grid.At(x, y)
			s.screen.SetContent(x, y, c.Rune, nil, base.Foreground(rgb(c.Color)))
		}
	}

	hud := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	status := fmt.Sprintf(" %s  depth %.0f  v %.1f  x%.2f  %d entities",
		s.dream.Biome(), cam.Depth, cam.Velocity, s.dream.Throttle(), len(s.dream.Entities()))
	if s.paused {
		status += "  [paused]"
	}
	if s.status != "" {
		status += "  " + s.status
	}
	s.drawText(0, s.grid.H, status, hud)

	prompt := " / whisper  space pause  +/- speed  q quit"
	style := hud
	if s.typing {
		prompt = " > " + string(s.input) + "_"
		style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	} else if s.echo != "" {
		prompt = " ~ " + s.echo
		style = tcell.StyleDefault.Foreground(rgb(s.dream.Mood().Tint()))
	}
	s.drawText(0, s.grid.H+1, prompt, style)
	s.screen.Show()
}

func (s *Session) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Paused reports whether the flight is paused.
func (s *Session) Paused() bool { return s.paused }

// Typing reports whether the whisper prompt is open.
func (s *Session) Typing() bool { return s.typing }

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
