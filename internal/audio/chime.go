// Package audio plays the chime heard when the camera passes through a
// portal.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"dreamvoid/internal/world"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	noteDuration = 220 * time.Millisecond
	noteRelease  = 160 * time.Millisecond
)

// Pentatonic roots per biome so that each band has its own colour of sound.
var biomeRoots = map[world.Biome]float64{
	world.BiomeVoid:       261.63, // C4
	world.BiomeStarField:  293.66, // D4
	world.BiomeNebula:     329.63, // E4
	world.BiomeDataStream: 392.00, // G4
	world.BiomeOrganic:    440.00, // A4
}

// Chime builds the two-note portal chime for biome: the root followed by its
// fifth, each with a linear release.
func Chime(sr beep.SampleRate, biome world.Biome, volume float64) (beep.Streamer, error) {
	root, ok := biomeRoots[biome]
	if !ok {
		root = biomeRoots[world.BiomeVoid]
	}
	first, err := note(sr, root)
	if err != nil {
		return nil, err
	}
	second, err := note(sr, root*1.5)
	if err != nil {
		return nil, err
	}
	return withVolume(beep.Seq(first, second), volume), nil
}

func note(sr beep.SampleRate, freq float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.2fHz: %w", freq, err)
	}
	total := sr.N(noteDuration)
	return &release{streamer: beep.Take(total, tone), total: total, release: sr.N(noteRelease)}, nil
}

// release fades the tail of a finite streamer to silence.
type release struct {
	streamer beep.Streamer
	position int
	total    int
	release  int
}

func (r *release) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.streamer.Stream(samples)
	start := r.total - r.release
	for i := 0; i < n; i++ {
		if r.position >= start && r.release > 0 {
			vol := float64(r.total-r.position) / float64(r.release)
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		r.position++
	}
	return n, ok
}

func (r *release) Err() error { return r.streamer.Err() }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Player owns the speaker and mixes chimes into it.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer returns a player at the given linear volume (1 is unity).
func NewPlayer(volume float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Chime plays the portal chime for biome. It is a no-op until Initialize
// succeeds.
func (p *Player) Chime(biome world.Biome) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil
	}
	s, err := Chime(sampleRate, biome, p.volume)
	if err != nil {
		return err
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Close silences every queued chime.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
