package audio

import (
	"testing"

	"dreamvoid/internal/world"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}
	return out
}

func TestChimeLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	s, err := Chime(rate, world.BiomeNebula, 1)
	if err != nil {
		t.Fatalf("Chime: %v", err)
	}
	samples := drain(t, s)
	if want := 2 * rate.N(noteDuration); len(samples) != want {
		t.Fatalf("chime has %d samples, want %d", len(samples), want)
	}
	loud := false
	for i, smp := range samples {
		if smp[0] < -1 || smp[0] > 1 {
			t.Fatalf("sample %d out of range: %f", i, smp[0])
		}
		if smp[0] > 0.5 {
			loud = true
		}
	}
	if !loud {
		t.Fatal("chime is inaudible")
	}
	last := samples[len(samples)-1][0]
	if last > 0.05 || last < -0.05 {
		t.Fatalf("chime should release to silence, ends at %f", last)
	}
}

func TestChimeSilentAtZeroVolume(t *testing.T) {
	s, err := Chime(beep.SampleRate(8000), world.BiomeVoid, 0)
	if err != nil {
		t.Fatalf("Chime: %v", err)
	}
	for i, smp := range drain(t, s) {
		if smp[0] != 0 || smp[1] != 0 {
			t.Fatalf("sample %d not silent: %v", i, smp)
		}
	}
}

func TestChimeRejectsUnplayableRate(t *testing.T) {
	// A sine above Nyquist cannot be generated.
	if _, err := Chime(beep.SampleRate(400), world.BiomeOrganic, 1); err == nil {
		t.Fatal("expected an error for a rate below twice the tone frequency")
	}
}

func TestPlayerIsInertBeforeInitialize(t *testing.T) {
	p := NewPlayer(1)
	if err := p.Chime(world.BiomeNebula); err != nil {
		t.Fatalf("Chime before Initialize: %v", err)
	}
	p.Close()
}
