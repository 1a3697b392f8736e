package core

import (
	"image/color"
	"testing"
	"time"
)

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }
	fs.accumulator = 0

	if n := fs.Due(); n != 0 {
		t.Fatalf("first call should not report ticks, got %d", n)
	}
	clock = clock.Add(250 * time.Millisecond)
	if n := fs.Due(); n != 2 {
		t.Fatalf("expected 2 ticks after 250ms at 10 TPS, got %d", n)
	}
	clock = clock.Add(50 * time.Millisecond)
	if n := fs.Due(); n != 1 {
		t.Fatalf("expected leftover 50ms to complete a tick, got %d", n)
	}
	clock = clock.Add(10 * time.Second)
	if n := fs.Due(); n != maxCatchUp {
		t.Fatalf("expected catch-up to cap at %d, got %d", maxCatchUp, n)
	}
}

func TestFixedStepDefaultsAndFirstTick(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(0)
	fs.now = func() time.Time { return clock }
	if fs.Interval() != time.Second/60 {
		t.Fatalf("non-positive TPS should default to 60, got %v", fs.Interval())
	}
	if n := fs.Due(); n != 1 {
		t.Fatalf("a fresh FixedStep should have one tick due, got %d", n)
	}
	if n := fs.Due(); n != 0 {
		t.Fatalf("no time elapsed, expected 0 ticks, got %d", n)
	}
	clock = clock.Add(fs.Interval())
	if n := fs.Due(); n != 1 {
		t.Fatalf("one interval elapsed, expected 1 tick, got %d", n)
	}
}

func TestCellGridPlotKeepsNearest(t *testing.T) {
	g := NewCellGrid(4, 2)
	if !g.Plot(1, 1, Cell{Rune: 'a', Depth: 100}) {
		t.Fatal("plot into blank cell failed")
	}
	if g.Plot(1, 1, Cell{Rune: 'b', Depth: 200}) {
		t.Fatal("farther cell must not overwrite nearer one")
	}
	if !g.Plot(1, 1, Cell{Rune: 'c', Depth: 50, Color: color.RGBA{R: 1}}) {
		t.Fatal("nearer cell should overwrite")
	}
	if got := g.At(1, 1).Rune; got != 'c' {
		t.Fatalf("expected 'c', got %q", got)
	}
	if g.Plot(9, 9, Cell{Rune: 'x'}) {
		t.Fatal("out of range plot must be rejected")
	}
	rows := g.Rows()
	if rows[1] != " c  " {
		t.Fatalf("unexpected row %q", rows[1])
	}
	g.Resize(2, 2)
	if g.At(1, 1).Rune != ' ' {
		t.Fatal("resize should clear the grid")
	}
}

type stubFlight struct{ depth float64 }

func (s *stubFlight) Name() string     { return "stub" }
func (s *stubFlight) Reset(int64)      { s.depth = 0 }
func (s *stubFlight) Step() Camera     { s.depth++; return Camera{Depth: s.depth} }
func (s *stubFlight) Throttle(float64) {}

func TestRegistry(t *testing.T) {
	Register("", func(map[string]string) Flight { return &stubFlight{} })
	Register("zz-stub", nil)
	if _, ok := Flights()["zz-stub"]; ok {
		t.Fatal("nil factory must not register")
	}
	Register("zz-stub", func(map[string]string) Flight { return &stubFlight{} })
	names := Names()
	if names[len(names)-1] != "zz-stub" {
		t.Fatalf("expected sorted names ending in zz-stub, got %v", names)
	}
	f := Flights()["zz-stub"](nil)
	if cam := f.Step(); cam.Depth != 1 {
		t.Fatalf("unexpected camera %+v", cam)
	}
	delete(flights, "zz-stub")
}

func TestSnapshotLookupAndClamp(t *testing.T) {
	snap := Merge(
		ParameterSnapshot{Groups: []ParameterGroup{{Name: "A", Params: []Parameter{IntParam("a", "A", 3)}}}},
		ParameterSnapshot{Groups: []ParameterGroup{{Name: "B", Params: []Parameter{FloatParam("b", "B", 0.5)}}}},
	)
	p, ok := snap.Lookup("b")
	if !ok || p.Value != "0.5" {
		t.Fatalf("lookup b failed: %+v %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("missing key should not resolve")
	}
	ctrl := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if ctrl.Clamp(2) != 1 || ctrl.Clamp(-1) != 0 {
		t.Fatal("clamp out of bounds")
	}
}
