package drift

import "testing"

func TestDriftReversesAndProgresses(t *testing.T) {
	cfg := DefaultConfig()
	f := New(cfg)
	f.Reset(11)
	start := f.Step().Depth
	backward := false
	var last float64
	for i := 0; i < cfg.Period*3; i++ {
		cam := f.Step()
		if cam.Velocity < 0 {
			backward = true
		}
		last = cam.Depth
	}
	if !backward {
		t.Fatal("drift should spend part of each period flying backwards")
	}
	if last <= start {
		t.Fatalf("forward bias should make net progress: %v -> %v", start, last)
	}
}

func TestDriftResetIsDeterministic(t *testing.T) {
	a, b := New(DefaultConfig()), New(DefaultConfig())
	a.Reset(99)
	b.Reset(99)
	for i := 0; i < 500; i++ {
		if ca, cb := a.Step(), b.Step(); ca != cb {
			t.Fatalf("tick %d diverged", i)
		}
	}
}
