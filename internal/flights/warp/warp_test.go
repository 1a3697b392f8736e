package warp

import "testing"

func TestWarpAcceleratesThenPlunges(t *testing.T) {
	f := New(DefaultConfig())
	f.Reset(3)
	prev := f.Step()
	for i := 0; i < 2000 && f.Plunges() == 0; i++ {
		cam := f.Step()
		if f.Plunges() == 0 && cam.Velocity <= prev.Velocity {
			t.Fatalf("velocity should compound before the plunge: %v after %v", cam.Velocity, prev.Velocity)
		}
		prev = cam
	}
	if f.Plunges() == 0 {
		t.Fatal("warp never reached the cap")
	}
	if cam := f.Step(); cam.Velocity != DefaultConfig().MinSpeed {
		t.Fatalf("speed after plunge = %v, want floor", cam.Velocity)
	}
}

func TestWarpNeverExceedsCap(t *testing.T) {
	cfg := DefaultConfig()
	f := New(cfg)
	for i := 0; i < 5000; i++ {
		if cam := f.Step(); cam.Velocity > cfg.MaxSpeed {
			t.Fatalf("velocity %v above cap at tick %d", cam.Velocity, i)
		}
	}
}

func TestFromMapKeepsOrdering(t *testing.T) {
	cfg := FromMap(map[string]string{"min_speed": "50", "max_speed": "20", "accel": "0.5"})
	if cfg.MaxSpeed < cfg.MinSpeed {
		t.Fatalf("max below min: %+v", cfg)
	}
	if cfg.Accel != DefaultConfig().Accel {
		t.Fatalf("non-accelerating factor accepted: %v", cfg.Accel)
	}
}
