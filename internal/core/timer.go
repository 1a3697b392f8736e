package core

import "time"

// maxCatchUp bounds how many ticks Due reports after a stall.
const maxCatchUp = 5

// FixedStep helps run flight updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval is the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Due reports how many ticks have elapsed since the previous call. After a
// long stall at most maxCatchUp ticks are reported and the backlog dropped.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := int(f.accumulator / f.step)
	f.accumulator -= time.Duration(n) * f.step
	if n > maxCatchUp {
		n = maxCatchUp
	}
	return n
}
