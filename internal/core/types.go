package core

import "sort"

// Camera is the per-tick sample a host hands to the world window.
type Camera struct {
	Depth    float64
	Velocity float64
}

// Flight defines the minimal contract a camera flight profile must implement.
type Flight interface {
	Name() string
	Reset(seed int64)
	Step() Camera
	// Throttle scales the flight speed; 1 is nominal.
	Throttle(factor float64)
}

// Factory constructs a Flight using an optional configuration map.
type Factory func(cfg map[string]string) Flight

var flights = map[string]Factory{}

// Register adds a flight factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	flights[name] = f
}

// Flights exposes the registry of available flight factories.
func Flights() map[string]Factory {
	return flights
}

// Names returns the registered flight names in sorted order.
func Names() []string {
	out := make([]string, 0, len(flights))
	for name := range flights {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
