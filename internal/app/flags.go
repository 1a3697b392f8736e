package app

import (
	"flag"
	"fmt"
	"strings"

	"dreamvoid/internal/config"
)

// Flags represents the command-line parameters of the window host. Zero
// values leave the config file's setting in place.
type Flags struct {
	Config string
	Flight string
	Scale  int
	TPS    int
	Seed   int64
	Sound  bool
	Sets   setList
}

// NewFlags returns Flags populated with sensible defaults.
func NewFlags() *Flags {
	return &Flags{Config: "dreamvoid.yaml"}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", f.Config, "path to the YAML config file")
	fs.StringVar(&f.Flight, "flight", f.Flight, "flight profile to run")
	fs.IntVar(&f.Scale, "scale", f.Scale, "window scale multiplier")
	fs.IntVar(&f.TPS, "tps", f.TPS, "ticks per second")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "spacing seed")
	fs.BoolVar(&f.Sound, "sound", f.Sound, "chime when passing through a portal")
	fs.Var(&f.Sets, "set", "override a config value (section.key=value), repeatable")
}

// Load reads the config file and layers the flags over it.
func (f *Flags) Load() (*config.Config, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, err
	}
	overrides := make(map[string]string, len(f.Sets))
	for _, kv := range f.Sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("-set %q: expected section.key=value", kv)
		}
		overrides[key] = value
	}
	if err := cfg.Apply(overrides); err != nil {
		return nil, err
	}
	if f.Flight != "" {
		cfg.Flight.Name = f.Flight
	}
	if f.Scale > 0 {
		cfg.Display.Scale = f.Scale
	}
	if f.TPS > 0 {
		cfg.Flight.TPS = f.TPS
	}
	if f.Seed != 0 {
		cfg.Flight.Seed = f.Seed
	}
	if f.Sound {
		cfg.Display.Sound = true
	}
	return cfg, cfg.Validate()
}

type setList []string

func (s *setList) String() string { return strings.Join(*s, ",") }

func (s *setList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
