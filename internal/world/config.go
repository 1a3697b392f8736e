package world

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Defaults for the generation and window tunables.
const (
	DefaultBandWidth      = 3000.0
	DefaultLanePeriod     = 1000.0
	DefaultSpread         = 150.0
	DefaultClusterRarity  = 0.92
	DefaultRenderDistance = 4000.0
	DefaultRearMargin     = 2000.0
	DefaultRegenThreshold = 500.0
	DefaultStepMin        = 200.0
	DefaultStepMax        = 500.0
	DefaultForwardSlack   = 2000.0
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid world config")

// Config holds the tunables for biome banding, entity placement and the
// moving window.
type Config struct {
	BandWidth     float64 `yaml:"band_width"`
	LanePeriod    float64 `yaml:"lane_period"`
	Spread        float64 `yaml:"spread"`
	ClusterRarity float64 `yaml:"cluster_rarity"`

	RenderDistance float64 `yaml:"render_distance"`
	RearMargin     float64 `yaml:"rear_margin"`
	RegenThreshold float64 `yaml:"regen_threshold"`
	StepMin        float64 `yaml:"step_min"`
	StepMax        float64 `yaml:"step_max"`
	ForwardSlack   float64 `yaml:"forward_slack"`

	// Rarity overrides band thresholds: biome name -> kind name -> threshold.
	Rarity map[string]map[string]float64 `yaml:"rarity,omitempty"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		BandWidth:      DefaultBandWidth,
		LanePeriod:     DefaultLanePeriod,
		Spread:         DefaultSpread,
		ClusterRarity:  DefaultClusterRarity,
		RenderDistance: DefaultRenderDistance,
		RearMargin:     DefaultRearMargin,
		RegenThreshold: DefaultRegenThreshold,
		StepMin:        DefaultStepMin,
		StepMax:        DefaultStepMax,
		ForwardSlack:   DefaultForwardSlack,
	}
}

// Validate checks that the window can keep its coverage guarantee.
func (c Config) Validate() error {
	switch {
	case c.BandWidth <= 0:
		return fmt.Errorf("%w: band_width must be positive", ErrInvalidConfig)
	case c.LanePeriod <= 0:
		return fmt.Errorf("%w: lane_period must be positive", ErrInvalidConfig)
	case c.Spread < 0:
		return fmt.Errorf("%w: spread must not be negative", ErrInvalidConfig)
	case c.ClusterRarity < 0 || c.ClusterRarity > 1:
		return fmt.Errorf("%w: cluster_rarity must be within [0,1]", ErrInvalidConfig)
	case c.RenderDistance <= 0:
		return fmt.Errorf("%w: render_distance must be positive", ErrInvalidConfig)
	case c.RearMargin < 0:
		return fmt.Errorf("%w: rear_margin must not be negative", ErrInvalidConfig)
	case c.RegenThreshold < 0:
		return fmt.Errorf("%w: regen_threshold must not be negative", ErrInvalidConfig)
	case c.StepMin <= 0:
		return fmt.Errorf("%w: step_min must be positive", ErrInvalidConfig)
	case c.StepMax < c.StepMin:
		return fmt.Errorf("%w: step_max %.0f below step_min %.0f", ErrInvalidConfig, c.StepMax, c.StepMin)
	case c.StepMax > c.RegenThreshold:
		return fmt.Errorf("%w: step_max %.0f above regen_threshold %.0f", ErrInvalidConfig, c.StepMax, c.RegenThreshold)
	case c.ForwardSlack < c.StepMax:
		return fmt.Errorf("%w: forward_slack %.0f below step_max %.0f", ErrInvalidConfig, c.ForwardSlack, c.StepMax)
	}
	for biome, kinds := range c.Rarity {
		if _, err := ParseBiome(biome); err != nil {
			return fmt.Errorf("%w: rarity: %v", ErrInvalidConfig, err)
		}
		for kind, th := range kinds {
			if _, err := ParseKind(kind); err != nil {
				return fmt.Errorf("%w: rarity.%s: %v", ErrInvalidConfig, biome, err)
			}
			if th <= 0 || th >= 1 {
				return fmt.Errorf("%w: rarity.%s.%s must be within (0,1)", ErrInvalidConfig, biome, kind)
			}
		}
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Rarity overrides use keys of the form "rarity.NEBULA.PORTAL".
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Apply(cfg)
}

// Apply layers flag-style key/value pairs over c. Unparseable values are
// ignored. Dependent bounds are raised so that step_min <= step_max <=
// regen_threshold and step_max <= forward_slack.
func (c Config) Apply(cfg map[string]string) Config {
	c = c.Clone()
	if cfg == nil {
		return c
	}
	floats := map[string]*float64{
		"band_width":      &c.BandWidth,
		"lane_period":     &c.LanePeriod,
		"spread":          &c.Spread,
		"cluster_rarity":  &c.ClusterRarity,
		"render_distance": &c.RenderDistance,
		"rear_margin":     &c.RearMargin,
		"regen_threshold": &c.RegenThreshold,
		"step_min":        &c.StepMin,
		"step_max":        &c.StepMax,
		"forward_slack":   &c.ForwardSlack,
	}
	for key, dst := range floats {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
	if c.StepMax < c.StepMin {
		c.StepMax = c.StepMin
	}
	if c.RegenThreshold < c.StepMax {
		c.RegenThreshold = c.StepMax
	}
	if c.ForwardSlack < c.StepMax {
		c.ForwardSlack = c.StepMax
	}
	for key, v := range cfg {
		rest, ok := strings.CutPrefix(key, "rarity.")
		if !ok {
			continue
		}
		biome, kind, ok := strings.Cut(rest, ".")
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		c.SetRarity(biome, kind, parsed)
	}
	return c
}

// SetRarity records a threshold override without validating it.
func (c *Config) SetRarity(biome, kind string, threshold float64) {
	if c.Rarity == nil {
		c.Rarity = map[string]map[string]float64{}
	}
	if c.Rarity[biome] == nil {
		c.Rarity[biome] = map[string]float64{}
	}
	c.Rarity[biome][kind] = threshold
}

// Clone returns a deep copy so that callers can edit rarity overrides freely.
func (c Config) Clone() Config {
	out := c
	if c.Rarity != nil {
		out.Rarity = make(map[string]map[string]float64, len(c.Rarity))
		for b, kinds := range c.Rarity {
			inner := make(map[string]float64, len(kinds))
			for k, v := range kinds {
				inner[k] = v
			}
			out.Rarity[b] = inner
		}
	}
	return out
}
