package world

import (
	"sort"
	"strings"

	"dreamvoid/internal/core"
)

// Parameters reports the window tunables grouped for presentation.
func (w *Window) Parameters() core.ParameterSnapshot {
	cfg := w.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Window",
			Params: []core.Parameter{
				core.FloatParam("render_distance", "Render distance", cfg.RenderDistance),
				core.FloatParam("rear_margin", "Rear margin", cfg.RearMargin),
				core.FloatParam("regen_threshold", "Regen threshold", cfg.RegenThreshold),
				core.FloatParam("step_min", "Step min", cfg.StepMin),
				core.FloatParam("step_max", "Step max", cfg.StepMax),
				core.FloatParam("forward_slack", "Forward slack", cfg.ForwardSlack),
				core.Int64Param("seed", "Seed", w.seed),
			},
		},
		{
			Name: "Generation",
			Params: []core.Parameter{
				core.FloatParam("band_width", "Biome band width", cfg.BandWidth),
				core.FloatParam("lane_period", "Lane period", cfg.LanePeriod),
				core.FloatParam("spread", "Lateral spread", cfg.Spread),
				core.FloatParam("cluster_rarity", "Cluster rarity", cfg.ClusterRarity),
			},
		},
	}
	if rarity := rarityParams(w.gen); len(rarity) > 0 {
		groups = append(groups, core.ParameterGroup{
			Name:    "Rarity",
			Params:  rarity,
			Summary: "Band thresholds per biome; higher is rarer.",
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

func rarityParams(g *Generator) []core.Parameter {
	var out []core.Parameter
	for _, biome := range biomeCycle {
		table := g.Table(biome)
		for _, band := range table[:len(table)-1] {
			key := "rarity." + biome.String() + "." + band.Kind.String()
			out = append(out, core.FloatParam(key, biome.String()+" "+band.Kind.String(), band.Above))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ParameterControls lists the tunables adjustable from the HUD.
func (w *Window) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "render_distance", Label: "Render distance", Type: core.ParamTypeFloat, Step: 250, Min: 500, HasMin: true, Max: 20000, HasMax: true},
		{Key: "rear_margin", Label: "Rear margin", Type: core.ParamTypeFloat, Step: 250, Min: 0, HasMin: true, Max: 10000, HasMax: true},
		{Key: "regen_threshold", Label: "Regen threshold", Type: core.ParamTypeFloat, Step: 50, Min: 50, HasMin: true, Max: 5000, HasMax: true},
		{Key: "step_min", Label: "Step min", Type: core.ParamTypeFloat, Step: 25, Min: 25, HasMin: true},
		{Key: "step_max", Label: "Step max", Type: core.ParamTypeFloat, Step: 25, Min: 25, HasMin: true},
		{Key: "forward_slack", Label: "Forward slack", Type: core.ParamTypeFloat, Step: 250, Min: 0, HasMin: true, Max: 20000, HasMax: true},
		{Key: "band_width", Label: "Band width", Type: core.ParamTypeFloat, Step: 250, Min: 250, HasMin: true},
		{Key: "lane_period", Label: "Lane period", Type: core.ParamTypeFloat, Step: 100, Min: 100, HasMin: true},
		{Key: "spread", Label: "Lateral spread", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true, Max: 1000, HasMax: true},
		{Key: "cluster_rarity", Label: "Cluster rarity", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true, Max: 1, HasMax: true},
	}
}

// SetFloatParameter applies a HUD adjustment. Values the window cannot honour
// are rejected and leave the configuration untouched. Rarity thresholds use
// the snapshot keys, e.g. "rarity.NEBULA.PORTAL".
func (w *Window) SetFloatParameter(key string, value float64) bool {
	cfg := w.cfg.Clone()
	if rest, ok := strings.CutPrefix(key, "rarity."); ok {
		biome, kind, ok := strings.Cut(rest, ".")
		if !ok {
			return false
		}
		cfg.SetRarity(biome, kind, value)
		return w.Reconfigure(cfg) == nil
	}
	switch key {
	case "render_distance":
		cfg.RenderDistance = value
	case "rear_margin":
		cfg.RearMargin = value
	case "regen_threshold":
		cfg.RegenThreshold = value
	case "step_min":
		cfg.StepMin = value
	case "step_max":
		cfg.StepMax = value
		if cfg.ForwardSlack < value {
			cfg.ForwardSlack = value
		}
	case "forward_slack":
		cfg.ForwardSlack = value
	case "band_width":
		cfg.BandWidth = value
	case "lane_period":
		cfg.LanePeriod = value
	case "spread":
		cfg.Spread = value
	case "cluster_rarity":
		cfg.ClusterRarity = value
	default:
		return false
	}
	return w.Reconfigure(cfg) == nil
}
