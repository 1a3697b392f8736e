package main

import (
	"math"
	"strings"
	"testing"

	"dreamvoid/internal/world"
)

func TestRunScenarioDefaults(t *testing.T) {
	params := paramSet{clusterRarity: 0.92, stepMin: 200, stepMax: 500, bandWidth: 3000}
	res := runScenario(params, 3000, 200)
	if res.err != nil {
		t.Fatalf("scenario failed: %v", res.err)
	}
	if res.maxGap > res.threshold {
		t.Fatalf("gap %.0f exceeds regen threshold %.0f", res.maxGap, res.threshold)
	}
	if res.peak == 0 {
		t.Fatal("window never held any entity")
	}
	for _, biome := range world.Biomes() {
		total := 0.0
		for _, f := range res.observed[biome] {
			total += f
		}
		if math.Abs(total-1) > 1e-9 {
			t.Fatalf("%s frequencies sum to %v", biome, total)
		}
	}
	if !strings.Contains(res.frequencyTable(), "NEBULA") {
		t.Fatal("frequency table should list every biome")
	}
}

func TestRunScenarioRejectsInvalidConfig(t *testing.T) {
	res := runScenario(paramSet{clusterRarity: 0.9, stepMin: 600, stepMax: 500, bandWidth: 3000}, 10, 10)
	if res.err == nil {
		t.Fatal("step_min above step_max should fail")
	}
}

func TestParamGridIsValid(t *testing.T) {
	for _, p := range paramGrid() {
		if err := p.config().Validate(); err != nil {
			t.Fatalf("%s: %v", p, err)
		}
	}
}
