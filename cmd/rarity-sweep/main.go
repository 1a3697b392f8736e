package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"dreamvoid/internal/world"

	"github.com/pkg/profile"
)

func main() {
	samples := flag.Int("samples", 4000, "depths sampled per biome and scenario")
	steps := flag.Int("steps", 2000, "ticks of window travel per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	mode := flag.String("profile", "", "write a cpu or mem profile to the current directory")
	flag.Parse()

	switch *mode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q (cpu|mem)\n", *mode)
		os.Exit(2)
	}

	sets := paramGrid()
	fmt.Printf("Sweeping %d parameter sets (%d workers, %d samples, %d steps)\n", len(sets), *workers, *samples, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(params, *samples, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			fmt.Printf("Skipped %s: %v\n", res.params, res.err)
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].deviation < all[j].deviation })
	elapsed := time.Since(start)

	fmt.Printf("\nClosest to the rarity tables (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		fmt.Println(all[i].summary(i + 1))
	}
	for _, res := range all {
		if res.maxGap > res.threshold {
			fmt.Printf("Gap %.0f over regen threshold %.0f with %s\n", res.maxGap, res.threshold, res.params)
		}
	}
	if len(all) > 0 {
		fmt.Printf("\nKind frequencies for %s:\n%s", all[0].params, all[0].frequencyTable())
	}
}

func paramGrid() []paramSet {
	var sets []paramSet
	for _, rarity := range []float64{0.85, 0.92, 0.97} {
		for _, step := range []struct{ min, max float64 }{{150, 400}, {200, 500}, {250, 600}} {
			for _, band := range []float64{2000, 3000, 4500} {
				sets = append(sets, paramSet{clusterRarity: rarity, stepMin: step.min, stepMax: step.max, bandWidth: band})
			}
		}
	}
	return sets
}

type paramSet struct {
	clusterRarity float64
	stepMin       float64
	stepMax       float64
	bandWidth     float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("rarity=%.2f step=[%.0f,%.0f] band=%.0f", p.clusterRarity, p.stepMin, p.stepMax, p.bandWidth)
}

func (p paramSet) config() world.Config {
	cfg := world.DefaultConfig()
	cfg.ClusterRarity = p.clusterRarity
	cfg.StepMin = p.stepMin
	cfg.StepMax = p.stepMax
	cfg.BandWidth = p.bandWidth
	if cfg.RegenThreshold < cfg.StepMax {
		cfg.RegenThreshold = cfg.StepMax
	}
	if cfg.ForwardSlack < cfg.StepMax {
		cfg.ForwardSlack = cfg.StepMax
	}
	return cfg
}

type scenarioResult struct {
	params    paramSet
	err       error
	observed  map[world.Biome]map[world.Kind]float64
	expected  map[world.Biome]map[world.Kind]float64
	deviation float64
	maxGap    float64
	threshold float64
	peak      int
}

func (r scenarioResult) summary(rank int) string {
	return fmt.Sprintf("%2d) deviation=%.4f maxGap=%.0f peakEntities=%d params=%s", rank, r.deviation, r.maxGap, r.peak, r.params)
}

func (r scenarioResult) frequencyTable() string {
	var b strings.Builder
	for _, biome := range world.Biomes() {
		fmt.Fprintf(&b, "  %-11s", biome)
		for _, kind := range world.Kinds() {
			if want, ok := r.expected[biome][kind]; ok {
				fmt.Fprintf(&b, " %s=%.3f/%.3f", kind, r.observed[biome][kind], want)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// runScenario samples every biome band and flies a window forward for steps
// ticks, recording the largest spacing between neighbouring entities.
func runScenario(params paramSet, samples, steps int) scenarioResult {
	res := scenarioResult{params: params}
	cfg := params.config()
	gen, err := world.NewGenerator(cfg)
	if err != nil {
		res.err = err
		return res
	}
	res.threshold = cfg.RegenThreshold
	res.observed = map[world.Biome]map[world.Kind]float64{}
	res.expected = map[world.Biome]map[world.Kind]float64{}

	period := cfg.BandWidth * float64(len(world.Biomes()))
	for _, biome := range world.Biomes() {
		counts := map[world.Kind]int{}
		offset := float64(biome) * cfg.BandWidth
		for i := 0; i < samples; i++ {
			cycle := float64(i % 32)
			d := cycle*period + offset + cfg.BandWidth*float64(i)/float64(samples)
			counts[gen.Generate(d, 0, nil).Kind()]++
		}
		expected := map[world.Kind]float64{}
		upper := 1.0
		for _, band := range gen.Table(biome) {
			expected[band.Kind] += upper - band.Above
			upper = band.Above
		}
		observed := map[world.Kind]float64{}
		for kind, want := range expected {
			got := float64(counts[kind]) / float64(samples)
			observed[kind] = got
			diff := got - want
			res.deviation += diff * diff
		}
		res.observed[biome] = observed
		res.expected[biome] = expected
	}

	w := world.NewWindow(gen, 1337, 0)
	for i := 0; i < steps; i++ {
		entities, _ := w.OnCameraDepth(float64(i) * cfg.RegenThreshold * 0.75)
		res.peak = max(res.peak, len(entities))
		for j := 1; j < len(entities); j++ {
			res.maxGap = max(res.maxGap, entities[j].Depth-entities[j-1].Depth)
		}
	}
	return res
}
