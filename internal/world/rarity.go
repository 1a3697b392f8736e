package world

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrTableCoverage reports a rarity table without a fallback band at zero.
var ErrTableCoverage = errors.New("rarity table does not cover r = 0")

// Shaper derives a scale or hue from the primary draw r and the depth.
type Shaper func(r, depth float64) float64

// Band is one row of a rarity table. A draw r selects the first band, scanning
// from the highest threshold down, for which r > Above. The last band has
// Above == 0 and catches every remaining draw.
type Band struct {
	Above float64
	Kind  Kind
	Scale Shaper
	Hue   Shaper
	// Text replaces the pool lookup for whispers when non-empty.
	Text string
}

func constant(v float64) Shaper { return func(float64, float64) float64 { return v } }

// linear yields base + k*r.
func linear(base, k float64) Shaper {
	return func(r, _ float64) float64 { return base + k*r }
}

// depthHue drifts the hue with depth so neighbouring entities form gradients.
func depthHue(k float64) Shaper {
	return func(_, depth float64) float64 { return depth * k }
}

// DefaultTables returns fresh copies of the built-in rarity tables.
func DefaultTables() map[Biome][]Band {
	return map[Biome][]Band{
		BiomeVoid: {
			{Above: 0.85, Kind: KindWhisper, Scale: constant(2.5)},
			{Above: 0.6, Kind: KindBlob, Scale: linear(0.5, 1.5), Hue: depthHue(0.1)},
			{Above: 0, Kind: KindFlicker, Scale: linear(0.5, 4)},
		},
		BiomeStarField: {
			{Above: 0.96, Kind: KindGalaxy, Scale: linear(6, 5), Hue: linear(0, 360)},
			{Above: 0.90, Kind: KindWhisper, Scale: constant(2)},
			{Above: 0.7, Kind: KindBlob, Scale: linear(1, 2), Hue: linear(0, 360)},
			{Above: 0, Kind: KindFlicker, Scale: linear(0.5, 3)},
		},
		BiomeNebula: {
			{Above: 0.92, Kind: KindGalaxy, Scale: linear(12, 10), Hue: linear(200, 100)},
			{Above: 0.88, Kind: KindPortal, Scale: linear(4, 2)},
			{Above: 0.82, Kind: KindWhisper, Scale: constant(2.2)},
			{Above: 0.5, Kind: KindBlob, Scale: linear(5, 5), Hue: linear(240, 60)},
			{Above: 0, Kind: KindFlicker, Scale: linear(0, 3)},
		},
		BiomeDataStream: {
			{Above: 0.85, Kind: KindWidgetInput, Scale: constant(1)},
			{Above: 0.75, Kind: KindWhisper, Scale: constant(1), Text: dataStreamGlyphs},
			{Above: 0.4, Kind: KindFlicker, Scale: linear(1, 3)},
			{Above: 0, Kind: KindFlicker, Scale: constant(0.5)},
		},
		BiomeOrganic: {
			{Above: 0.9, Kind: KindWhisper, Scale: constant(2)},
			{Above: 0.6, Kind: KindBlob, Scale: linear(2, 6), Hue: depthHue(0.2)},
			{Above: 0, Kind: KindFlicker, Scale: linear(0, 8)},
		},
	}
}

// buildTables applies the configured overrides to the default tables and
// checks coverage. An override moves the first non-fallback band of the named
// kind.
func buildTables(overrides map[string]map[string]float64) (map[Biome][]Band, error) {
	tables := DefaultTables()
	for biomeName, kinds := range overrides {
		biome, err := ParseBiome(biomeName)
		if err != nil {
			return nil, err
		}
		table := tables[biome]
		for kindName, th := range kinds {
			kind, err := ParseKind(kindName)
			if err != nil {
				return nil, err
			}
			idx := slices.IndexFunc(table[:len(table)-1], func(b Band) bool { return b.Kind == kind })
			if idx < 0 {
				return nil, fmt.Errorf("biome %s has no %s band", biome, kind)
			}
			table[idx].Above = th
		}
		slices.SortStableFunc(table[:len(table)-1], func(a, b Band) int {
			switch {
			case a.Above > b.Above:
				return -1
			case a.Above < b.Above:
				return 1
			}
			return 0
		})
	}
	for _, biome := range biomeCycle {
		if err := checkTable(tables[biome]); err != nil {
			return nil, fmt.Errorf("%s: %w", biome, err)
		}
	}
	return tables, nil
}

func checkTable(table []Band) error {
	if len(table) == 0 || table[len(table)-1].Above != 0 {
		return ErrTableCoverage
	}
	for i := 1; i < len(table); i++ {
		if table[i].Above > table[i-1].Above {
			return fmt.Errorf("band %d threshold %.3f above band %d", i, table[i].Above, i-1)
		}
	}
	return nil
}

// pick returns the band selected by r.
func pick(table []Band, r float64) Band {
	for _, b := range table {
		if r > b.Above {
			return b
		}
	}
	return table[len(table)-1]
}

// normalizeHue folds any angle into [0,360).
func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
