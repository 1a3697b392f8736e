package world

import (
	"fmt"
	"math"
)

// Biome is the decorative theme assigned to a band of depth values.
type Biome uint8

const (
	BiomeVoid Biome = iota
	BiomeStarField
	BiomeNebula
	BiomeDataStream
	BiomeOrganic
)

// biomeCycle is the order in which bands repeat along the depth axis.
var biomeCycle = [...]Biome{BiomeVoid, BiomeStarField, BiomeNebula, BiomeDataStream, BiomeOrganic}

var biomeNames = [...]string{
	BiomeVoid:       "VOID",
	BiomeStarField:  "STAR_FIELD",
	BiomeNebula:     "NEBULA",
	BiomeDataStream: "DATA_STREAM",
	BiomeOrganic:    "ORGANIC",
}

// Biomes returns every biome in cycle order.
func Biomes() []Biome {
	out := make([]Biome, len(biomeCycle))
	copy(out, biomeCycle[:])
	return out
}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return fmt.Sprintf("Biome(%d)", uint8(b))
}

// ParseBiome resolves the upper-case biome name used in configuration files.
func ParseBiome(name string) (Biome, error) {
	for i, n := range biomeNames {
		if n == name {
			return Biome(i), nil
		}
	}
	return 0, fmt.Errorf("unknown biome %q", name)
}

// BiomeAt maps depth to its biome. Bands are bandWidth units long and the
// sequence mirrors around depth zero. A non-positive bandWidth uses the default.
func BiomeAt(depth, bandWidth float64) Biome {
	if bandWidth <= 0 {
		bandWidth = DefaultBandWidth
	}
	band := math.Floor(math.Abs(depth) / bandWidth)
	idx := int(math.Mod(band, float64(len(biomeCycle))))
	return biomeCycle[idx]
}

// BandStart returns the lowest absolute depth of the band containing depth.
func BandStart(depth, bandWidth float64) float64 {
	if bandWidth <= 0 {
		bandWidth = DefaultBandWidth
	}
	return math.Floor(math.Abs(depth)/bandWidth) * bandWidth
}
