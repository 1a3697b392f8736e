package world

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"dreamvoid/pkg/core"
)

// laneAnchors are the lateral cluster points major entities snap to, indexed
// by lane: centre, upper-left, lower-right.
var laneAnchors = [3]Lateral{{X: 50, Y: 50}, {X: 30, Y: 30}, {X: 70, Y: 70}}

const (
	laneJitter   = 10.0
	portalScale  = 5.0
	minScale     = 0.05
	speedRef     = 100.0
	idFragLength = 5
)

// Generator deterministically synthesises entities along the depth axis.
type Generator struct {
	cfg    Config
	tables map[Biome][]Band
}

// NewGenerator validates cfg and builds the rarity tables.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tables, err := buildTables(cfg.Rarity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Generator{cfg: cfg.Clone(), tables: tables}, nil
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() Config { return g.cfg.Clone() }

// BiomeAt maps depth to its biome using the configured band width.
func (g *Generator) BiomeAt(depth float64) Biome {
	return BiomeAt(depth, g.cfg.BandWidth)
}

// Table returns a copy of the rarity table for biome.
func (g *Generator) Table(b Biome) []Band {
	t := g.tables[b]
	out := make([]Band, len(t))
	copy(out, t)
	return out
}

// Lane returns the cluster lane index (0..2) active at depth.
func (g *Generator) Lane(depth float64) int {
	n := int(math.Mod(math.Floor(depth/g.cfg.LanePeriod), 3))
	if n < 0 {
		n += 3
	}
	return n
}

// LaneAnchor returns the lateral anchor of the lane active at depth.
func (g *Generator) LaneAnchor(depth float64) Lateral {
	return laneAnchors[g.Lane(depth)]
}

// Generate returns the entity anchored at depth. The result depends only on
// depth, the configuration and pool; velocity only tunes flicker streaks.
func (g *Generator) Generate(depth, velocity float64, pool []string) Entity {
	biome := g.BiomeAt(depth)
	r := core.SampleAt(depth, core.SaltKind)
	band := pick(g.tables[biome], r)

	scale := minScale
	if band.Scale != nil {
		scale = band.Scale(r, depth)
	}
	hue := 0.0
	if band.Hue != nil {
		hue = normalizeHue(band.Hue(r, depth))
	}

	pos := Lateral{
		X: (core.SampleAt(depth, core.SaltLateralX)-0.5)*g.cfg.Spread + 50,
		Y: (core.SampleAt(depth, core.SaltLateralY)-0.5)*g.cfg.Spread + 50,
	}
	if r > g.cfg.ClusterRarity || band.Kind.Major() {
		anchor := g.LaneAnchor(depth)
		pos = Lateral{
			X: anchor.X + (core.SampleAt(depth, core.SaltJitterX)-0.5)*laneJitter,
			Y: anchor.Y + (core.SampleAt(depth, core.SaltJitterY)-0.5)*laneJitter,
		}
		if band.Kind == KindPortal {
			scale = portalScale
		} else {
			scale *= 2
		}
	}
	if scale < minScale {
		scale = minScale
	}

	var body Body
	switch band.Kind {
	case KindWhisper:
		text := band.Text
		if text == "" {
			text = pickPhrase(pool, r)
		}
		body = Whisper{Text: text}
	case KindGalaxy:
		body = Galaxy{Hue: hue}
	case KindPortal:
		body = Portal{}
	case KindBlob:
		body = Blob{Hue: hue}
	case KindWidgetInput:
		body = WidgetInput{}
	default:
		body = Flicker{Streak: math.Min(1, math.Abs(velocity)/speedRef)}
	}

	return Entity{
		ID:      entityID(depth, r),
		Depth:   depth,
		Lateral: pos,
		Scale:   scale,
		Body:    body,
	}
}

func pickPhrase(pool []string, r float64) string {
	if len(pool) == 0 {
		pool = DefaultPhrases
	}
	return pool[int(math.Floor(r*100))%len(pool)]
}

// entityID combines the integer depth with a base-36 fragment of r.
func entityID(depth, r float64) string {
	frag := strconv.FormatUint(uint64(r*math.Pow(36, idFragLength)), 36)
	if len(frag) < idFragLength {
		frag = strings.Repeat("0", idFragLength-len(frag)) + frag
	}
	return "z-" + strconv.FormatFloat(math.Floor(depth), 'f', 0, 64) + "-" + frag
}
