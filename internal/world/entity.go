package world

import (
	"fmt"
	"math"
)

// Kind enumerates the closed set of entity variants.
type Kind uint8

const (
	KindWhisper Kind = iota
	KindGalaxy
	KindFlicker
	KindPortal
	KindBlob
	KindWidgetInput
)

var kindNames = [...]string{
	KindWhisper:     "WHISPER",
	KindGalaxy:      "GALAXY",
	KindFlicker:     "FLICKER",
	KindPortal:      "PORTAL",
	KindBlob:        "BLOB",
	KindWidgetInput: "WIDGET_INPUT",
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindWhisper, KindGalaxy, KindFlicker, KindPortal, KindBlob, KindWidgetInput}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind resolves the upper-case kind name used in configuration files.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", name)
}

// Major reports whether the kind is snapped to the active lane.
func (k Kind) Major() bool { return k == KindPortal || k == KindGalaxy }

// Body carries the variant-specific fields of an entity. The set of
// implementations is closed to this package.
type Body interface {
	Kind() Kind
	sealed()
}

// Whisper is floating text.
type Whisper struct{ Text string }

// Galaxy is a large glow.
type Galaxy struct{ Hue float64 }

// Flicker is a small point light. Streak in [0,1] grows with camera speed.
type Flicker struct{ Streak float64 }

// Portal is a large traversable ring.
type Portal struct{}

// Blob is an organic shape.
type Blob struct{ Hue float64 }

// WidgetInput is an interactive anchor for the host's input widget.
type WidgetInput struct{}

func (Whisper) Kind() Kind     { return KindWhisper }
func (Galaxy) Kind() Kind      { return KindGalaxy }
func (Flicker) Kind() Kind     { return KindFlicker }
func (Portal) Kind() Kind      { return KindPortal }
func (Blob) Kind() Kind        { return KindBlob }
func (WidgetInput) Kind() Kind { return KindWidgetInput }

func (Whisper) sealed()     {}
func (Galaxy) sealed()      {}
func (Flicker) sealed()     {}
func (Portal) sealed()      {}
func (Blob) sealed()        {}
func (WidgetInput) sealed() {}

// Lateral is the two-axis placement orthogonal to depth, in percent of the
// viewport. Values outside 0..100 are intentional and feed parallax.
type Lateral struct {
	X, Y float64
}

// Entity is an immutable decorative world object anchored at Depth.
type Entity struct {
	ID      string
	Depth   float64
	Lateral Lateral
	Scale   float64
	Body    Body
}

// Kind returns the variant of the entity body. It panics if Body is nil.
func (e Entity) Kind() Kind {
	return e.Body.Kind()
}

// Text returns the payload of text-bearing entities.
func (e Entity) Text() (string, bool) {
	if w, ok := e.Body.(Whisper); ok {
		return w.Text, true
	}
	return "", false
}

// Hue returns the colour angle of tinted entities.
func (e Entity) Hue() (float64, bool) {
	switch b := e.Body.(type) {
	case Galaxy:
		return b.Hue, true
	case Blob:
		return b.Hue, true
	}
	return 0, false
}

// ValidDepth reports whether depth can be handed to the generator. Hosts call
// it on camera samples before they reach a Window.
func ValidDepth(depth float64) bool {
	return !math.IsNaN(depth) && !math.IsInf(depth, 0) && math.Abs(depth) <= MaxDepth
}

// MaxDepth bounds the camera samples accepted by ValidDepth.
const MaxDepth = 1e12
