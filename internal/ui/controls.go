package ui

import (
	"image"
	"math"
	"strconv"

	"dreamvoid/internal/core"
)

// Layout of the control panel in panel-local pixels.
const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)

// ControlState is one adjustable row of the panel.
type ControlState struct {
	Control core.ParameterControl
	Value   string

	IntValue   int
	FloatValue float64
	HasValue   bool

	Top       int
	MinusRect image.Rectangle
	PlusRect  image.Rectangle
}

// Panel holds the parameter controls of whatever drives the view. It has no
// drawing code so that hosts other than ebiten can reuse it.
type Panel struct {
	source      core.ParameterSource
	title       string
	width       int
	snapshot    core.ParameterSnapshot
	controls    []ControlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

// NewPanel builds a panel over src. Controls and setters are discovered
// through the optional core interfaces.
func NewPanel(src core.ParameterSource, title string, width int) *Panel {
	if title == "" {
		title = "Controls"
	}
	p := &Panel{source: src, title: title, width: max(width, 0)}
	if provider, ok := src.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		p.controls = make([]ControlState, len(controls))
		for i, ctrl := range controls {
			p.controls[i] = ControlState{Control: ctrl, Value: "--"}
		}
		p.layout()
	}
	if setter, ok := src.(core.IntParameterSetter); ok {
		p.intSetter = setter
	}
	if setter, ok := src.(core.FloatParameterSetter); ok {
		p.floatSetter = setter
	}
	return p
}

// Title is the panel heading.
func (p *Panel) Title() string { return p.title }

// Width is the panel width in pixels.
func (p *Panel) Width() int { return p.width }

// Controls exposes the rows for drawing.
func (p *Panel) Controls() []ControlState { return p.controls }

// Snapshot is the parameter snapshot taken by the last Refresh.
func (p *Panel) Snapshot() core.ParameterSnapshot { return p.snapshot }

// Refresh re-reads the source's parameters.
func (p *Panel) Refresh() {
	if p.source == nil {
		p.snapshot = core.ParameterSnapshot{}
		return
	}
	p.snapshot = p.source.Parameters()
	for i := range p.controls {
		state := &p.controls[i]
		param, ok := p.snapshot.Lookup(state.Control.Key)
		state.HasValue = false
		state.Value = "--"
		if !ok {
			continue
		}
		switch state.Control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.IntValue = parsed
			state.FloatValue = float64(parsed)
			state.Value = strconv.Itoa(parsed)
			state.HasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.FloatValue = parsed
			state.Value = formatFloat(state.Control, parsed)
			state.HasValue = true
		}
	}
}

// Click applies a press at panel-local (x, y). It reports whether a control
// changed.
func (p *Panel) Click(x, y int) bool {
	for i := range p.controls {
		state := &p.controls[i]
		if !state.HasValue {
			continue
		}
		if pointInRect(x, y, state.MinusRect) {
			return p.Adjust(i, -1)
		}
		if pointInRect(x, y, state.PlusRect) {
			return p.Adjust(i, 1)
		}
	}
	return false
}

// Adjust moves control i one step in direction.
func (p *Panel) Adjust(i, direction int) bool {
	if i < 0 || i >= len(p.controls) || direction == 0 {
		return false
	}
	state := &p.controls[i]
	switch state.Control.Type {
	case core.ParamTypeInt:
		if p.intSetter == nil {
			return false
		}
		target := int(math.Round(state.Control.Clamp(float64(state.IntValue + direction*intStep(state.Control)))))
		if target == state.IntValue || !p.intSetter.SetIntParameter(state.Control.Key, target) {
			return false
		}
		state.IntValue = target
		state.FloatValue = float64(target)
		state.Value = strconv.Itoa(target)
		return true
	case core.ParamTypeFloat:
		if p.floatSetter == nil {
			return false
		}
		target := state.Control.Clamp(state.FloatValue + float64(direction)*floatStep(state.Control))
		if math.Abs(target-state.FloatValue) < 1e-9 || !p.floatSetter.SetFloatParameter(state.Control.Key, target) {
			return false
		}
		state.FloatValue = target
		state.Value = formatFloat(state.Control, target)
		return true
	}
	return false
}

// CanAdjust reports whether control i can move in direction.
func (p *Panel) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(p.controls) || direction == 0 || !p.controls[i].HasValue {
		return false
	}
	state := p.controls[i]
	var target float64
	switch state.Control.Type {
	case core.ParamTypeInt:
		if p.intSetter == nil {
			return false
		}
		target = float64(state.IntValue + direction*intStep(state.Control))
	case core.ParamTypeFloat:
		if p.floatSetter == nil {
			return false
		}
		target = state.FloatValue + float64(direction)*floatStep(state.Control)
	default:
		return false
	}
	if state.Control.HasMin && direction < 0 && target < state.Control.Min {
		return false
	}
	if state.Control.HasMax && direction > 0 && target > state.Control.Max {
		return false
	}
	return true
}

func (p *Panel) layout() {
	if p.width <= 0 {
		return
	}
	for i := range p.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(p.width-panelPadding-buttonSize, buttonY, p.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		p.controls[i].Top = top
		p.controls[i].MinusRect = minusRect
		p.controls[i].PlusRect = plusRect
	}
}

func intStep(ctrl core.ParameterControl) int {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		step = 1
	}
	return step
}

func floatStep(ctrl core.ParameterControl) float64 {
	if ctrl.Step <= 0 {
		return 0.05
	}
	return ctrl.Step
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := floatStep(ctrl)
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	case step >= 10:
		precision = 0
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
