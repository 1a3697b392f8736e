package ui

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamvoid/internal/core"
)

type knobs struct {
	speed  float64
	period int
	reject bool
}

func (k *knobs) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Knobs",
		Params: []core.Parameter{
			core.FloatParam("speed", "Speed", k.speed),
			core.IntParam("period", "Period", k.period),
		},
	}}}
}

func (k *knobs) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "speed", Label: "Speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true, Max: 2, HasMax: true},
		{Key: "period", Label: "Period", Type: core.ParamTypeInt, Step: 10, Min: 10, HasMin: true},
		{Key: "missing", Label: "Missing", Type: core.ParamTypeFloat, Step: 1},
	}
}

func (k *knobs) SetFloatParameter(key string, value float64) bool {
	if k.reject || key != "speed" {
		return false
	}
	k.speed = value
	return true
}

func (k *knobs) SetIntParameter(key string, value int) bool {
	if k.reject || key != "period" {
		return false
	}
	k.period = value
	return true
}

func TestPanelRefresh(t *testing.T) {
	src := &knobs{speed: 1, period: 20}
	p := NewPanel(src, "", 260)
	p.Refresh()

	assert.Equal(t, "Controls", p.Title())
	controls := p.Controls()
	require.Len(t, controls, 3)
	assert.Equal(t, "1.0", controls[0].Value)
	assert.Equal(t, "20", controls[1].Value)
	assert.False(t, controls[2].HasValue)
	assert.Equal(t, "--", controls[2].Value)

	_, ok := p.Snapshot().Lookup("period")
	assert.True(t, ok)
}

func TestPanelAdjustClamps(t *testing.T) {
	src := &knobs{speed: 1.5, period: 20}
	p := NewPanel(src, "Knobs", 260)
	p.Refresh()

	require.True(t, p.CanAdjust(0, 1))
	require.True(t, p.Adjust(0, 1))
	assert.Equal(t, 2.0, src.speed)
	assert.False(t, p.CanAdjust(0, 1), "speed is at its max")
	assert.False(t, p.Adjust(0, 1))

	require.True(t, p.Adjust(1, -1))
	assert.Equal(t, 10, src.period)
	assert.False(t, p.CanAdjust(1, -1), "period is at its min")
	assert.Equal(t, strconv.Itoa(10), p.Controls()[1].Value)

	assert.False(t, p.CanAdjust(2, 1), "missing value cannot move")
	assert.False(t, p.Adjust(7, 1))
}

func TestPanelRejectedSetterKeepsValue(t *testing.T) {
	src := &knobs{speed: 1, period: 20, reject: true}
	p := NewPanel(src, "Knobs", 260)
	p.Refresh()

	assert.False(t, p.Adjust(0, -1))
	assert.Equal(t, "1.0", p.Controls()[0].Value)
}

func TestPanelClickHitsButtons(t *testing.T) {
	src := &knobs{speed: 1, period: 20}
	p := NewPanel(src, "Knobs", 260)
	p.Refresh()

	minus := p.Controls()[0].MinusRect
	plus := p.Controls()[1].PlusRect
	require.True(t, minus.Max.X <= plus.Min.X)
	assert.LessOrEqual(t, plus.Max.X, p.Width()-panelPadding)

	require.True(t, p.Click(minus.Min.X+1, minus.Min.Y+1))
	assert.Equal(t, 0.5, src.speed)
	require.True(t, p.Click(plus.Min.X+1, plus.Min.Y+1))
	assert.Equal(t, 30, src.period)
	assert.False(t, p.Click(0, 0))
}

func TestPanelWithoutControls(t *testing.T) {
	p := NewPanel(nil, "Empty", 100)
	p.Refresh()
	assert.Empty(t, p.Controls())
	assert.Empty(t, p.Snapshot().Groups)
	assert.False(t, p.Click(10, 10))
}

func TestFormatFloatPrecision(t *testing.T) {
	cases := []struct {
		step float64
		want string
	}{
		{0.0005, "1.2346"},
		{0.005, "1.235"},
		{0.05, "1.23"},
		{0.5, "1.2"},
		{250, "1"},
	}
	for _, tc := range cases {
		got := formatFloat(core.ParameterControl{Step: tc.step}, 1.23456)
		assert.Equal(t, tc.want, got, "step %v", tc.step)
	}
}
