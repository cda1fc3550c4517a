package clut

import (
	"github.com/kovidgoyal/clutbench"
)

// Optimized works directly on the [0, 65535] input scale with precomputed
// constants and resolves image coordinates once per pair of corners. Storage
// is the same as Original.
type Optimized struct {
	clut      clutbench.Raster
	level     int     // lattice points per axis
	step      float32 // (level-1)/65535
	clamp_max float32 // level-2
}

func (m *Optimized) Description() string { return "Optimized and cleaned up code" }
func (m *Optimized) Tag() string         { return "optimized" }

func (m *Optimized) Bind(clut *clutbench.Raster, level int) {
	m.clut.CopyFrom(clut)
	m.level = level * level
	m.step = float32(m.level-1) / clutbench.MaxValue
	m.clamp_max = float32(m.level - 2)
}

// pair returns the image coordinates of pos and pos+1.
func pair(pos, width int) (x, y [2]int) {
	x[0], y[0] = pos%width, pos/width
	x[1], y[1] = (pos+1)%width, (pos+1)/width
	return
}

func (m *Optimized) blend_pair(pos int, t float32) (ans [3]float32) {
	x, y := pair(pos, m.clut.Width())
	ans[0] = m.clut.R(x[0], y[0])*(1-t) + m.clut.R(x[1], y[1])*t
	ans[1] = m.clut.G(x[0], y[0])*(1-t) + m.clut.G(x[1], y[1])*t
	ans[2] = m.clut.B(x[0], y[0])*(1-t) + m.clut.B(x[1], y[1])*t
	return
}

func (m *Optimized) Convert(r, g, b float32) (float32, float32, float32) {
	level := m.level
	r, g, b = r*m.step, g*m.step, b*m.step

	red := uint(max(0, min(m.clamp_max, r)))
	green := uint(max(0, min(m.clamp_max, g)))
	blue := uint(max(0, min(m.clamp_max, b)))

	fr, fg, fb := r-float32(red), g-float32(green), b-float32(blue)

	level_square := level * level
	color := int(red) + int(green)*level + int(blue)*level_square

	tmp1 := m.blend_pair(color, fr)
	tmp2 := m.blend_pair(color+level, fr)
	var out [3]float32
	for i := range out {
		out[i] = tmp1[i]*(1-fg) + tmp2[i]*fg
	}

	tmp1 = m.blend_pair(color+level_square, fr)
	tmp2 = m.blend_pair(color+level+level_square, fr)
	for i := range out {
		tmp1[i] = tmp1[i]*(1-fg) + tmp2[i]*fg
		out[i] = out[i]*(1-fb) + tmp1[i]*fb
	}
	return out[0], out[1], out[2]
}
