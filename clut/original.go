package clut

import (
	"github.com/kovidgoyal/clutbench"
)

// Original is the straightforward reference implementation. Input colours are
// normalised to [0, 1] and every corner of the interpolation cube is looked
// up by converting its linear index back to image coordinates. The CLUT is
// kept as three float planes, 12 bytes per texel.
type Original struct {
	clut  clutbench.Raster
	level int
}

func (m *Original) Description() string {
	return "Original RawTherapee 4.2 (adapted implementation)"
}

func (m *Original) Tag() string { return "original" }

func (m *Original) Bind(clut *clutbench.Raster, level int) {
	m.clut.CopyFrom(clut)
	m.level = level
}

func pos2xy(pos, side int) (x, y int) {
	return pos % side, pos / side
}

func base_index(v, scale float32, limit int) int {
	return max(0, min(int(v*scale), limit))
}

// lerp_r blends the texels at i and i+1 along the red axis.
func (m *Original) lerp_r(i int, t float32) (r, g, b float32) {
	side := m.clut.Width()
	xi, yi := pos2xy(i, side)
	xj, yj := pos2xy(i+1, side)
	r = m.clut.R(xi, yi)*(1-t) + m.clut.R(xj, yj)*t
	g = m.clut.G(xi, yi)*(1-t) + m.clut.G(xj, yj)*t
	b = m.clut.B(xi, yi)*(1-t) + m.clut.B(xj, yj)*t
	return
}

func (m *Original) Convert(r, g, b float32) (float32, float32, float32) {
	r /= clutbench.MaxValue
	g /= clutbench.MaxValue
	b /= clutbench.MaxValue

	level := m.level * m.level
	scale := float32(level - 1)

	red := base_index(r, scale, level-2)
	green := base_index(g, scale, level-2)
	blue := base_index(b, scale, level-2)

	fr := r*scale - float32(red)
	fg := g*scale - float32(green)
	fb := b*scale - float32(blue)

	color := red + green*level + blue*level*level

	r0, g0, b0 := m.lerp_r(color, fr)
	r1, g1, b1 := m.lerp_r(color+level, fr)
	or, og, ob := lerp(r0, r1, fg), lerp(g0, g1, fg), lerp(b0, b1, fg)

	r0, g0, b0 = m.lerp_r(color+level*level, fr)
	r1, g1, b1 = m.lerp_r(color+level+level*level, fr)
	tr, tg, tb := lerp(r0, r1, fg), lerp(g0, g1, fg), lerp(b0, b1, fg)

	return lerp(or, tr, fb), lerp(og, tg, fb), lerp(ob, tb, fb)
}
