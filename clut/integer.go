package clut

import (
	"github.com/kovidgoyal/clutbench"
)

// Integer stores the CLUT as 16 bit integers, four per texel (R, G, B and an
// unused slot), 8 bytes per texel instead of 12. Texels are addressed by
// linear index directly since the storage is row major, so no image
// coordinates are needed. Blending is still done in float32.
type Integer struct {
	packed
}

func (m *Integer) Description() string {
	return "4 * 16b integer clut storage (8B per pixel instead of 12B)"
}

func (m *Integer) Tag() string { return "integer" }

func (m *Integer) Convert(r, g, b float32) (float32, float32, float32) {
	level := m.level
	red, green, blue, fr, fg, fb := m.split(r, g, b)

	level_square := level * level
	color := red + green*level + blue*level_square

	var tmp1, tmp2, out [3]float32
	m.blend_pair(color, fr, &tmp1)
	m.blend_pair(color+level, fr, &tmp2)
	for i := range out {
		out[i] = tmp1[i]*(1-fg) + tmp2[i]*fg
	}

	m.blend_pair(color+level_square, fr, &tmp1)
	m.blend_pair(color+level+level_square, fr, &tmp2)
	for i := range out {
		tmp1[i] = tmp1[i]*(1-fg) + tmp2[i]*fg
		out[i] = out[i]*(1-fb) + tmp1[i]*fb
	}
	return out[0], out[1], out[2]
}

func (m *Integer) blend_pair(pos int, t float32, ans *[3]float32) {
	a := m.clut[4*pos : 4*pos+8 : 4*pos+8]
	ans[0] = float32(a[0])*(1-t) + float32(a[4])*t
	ans[1] = float32(a[1])*(1-t) + float32(a[5])*t
	ans[2] = float32(a[2])*(1-t) + float32(a[6])*t
}

// packed is the CLUT storage shared by the integer based implementations.
type packed struct {
	clut      []uint16
	level     int
	step      float32
	clamp_max float32
}

func (p *packed) Bind(clut *clutbench.Raster, level int) {
	w, h := clut.Width(), clut.Height()
	p.clut = nil
	data := make([]uint16, 4*w*h)
	i := 0
	for y := range h {
		for x := range w {
			r, g, b := clut.RGB(x, y)
			data[i], data[i+1], data[i+2] = uint16(r), uint16(g), uint16(b)
			i += 4
		}
	}
	p.clut = data
	p.level = level * level
	p.step = float32(p.level-1) / clutbench.MaxValue
	p.clamp_max = float32(p.level - 2)
}

// split scales the input onto the lattice returning the base indices and
// the fractional offsets from them.
func (p *packed) split(r, g, b float32) (red, green, blue int, fr, fg, fb float32) {
	r, g, b = r*p.step, g*p.step, b*p.step
	red = int(max(0, min(p.clamp_max, r)))
	green = int(max(0, min(p.clamp_max, g)))
	blue = int(max(0, min(p.clamp_max, b)))
	return red, green, blue, r - float32(red), g - float32(green), b - float32(blue)
}
