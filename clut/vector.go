package clut

import (
	"fmt"
)

// Vector uses the same packed storage as Integer but does all per channel
// work on four float32 lanes at once (the fourth lane is unused): the base
// index and fraction computation and all seven blends of the eight corners.
type Vector struct {
	packed
}

func (m *Vector) Description() string {
	return fmt.Sprintf("Integer clut storage with SSE optimization (%s)", ActiveBackend)
}

func (m *Vector) Tag() string { return "sse" }

var one = SplatF32(1)

func (m *Vector) texel(pos int) F32x4 {
	return LoadU16x4(m.clut[4*pos:])
}

func (m *Vector) Convert(r, g, b float32) (float32, float32, float32) {
	level := m.level
	v_rgb := F32x4{r, g, b, 0}.Mul(SplatF32(m.step))
	base := v_rgb.Min(SplatF32(m.clamp_max)).Max(F32x4{}).Trunc()
	frac := v_rgb.Sub(base)
	red, green, blue := int(base[0]), int(base[1]), int(base[2])

	level_square := level * level
	color := red + green*level + blue*level_square

	v_r := frac.Broadcast(0)
	v_one_minus_r := one.Sub(v_r)
	v_tmp1 := m.texel(color).Lerp(m.texel(color+1), v_r, v_one_minus_r)
	v_tmp2 := m.texel(color+level).Lerp(m.texel(color+level+1), v_r, v_one_minus_r)

	v_g := frac.Broadcast(1)
	v_one_minus_g := one.Sub(v_g)
	v_out := v_tmp1.Lerp(v_tmp2, v_g, v_one_minus_g)

	color += level_square
	v_tmp1 = m.texel(color).Lerp(m.texel(color+1), v_r, v_one_minus_r)
	v_tmp2 = m.texel(color+level).Lerp(m.texel(color+level+1), v_r, v_one_minus_r)
	v_tmp1 = v_tmp1.Lerp(v_tmp2, v_g, v_one_minus_g)

	v_b := frac.Broadcast(2)
	v_out = v_out.Lerp(v_tmp1, v_b, one.Sub(v_b))
	return v_out[0], v_out[1], v_out[2]
}
