package clut

// F32x4 is four float32 lanes operated on together. It is a fixed size array
// so the compiler can keep it in a vector register and lower the element
// wise loops below to packed instructions.
type F32x4 [4]float32

// SplatF32 creates F32x4 with all lanes set to v.
func SplatF32(v float32) F32x4 {
	return F32x4{v, v, v, v}
}

// LoadU16x4 converts four unsigned 16 bit integers to float lanes.
func LoadU16x4(s []uint16) F32x4 {
	s = s[:4:4]
	return F32x4{float32(s[0]), float32(s[1]), float32(s[2]), float32(s[3])}
}

func (v F32x4) Add(o F32x4) (ans F32x4) {
	for i := range v {
		ans[i] = v[i] + o[i]
	}
	return
}

func (v F32x4) Sub(o F32x4) (ans F32x4) {
	for i := range v {
		ans[i] = v[i] - o[i]
	}
	return
}

func (v F32x4) Mul(o F32x4) (ans F32x4) {
	for i := range v {
		ans[i] = v[i] * o[i]
	}
	return
}

// Min returns the lane wise minimum.
func (v F32x4) Min(o F32x4) (ans F32x4) {
	for i := range v {
		ans[i] = min(v[i], o[i])
	}
	return
}

// Max returns the lane wise maximum.
func (v F32x4) Max(o F32x4) (ans F32x4) {
	for i := range v {
		ans[i] = max(v[i], o[i])
	}
	return
}

// Trunc rounds every lane towards zero.
func (v F32x4) Trunc() (ans F32x4) {
	for i := range v {
		ans[i] = float32(int32(v[i]))
	}
	return
}

// Broadcast copies lane i into all lanes.
func (v F32x4) Broadcast(i int) F32x4 {
	return SplatF32(v[i])
}

// Lerp blends v towards o by t, lane wise: v*(1-t) + o*t. one_minus_t is
// passed in so callers can reuse it across several blends.
func (v F32x4) Lerp(o, t, one_minus_t F32x4) F32x4 {
	return v.Mul(one_minus_t).Add(o.Mul(t))
}
