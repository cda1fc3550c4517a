package clutbench

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

var raster_cmp = cmp.AllowUnexported(Raster{})

// gradient creates a raster where every sample is distinct.
func gradient(width, height int) *Raster {
	ans := NewRaster(width, height)
	for y := range height {
		for x := range width {
			i := float32(y*width + x)
			ans.SetRGB(x, y, i*100, i*200+1, MaxValue-i*300)
		}
	}
	return ans
}

func TestRasterAccess(t *testing.T) {
	r := NewRaster(3, 2)
	assert.Equal(t, 3, r.Width())
	assert.Equal(t, 2, r.Height())
	for y := range 2 {
		for x := range 3 {
			red, green, blue := r.RGB(x, y)
			assert.Zero(t, red+green+blue)
		}
	}
	r.SetR(1, 1, 10)
	r.SetG(1, 1, 20)
	r.SetB(1, 1, 30)
	assert.Equal(t, float32(10), r.R(1, 1))
	assert.Equal(t, float32(20), r.G(1, 1))
	assert.Equal(t, float32(30), r.B(1, 1))

	// clamping
	r.SetRGB(0, 0, -5, 70000, 65535)
	red, green, blue := r.RGB(0, 0)
	assert.Equal(t, []float32{0, MaxValue, MaxValue}, []float32{red, green, blue})

	nan := float32(math.NaN())
	r.SetRGB(2, 0, nan, 1, nan)
	red, green, blue = r.RGB(2, 0)
	assert.Equal(t, []float32{MaxValue, 1, MaxValue}, []float32{red, green, blue})
	r.SetG(2, 0, nan)
	assert.Equal(t, float32(MaxValue), r.G(2, 0))

	// out of bounds
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {100, 100}} {
		r.SetRGB(p[0], p[1], 1, 1, 1)
		assert.Zero(t, r.R(p[0], p[1]))
		assert.Zero(t, r.G(p[0], p[1]))
		assert.Zero(t, r.B(p[0], p[1]))
	}
	assert.Equal(t, "Raster{3x2}", r.String())
}

func TestRasterResize(t *testing.T) {
	r := gradient(4, 4)
	r.Resize(2, 5)
	assert.Equal(t, image.Rect(0, 0, 2, 5), r.Bounds())
	assert.Zero(t, r.G(1, 4))
	r.Resize(-3, 7)
	assert.Equal(t, 0, r.Width())
	assert.Equal(t, 7, r.Height())
	assert.Zero(t, r.R(0, 0))
}

func TestRasterCopies(t *testing.T) {
	r := gradient(3, 3)
	c := r.Clone()
	require.Empty(t, cmp.Diff(r, c, raster_cmp))
	c.SetRGB(1, 1, 0, 0, 0)
	assert.NotEqual(t, r.R(1, 1), c.R(1, 1))

	var d Raster
	d.CopyFrom(r)
	require.Empty(t, cmp.Diff(r, &d, raster_cmp))
	r.SetRGB(2, 2, 7, 7, 7)
	assert.NotEqual(t, r.B(2, 2), d.B(2, 2))

	before := r.Clone()
	r.CopyFrom(r)
	assert.Empty(t, cmp.Diff(before, r, raster_cmp))
}

func TestRasterAsImage(t *testing.T) {
	r := NewRaster(2, 1)
	r.SetRGB(1, 0, 1.9, 300.5, 65535)
	assert.Equal(t, color.NRGBA64Model, r.ColorModel())
	assert.Equal(t, color.NRGBA64{R: 1, G: 300, B: 65535, A: 0xffff}, r.At(1, 0))
	n := r.NRGBA64()
	assert.Equal(t, r.NRGBA64At(1, 0), n.NRGBA64At(1, 0))
	assert.Equal(t, r.NRGBA64At(0, 0), n.NRGBA64At(0, 0))
	assert.Equal(t, color.NRGBA{R: 0, G: 1, B: 255, A: 255}, r.NRGBA().NRGBAAt(1, 0))
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA64(image.Rect(5, 5, 8, 7))
	src.SetNRGBA64(5, 5, color.NRGBA64{R: 1000, G: 2000, B: 3000, A: 0xffff})
	src.SetNRGBA64(6, 5, color.NRGBA64{R: 0x8000, G: 0x4000, B: 0xffff, A: 0x8000})
	src.SetNRGBA64(7, 6, color.NRGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0})
	r := FromImage(src)
	require.Equal(t, image.Rect(0, 0, 3, 2), r.Bounds())
	red, green, blue := r.RGB(0, 0)
	assert.Equal(t, []float32{1000, 2000, 3000}, []float32{red, green, blue})
	red, green, blue = r.RGB(1, 0)
	assert.InDelta(t, 0x8000, red, 2)
	assert.InDelta(t, 0x4000, green, 2)
	assert.InDelta(t, 0xffff, blue, 2)
	red, green, blue = r.RGB(2, 1)
	assert.Zero(t, red+green+blue)

	g := gradient(4, 2)
	assert.Empty(t, cmp.Diff(g, FromImage(g), raster_cmp))
	assert.NotSame(t, g, FromImage(g))
}

func TestVersion(t *testing.T) {
	v := BenchVersion{1, 2, 3}
	assert.Equal(t, "1.2.3", v.String())
	assert.True(t, v.After(BenchVersion{1, 2, 2}))
	assert.True(t, v.After(BenchVersion{0, 9, 9}))
	assert.True(t, v.Before(BenchVersion{1, 3, 0}))
	assert.False(t, v.Before(v))
	assert.True(t, v.Equal(BenchVersion{1, 2, 3}))
}
