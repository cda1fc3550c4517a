package clutbench

import (
	"fmt"
	"image"
	"image/color"
)

var _ = fmt.Print

// MaxValue is the top of the sample range every Raster is normalised to.
const MaxValue = 65535

// Raster is an RGB image made of three independently stored float32 planes,
// each holding Width()*Height() samples in the range [0, MaxValue].
//
// Reads outside the raster return zero and writes outside it are ignored.
// Copies made with Clone or CopyFrom never share storage.
type Raster struct {
	width, height int
	r, g, b       []float32
}

func NewRaster(width, height int) *Raster {
	ans := &Raster{}
	ans.Resize(width, height)
	return ans
}

// Resize discards the current contents and reallocates all three planes,
// zero filled.
func (p *Raster) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	sz := width * height
	p.width, p.height = width, height
	p.r = make([]float32, sz)
	p.g = make([]float32, sz)
	p.b = make([]float32, sz)
}

func (p *Raster) Width() int  { return p.width }
func (p *Raster) Height() int { return p.height }

func (p *Raster) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return 0, false
	}
	return y*p.width + x, true
}

func get(plane []float32, i int, ok bool) float32 {
	if ok {
		return plane[i]
	}
	return 0
}

// clamp maps NaN to MaxValue, like a std::min/std::max pair would.
func clamp(v float32) float32 {
	if v != v {
		return MaxValue
	}
	return max(0, min(MaxValue, v))
}

func (p *Raster) R(x, y int) float32 {
	i, ok := p.offset(x, y)
	return get(p.r, i, ok)
}

func (p *Raster) G(x, y int) float32 {
	i, ok := p.offset(x, y)
	return get(p.g, i, ok)
}

func (p *Raster) B(x, y int) float32 {
	i, ok := p.offset(x, y)
	return get(p.b, i, ok)
}

func (p *Raster) SetR(x, y int, v float32) {
	if i, ok := p.offset(x, y); ok {
		p.r[i] = clamp(v)
	}
}

func (p *Raster) SetG(x, y int, v float32) {
	if i, ok := p.offset(x, y); ok {
		p.g[i] = clamp(v)
	}
}

func (p *Raster) SetB(x, y int, v float32) {
	if i, ok := p.offset(x, y); ok {
		p.b[i] = clamp(v)
	}
}

func (p *Raster) RGB(x, y int) (r, g, b float32) {
	if i, ok := p.offset(x, y); ok {
		return p.r[i], p.g[i], p.b[i]
	}
	return
}

func (p *Raster) SetRGB(x, y int, r, g, b float32) {
	if i, ok := p.offset(x, y); ok {
		p.r[i], p.g[i], p.b[i] = clamp(r), clamp(g), clamp(b)
	}
}

// Clone returns a deep copy of p.
func (p *Raster) Clone() *Raster {
	ans := &Raster{}
	ans.CopyFrom(p)
	return ans
}

// CopyFrom replaces the contents of p with a deep copy of src.
func (p *Raster) CopyFrom(src *Raster) {
	if p == src {
		return
	}
	p.width, p.height = src.width, src.height
	p.r = append(make([]float32, 0, len(src.r)), src.r...)
	p.g = append(make([]float32, 0, len(src.g)), src.g...)
	p.b = append(make([]float32, 0, len(src.b)), src.b...)
}

func (p *Raster) String() string {
	return fmt.Sprintf("Raster{%dx%d}", p.width, p.height)
}

// image.Image implementation, so a Raster can be handed to standard encoders.

func (p *Raster) ColorModel() color.Model { return color.NRGBA64Model }

func (p *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, p.width, p.height) }

func (p *Raster) At(x, y int) color.Color {
	return p.NRGBA64At(x, y)
}

func (p *Raster) NRGBA64At(x, y int) color.NRGBA64 {
	r, g, b := p.RGB(x, y)
	return color.NRGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}
}

// FromImage converts any image into a Raster, un-premultiplying colours that
// are not fully opaque. The result always has its origin at (0, 0).
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	ans := NewRaster(b.Dx(), b.Dy())
	if src, ok := img.(*Raster); ok {
		ans.CopyFrom(src)
		return ans
	}
	for y := range b.Dy() {
		for x := range b.Dx() {
			r, g, bl, a := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
			switch a {
			case 0xffff:
			case 0:
				r, g, bl = 0, 0, 0
			default:
				r = (r * 0xffff) / a
				g = (g * 0xffff) / a
				bl = (bl * 0xffff) / a
			}
			i := y*ans.width + x
			ans.r[i], ans.g[i], ans.b[i] = float32(r), float32(g), float32(bl)
		}
	}
	return ans
}

// NRGBA64 returns a copy of p as a standard 16 bit image.
func (p *Raster) NRGBA64() *image.NRGBA64 {
	ans := image.NewNRGBA64(p.Bounds())
	for y := range p.height {
		row := ans.Pix[y*ans.Stride:]
		for x := range p.width {
			r, g, b := p.RGB(x, y)
			s := row[8*x : 8*x+8 : 8*x+8]
			s[0], s[1] = uint8(uint16(r)>>8), uint8(uint16(r))
			s[2], s[3] = uint8(uint16(g)>>8), uint8(uint16(g))
			s[4], s[5] = uint8(uint16(b)>>8), uint8(uint16(b))
			s[6], s[7] = 0xff, 0xff
		}
	}
	return ans
}

// NRGBA returns a copy of p reduced to 8 bits per sample by dropping the low
// byte.
func (p *Raster) NRGBA() *image.NRGBA {
	ans := image.NewNRGBA(p.Bounds())
	for y := range p.height {
		row := ans.Pix[y*ans.Stride:]
		for x := range p.width {
			r, g, b := p.RGB(x, y)
			s := row[4*x : 4*x+4 : 4*x+4]
			s[0], s[1], s[2], s[3] = uint8(uint16(r)>>8), uint8(uint16(g)>>8), uint8(uint16(b)>>8), 0xff
		}
	}
	return ans
}
