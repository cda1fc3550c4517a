// Package clut applies a 3D colour lookup table to RGB colours using
// trilinear interpolation. Several interchangeable implementations are
// provided that trade storage precision and code structure for speed while
// producing the same results.
//
// A CLUT of a given level is a cube with level² lattice points per axis,
// stored as a square image of side level³ (the Hald CLUT layout). The texel
// for lattice point (r, g, b) is at linear index r + g·L + b·L² where L is
// level², read in row major order from the square.
package clut

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/clutbench"
	"github.com/kovidgoyal/clutbench/types"
)

var _ = fmt.Print

// Method is one implementation of CLUT interpolation.
//
// Bind must be called before Convert. Bind replaces any previously bound
// CLUT and is not safe for concurrent use. Once Bind has returned, Convert
// only reads the bound data and may be called from many goroutines at once.
type Method interface {
	// Description is a human readable summary of the implementation.
	Description() string
	// Tag is a short identifier suitable for use in file names.
	Tag() string
	// Bind derives the internal representation of clut, whose shape must
	// already have been validated with Level.
	Bind(clut *clutbench.Raster, level int)
	// Convert maps one colour with channels in [0, 65535] through the CLUT.
	Convert(r, g, b float32) (float32, float32, float32)
}

// MaxLevel is the largest level Identity can build, its image has 15625²
// pixels.
const MaxLevel = 25

// Level returns the level of a CLUT image with the given dimensions. The
// image must be square with a side that is the cube of an integer >= 2.
// A 1x1 image is rejected even though 1 = 1³, since interpolating needs at
// least two lattice points per axis.
func Level(width, height int) (int, error) {
	if width == height && width > 0 {
		level := 1
		for level*level*level < width {
			level++
		}
		if level*level*level == width && level >= 2 {
			return level, nil
		}
	}
	return 0, types.NewError(types.ErrInvalidClutShape, "CLUT image has wrong dimensions: %dx%d", width, height)
}

// Methods returns new, unbound instances of all implementations. The first
// one is the reference all others are compared against.
func Methods() []Method {
	return []Method{&Original{}, &Optimized{}, &Integer{}, &Vector{}}
}

// Tags returns the tags of all implementations in the order of Methods.
func Tags() (ans []string) {
	for _, m := range Methods() {
		ans = append(ans, m.Tag())
	}
	return
}

// ByTag returns a new instance of the implementation with the given tag.
func ByTag(tag string) (Method, error) {
	for _, m := range Methods() {
		if m.Tag() == tag {
			return m, nil
		}
	}
	return nil, fmt.Errorf("unknown CLUT method: %q, available methods: %v", tag, Tags())
}

// Identity returns the Hald CLUT of the given level that maps every colour to
// itself. level must not exceed MaxLevel.
func Identity(level int) *clutbench.Raster {
	cube := level * level
	side := cube * level
	ans := clutbench.NewRaster(side, side)
	scale := float64(clutbench.MaxValue) / float64(max(1, cube-1))
	v := func(k int) float32 { return float32(math.Round(float64(k) * scale)) }
	for i := range side * side {
		ans.SetRGB(i%side, i/side, v(i%cube), v((i/cube)%cube), v(i/(cube*cube)))
	}
	return ans
}

func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}
