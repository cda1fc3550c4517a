// Package bench runs CLUT interpolation methods over an image, timing them
// and comparing their results with each other.
package bench

import (
	"fmt"
	"time"

	"github.com/kovidgoyal/clutbench"
	"github.com/kovidgoyal/clutbench/clut"
	"github.com/kovidgoyal/go-parallel"
)

var _ = fmt.Print

// TestBench holds an input image and a CLUT and applies the CLUT to every
// pixel of the input with a given Method.
type TestBench struct {
	input, clut *clutbench.Raster
	level       int
	output      *clutbench.Raster
	threads     int
}

// Option sets an optional parameter for New.
type Option func(*TestBench)

// WithThreads sets how many goroutines convert the pixels of each cycle. 1,
// the default, converts them on the calling goroutine. Zero or less uses one
// goroutine per CPU.
func WithThreads(n int) Option {
	return func(tb *TestBench) {
		tb.threads = n
	}
}

// New validates the shape of clut and allocates an output raster the size of
// input. The rasters are not copied and must not be modified while the bench
// is in use.
func New(input, clut_image *clutbench.Raster, opts ...Option) (*TestBench, error) {
	level, err := clut.Level(clut_image.Width(), clut_image.Height())
	if err != nil {
		return nil, err
	}
	ans := &TestBench{
		input: input, clut: clut_image, level: level, threads: 1,
		output: clutbench.NewRaster(input.Width(), input.Height()),
	}
	for _, o := range opts {
		o(ans)
	}
	return ans, nil
}

func (tb *TestBench) Level() int { return tb.level }

// Output is the raster written by the last Run. It is reused by every Run.
func (tb *TestBench) Output() *clutbench.Raster { return tb.output }

func (tb *TestBench) convert_rows(m clut.Method) func(start, limit int) {
	width := tb.input.Width()
	return func(start, limit int) {
		for y := start; y < limit; y++ {
			for x := range width {
				r, g, b := m.Convert(tb.input.RGB(x, y))
				tb.output.SetRGB(x, y, r, g, b)
			}
		}
	}
}

// Run binds the CLUT to m and then converts the whole input cycles times.
// The returned duration covers the conversion cycles only, not the binding.
func (tb *TestBench) Run(m clut.Method, cycles int) (elapsed time.Duration, err error) {
	m.Bind(tb.clut, tb.level)
	f := tb.convert_rows(m)
	height := tb.input.Height()
	start := time.Now()
	for range cycles {
		if tb.threads == 1 {
			f(0, height)
		} else if err = parallel.Run_in_parallel_over_range(max(0, tb.threads), f, 0, height); err != nil {
			return time.Since(start), fmt.Errorf("converting with %s failed: %w", m.Tag(), err)
		}
	}
	return time.Since(start), nil
}
