package bench

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kovidgoyal/clutbench"
	"github.com/kovidgoyal/clutbench/clut"
)

// Result is the outcome of running one method. The comparison fields are
// zero for the first, reference, method.
type Result struct {
	Method     clut.Method
	Elapsed    time.Duration
	Speedup    float64
	Faster     float64 // percent
	Difference clutbench.Difference
	MeanDeltaE float64
	MaxDeltaE  float64
	Output     string // path the output was saved to, if any
}

// Runner runs a sequence of methods over the same input and CLUT and
// reports how each one compares to the first.
type Runner struct {
	Input, CLUT *clutbench.Raster
	// Methods to run, the first is the reference. Defaults to clut.Methods().
	Methods []clut.Method
	Cycles  int
	// Outputs are saved as OutputPrefix_<tag>.<Ext>. Nothing is saved when
	// OutputPrefix is empty.
	OutputPrefix string
	Ext          string // defaults to ppm
	Save         func(r *clutbench.Raster, path string) error
	// Report receives the human readable report, it is discarded when nil.
	Report io.Writer
	// Perceptual adds the CIE76 colour difference to the comparison.
	Perceptual bool
	// Threads as for WithThreads.
	Threads int
	Logger  *slog.Logger
}

// FormatResult writes the report block for one result. is_reference selects
// the short form used for the first method.
func FormatResult(w io.Writer, r Result, is_reference, perceptual bool) {
	fmt.Fprintf(w, "Method:     %s\n", r.Method.Description())
	fmt.Fprintf(w, "Time:       %dms\n", r.Elapsed.Milliseconds())
	if is_reference {
		return
	}
	fmt.Fprintf(w, "Speedup:    %.6g (%.6g%% faster)\n", r.Speedup, r.Faster)
	fmt.Fprintf(w, "Difference: %s\n", r.Difference)
	if perceptual {
		fmt.Fprintf(w, "ΔE:         mean %.4f, max %.4f\n", r.MeanDeltaE, r.MaxDeltaE)
	}
}

// Run executes every method in order. It stops at the first error, returning
// the results collected so far.
func (self *Runner) Run() (ans []Result, err error) {
	log := self.Logger
	if log == nil {
		log = slog.Default()
	}
	methods := self.Methods
	if len(methods) == 0 {
		methods = clut.Methods()
	}
	ext := self.Ext
	if ext == "" {
		ext = "ppm"
	}
	save := self.Save
	if save == nil {
		save = func(r *clutbench.Raster, path string) error { return clutbench.Save(r, path) }
	}
	report := self.Report
	if report == nil {
		report = io.Discard
	}

	tb, err := New(self.Input, self.CLUT, WithThreads(self.Threads))
	if err != nil {
		return nil, err
	}
	log.Debug("Test bench ready", "width", self.Input.Width(), "height", self.Input.Height(),
		"clut_level", tb.Level(), "cycles", self.Cycles, "threads", self.Threads,
		"backend", clut.VectorBackend().String())

	var reference *clutbench.Raster
	var reference_ms int64
	for i, m := range methods {
		log.Debug("Running method", "tag", m.Tag())
		res := Result{Method: m}
		if res.Elapsed, err = tb.Run(m, self.Cycles); err != nil {
			return ans, err
		}
		ms := res.Elapsed.Milliseconds()
		if i == 0 {
			reference = tb.Output().Clone()
			reference_ms = ms
		} else {
			res.Speedup = float64(reference_ms) / float64(max(1, ms))
			res.Faster = 100*res.Speedup - 100
			res.Difference = clutbench.Compare(reference, tb.Output())
			if self.Perceptual {
				res.MeanDeltaE, res.MaxDeltaE = clutbench.PerceptualDifference(reference, tb.Output())
			}
		}
		if i > 0 {
			fmt.Fprintln(report)
		}
		FormatResult(report, res, i == 0, self.Perceptual)
		log.Info("Method finished", "tag", m.Tag(), "ms", ms, "speedup", res.Speedup,
			"difference", res.Difference.Absolute)

		if self.OutputPrefix != "" {
			path := self.OutputPrefix + "_" + m.Tag() + "." + ext
			if err = save(tb.Output(), path); err != nil {
				return ans, fmt.Errorf("failed to save the output of %s: %w", m.Tag(), err)
			}
			res.Output = path
			log.Debug("Saved output", "tag", m.Tag(), "path", path)
		}
		ans = append(ans, res)
	}
	return ans, nil
}
