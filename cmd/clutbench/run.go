package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kovidgoyal/clutbench"
	"github.com/kovidgoyal/clutbench/bench"
	"github.com/kovidgoyal/clutbench/clut"
	"github.com/kovidgoyal/clutbench/types"
	"github.com/spf13/cobra"
)

const default_cycles = 10

type run_options struct {
	threads    int
	eight_bit  bool
	ext        string
	methods    []string
	perceptual bool
}

// parse_cycles reads the leading decimal digits of s, anything unparseable
// counts as zero cycles.
func parse_cycles(s string) int {
	s = strings.TrimLeft(s, " \t\n")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.ParseUint(s[:end], 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

func new_run_cmd() *cobra.Command {
	o := run_options{}
	cmd := &cobra.Command{
		Use:   "run INPUT CLUT OUTPUT_PREFIX [CYCLES]",
		Short: "Benchmark every CLUT method on an image",
		Long: `Applies the Hald CLUT image to the INPUT image with every method, CYCLES
times each (10 by default). Prints the time taken and the difference to the
first method, and saves each result as OUTPUT_PREFIX_<method>.<ext>.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 || len(args) > 4 {
				return fmt.Errorf("usage: %s", cmd.UseLine())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cycles := default_cycles
			if len(args) > 3 {
				cycles = parse_cycles(args[3])
			}
			return run_benchmark(cmd, args[0], args[1], args[2], cycles, &o)
		},
	}
	cmd.Flags().IntVar(&o.threads, "threads", 1, "Goroutines converting pixels, 0 means one per CPU")
	cmd.Flags().BoolVar(&o.eight_bit, "eight-bit", false, "Save outputs with 8 bit samples")
	cmd.Flags().StringVar(&o.ext, "ext", "ppm", "Output file format: ppm, png, tiff or bmp")
	cmd.Flags().StringSliceVar(&o.methods, "methods", nil, "Comma separated method tags to run, the first one is the reference (default all)")
	cmd.Flags().BoolVar(&o.perceptual, "perceptual", false, "Also report the CIE76 colour difference")
	return cmd
}

func run_benchmark(cmd *cobra.Command, input_path, clut_path, prefix string, cycles int, o *run_options) error {
	ext := strings.TrimPrefix(o.ext, ".")
	format, err := clutbench.FormatFromExtension(ext)
	if err != nil {
		return err
	}
	if !clutbench.CanSave(format) {
		return types.NewError(types.ErrUnsupportedFormat, "cannot write %s images, use one of ppm, png, tiff or bmp", format)
	}
	var methods []clut.Method
	for _, tag := range o.methods {
		m, err := clut.ByTag(strings.TrimSpace(tag))
		if err != nil {
			return err
		}
		methods = append(methods, m)
	}
	input, err := clutbench.Load(input_path)
	if err != nil {
		return err
	}
	clut_image, err := clutbench.Load(clut_path)
	if err != nil {
		return err
	}
	slog.Info("Images loaded", "input", input.String(), "clut", clut_image.String(), "cycles", cycles)
	runner := bench.Runner{
		Input: input, CLUT: clut_image, Methods: methods, Cycles: cycles,
		OutputPrefix: prefix, Ext: ext, Report: cmd.OutOrStdout(),
		Perceptual: o.perceptual, Threads: o.threads, Logger: slog.Default(),
		Save: func(r *clutbench.Raster, path string) error {
			return clutbench.Save(r, path, clutbench.EightBit(o.eight_bit))
		},
	}
	_, err = runner.Run()
	return err
}
