package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kovidgoyal/clutbench"
	"github.com/kovidgoyal/clutbench/clut"
	"github.com/kovidgoyal/clutbench/types"
	"github.com/spf13/cobra"
)

func new_identity_cmd() *cobra.Command {
	var eight_bit bool
	cmd := &cobra.Command{
		Use:   "identity LEVEL OUTPUT",
		Short: "Write a Hald CLUT that leaves every colour unchanged",
		Long: `Writes the identity Hald CLUT of the given level, a square image of side
LEVEL³ with LEVEL² lattice points per axis. The format is taken from the
extension of OUTPUT.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("LEVEL must be a number, not: %q", args[0])
			}
			if level > clut.MaxLevel {
				return types.NewError(types.ErrInvalidClutShape, "LEVEL must be between 2 and %d, not: %d", clut.MaxLevel, level)
			}
			side := level * level * level
			if _, err = clut.Level(side, side); err != nil {
				return err
			}
			if err = clutbench.Save(clut.Identity(level), args[1], clutbench.EightBit(eight_bit)); err != nil {
				return err
			}
			slog.Info("Wrote identity CLUT", "level", level, "side", side, "path", args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&eight_bit, "eight-bit", false, "Write 8 bit samples instead of 16 bit")
	return cmd
}
