package main

import (
	"fmt"

	"github.com/kovidgoyal/clutbench/clut"
	"github.com/spf13/cobra"
)

func new_methods_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the available CLUT interpolation methods",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, m := range clut.Methods() {
				fmt.Fprintf(w, "%-10s %s\n", m.Tag(), m.Description())
			}
			fmt.Fprintf(w, "\nVector backend: %s\n", clut.VectorBackend())
		},
	}
}
