package main

import (
	"fmt"

	"github.com/kovidgoyal/clutbench"
	"github.com/spf13/cobra"
)

func new_version_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clutbench version %s\n", clutbench.Version)
		},
	}
}
