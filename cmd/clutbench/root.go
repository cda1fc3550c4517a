package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func log_level(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %q, use one of debug, info, warn or error", name)
}

func new_root_cmd() *cobra.Command {
	var level_name string
	root := &cobra.Command{
		Use:   "clutbench",
		Short: "Benchmark trilinear interpolation over 3D colour lookup tables",
		Long: `clutbench applies a Hald CLUT to an image with several interchangeable
interpolation methods, timing each one and checking that they all agree.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log_level(level_name)
			if err != nil {
				return err
			}
			opts := &slog.HandlerOptions{Level: level}
			handler := slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&level_name, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.AddCommand(new_run_cmd(), new_identity_cmd(), new_methods_cmd(), new_version_cmd())
	return root
}
