package main

import (
	"context"

	"github.com/spf13/cobra"
)

var cfgFile string

func newRootCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ptrack",
		Short: "Run batches of tasks with a progress bar.",
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/ptrack/config.ini)")
	cmd.AddCommand(
		newRunCommand(ctx),
		newPipeCommand(ctx),
	)
	return cmd
}

func init() {
	cobra.OnInitialize(initConfig)
}
