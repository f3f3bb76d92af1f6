package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/rgeller/ptrack"
	"github.com/spf13/cobra"
)

type pipeOptions struct {
	barOptions
	total int
}

func newPipeCommand(ctx context.Context) *cobra.Command {
	var opt pipeOptions

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Pass lines from STDIN to STDOUT, counting them on a progress bar",
		Long: `Copies STDIN to STDOUT line by line while advancing a progress bar on
STDERR. The number of lines isn't known up front, so pass --total to get a
bar with an ETA, otherwise only the count and rate are shown.`,
		Example: `  find . -name '*.log' | ptrack pipe --total 2500 | xargs gzip`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipe(ctx, opt, cmd.InOrStdin(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.IntVar(&opt.total, "total", 0, "expected number of lines, 0 if unknown")
	addBarOptions(&opt.barOptions, flags)
	return cmd
}

func runPipe(ctx context.Context, opt pipeOptions, stdin io.Reader, stdout io.Writer) error {
	var lines iter.Seq[string] = func(yield func(string) bool) {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}
			if !yield(scanner.Text()) {
				return
			}
		}
	}

	tracked, err := ptrack.TrackIter(ptrack.TaskSeq(lines, opt.total), ptrack.TrackOptions{
		Width:  opt.width(),
		Writer: progressSink(),
	})
	if err != nil {
		return err
	}
	for line := range tracked {
		fmt.Fprintln(stdout, line)
	}
	return nil
}
