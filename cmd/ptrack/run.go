package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/rgeller/ptrack"
	"github.com/spf13/cobra"
)

type runOptions struct {
	barOptions
	concurrency int
	chunkSize   int
	unordered   bool
	skipFirst   bool
	input       string
}

func newRunCommand(ctx context.Context) *cobra.Command {
	var opt runOptions

	cmd := &cobra.Command{
		Use:   "run <command> [arg ...]",
		Short: "Run a command once per task with a progress bar",
		Long: `Reads one task per line from STDIN (or --input) and runs the given command
for each of them. Any '{}' in the command arguments is replaced with the
task, without a placeholder the task is appended as the last argument.

With a concurrency of 1 the tasks run in order, otherwise they are spread
over a pool of workers. The progress bar is drawn on STDERR, the commands'
output goes to STDOUT in result order. The first failing command aborts
the batch.`,
		Example: `  ls *.png | ptrack run -n 8 convert {} {}.jpg
  ptrack run --input hosts.txt ping -c1 {}`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(ctx, opt, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	// Everything from the command name on belongs to the command, including
	// its own flags
	flags.SetInterspersed(false)
	flags.IntVarP(&opt.concurrency, "concurrency", "n", 0, "number of workers (default from config file, 4)")
	flags.IntVar(&opt.chunkSize, "chunk-size", 1, "tasks per dispatch to a worker")
	flags.BoolVar(&opt.unordered, "unordered", false, "print results in completion order")
	flags.BoolVar(&opt.skipFirst, "skip-first", false, "exclude the first round of tasks from the rate estimate")
	flags.StringVarP(&opt.input, "input", "i", "", "read tasks from this file instead of STDIN")
	addBarOptions(&opt.barOptions, flags)
	return cmd
}

func runRun(ctx context.Context, opt runOptions, args []string, stdin io.Reader, stdout io.Writer) error {
	if opt.concurrency == 0 {
		opt.concurrency = cfg.Concurrency
	}

	in := stdin
	if opt.input != "" {
		f, err := os.Open(opt.input)
		if err != nil {
			return errors.Wrap(err, "reading tasks")
		}
		defer f.Close()
		in = f
	}
	tasks, err := readTasks(in)
	if err != nil {
		return err
	}

	fn := func(task string) (string, error) {
		c := exec.CommandContext(ctx, args[0], substitute(args[1:], task)...)
		out, err := c.CombinedOutput()
		if err != nil {
			return "", errors.Wrapf(err, "task %q", task)
		}
		return string(out), nil
	}

	var outputs []string
	if opt.concurrency > 1 {
		outputs, err = ptrack.TrackParallel(fn, ptrack.Tasks(tasks), opt.concurrency, ptrack.ParallelOptions{
			Width:     opt.width(),
			Writer:    progressSink(),
			ChunkSize: opt.chunkSize,
			Unordered: opt.unordered,
			SkipFirst: opt.skipFirst,
		})
	} else {
		outputs, err = ptrack.Track(fn, ptrack.Tasks(tasks), ptrack.TrackOptions{
			Width:  opt.width(),
			Writer: progressSink(),
		})
	}
	if err != nil {
		return err
	}
	for _, out := range outputs {
		fmt.Fprint(stdout, out)
	}
	return nil
}

// substitute replaces '{}' in the command arguments with the task. Without
// a placeholder the task becomes the last argument.
func substitute(args []string, task string) []string {
	replaced := false
	out := make([]string, len(args))
	for i, a := range args {
		if strings.Contains(a, "{}") {
			replaced = true
		}
		out[i] = strings.ReplaceAll(a, "{}", task)
	}
	if !replaced {
		out = append(out, task)
	}
	return out
}

// readTasks reads one task per line, skipping blank lines.
func readTasks(r io.Reader) ([]string, error) {
	var tasks []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tasks = append(tasks, line)
	}
	return tasks, errors.Wrap(scanner.Err(), "reading tasks")
}
