package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// stderr is the stream for the progress bar and diagnostics. Tests redirect
// it to inspect or silence progress output.
var stderr io.Writer = os.Stderr

func main() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sigs
		cancel()
	}()

	if err := newRootCommand(ctx).Execute(); err != nil {
		die(err)
	}
}

func die(err error) {
	fmt.Fprintln(stderr, err)
	os.Exit(1)
}
