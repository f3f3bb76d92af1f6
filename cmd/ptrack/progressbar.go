package main

import (
	"io"
	"io/ioutil"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// progressSink returns the writer the progress bar is drawn on. The bar
// goes to STDERR when that's a terminal and is disabled when it isn't, so
// redirected output stays clean. When tests replace stderr with a buffer,
// the bar is drawn into the buffer.
func progressSink() io.Writer {
	f, ok := stderr.(*os.File)
	if !ok {
		return stderr
	}
	if terminal.IsTerminal(int(f.Fd())) {
		return f
	}
	return ioutil.Discard
}
