package ptrack

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// terminalWidth returns the current terminal width in columns, or 80 when
// stdout isn't attached to a terminal.
func terminalWidth() int {
	w, _, err := terminal.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 1 {
		return 80
	}
	return w
}
