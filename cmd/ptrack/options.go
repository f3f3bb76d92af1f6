package main

import "github.com/spf13/pflag"

// barOptions are progress bar settings shared by all subcommands. A zero
// value means "use the config file default".
type barOptions struct {
	barWidth int
}

// width returns the bar width to use, falling back to the config file.
func (o barOptions) width() int {
	if o.barWidth != 0 {
		return o.barWidth
	}
	return cfg.BarWidth
}

// Add the common progress bar flags to a command flagset.
func addBarOptions(o *barOptions, f *pflag.FlagSet) {
	f.IntVar(&o.barWidth, "bar-width", 0, "progress bar width (default from config file, 50)")
}
