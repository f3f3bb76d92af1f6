package ptrack

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"
)

const defaultBarWidth = 50

// BarOptions configure a ProgressBar. The zero value selects a bar width of
// 50, os.Stdout as the sink and an immediate start.
type BarOptions struct {
	// Width is the maximum number of characters used for the bar itself.
	Width int

	// Writer is where progress lines go. If it also implements
	// Flush() error, it is flushed after every write.
	Writer io.Writer

	// Deferred delays the initial line and the timing baseline until Start
	// is called explicitly. Used when the first results of a batch should
	// not count towards the rate estimate.
	Deferred bool

	// TerminalWidth reports the current terminal width in columns. The
	// default queries the real terminal and falls back to 80.
	TerminalWidth func() int
}

// ProgressBar prints the progress of a batch of tasks. It keeps a completed
// count, estimates the task rate and remaining time, and shrinks the drawn
// bar as needed so the line doesn't wrap on narrow terminals.
//
// A ProgressBar is owned by a single goroutine, it is not safe for
// concurrent use.
type ProgressBar struct {
	total     int
	width     int
	completed int
	w         io.Writer
	termWidth func() int

	timer *Timer
	clock func() time.Time
}

// NewProgressBar returns a bar for total tasks. A total of 0 means the
// total is unknown, only the completed count and rate are shown then.
// Unless opt.Deferred is set, the initial line is written and timing starts
// immediately.
func NewProgressBar(total int, opt BarOptions) *ProgressBar {
	if opt.Width < 1 {
		opt.Width = defaultBarWidth
	}
	if opt.Writer == nil {
		opt.Writer = os.Stdout
	}
	if opt.TerminalWidth == nil {
		opt.TerminalWidth = terminalWidth
	}
	p := &ProgressBar{
		total:     total,
		width:     opt.Width,
		w:         opt.Writer,
		termWidth: opt.TerminalWidth,
		clock:     time.Now,
	}
	if !opt.Deferred {
		p.Start()
	}
	return p
}

// Start writes the initial progress line and starts the clock. It has
// already been called by NewProgressBar unless the bar was created with
// Deferred set, and must precede any update then.
func (p *ProgressBar) Start() {
	if p.total > 0 {
		fmt.Fprintf(p.w, "[%s] 0/%d, elapsed: 0s, ETA", strings.Repeat(" ", p.width), p.total)
	} else {
		fmt.Fprint(p.w, "completed: 0, elapsed: 0s")
	}
	p.flush()
	p.timer = &Timer{start: p.clock(), now: p.clock}
}

// Increment advances the bar by one task.
func (p *ProgressBar) Increment() {
	p.add(1)
}

// Add advances the bar by n tasks. n must be positive.
func (p *ProgressBar) Add(n int) error {
	if n <= 0 {
		return InvalidArgument{Msg: fmt.Sprintf("update count must be positive, got %d", n)}
	}
	p.add(n)
	return nil
}

func (p *ProgressBar) add(n int) {
	p.completed += n
	elapsed := p.timer.SinceStart()
	fps := math.Inf(1)
	if elapsed > 0 {
		fps = float64(p.completed) / elapsed
	}
	if p.total > 0 {
		pct := float64(p.completed) / float64(p.total)
		eta := int(elapsed*(1-pct)/pct + 0.5)
		counters := fmt.Sprintf(" %d/%d, %.1f task/s, elapsed: %ds, ETA: %5ds",
			p.completed, p.total, fps, int(elapsed+0.5), eta)
		width := p.barWidth(len(counters))
		mark := int(float64(width) * pct)
		// The completed count can overshoot a reduced total (skip-first
		// accounting), cap the fill at the full bar
		if mark > width {
			mark = width
		}
		fmt.Fprintf(p.w, "\r[%s%s]%s",
			strings.Repeat(">", mark), strings.Repeat(" ", width-mark), counters)
	} else {
		fmt.Fprintf(p.w, "completed: %d, elapsed: %ds, %f tasks/s",
			p.completed, int(elapsed+0.5), fps)
	}
	p.flush()
}

// barWidth returns the width to draw the bar with. The configured width is
// capped so that bar plus counters fit into the terminal, and to 60% of the
// terminal overall, with a floor of 2.
func (p *ProgressBar) barWidth(counterLen int) int {
	width := p.width
	term := p.termWidth()
	if w := term - counterLen - 3; w < width {
		width = w
	}
	if w := int(float64(term) * 0.6); w < width {
		width = w
	}
	if width < 2 {
		width = 2
	}
	return width
}

// Finish terminates the progress line with a newline. The drivers call it
// after their task source is exhausted.
func (p *ProgressBar) Finish() {
	fmt.Fprintln(p.w)
	p.flush()
}

// Completed returns the number of tasks counted so far.
func (p *ProgressBar) Completed() int { return p.completed }

// Total returns the task total the bar was created with, 0 if unknown.
func (p *ProgressBar) Total() int { return p.total }

func (p *ProgressBar) flush() {
	if f, ok := p.w.(interface{ Flush() error }); ok {
		f.Flush()
	}
}
