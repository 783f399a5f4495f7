package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

const barWidth = 30

// Console draws indicator snapshots on a terminal.
// On a TTY the bar is redrawn in place; otherwise one line is written per
// change of fill.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	tty     bool
	last    Snapshot
	started bool
}

// NewConsole creates a console observer writing to stderr.
func NewConsole() *Console {
	fd := os.Stderr.Fd()
	return &Console{
		out: os.Stderr,
		tty: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// NewConsoleWriter creates a console observer writing plain lines to w.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Update implements Observer.
func (c *Console) Update(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer func() {
		c.last = s
		c.started = true
	}()

	if !s.Visible {
		if c.started && c.last.Visible && c.tty {
			fmt.Fprint(c.out, "\r\033[K")
		}
		return
	}

	if c.tty {
		fmt.Fprintf(c.out, "\r\033[K%s %s %3.0f%% %s", s.Title, bar(s.Percent), s.Percent, s.Body)
		if s.Percent >= 100 {
			fmt.Fprintln(c.out)
		}
		return
	}

	if c.started && c.last.Visible && c.last.Percent == s.Percent && c.last.Title == s.Title {
		return
	}
	fmt.Fprintf(c.out, "%s: %.0f%% %s\n", s.Title, s.Percent, s.Body)
}

func bar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}
