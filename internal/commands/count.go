package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/acm-pccoer/events-site/internal/counter"
	"github.com/acm-pccoer/events-site/internal/visibility"
)

// CountOptions configures the count subcommand
type CountOptions struct {
	// Split prints zero-padded digits, like the detail page counters.
	Split bool
	// Plus appends "+" once the target is reached.
	Plus     bool
	Counter  []counter.Option
	Detector visibility.Detector
}

// isTerminal reports whether out is an interactive terminal
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func formatValue(v, target int, opts CountOptions) string {
	s := fmt.Sprintf("%d", v)
	if opts.Split {
		s = strings.Join(counter.Digits(v, counter.Width(target)), " ")
	}
	if opts.Plus && v == target {
		s += "+"
	}
	return s
}

// Count animates a count-up to target on out. On a terminal the value is
// redrawn in place; otherwise every value is printed on its own line.
// The animation starts once opts.Detector reports the output visible.
func Count(ctx context.Context, out io.Writer, target int, opts CountOptions) error {
	if target < 0 {
		return fmt.Errorf("%w: %d", counter.ErrNegativeTarget, target)
	}
	detector := opts.Detector
	if detector == nil {
		detector = visibility.Immediate{}
	}

	var gate visibility.Gate
	release := detector.Observe("terminal", gate.Open)
	defer release()

	select {
	case <-gate.Wait():
	case <-ctx.Done():
		return ctx.Err()
	}

	tty := isTerminal(out)
	draw := func(v int) {
		if tty {
			fmt.Fprintf(out, "\r\033[K%s", formatValue(v, target, opts))
			return
		}
		fmt.Fprintln(out, formatValue(v, target, opts))
	}

	err := counter.Run(ctx, target, draw, opts.Counter...)
	if tty {
		fmt.Fprintln(out)
	}
	return err
}
