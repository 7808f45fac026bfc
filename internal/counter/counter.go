// Package counter animates a displayed integer from 0 up to a target over a
// fixed duration in fixed steps.
package counter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"
)

const (
	DefaultDuration = 2000 * time.Millisecond
	DefaultSteps    = 60

	// DigitWidth is the zero-padded width of the split-digit display.
	DigitWidth = 3
)

var ErrNegativeTarget = errors.New("counter target must not be negative")

// Frames returns the value displayed after each tick when counting to target
// in steps ticks. The last frame is always target and there are never more
// than steps frames. Targets below zero are treated as zero.
func Frames(target, steps int) []int {
	if steps < 1 {
		steps = 1
	}
	if target <= 0 {
		return []int{0}
	}

	increment := float64(target) / float64(steps)
	end := float64(target)
	frames := make([]int, 0, steps)
	current := 0.0
	for tick := 1; ; tick++ {
		current += increment
		// Float accumulation can fall a hair short of target on the last tick.
		if current >= end || tick >= steps {
			return append(frames, target)
		}
		frames = append(frames, int(math.Floor(current)))
	}
}

// Digits zero-pads value to width and splits it into single characters.
// Values wider than width are not truncated.
func Digits(value, width int) []string {
	s := fmt.Sprintf("%0*d", width, value)
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// Width returns the number of digit boxes needed to show every value of a
// count-up to target: DigitWidth, or more for wider targets.
func Width(target int) int {
	return max(DigitWidth, len(strconv.Itoa(target)))
}

// Counter drives one count-up animation. The zero value is not usable; call
// New.
type Counter struct {
	target   int
	steps    int
	duration time.Duration
	clock    Clock
	onChange func(int)

	mu        sync.Mutex
	value     int
	started   bool
	stopped   bool
	completed bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// Option configures a Counter.
type Option func(*Counter)

// WithDuration sets the total animation time.
func WithDuration(d time.Duration) Option {
	return func(c *Counter) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithSteps sets the number of ticks.
func WithSteps(n int) Option {
	return func(c *Counter) {
		if n > 0 {
			c.steps = n
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock Clock) Option {
	return func(c *Counter) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// OnChange registers fn to receive every displayed value. fn runs on the
// animation goroutine and must not call Stop.
func OnChange(fn func(int)) Option {
	return func(c *Counter) {
		c.onChange = fn
	}
}

// New returns a stopped counter showing 0.
func New(target int, opts ...Option) (*Counter, error) {
	if target < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeTarget, target)
	}
	c := &Counter{
		target:   target,
		steps:    DefaultSteps,
		duration: DefaultDuration,
		clock:    wallClock{},
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Target returns the value the counter ends on.
func (c *Counter) Target() int {
	return c.target
}

// Interval returns the time between ticks.
func (c *Counter) Interval() time.Duration {
	return c.duration / time.Duration(c.steps)
}

// Value returns the currently displayed value.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Start begins ticking. Only the first call has an effect; it reports
// whether this call started the animation. Cancelling ctx stops the
// animation like Stop.
func (c *Counter) Start(ctx context.Context) bool {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return false
	}
	c.started = true
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	go c.run(ctx)
	return true
}

// Stop cancels any pending ticks and waits for the animation goroutine to
// exit. No OnChange callback runs after Stop returns. Stop is idempotent.
func (c *Counter) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		<-c.done
		return
	}
	c.stopped = true
	started := c.started
	cancel := c.cancel
	c.mu.Unlock()

	if !started {
		close(c.done)
		return
	}
	cancel()
	<-c.done
}

// Done is closed once the animation has reached its target or was stopped.
func (c *Counter) Done() <-chan struct{} {
	return c.done
}

// Reached reports whether the animation played its final frame. A counter
// stopped before that is never reached, even when target is 0.
func (c *Counter) Reached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

func (c *Counter) run(ctx context.Context) {
	defer close(c.done)

	ticker := c.clock.NewTicker(c.Interval())
	defer ticker.Stop()

	for _, v := range Frames(c.target, c.steps) {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}
		// A tick and a cancel can be ready together; cancel wins.
		if ctx.Err() != nil {
			return
		}
		c.set(v)
	}

	c.mu.Lock()
	c.completed = true
	c.mu.Unlock()
}

func (c *Counter) set(v int) {
	c.mu.Lock()
	if v > c.value {
		c.value = v
	}
	v = c.value
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(v)
	}
}

// Run animates a count-up to target and blocks until it completes or ctx is
// cancelled, in which case ctx.Err() is returned.
func Run(ctx context.Context, target int, onValue func(int), opts ...Option) error {
	opts = append(opts, OnChange(onValue))
	c, err := New(target, opts...)
	if err != nil {
		return err
	}
	c.Start(ctx)
	defer c.Stop()

	select {
	case <-c.Done():
	case <-ctx.Done():
		c.Stop()
	}
	if c.Reached() {
		return nil
	}
	return ctx.Err()
}
