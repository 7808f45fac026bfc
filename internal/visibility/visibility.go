// Package visibility turns viewport intersection reports into a one-shot
// "became visible" signal per observed element.
package visibility

import (
	"sync"
)

// DefaultThreshold is the intersection ratio at which an element counts as
// visible.
const DefaultThreshold = 0.1

// Detector signals once when an observed element becomes visible. The
// returned release func ends the observation and is safe to call more than
// once.
type Detector interface {
	Observe(id string, onVisible func()) (release func())
}

// Observer is a Detector fed by explicit intersection reports, e.g. from a
// browser IntersectionObserver relayed over HTTP.
type Observer struct {
	threshold float64

	mu       sync.Mutex
	watching map[string]*watch
}

type watch struct {
	onVisible func()
}

// NewObserver returns an Observer with the given threshold. A threshold
// outside (0, 1] falls back to DefaultThreshold.
func NewObserver(threshold float64) *Observer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Observer{
		threshold: threshold,
		watching:  make(map[string]*watch),
	}
}

// Threshold returns the configured ratio.
func (o *Observer) Threshold() float64 {
	return o.threshold
}

// Observe starts watching id. An empty id or nil callback is a no-op.
// Observing an id that is already watched replaces the earlier callback.
func (o *Observer) Observe(id string, onVisible func()) func() {
	if id == "" || onVisible == nil {
		return func() {}
	}

	w := &watch{onVisible: onVisible}

	o.mu.Lock()
	o.watching[id] = w
	o.mu.Unlock()

	return o.releaser(id, w)
}

// TryObserve is Observe for ids that may have only one watcher. It returns
// false and leaves the existing observation alone if id is already watched.
func (o *Observer) TryObserve(id string, onVisible func()) (func(), bool) {
	if id == "" || onVisible == nil {
		return func() {}, false
	}

	w := &watch{onVisible: onVisible}

	o.mu.Lock()
	if _, taken := o.watching[id]; taken {
		o.mu.Unlock()
		return func() {}, false
	}
	o.watching[id] = w
	o.mu.Unlock()

	return o.releaser(id, w), true
}

func (o *Observer) releaser(id string, w *watch) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			// Only drop the entry if it is still ours.
			if cur, ok := o.watching[id]; ok && cur == w {
				delete(o.watching, id)
			}
		})
	}
}

// Report records the current intersection ratio of id. It returns false if
// id is not being watched, which includes ids that already fired. When ratio
// reaches the threshold the callback runs exactly once, outside the lock,
// and the observation is detached.
func (o *Observer) Report(id string, ratio float64) bool {
	o.mu.Lock()
	w, ok := o.watching[id]
	if !ok {
		o.mu.Unlock()
		return false
	}
	// Written so NaN never counts as visible.
	if !(ratio >= o.threshold) {
		o.mu.Unlock()
		return true
	}
	delete(o.watching, id)
	o.mu.Unlock()

	w.onVisible()
	return true
}

// Watching reports how many elements are still observed.
func (o *Observer) Watching() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.watching)
}

// Immediate is a Detector for surfaces where everything is always on
// screen, such as a terminal. It fires synchronously inside Observe.
type Immediate struct{}

func (Immediate) Observe(id string, onVisible func()) func() {
	if onVisible != nil {
		onVisible()
	}
	return func() {}
}

// Gate is the one-way visible flag of a counter. The zero value is not yet
// visible.
type Gate struct {
	once sync.Once
	ch   chan struct{}
	mu   sync.Mutex
}

func (g *Gate) init() {
	g.mu.Lock()
	if g.ch == nil {
		g.ch = make(chan struct{})
	}
	g.mu.Unlock()
}

// Open flips the gate to visible. Later calls do nothing.
func (g *Gate) Open() {
	g.init()
	g.once.Do(func() { close(g.ch) })
}

// Visible reports whether Open has been called.
func (g *Gate) Visible() bool {
	select {
	case <-g.Wait():
		return true
	default:
		return false
	}
}

// Wait returns a channel closed when the gate opens.
func (g *Gate) Wait() <-chan struct{} {
	g.init()
	return g.ch
}

var (
	_ Detector = (*Observer)(nil)
	_ Detector = Immediate{}
)
