package scan

import (
	"sync"
	"time"
)

// DefaultWindow is how long a repeat of the same decoded value is
// suppressed after its prior acceptance.
const DefaultWindow = time.Second

// Debouncer suppresses duplicate reads from a live feed: the decoder keeps
// emitting the same value while a code stays in frame. It also suppresses
// every scan while a confirmation dialog for a previous scan is open.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	last   string
	seen   time.Time
	held   bool
}

// NewDebouncer builds a debouncer with the given window; window <= 0 uses
// DefaultWindow.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window, now: time.Now}
}

// Accept reports whether the decoded value should be processed, recording
// the acceptance time when it is.
func (d *Debouncer) Accept(code string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.held {
		return false
	}
	now := d.now()
	if code == d.last && now.Sub(d.seen) < d.window {
		return false
	}
	d.last = code
	d.seen = now
	return true
}

// Hold suppresses all scans until Release, while a confirmation dialog is
// open.
func (d *Debouncer) Hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = true
}

// Release lifts a Hold.
func (d *Debouncer) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = false
}
