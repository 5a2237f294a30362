package core

// Window is a resizable viewport in logical pixels with a device pixel ratio.
// Hosts call Resize when their terminal, PTY or window changes size; the
// registered listeners are invoked synchronously.
type Window struct {
	width, height float64
	ratio         float64

	nextID    int
	listeners []windowListener
}

type windowListener struct {
	id int
	fn func()
}

// NewWindow creates a viewport with the given logical size and pixel ratio.
func NewWindow(width, height, ratio float64) *Window {
	return &Window{width: width, height: height, ratio: ratio}
}

// Size returns the logical width, height and device pixel ratio.
func (w *Window) Size() (width, height, ratio float64) {
	return w.width, w.height, w.ratio
}

// Resize updates the viewport and notifies listeners if anything changed.
func (w *Window) Resize(width, height, ratio float64) {
	if width == w.width && height == w.height && ratio == w.ratio {
		return
	}
	w.width, w.height, w.ratio = width, height, ratio

	// Listeners may unsubscribe while being notified.
	snapshot := make([]windowListener, len(w.listeners))
	copy(snapshot, w.listeners)
	for _, l := range snapshot {
		l.fn()
	}
}

// OnResize registers fn and returns a function that removes it.
// The returned function is safe to call more than once.
func (w *Window) OnResize(fn func()) (cancel func()) {
	w.nextID++
	id := w.nextID
	w.listeners = append(w.listeners, windowListener{id: id, fn: fn})

	return func() {
		for i, l := range w.listeners {
			if l.id == id {
				w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered resize listeners.
func (w *Window) Listeners() int {
	return len(w.listeners)
}
