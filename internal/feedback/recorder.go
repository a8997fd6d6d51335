package feedback

import "sync"

// Event is one call the scheduler made on its Display.
type Event struct {
	Category Category
	Text     string
	Hidden   bool
}

// Recorder is a Display that keeps every call and the text each category is
// currently showing. The scenario player prints from it and tests assert on
// it.
type Recorder struct {
	mu      sync.Mutex
	events  []Event
	visible map[Category]string
	onEvent func(Event)
}

// NewRecorder returns an empty Recorder. onEvent, when non-nil, is called
// for every recorded event.
func NewRecorder(onEvent func(Event)) *Recorder {
	return &Recorder{visible: make(map[Category]string), onEvent: onEvent}
}

// ShowMessage records a show.
func (r *Recorder) ShowMessage(c Category, text string) {
	r.record(Event{Category: c, Text: text})
}

// HideMessage records a hide.
func (r *Recorder) HideMessage(c Category) {
	r.record(Event{Category: c, Hidden: true})
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	if e.Hidden {
		delete(r.visible, e.Category)
	} else {
		r.visible[e.Category] = e.Text
	}
	cb := r.onEvent
	r.mu.Unlock()

	if cb != nil {
		cb(e)
	}
}

// Events returns a copy of every recorded event in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Visible returns the text category c is showing, if any.
func (r *Recorder) Visible(c Category) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	text, ok := r.visible[c]
	return text, ok
}

// Shown counts how many times text was shown under c.
func (r *Recorder) Shown(c Category, text string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Category == c && !e.Hidden && e.Text == text {
			n++
		}
	}
	return n
}

// Reset forgets every recorded event and visible message.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.visible = make(map[Category]string)
}
