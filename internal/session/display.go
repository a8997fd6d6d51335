package session

import (
	"sync"

	"github.com/banshee-data/stature/internal/feedback"
)

// displayQueue sits between the feedback scheduler and the UI display. While
// the controller holds its lock, calls are queued and handed back by
// release; otherwise, as for escalations fired by the clock, they go straight
// through.
type displayQueue struct {
	display feedback.Display

	mu    sync.Mutex
	held  bool
	queue []func()
}

func (q *displayQueue) ShowMessage(c feedback.Category, text string) {
	q.do(func() { q.display.ShowMessage(c, text) })
}

func (q *displayQueue) HideMessage(c feedback.Category) {
	q.do(func() { q.display.HideMessage(c) })
}

func (q *displayQueue) do(f func()) {
	if q.display == nil {
		return
	}
	q.mu.Lock()
	if q.held {
		q.queue = append(q.queue, f)
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()
	f()
}

func (q *displayQueue) hold() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.held = true
}

func (q *displayQueue) release() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.held = false
	out := q.queue
	q.queue = nil
	return out
}
