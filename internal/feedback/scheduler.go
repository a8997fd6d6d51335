// Package feedback schedules the guidance messages shown over the camera
// view. Each message category runs its own small state machine:
//
//	idle --Escalate--> pending(deadline) --fire--> idle (message shown)
//	                   pending(deadline) --Cancel--> idle (nothing shown)
//
// Categories are independent; at most one escalation is pending per
// category and a new escalation replaces the previous one.
package feedback

import (
	"sync"
	"time"

	"github.com/banshee-data/stature/internal/timeutil"
)

// Category is the kind of a feedback message. The set is closed.
type Category string

const (
	SelectGrid              Category = "selectGrid"
	HeightReading           Category = "heightReading"
	TrackingStateEscalation Category = "trackingStateEscalation"
)

// Categories lists every category in display priority order.
var Categories = []Category{SelectGrid, HeightReading, TrackingStateEscalation}

// Display is the status-message widget owned by the UI layer. Calls are made
// after the scheduler releases its lock. With a RealClock, escalations and
// auto-hides arrive on the clock's goroutine.
type Display interface {
	ShowMessage(c Category, text string)
	HideMessage(c Category)
}

type nopDisplay struct{}

func (nopDisplay) ShowMessage(Category, string) {}
func (nopDisplay) HideMessage(Category)         {}

// Scheduler shows, escalates and cancels feedback messages.
//
// Timer callbacks and Cancel contend on one mutex, and a firing callback
// only displays if its task is still the category's pending task. A Cancel
// that wins the lock therefore always suppresses the message.
type Scheduler struct {
	mu       sync.Mutex
	clock    timeutil.Clock
	display  Display
	autoHide time.Duration
	pending  map[Category]*Handle
	hiding   map[Category]*Handle

	// Display calls queued under mu, delivered after unlock.
	outbox []func()
}

// Handle identifies one scheduled message.
type Handle struct {
	s        *Scheduler
	category Category
	text     string
	deadline time.Time
	timer    timeutil.Timer
}

// NewScheduler returns a scheduler that renders through display and times
// through clock. autoHide is how long ShowTransient messages stay visible;
// zero keeps them up until replaced.
func NewScheduler(clock timeutil.Clock, display Display, autoHide time.Duration) *Scheduler {
	if display == nil {
		display = nopDisplay{}
	}
	return &Scheduler{
		clock:    clock,
		display:  display,
		autoHide: autoHide,
		pending:  make(map[Category]*Handle),
		hiding:   make(map[Category]*Handle),
	}
}

// Show displays text immediately. It does not touch a pending escalation for
// the category, but it does cancel an outstanding auto-hide so the new text
// stays up.
func (s *Scheduler) Show(c Category, text string) {
	s.mu.Lock()
	defer s.unlock()

	s.stopLocked(s.hiding, c)
	s.showLocked(c, text)
}

// ShowTransient displays text immediately and hides it again after the
// scheduler's auto-hide interval.
func (s *Scheduler) ShowTransient(c Category, text string) {
	s.mu.Lock()
	defer s.unlock()

	s.stopLocked(s.hiding, c)
	s.showLocked(c, text)
	if s.autoHide <= 0 {
		return
	}

	h := s.newHandleLocked(c, text, s.autoHide)
	s.hiding[c] = h
	h.timer = s.clock.AfterFunc(s.autoHide, func() { s.hide(h) })
}

// Escalate schedules text to be displayed after the given delay unless it is
// cancelled first. Any escalation already pending for the category is
// cancelled.
func (s *Scheduler) Escalate(c Category, text string, after time.Duration) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked(s.pending, c)

	h := s.newHandleLocked(c, text, after)
	s.pending[c] = h
	h.timer = s.clock.AfterFunc(after, func() { s.fire(h) })
	return h
}

// Cancel drops the pending escalation for c. A message already on screen is
// left alone.
func (s *Scheduler) Cancel(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked(s.pending, c)
}

// Dismiss cancels the pending escalation for c and hides whatever the
// category is currently displaying.
func (s *Scheduler) Dismiss(c Category) {
	s.mu.Lock()
	defer s.unlock()

	s.stopLocked(s.pending, c)
	s.stopLocked(s.hiding, c)
	s.hideLocked(c)
}

// CancelAll drops every pending escalation and auto-hide.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.pending {
		s.stopLocked(s.pending, c)
	}
	for c := range s.hiding {
		s.stopLocked(s.hiding, c)
	}
}

// Pending reports whether an escalation is scheduled for c.
func (s *Scheduler) Pending(c Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.pending[c]
	return ok
}

// Cancel cancels this escalation if it is still pending. It returns false
// when the handle already fired, was cancelled or was superseded.
func (h *Handle) Cancel() bool {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	if h.s.pending[h.category] != h {
		return false
	}
	h.s.stopLocked(h.s.pending, h.category)
	return true
}

// Category returns the category the handle was scheduled under.
func (h *Handle) Category() Category { return h.category }

// Text returns the scheduled message text.
func (h *Handle) Text() string { return h.text }

// Deadline returns when the message is due.
func (h *Handle) Deadline() time.Time { return h.deadline }

// unlock releases mu and then delivers queued display calls.
func (s *Scheduler) unlock() {
	pending := s.outbox
	s.outbox = nil
	s.mu.Unlock()

	for _, f := range pending {
		f()
	}
}

func (s *Scheduler) showLocked(c Category, text string) {
	d := s.display
	s.outbox = append(s.outbox, func() { d.ShowMessage(c, text) })
}

func (s *Scheduler) hideLocked(c Category) {
	d := s.display
	s.outbox = append(s.outbox, func() { d.HideMessage(c) })
}

func (s *Scheduler) newHandleLocked(c Category, text string, after time.Duration) *Handle {
	return &Handle{
		s:        s,
		category: c,
		text:     text,
		deadline: s.clock.Now().Add(after),
	}
}

func (s *Scheduler) stopLocked(m map[Category]*Handle, c Category) {
	h, ok := m[c]
	if !ok {
		return
	}
	if h.timer != nil {
		h.timer.Stop()
	}
	delete(m, c)
}

func (s *Scheduler) fire(h *Handle) {
	s.mu.Lock()
	defer s.unlock()

	if s.pending[h.category] != h {
		return
	}
	delete(s.pending, h.category)
	s.stopLocked(s.hiding, h.category)
	s.showLocked(h.category, h.text)
}

func (s *Scheduler) hide(h *Handle) {
	s.mu.Lock()
	defer s.unlock()

	if s.hiding[h.category] != h {
		return
	}
	delete(s.hiding, h.category)
	s.hideLocked(h.category)
}
