// Package session orchestrates one AR measuring session: it consumes plane,
// frame, tap and tracking events from the AR collaborator, keeps the plane
// registry and selection, samples the live vertical distance and drives the
// feedback scheduler.
//
// Events are expected on a single control goroutine. The controller still
// locks its state because the reset cooldown fires from the clock. No
// collaborator is called with the lock held: display, observer and runner
// calls are queued and delivered once it is released, so any of them may
// call back into the controller.
package session

import (
	"sync"

	"github.com/banshee-data/stature/internal/config"
	"github.com/banshee-data/stature/internal/feedback"
	"github.com/banshee-data/stature/internal/measure"
	"github.com/banshee-data/stature/internal/monitoring"
	"github.com/banshee-data/stature/internal/plane"
	"github.com/banshee-data/stature/internal/spatial"
	"github.com/banshee-data/stature/internal/timeutil"
)

var logf = monitoring.Component("session")

// State is the controller's lifecycle state.
type State int

const (
	StateTracking  State = iota // tracking, nothing selected
	StateSelected               // tracking, a plane is selected
	StateResetting              // transient, inside ResetSession
)

func (s State) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StateSelected:
		return "selected"
	case StateResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Options wires a Controller to its collaborators. Only Clock is required.
type Options struct {
	Clock     timeutil.Clock
	Config    *config.TuningConfig
	HitTester HitTester
	Display   feedback.Display
	Observer  Observer
	Runner    Runner
}

// Controller is the measurement session controller.
type Controller struct {
	mu sync.Mutex

	clock    timeutil.Clock
	cfg      *config.TuningConfig
	hit      HitTester
	display  *displayQueue
	observer Observer
	runner   Runner
	sampler  measure.Sampler

	// Recreated on every reset.
	registry  *plane.Registry
	selection *plane.Selection
	feedback  *feedback.Scheduler

	measurement      *measure.Measurement
	state            State
	restartAvailable bool
	cooldown         timeutil.Timer

	// Observer and runner calls queued under mu, delivered after unlock.
	outbox []func()
}

// NewController returns a controller in the tracking state with restart
// available.
func NewController(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = timeutil.RealClock{}
	}
	if opts.Config == nil {
		opts.Config = config.EmptyTuningConfig()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	c := &Controller{
		clock:            opts.Clock,
		cfg:              opts.Config,
		hit:              opts.HitTester,
		display:          &displayQueue{display: opts.Display},
		observer:         opts.Observer,
		runner:           opts.Runner,
		restartAvailable: true,
	}
	c.newSessionStateLocked()
	return c
}

func (c *Controller) newSessionStateLocked() {
	c.registry = plane.NewRegistry()
	c.selection = plane.NewSelection(c.registry)
	c.feedback = feedback.NewScheduler(c.clock, c.display, c.cfg.GetMessageAutoHide())
	c.state = StateTracking
}

// lock takes mu for an event handler. Display calls made by the scheduler
// while it is held are deferred to unlock.
func (c *Controller) lock() {
	c.mu.Lock()
	c.display.hold()
}

// unlock releases mu and then delivers queued display, observer and runner
// calls in that order.
func (c *Controller) unlock() {
	pending := c.outbox
	c.outbox = nil
	shown := c.display.release()
	c.mu.Unlock()

	for _, f := range shown {
		f()
	}
	for _, f := range pending {
		f()
	}
}

func (c *Controller) notify(f func(Observer)) {
	obs := c.observer
	c.outbox = append(c.outbox, func() { f(obs) })
}

func (c *Controller) runLocked(opts RunOptions) {
	if r := c.runner; r != nil {
		c.outbox = append(c.outbox, func() { r.Run(opts) })
	}
}

func (c *Controller) setMeasurementLocked(m *measure.Measurement) {
	if m == nil && c.measurement == nil {
		return
	}
	c.measurement = m
	var out *measure.Measurement
	if m != nil {
		v := *m
		out = &v
	}
	c.notify(func(o Observer) { o.MeasurementChanged(out) })
}

// Start runs the AR session with horizontal plane detection and clean
// tracking, discarding any planes from a previous run.
func (c *Controller) Start() {
	c.lock()
	defer c.unlock()

	c.resetTrackingLocked()
}

// Pause pauses the AR session. Session state is kept.
func (c *Controller) Pause() {
	c.lock()
	defer c.unlock()

	if r := c.runner; r != nil {
		c.outbox = append(c.outbox, r.Pause)
	}
}

// resetTrackingLocked reruns the AR session from scratch and recreates the
// registry, selection and scheduler.
func (c *Controller) resetTrackingLocked() {
	c.runLocked(RunOptions{
		PlaneDetection:        true,
		ResetTracking:         true,
		RemoveExistingAnchors: true,
	})
	c.feedback.CancelAll()
	c.newSessionStateLocked()
	c.setMeasurementLocked(nil)
}

// OnPlaneDetected registers a newly detected plane and, while nothing is
// selected, prompts the user to tap it.
func (c *Controller) OnPlaneDetected(a PlaneAnchor) {
	c.lock()
	defer c.unlock()

	c.registry.Add(&plane.Plane{
		ID:        a.ID,
		Transform: a.Transform,
		Center:    a.Center,
		Extent:    a.Extent,
	})

	if c.selection.Current() == nil {
		c.feedback.Show(feedback.SelectGrid, c.cfg.GetSelectPrompt())
	}
}

// OnPlaneUpdated refreshes a plane's center and extent.
func (c *Controller) OnPlaneUpdated(id plane.ID, center spatial.Vec3, extent plane.Extent) {
	c.lock()
	defer c.unlock()

	c.registry.Update(id, center, extent)
}

// OnPlaneRemoved drops a lost or merged plane. Losing the selected plane
// clears the measurement and returns the session to plane picking.
func (c *Controller) OnPlaneRemoved(id plane.ID) {
	c.lock()
	defer c.unlock()

	removed, ok := c.registry.Remove(id)
	if !ok || !removed.Selected {
		return
	}

	logf("selected plane %s lost", id)
	removed.Selected = false
	c.selection.Clear()
	c.state = StateTracking
	c.setMeasurementLocked(nil)
	c.feedback.Dismiss(feedback.HeightReading)

	if c.cfg.GetFreezePlanesOnSelect() {
		c.runLocked(RunOptions{PlaneDetection: true})
	}
	if c.registry.Len() > 0 {
		c.feedback.Show(feedback.SelectGrid, c.cfg.GetSelectPrompt())
	}
}

// AcceptsTaps reports whether a tap should be routed to OnTapAt. The gesture
// layer stops offering taps once a plane is selected.
func (c *Controller) AcceptsTaps() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selection.Current() == nil
}

// OnTapAt hit-tests point and selects the plane under it. It returns false
// when nothing was hit.
func (c *Controller) OnTapAt(point spatial.Point2) bool {
	c.lock()
	defer c.unlock()

	if c.hit == nil {
		return false
	}
	id, ok := c.hit.HitTest(point)
	if !ok || c.registry.Find(id) == nil {
		return false
	}

	c.feedback.Dismiss(feedback.SelectGrid)
	// Tracking changes are ignored while selected, so a pending warning
	// would be stale.
	c.feedback.Cancel(feedback.TrackingStateEscalation)

	c.selection.Select(id)
	c.state = StateSelected
	logf("plane %s selected", id)

	if c.cfg.GetFreezePlanesOnSelect() {
		c.runLocked(RunOptions{PlaneDetection: false})
	}
	return true
}

// OnFrameTick samples the distance to the selected plane for the frame's
// camera pose. Without a selection or a usable pose the tick is a no-op.
func (c *Controller) OnFrameTick(camera *spatial.Pose) {
	c.lock()
	defer c.unlock()

	selected := c.selection.Current()
	if selected == nil {
		return
	}
	m := c.sampler.Sample(selected, camera)
	if m == nil {
		return
	}

	c.setMeasurementLocked(m)
	c.feedback.Show(feedback.HeightReading, m.Format(c.cfg.GetDisplayUnits()))
}

// OnTrackingQualityChanged shows tracking status while the user is still
// picking a plane. Degraded tracking escalates to a fuller warning unless it
// recovers within the escalation delay.
func (c *Controller) OnTrackingQualityChanged(s TrackingState) {
	c.lock()
	defer c.unlock()

	if c.selection.Current() != nil {
		return
	}

	c.feedback.ShowTransient(feedback.TrackingStateEscalation, s.Presentation())
	if s.Degraded() {
		c.feedback.Escalate(feedback.TrackingStateEscalation, s.EscalationMessage(), c.cfg.GetEscalationDelay())
	} else {
		c.feedback.Cancel(feedback.TrackingStateEscalation)
	}
}

// OnSessionFailed reports a fatal AR session error to the observer. The
// controller does not recover on its own; the error's Restart action
// resets the session.
func (c *Controller) OnSessionFailed(err error) {
	c.lock()
	defer c.unlock()

	serr := newSessionError(err, c.restart)
	logf("AR session failed: %v", err)
	c.notify(func(o Observer) { o.SessionFailed(serr) })
}

func (c *Controller) restart() error {
	if !c.ResetSession() {
		return ErrRestartUnavailable
	}
	return nil
}

// ResetSession restarts the AR experience. Requests arriving while a
// previous reset is cooling down are dropped and return false.
func (c *Controller) ResetSession() bool {
	c.lock()
	defer c.unlock()

	if !c.restartAvailable {
		logf("reset dropped: restart unavailable")
		return false
	}
	c.restartAvailable = false
	c.notify(func(o Observer) { o.RestartAvailabilityChanged(false) })

	c.state = StateResetting
	c.resetTrackingLocked()

	cooldown := c.cfg.GetResetCooldown()
	logf("session reset, restart re-arms in %s", cooldown)
	c.cooldown = c.clock.AfterFunc(cooldown, c.rearmRestart)
	return true
}

func (c *Controller) rearmRestart() {
	c.lock()
	defer c.unlock()

	c.cooldown = nil
	if c.restartAvailable {
		return
	}
	c.restartAvailable = true
	c.notify(func(o Observer) { o.RestartAvailabilityChanged(true) })
}

// Measurement returns a copy of the live measurement, or nil.
func (c *Controller) Measurement() *measure.Measurement {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.measurement == nil {
		return nil
	}
	m := *c.measurement
	return &m
}

// RestartAvailable reports whether ResetSession would currently run.
func (c *Controller) RestartAvailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.restartAvailable
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Selected returns the selected plane's identifier.
func (c *Controller) Selected() (plane.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.selection.Current()
	if p == nil {
		return plane.ID{}, false
	}
	return p.ID, true
}

// Planes returns copies of the registered planes in detection order.
func (c *Controller) Planes() []plane.Plane {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := c.registry.All()
	out := make([]plane.Plane, 0, len(all))
	for _, p := range all {
		out = append(out, *p)
	}
	return out
}

// FeedbackPending reports whether an escalation is scheduled for cat.
func (c *Controller) FeedbackPending(cat feedback.Category) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.feedback.Pending(cat)
}
