package session

import (
	"github.com/banshee-data/stature/internal/measure"
	"github.com/banshee-data/stature/internal/plane"
	"github.com/banshee-data/stature/internal/spatial"
)

// PlaneAnchor is a plane as reported by the AR subsystem's detection
// callbacks.
type PlaneAnchor struct {
	ID        plane.ID
	Transform spatial.Pose
	Center    spatial.Vec3
	Extent    plane.Extent
}

// HitTester resolves a screen point to the detected plane under it.
// Implementations only report planes the AR subsystem still tracks.
type HitTester interface {
	HitTest(point spatial.Point2) (plane.ID, bool)
}

// HitTestFunc adapts a function to HitTester.
type HitTestFunc func(point spatial.Point2) (plane.ID, bool)

// HitTest calls f.
func (f HitTestFunc) HitTest(point spatial.Point2) (plane.ID, bool) {
	return f(point)
}

// RunOptions configures a (re)run of the AR session.
type RunOptions struct {
	PlaneDetection        bool // detect horizontal planes
	ResetTracking         bool // restart world tracking from scratch
	RemoveExistingAnchors bool
}

// Runner controls the underlying AR session. It is optional; a controller
// without one only manages its own state.
type Runner interface {
	Run(opts RunOptions)
	Pause()
}

// Observer receives the controller's UI-facing notifications. Calls are made
// after the controller releases its lock, so observers may query it.
type Observer interface {
	// MeasurementChanged reports the live measurement; nil means none.
	MeasurementChanged(m *measure.Measurement)
	// RestartAvailabilityChanged reports when restart is enabled or disabled.
	RestartAvailabilityChanged(available bool)
	// SessionFailed reports a fatal AR session error.
	SessionFailed(err *SessionError)
}

type nopObserver struct{}

func (nopObserver) MeasurementChanged(*measure.Measurement) {}
func (nopObserver) RestartAvailabilityChanged(bool)         {}
func (nopObserver) SessionFailed(*SessionError)             {}
