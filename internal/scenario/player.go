package scenario

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/stature/internal/config"
	"github.com/banshee-data/stature/internal/feedback"
	"github.com/banshee-data/stature/internal/measure"
	"github.com/banshee-data/stature/internal/monitoring"
	"github.com/banshee-data/stature/internal/plane"
	"github.com/banshee-data/stature/internal/session"
	"github.com/banshee-data/stature/internal/spatial"
	"github.com/banshee-data/stature/internal/timeutil"
)

var logf = monitoring.Component("scenario")

// Epoch is the mock time every replay starts at.
var Epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// ErrNoFailure is returned when a restart event has no preceding failure.
var ErrNoFailure = errors.New("restart without a session failure")

// Result summarises a finished replay.
type Result struct {
	Events      int
	Measurement *measure.Measurement
	Selected    string // plane name, empty when nothing is selected
	Planes      int
	Restarts    int // resets that actually ran
	Failures    int
	Elapsed     time.Duration
}

// Player replays one scenario.
type Player struct {
	sc    *Scenario
	cfg   *config.TuningConfig
	units string
	out   io.Writer

	clock   *timeutil.MockClock
	display *feedback.Recorder
	ctrl    *session.Controller
	hits    *screenHits
	names   map[plane.ID]string

	lastFailure *session.SessionError
	result      Result
}

// NewPlayer prepares sc for replay. cfg may be nil; out receives the
// transcript and may be nil to discard it.
func NewPlayer(sc *Scenario, cfg *config.TuningConfig, out io.Writer) *Player {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}
	if out == nil {
		out = io.Discard
	}
	unit := cfg.GetDisplayUnits()
	if sc.Units != "" {
		unit = sc.Units
	}
	// Scenario units override the tuning file for the controller too.
	runCfg := *cfg
	runCfg.DisplayUnits = &unit

	p := &Player{
		sc:    sc,
		cfg:   &runCfg,
		units: unit,
		out:   out,
		clock: timeutil.NewMockClock(Epoch),
		hits:  newScreenHits(),
		names: make(map[plane.ID]string, len(sc.Planes)),
	}
	for _, ps := range sc.Planes {
		p.names[PlaneID(ps.Name)] = ps.Name
	}
	p.display = feedback.NewRecorder(p.onDisplay)
	p.ctrl = session.NewController(session.Options{
		Clock:     p.clock,
		Config:    p.cfg,
		HitTester: p.hits,
		Display:   p.display,
		Observer:  p,
		Runner:    p,
	})
	return p
}

// Controller exposes the controller under replay.
func (p *Player) Controller() *session.Controller { return p.ctrl }

// Display exposes the recorded feedback calls.
func (p *Player) Display() *feedback.Recorder { return p.display }

// Play runs every event in order, then lets the settle period elapse.
func (p *Player) Play() (*Result, error) {
	p.printf("start %q", p.sc.Name)
	p.ctrl.Start()

	for i, e := range p.sc.Events {
		p.advanceTo(e.At)
		if err := p.apply(e); err != nil {
			return nil, fmt.Errorf("event %d at %s: %w", i, e.At, err)
		}
		p.result.Events++
	}
	if p.sc.Settle > 0 {
		p.clock.Advance(p.sc.Settle)
	}

	for _, c := range feedback.Categories {
		if text, ok := p.display.Visible(c); ok {
			p.printf("visible %s: %q", c, text)
		}
	}

	p.result.Elapsed = p.elapsed()
	p.result.Measurement = p.ctrl.Measurement()
	p.result.Planes = len(p.ctrl.Planes())
	if id, ok := p.ctrl.Selected(); ok {
		p.result.Selected = p.names[id]
	}
	p.printf("end: %d events, %d planes, measurement %s", p.result.Events, p.result.Planes, p.formatMeasurement(p.result.Measurement))
	res := p.result
	return &res, nil
}

// Play replays sc with cfg, writing the transcript to out.
func Play(sc *Scenario, cfg *config.TuningConfig, out io.Writer) (*Result, error) {
	return NewPlayer(sc, cfg, out).Play()
}

func (p *Player) elapsed() time.Duration {
	return p.clock.Since(Epoch)
}

func (p *Player) advanceTo(at time.Duration) {
	if d := at - p.elapsed(); d > 0 {
		p.clock.Advance(d)
	}
}

func (p *Player) spec(name string) PlaneSpec {
	for _, ps := range p.sc.Planes {
		if ps.Name == name {
			return ps
		}
	}
	return PlaneSpec{}
}

func (p *Player) apply(e Event) error {
	switch {
	case e.Detect != "":
		ps := p.spec(e.Detect)
		id := PlaneID(ps.Name)
		p.hits.add(id, ps.Screen)
		p.ctrl.OnPlaneDetected(ps.anchor())
		p.describePlane("detect", id)

	case e.Update != nil:
		ps := p.spec(e.Update.Plane)
		center, ext := vec3(ps.Center), extent(ps.Extent)
		if e.Update.Center != nil {
			center = vec3(e.Update.Center)
		}
		if e.Update.Extent != nil {
			ext = extent(e.Update.Extent)
		}
		p.ctrl.OnPlaneUpdated(PlaneID(ps.Name), center, ext)
		p.describePlane("update", PlaneID(ps.Name))

	case e.Remove != "":
		p.printf("remove %s", e.Remove)
		p.hits.remove(PlaneID(e.Remove))
		p.ctrl.OnPlaneRemoved(PlaneID(e.Remove))

	case e.Tap != nil:
		pt := spatial.Point2{X: e.Tap[0], Y: e.Tap[1]}
		if !p.ctrl.AcceptsTaps() {
			p.printf("tap (%.0f, %.0f) ignored: plane already selected", pt.X, pt.Y)
			return nil
		}
		if p.ctrl.OnTapAt(pt) {
			id, _ := p.ctrl.Selected()
			p.printf("tap (%.0f, %.0f) selected %s", pt.X, pt.Y, p.names[id])
		} else {
			p.printf("tap (%.0f, %.0f) missed", pt.X, pt.Y)
		}

	case e.Frame != nil:
		if e.Frame.Lost {
			p.ctrl.OnFrameTick(nil)
			return nil
		}
		c := e.Frame.Camera
		pose := spatial.Translation(c[0], c[1], c[2]).Mul(spatial.RotationY(e.Frame.Yaw))
		p.ctrl.OnFrameTick(&pose)

	case e.Tracking != "":
		state, err := session.ParseTrackingState(e.Tracking)
		if err != nil {
			return err
		}
		p.printf("tracking %s", state)
		p.ctrl.OnTrackingQualityChanged(state)

	case e.Fail != "":
		p.printf("session failure: %s", e.Fail)
		p.ctrl.OnSessionFailed(errors.New(e.Fail))

	case e.Reset:
		p.reset(p.ctrl.ResetSession())

	case e.Restart:
		if p.lastFailure == nil {
			return ErrNoFailure
		}
		err := p.lastFailure.Restart()
		switch {
		case errors.Is(err, session.ErrRestartUnavailable):
			p.reset(false)
		case err != nil:
			return err
		default:
			p.lastFailure = nil
			p.reset(true)
		}

	case e.Wait:
		p.printf("wait")
	}
	return nil
}

// describePlane prints the controller's view of a registered plane.
func (p *Player) describePlane(verb string, id plane.ID) {
	for _, pl := range p.ctrl.Planes() {
		if pl.ID != id {
			continue
		}
		c := pl.WorldCenter()
		p.printf("%s %s: %.2fx%.2f m, area %.2f m2, center (%.2f, %.2f, %.2f)",
			verb, p.names[id], pl.Extent.Width, pl.Extent.Depth, pl.Area(), c.X, c.Y, c.Z)
		return
	}
	p.printf("%s %s: not registered", verb, p.names[id])
}

func (p *Player) reset(ran bool) {
	if !ran {
		p.printf("reset dropped")
		return
	}
	p.result.Restarts++
	p.hits.clear()
	p.printf("reset")
}

func (p *Player) formatMeasurement(m *measure.Measurement) string {
	if m == nil {
		return "none"
	}
	return m.Format(p.units)
}

func (p *Player) printf(format string, args ...any) {
	fmt.Fprintf(p.out, "[%8.3fs] %s\n", p.elapsed().Seconds(), fmt.Sprintf(format, args...))
}

func (p *Player) onDisplay(e feedback.Event) {
	if e.Hidden {
		p.printf("  hide %s", e.Category)
		return
	}
	p.printf("  show %s: %q", e.Category, e.Text)
}

// MeasurementChanged implements session.Observer.
func (p *Player) MeasurementChanged(m *measure.Measurement) {
	p.printf("  measurement %s", p.formatMeasurement(m))
}

// RestartAvailabilityChanged implements session.Observer.
func (p *Player) RestartAvailabilityChanged(available bool) {
	p.printf("  restart available: %t", available)
}

// SessionFailed implements session.Observer.
func (p *Player) SessionFailed(err *session.SessionError) {
	p.result.Failures++
	p.lastFailure = err
	p.printf("  alert %q: %q [%s]", err.Title, err.Message, err.ActionTitle())
}

// Run implements session.Runner.
func (p *Player) Run(opts session.RunOptions) {
	logf("run planeDetection=%t resetTracking=%t removeAnchors=%t",
		opts.PlaneDetection, opts.ResetTracking, opts.RemoveExistingAnchors)
}

// Pause implements session.Runner.
func (p *Player) Pause() {
	logf("pause")
}
