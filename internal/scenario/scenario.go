// Package scenario replays scripted AR sessions against the session
// controller. A scenario lists the planes the AR subsystem will report and a
// timeline of events (detections, taps, frames, tracking changes, failures,
// resets); Play feeds them through a Controller on a mock clock and writes a
// transcript of everything the UI layer would have been told.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/banshee-data/stature/internal/plane"
	"github.com/banshee-data/stature/internal/session"
	"github.com/banshee-data/stature/internal/spatial"
	"github.com/banshee-data/stature/internal/units"
)

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// planeNamespace seeds deterministic plane identifiers from plane names.
var planeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/banshee-data/stature/planes"))

// Scenario is a scripted AR session.
type Scenario struct {
	Name   string        `yaml:"name"`
	Units  string        `yaml:"units,omitempty"`
	Settle time.Duration `yaml:"settle,omitempty"` // extra time to run after the last event
	Planes []PlaneSpec   `yaml:"planes"`
	Events []Event       `yaml:"events"`
}

// PlaneSpec describes one plane the AR subsystem will detect.
type PlaneSpec struct {
	Name     string    `yaml:"name"`
	Height   float64   `yaml:"height"`             // world Y of the anchor
	Position []float64 `yaml:"position,omitempty"` // world [x, z] of the anchor
	Center   []float64 `yaml:"center,omitempty"`   // plane-local [x, y, z]
	Extent   []float64 `yaml:"extent,omitempty"`   // [width, depth]
	Screen   Rect      `yaml:"screen"`             // where the plane appears on screen
}

// Rect is an axis-aligned screen rectangle, [x, y] corners inclusive.
type Rect struct {
	Min []float64 `yaml:"min"`
	Max []float64 `yaml:"max"`
}

// Event is one timeline entry. Exactly one action field must be set.
type Event struct {
	At time.Duration `yaml:"at"`

	Detect   string       `yaml:"detect,omitempty"`
	Update   *PlaneUpdate `yaml:"update,omitempty"`
	Remove   string       `yaml:"remove,omitempty"`
	Tap      []float64    `yaml:"tap,omitempty"`
	Frame    *Frame       `yaml:"frame,omitempty"`
	Tracking string       `yaml:"tracking,omitempty"`
	Fail     string       `yaml:"fail,omitempty"`
	Reset    bool         `yaml:"reset,omitempty"`
	Restart  bool         `yaml:"restart,omitempty"` // the last failure's restart action
	Wait     bool         `yaml:"wait,omitempty"`    // only advance the clock
}

// PlaneUpdate changes a detected plane's center and extent.
type PlaneUpdate struct {
	Plane  string    `yaml:"plane"`
	Center []float64 `yaml:"center,omitempty"`
	Extent []float64 `yaml:"extent,omitempty"`
}

// Frame is a rendered frame. Camera is the world [x, y, z] of the device;
// Lost marks a frame without a camera pose.
type Frame struct {
	Camera []float64 `yaml:"camera,omitempty"`
	Yaw    float64   `yaml:"yaw,omitempty"` // radians about the vertical axis
	Lost   bool      `yaml:"lost,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario document. Unknown keys are
// rejected so typos do not silently drop events.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}

// Validate checks plane definitions and the event timeline.
func (sc *Scenario) Validate() error {
	if sc.Units != "" && !units.IsValid(sc.Units) {
		return invalid("units must be one of %s, got %q", units.GetValidUnitsString(), sc.Units)
	}
	if sc.Settle < 0 {
		return invalid("settle must be non-negative")
	}

	names := make(map[string]bool, len(sc.Planes))
	for i, p := range sc.Planes {
		if p.Name == "" {
			return invalid("plane %d has no name", i)
		}
		if names[p.Name] {
			return invalid("duplicate plane %q", p.Name)
		}
		names[p.Name] = true
		if err := checkLen("plane "+p.Name+" position", p.Position, 2); err != nil {
			return err
		}
		if err := checkLen("plane "+p.Name+" center", p.Center, 3); err != nil {
			return err
		}
		if err := checkLen("plane "+p.Name+" extent", p.Extent, 2); err != nil {
			return err
		}
		if len(p.Screen.Min) != 2 || len(p.Screen.Max) != 2 {
			return invalid("plane %s screen needs [x, y] min and max", p.Name)
		}
	}

	var last time.Duration
	for i, e := range sc.Events {
		if e.At < last {
			return invalid("event %d at %s is earlier than the previous event", i, e.At)
		}
		last = e.At
		if err := e.validate(names); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

func checkLen(what string, v []float64, n int) error {
	if len(v) != 0 && len(v) != n {
		return invalid("%s needs %d values, got %d", what, n, len(v))
	}
	return nil
}

func (e Event) validate(planes map[string]bool) error {
	actions := 0
	count := func(set bool) {
		if set {
			actions++
		}
	}
	count(e.Detect != "")
	count(e.Update != nil)
	count(e.Remove != "")
	count(e.Tap != nil)
	count(e.Frame != nil)
	count(e.Tracking != "")
	count(e.Fail != "")
	count(e.Reset)
	count(e.Restart)
	count(e.Wait)
	if actions != 1 {
		return invalid("exactly one action per event, got %d", actions)
	}

	known := func(name string) error {
		if !planes[name] {
			return invalid("unknown plane %q", name)
		}
		return nil
	}

	switch {
	case e.Detect != "":
		return known(e.Detect)
	case e.Remove != "":
		return known(e.Remove)
	case e.Update != nil:
		if err := known(e.Update.Plane); err != nil {
			return err
		}
		if err := checkLen("update center", e.Update.Center, 3); err != nil {
			return err
		}
		return checkLen("update extent", e.Update.Extent, 2)
	case e.Tap != nil:
		if len(e.Tap) != 2 {
			return invalid("tap needs [x, y]")
		}
	case e.Frame != nil:
		if !e.Frame.Lost && len(e.Frame.Camera) != 3 {
			return invalid("frame needs camera [x, y, z] unless lost")
		}
	case e.Tracking != "":
		if _, err := session.ParseTrackingState(e.Tracking); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
	}
	return nil
}

// PlaneID returns the deterministic identifier used for a named plane.
func PlaneID(name string) plane.ID {
	return uuid.NewSHA1(planeNamespace, []byte(name))
}

func vec3(v []float64) spatial.Vec3 {
	if len(v) != 3 {
		return spatial.Vec3{}
	}
	return spatial.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func extent(v []float64) plane.Extent {
	if len(v) != 2 {
		return plane.Extent{}
	}
	return plane.Extent{Width: v[0], Depth: v[1]}
}

func (p PlaneSpec) anchor() session.PlaneAnchor {
	var x, z float64
	if len(p.Position) == 2 {
		x, z = p.Position[0], p.Position[1]
	}
	return session.PlaneAnchor{
		ID:        PlaneID(p.Name),
		Transform: spatial.Translation(x, p.Height, z),
		Center:    vec3(p.Center),
		Extent:    extent(p.Extent),
	}
}

func (r Rect) contains(pt spatial.Point2) bool {
	return pt.X >= r.Min[0] && pt.X <= r.Max[0] && pt.Y >= r.Min[1] && pt.Y <= r.Max[1]
}
