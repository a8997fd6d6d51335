package measure

import (
	"math"

	"github.com/banshee-data/stature/internal/plane"
	"github.com/banshee-data/stature/internal/spatial"
)

// Sampler computes the vertical distance between the camera and a plane.
// It is stateless; the zero value is ready to use.
type Sampler struct{}

// Sample returns the absolute height difference between camera and the
// plane's world position. A nil plane or a camera pose that is missing or
// not a valid rigid transform yields nil: early frames routinely have no
// usable pose.
func (Sampler) Sample(p *plane.Plane, camera *spatial.Pose) *Measurement {
	if p == nil || camera == nil || !camera.IsValid() {
		return nil
	}

	d := math.Abs(camera.Position().Y - p.WorldPosition().Y)
	m, err := NewMeasurement(d)
	if err != nil {
		return nil
	}
	return &m
}
