// Package plane owns the detected horizontal planes of one AR session and the
// single-plane selection made against them.
//
// Registry and Selection share the same *Plane records: the registry owns
// them, the selection flips their Selected flags in place.
package plane

import (
	"github.com/google/uuid"

	"github.com/banshee-data/stature/internal/spatial"
)

// ID is the stable identifier the AR subsystem assigns to a plane anchor.
type ID = uuid.UUID

// NewID returns a fresh random plane identifier.
func NewID() ID {
	return uuid.New()
}

// Extent is the size of a plane in its local frame, in meters.
type Extent struct {
	Width float64 // along local X
	Depth float64 // along local Z
}

// Plane is one detected horizontal surface.
type Plane struct {
	ID        ID
	Transform spatial.Pose // anchor pose in world space
	Center    spatial.Vec3 // plane-local center
	Extent    Extent
	Selected  bool
}

// WorldPosition returns the anchor's world-space position. Its Y component
// is the plane's height.
func (p *Plane) WorldPosition() spatial.Vec3 {
	return p.Transform.Position()
}

// WorldCenter returns the plane's center in world space.
func (p *Plane) WorldCenter() spatial.Vec3 {
	return p.Transform.Apply(p.Center)
}

// Area returns the plane's estimated surface area in square meters.
func (p *Plane) Area() float64 {
	return p.Extent.Width * p.Extent.Depth
}
