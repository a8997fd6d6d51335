package plane

import (
	"github.com/banshee-data/stature/internal/monitoring"
	"github.com/banshee-data/stature/internal/spatial"
)

var logf = monitoring.Component("plane")

// Registry holds the currently detected planes, indexed by identifier and
// iterated in insertion order. It is not safe for concurrent use; the session
// controller serialises access.
type Registry struct {
	byID  map[ID]*Plane
	order []ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[ID]*Plane)}
}

// Add inserts p. If a plane with the same identifier is already present the
// call is logged and treated as an update of its center and extent; Add then
// returns false.
func (r *Registry) Add(p *Plane) bool {
	if existing, ok := r.byID[p.ID]; ok {
		logf("plane %s already registered, applying as update", p.ID)
		existing.Center = p.Center
		existing.Extent = p.Extent
		return false
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return true
}

// Update mutates the matching plane in place, keeping its Selected flag.
// It returns false when no plane has the identifier.
func (r *Registry) Update(id ID, center spatial.Vec3, extent Extent) bool {
	p, ok := r.byID[id]
	if !ok {
		return false
	}
	p.Center = center
	p.Extent = extent
	return true
}

// Remove drops the plane with the given identifier and returns it. The
// returned plane keeps the Selected value it had at removal time so callers
// can tell whether the selection just went away.
func (r *Registry) Remove(id ID) (*Plane, bool) {
	p, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p, true
}

// Find returns the plane with the identifier, or nil.
func (r *Registry) Find(id ID) *Plane {
	return r.byID[id]
}

// All returns the registered planes in insertion order.
func (r *Registry) All() []*Plane {
	out := make([]*Plane, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered planes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Clear removes every plane.
func (r *Registry) Clear() {
	r.byID = make(map[ID]*Plane)
	r.order = nil
}
