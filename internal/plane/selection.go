package plane

// Selection tracks which single plane, if any, the user measures against.
// It never copies plane data; it flips Selected on the registry's records.
type Selection struct {
	reg      *Registry
	selected ID
	has      bool
}

// NewSelection returns an empty selection over reg.
func NewSelection(reg *Registry) *Selection {
	return &Selection{reg: reg}
}

// Select clears every plane's flag and then marks the plane with id. An
// unknown id leaves nothing selected. Clearing first keeps at most one plane
// selected whatever order calls arrive in.
func (s *Selection) Select(id ID) bool {
	s.Clear()

	p := s.reg.Find(id)
	if p == nil {
		return false
	}
	p.Selected = true
	s.selected = id
	s.has = true
	return true
}

// Clear deselects every plane.
func (s *Selection) Clear() {
	for _, p := range s.reg.All() {
		p.Selected = false
	}
	s.has = false
}

// Current returns the selected plane, or nil. A selected plane that has since
// been removed from the registry no longer counts.
func (s *Selection) Current() *Plane {
	if !s.has {
		return nil
	}
	p := s.reg.Find(s.selected)
	if p == nil || !p.Selected {
		return nil
	}
	return p
}
