package scenario

import (
	"sync"

	"github.com/banshee-data/stature/internal/plane"
	"github.com/banshee-data/stature/internal/spatial"
)

// screenHits resolves taps against the screen rectangles of the planes the
// scenario has detected and not yet removed. Earlier detections win where
// rectangles overlap.
type screenHits struct {
	mu    sync.Mutex
	order []plane.ID
	rects map[plane.ID]Rect
}

func newScreenHits() *screenHits {
	return &screenHits{rects: make(map[plane.ID]Rect)}
}

func (h *screenHits) add(id plane.ID, r Rect) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rects[id]; !ok {
		h.order = append(h.order, id)
	}
	h.rects[id] = r
}

func (h *screenHits) remove(id plane.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rects[id]; !ok {
		return
	}
	delete(h.rects, id)
	for i, o := range h.order {
		if o == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

func (h *screenHits) clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.order = nil
	h.rects = make(map[plane.ID]Rect)
}

// HitTest implements session.HitTester.
func (h *screenHits) HitTest(pt spatial.Point2) (plane.ID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range h.order {
		if h.rects[id].contains(pt) {
			return id, true
		}
	}
	return plane.ID{}, false
}
