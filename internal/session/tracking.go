package session

import (
	"fmt"
	"strings"
)

// TrackingStatus is the coarse camera-tracking quality reported by the AR
// subsystem. The zero value is TrackingNormal.
type TrackingStatus int

const (
	TrackingNormal TrackingStatus = iota
	TrackingLimited
	TrackingNotAvailable
)

// LimitedReason explains why tracking is limited.
type LimitedReason int

const (
	ReasonNone LimitedReason = iota
	ReasonInitializing
	ReasonExcessiveMotion
	ReasonInsufficientFeatures
	ReasonRelocalizing
)

var reasonNames = map[LimitedReason]string{
	ReasonInitializing:         "initializing",
	ReasonExcessiveMotion:      "excessiveMotion",
	ReasonInsufficientFeatures: "insufficientFeatures",
	ReasonRelocalizing:         "relocalizing",
}

// TrackingState is a tracking quality report.
type TrackingState struct {
	Status TrackingStatus
	Reason LimitedReason // only meaningful when Status is TrackingLimited
}

// Convenience values for the unqualified states.
var (
	Normal       = TrackingState{Status: TrackingNormal}
	NotAvailable = TrackingState{Status: TrackingNotAvailable}
)

// Limited returns a limited tracking state with the given reason.
func Limited(reason LimitedReason) TrackingState {
	return TrackingState{Status: TrackingLimited, Reason: reason}
}

// Degraded reports whether the state should start the escalation timer.
func (s TrackingState) Degraded() bool {
	return s.Status != TrackingNormal
}

// Presentation is the short status line shown as soon as the state changes.
func (s TrackingState) Presentation() string {
	switch s.Status {
	case TrackingNormal:
		return "Tracking normal"
	case TrackingNotAvailable:
		return "Tracking unavailable"
	}
	switch s.Reason {
	case ReasonInitializing:
		return "Initializing"
	case ReasonExcessiveMotion:
		return "Tracking limited\nExcessive motion"
	case ReasonInsufficientFeatures:
		return "Tracking limited\nLow detail"
	case ReasonRelocalizing:
		return "Recovering from interruption"
	default:
		return "Tracking limited"
	}
}

// Recommendation is the advice appended once degraded tracking persists.
// It is empty when there is nothing useful to suggest.
func (s TrackingState) Recommendation() string {
	if s.Status != TrackingLimited {
		return ""
	}
	switch s.Reason {
	case ReasonExcessiveMotion:
		return "Try slowing down your movement, or reset the session."
	case ReasonInsufficientFeatures:
		return "Try pointing at a flat surface, or reset the session."
	case ReasonRelocalizing:
		return "Return to the location where you left off or try resetting the session."
	default:
		return ""
	}
}

// EscalationMessage is the text shown when degraded tracking outlasts the
// escalation delay.
func (s TrackingState) EscalationMessage() string {
	title := "Tracking status: " + strings.ReplaceAll(s.Presentation(), "\n", ", ") + "."
	if rec := s.Recommendation(); rec != "" {
		return title + "\n" + rec
	}
	return title
}

// String renders the state in the form ParseTrackingState accepts.
func (s TrackingState) String() string {
	switch s.Status {
	case TrackingNormal:
		return "normal"
	case TrackingNotAvailable:
		return "notAvailable"
	}
	if name, ok := reasonNames[s.Reason]; ok {
		return "limited:" + name
	}
	return "limited"
}

// ParseTrackingState parses "normal", "notAvailable", "limited" or
// "limited:<reason>".
func ParseTrackingState(v string) (TrackingState, error) {
	switch v {
	case "normal":
		return Normal, nil
	case "notAvailable":
		return NotAvailable, nil
	case "limited":
		return Limited(ReasonNone), nil
	}
	name, ok := strings.CutPrefix(v, "limited:")
	if ok {
		for reason, n := range reasonNames {
			if n == name {
				return Limited(reason), nil
			}
		}
	}
	return TrackingState{}, fmt.Errorf("unknown tracking state %q", v)
}
