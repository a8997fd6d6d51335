package session

import (
	"errors"
	"strings"
)

// SessionFailedTitle is the title shown for fatal AR session errors.
const SessionFailedTitle = "The AR session failed."

// RestartActionTitle labels the single recovery action of a SessionError.
const RestartActionTitle = "Restart Session"

// ErrRestartUnavailable is reported when a restart is requested during the
// post-reset cooldown.
var ErrRestartUnavailable = errors.New("restart unavailable: previous reset still cooling down")

// FailureReasoner is implemented by AR errors that carry a failure reason.
type FailureReasoner interface {
	FailureReason() string
}

// RecoverySuggester is implemented by AR errors that carry a recovery
// suggestion.
type RecoverySuggester interface {
	RecoverySuggestion() string
}

// SessionError is a fatal AR session fault ready for presentation. It offers
// exactly one recovery action, Restart.
type SessionError struct {
	Title   string
	Message string
	Err     error

	restart func() error
}

func (e *SessionError) Error() string {
	return e.Title + " " + e.Message
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// ActionTitle returns the label of the recovery action.
func (e *SessionError) ActionTitle() string {
	return RestartActionTitle
}

// Restart runs the recovery action: a session reset. It returns
// ErrRestartUnavailable if a reset is already cooling down.
func (e *SessionError) Restart() error {
	if e.restart == nil {
		return nil
	}
	return e.restart()
}

// newSessionError builds the user-facing error, joining the description,
// failure reason and recovery suggestion on separate lines.
func newSessionError(err error, restart func() error) *SessionError {
	var lines []string
	if err != nil {
		lines = append(lines, err.Error())
	}
	var fr FailureReasoner
	if errors.As(err, &fr) {
		if reason := fr.FailureReason(); reason != "" {
			lines = append(lines, reason)
		}
	}
	var rs RecoverySuggester
	if errors.As(err, &rs) {
		if suggestion := rs.RecoverySuggestion(); suggestion != "" {
			lines = append(lines, suggestion)
		}
	}

	return &SessionError{
		Title:   SessionFailedTitle,
		Message: strings.Join(lines, "\n"),
		Err:     err,
		restart: restart,
	}
}
