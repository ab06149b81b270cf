package utils

import "fmt"

// NotFoundError signals that a referenced user, service or rating does
// not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidStateTransitionError signals that the requested lifecycle edge
// is not legal from the request's current state. The document is left
// untouched.
type InvalidStateTransitionError struct {
	Action  string
	Current string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a service request in state %q", e.Action, e.Current)
}

// DuplicateRatingError signals that the rating slot for this
// (subject, rater role, service) is already filled.
type DuplicateRatingError struct {
	ServiceID string
}

func (e *DuplicateRatingError) Error() string {
	return fmt.Sprintf("service request %s has already been rated from this side", e.ServiceID)
}

// ValidationError signals malformed caller input; nothing was written.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NetworkError wraps a failed or timed-out backend call. The underlying
// driver error is kept for logs but never shown to callers.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unavailable during %s, please try again", e.Op)
}

func (e *NetworkError) Unwrap() error { return e.Err }
