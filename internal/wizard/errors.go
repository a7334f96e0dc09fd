package wizard

import "errors"

var (
	ErrNoFile             = errors.New("no file provided")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrInvalidRequestID   = errors.New("invalid request id")
)
