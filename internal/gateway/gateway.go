// Package gateway implements the submission and status boundaries the
// wizard talks to.
package gateway

import (
	"errors"
	"math/rand/v2"
	"time"

	"docurequest/pkg/types"
)

var ErrMissingFile = errors.New("no file provided")

const (
	submittedMessage = "Your document request has been submitted successfully."

	minProcessingDays = 7
	maxProcessingDays = 14
)

// estimateCompletion picks a completion date 7 to 14 days after submission.
func estimateCompletion(submittedAt time.Time) time.Time {
	days := minProcessingDays + rand.IntN(maxProcessingDays-minProcessingDays+1)
	return submittedAt.AddDate(0, 0, days)
}

// statusAt derives a status from the request's schedule so repeated lookups
// for the same identifier agree with each other.
func statusAt(submittedAt, estimated, now time.Time) types.RequestStatusKind {
	switch {
	case now.Before(submittedAt.Add(24 * time.Hour)):
		return types.StatusPending
	case now.Before(estimated):
		return types.StatusUnderReview
	default:
		return types.StatusCompleted
	}
}

func validatePayload(payload types.SubmitRequestPayload) error {
	if payload.Content == nil || payload.FileName == "" {
		return ErrMissingFile
	}
	return nil
}
