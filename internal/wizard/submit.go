package wizard

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"docurequest/pkg/types"
)

// Submitter is the submission gateway.
type Submitter interface {
	SubmitRequest(ctx context.Context, payload types.SubmitRequestPayload) (*types.SubmitRequestResponse, error)
}

// StatusFetcher is the status gateway. Unknown identifiers yield
// types.ErrRequestNotFound.
type StatusFetcher interface {
	RequestStatus(ctx context.Context, requestID string) (*types.RequestStatus, error)
}

// ContentOpener gives access to the bytes of the selected file.
type ContentOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Submit drives Idle -> Submitting -> {Submitted, Failed} for the session's
// draft. A draft without a file fails before the gateway is called. On
// failure the error is recorded on the state and the draft stays editable.
func Submit(ctx context.Context, state *State, gateway Submitter, files ContentOpener, now time.Time) (*types.RequestStatus, error) {
	draft := state.Snapshot()

	if draft.FileInfo.File == nil {
		if err := state.EndSubmission(ctx, ErrNoFile); err != nil {
			return nil, err
		}
		return nil, ErrNoFile
	}

	if err := state.BeginSubmission(ctx); err != nil {
		return nil, err
	}

	response, err := send(ctx, draft, gateway, files)
	if err != nil {
		if endErr := state.EndSubmission(ctx, err); endErr != nil {
			return nil, endErr
		}
		return nil, err
	}

	outcome := types.RequestStatus{
		ID:                      response.RequestID,
		Status:                  types.StatusPending,
		SubmittedDate:           now.Format(types.DateLayout),
		EstimatedCompletionDate: response.EstimatedCompletionDate,
		Notes:                   types.StatusPending.Notes(),
	}

	if err := state.SetSubmissionOutcome(ctx, outcome); err != nil {
		return nil, err
	}

	if err := state.MarkSubmitted(ctx, true); err != nil {
		return nil, err
	}

	if err := state.EndSubmission(ctx, nil); err != nil {
		return nil, err
	}

	return &outcome, nil
}

func send(ctx context.Context, draft types.RequestState, gateway Submitter, files ContentOpener) (*types.SubmitRequestResponse, error) {
	file := draft.FileInfo.File

	content, err := files.Open(ctx, file.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open supporting document: %w", err)
	}
	defer content.Close()

	return gateway.SubmitRequest(ctx, types.SubmitRequestPayload{
		PersonalInfo: draft.PersonalInfo,
		DocumentInfo: draft.DocumentInfo,
		FileName:     file.Name,
		FileType:     file.ContentType,
		FileSize:     file.Size,
		Content:      content,
	})
}

// NormalizeRequestID trims and upper-cases an identifier typed by a user.
func NormalizeRequestID(requestID string) string {
	return strings.ToUpper(strings.TrimSpace(requestID))
}

// LookupStatus fetches the current status of a submitted request. It never
// touches the draft and can be repeated freely.
func LookupStatus(ctx context.Context, gateway StatusFetcher, requestID string) (*types.RequestStatus, error) {
	id := NormalizeRequestID(requestID)
	if len(id) < 4 {
		return nil, ErrInvalidRequestID
	}

	status, err := gateway.RequestStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status for request %s: %w", id, err)
	}

	return status, nil
}
