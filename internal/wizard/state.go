// Package wizard holds the document request state machine: the persisted
// draft, its mutators, the step entry guards and the submission lifecycle.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"docurequest/internal"
	"docurequest/pkg/types"
)

// Store is the persistence the state is read from once and written back to
// after every mutation.
type Store interface {
	Load(ctx context.Context, key string) (*types.RequestState, error)
	Save(ctx context.Context, key string, state *types.RequestState) error
}

// State is the single source of truth for one session's draft. It is not
// safe for concurrent use; a session has one active page at a time.
type State struct {
	store Store
	key   string
	data  types.RequestState
}

// Key is the storage key of a session's draft blob.
func Key(sessionID string) string {
	return fmt.Sprintf("%s:%s", internal.DRAFT_STORE_NAME, sessionID)
}

// DefaultRequestState is the empty draft a session starts with.
func DefaultRequestState() types.RequestState {
	return types.RequestState{}
}

// Load rehydrates the session's draft, starting from defaults when nothing
// has been persisted yet.
func Load(ctx context.Context, store Store, sessionID string) (*State, error) {
	s := &State{
		store: store,
		key:   Key(sessionID),
		data:  DefaultRequestState(),
	}

	persisted, err := store.Load(ctx, s.key)
	if err != nil && !errors.Is(err, types.ErrDraftNotFound) {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	if persisted != nil {
		s.data = *persisted
	}

	return s, nil
}

// Snapshot returns a copy of the current state. Pointer fields are shared
// but never mutated in place.
func (s *State) Snapshot() types.RequestState {
	return s.data
}

func (s *State) persist(ctx context.Context) error {
	data := s.data
	if err := s.store.Save(ctx, s.key, &data); err != nil {
		return fmt.Errorf("failed to persist draft: %w", err)
	}
	return nil
}

// SetStep records the highest step reached. Callers validate beforehand.
func (s *State) SetStep(ctx context.Context, step int) error {
	s.data.Step = step
	return s.persist(ctx)
}

func (s *State) UpdatePersonalInfo(ctx context.Context, patch types.PersonalInfoPatch) error {
	info := &s.data.PersonalInfo
	if patch.FullName != nil {
		info.FullName = *patch.FullName
	}
	if patch.Email != nil {
		info.Email = *patch.Email
	}
	if patch.Phone != nil {
		info.Phone = *patch.Phone
	}
	return s.persist(ctx)
}

func (s *State) UpdateDocumentInfo(ctx context.Context, patch types.DocumentInfoPatch) error {
	info := &s.data.DocumentInfo
	if patch.Type != nil {
		info.Type = *patch.Type
	}
	if patch.LicenseNumber != nil {
		info.LicenseNumber = *patch.LicenseNumber
	}
	if patch.ReferenceNumber != nil {
		info.ReferenceNumber = *patch.ReferenceNumber
	}
	if patch.IssueDate != nil {
		info.IssueDate = *patch.IssueDate
	}
	if patch.AdditionalInfo != nil {
		info.AdditionalInfo = *patch.AdditionalInfo
	}
	return s.persist(ctx)
}

// UpdateFileInfo merges the patch and then drops any preview that does not
// belong to an image file.
func (s *State) UpdateFileInfo(ctx context.Context, patch types.FileInfoPatch) error {
	info := &s.data.FileInfo
	if patch.File != nil {
		info.File = patch.File
	}
	if patch.Preview != nil {
		info.Preview = patch.Preview
	}
	if !info.File.IsImage() {
		info.Preview = nil
	}
	return s.persist(ctx)
}

// ClearFile removes the selected file and its preview.
func (s *State) ClearFile(ctx context.Context) error {
	s.data.FileInfo = types.FileInfo{}
	return s.persist(ctx)
}

func (s *State) SetSubmissionOutcome(ctx context.Context, outcome types.RequestStatus) error {
	s.data.RequestStatus = &outcome
	return s.persist(ctx)
}

// BeginSubmission enters the Submitting state. It refuses a second
// submission while one is outstanding.
func (s *State) BeginSubmission(ctx context.Context) error {
	if s.data.IsSubmitting {
		return ErrSubmissionInFlight
	}
	s.data.IsSubmitting = true
	s.data.SubmissionError = nil
	return s.persist(ctx)
}

// EndSubmission leaves the Submitting state, recording err as the terminal
// submission error when non-nil.
func (s *State) EndSubmission(ctx context.Context, err error) error {
	s.data.IsSubmitting = false
	s.data.SubmissionError = nil
	if err != nil {
		msg := err.Error()
		s.data.SubmissionError = &msg
	}
	return s.persist(ctx)
}

func (s *State) MarkSubmitted(ctx context.Context, submitted bool) error {
	s.data.IsSubmitted = submitted
	return s.persist(ctx)
}

// Reset restores the draft to defaults but keeps the last outcome so the
// previous confirmation stays reachable.
func (s *State) Reset(ctx context.Context) error {
	outcome := s.data.RequestStatus
	s.data = DefaultRequestState()
	s.data.RequestStatus = outcome
	return s.persist(ctx)
}
