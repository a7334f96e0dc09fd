package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"docurequest/internal/wizard"
	"docurequest/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleGetReview(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	draft := state.Snapshot()

	if draft.IsSubmitted && draft.RequestStatus != nil {
		data := &types.ConfirmationPageData{
			BasePageData: types.BasePageData{Title: "Request Submitted"},
			Outcome:      draft.RequestStatus,
			PersonalInfo: draft.PersonalInfo,
		}
		s.render(w, http.StatusOK, "page.request.confirmation", data)
		return
	}

	if !s.guardStep(w, r, state, wizard.StepReview) {
		return
	}

	data := &types.ReviewPageData{
		BasePageData:  types.BasePageData{Title: "Review & Submit"},
		Steps:         types.StepProgress(wizard.StepReview),
		State:         draft,
		DocumentLabel: draft.DocumentInfo.Type.Label(),
	}
	if draft.SubmissionError != nil {
		data.Error = *draft.SubmissionError
	}

	s.render(w, http.StatusOK, "page.request.review", data)
}

func (s *Service) handlePostReviewEdit(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(flow.Param(r.Context(), "step"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	if state.Snapshot().IsSubmitted {
		http.Redirect(w, r, stepPath(wizard.StepReview), http.StatusSeeOther)
		return
	}

	if err := state.SetStep(r.Context(), step); err != nil {
		s.persistFailed(w, r, err)
		return
	}

	http.Redirect(w, r, stepPath(step), http.StatusSeeOther)
}

func (s *Service) handlePostDismissError(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	if !state.Snapshot().IsSubmitting {
		if err := state.EndSubmission(r.Context(), nil); err != nil {
			s.persistFailed(w, r, err)
			return
		}
	}

	http.Redirect(w, r, stepPath(wizard.StepReview), http.StatusSeeOther)
}

func (s *Service) handlePostSubmit(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	draft := state.Snapshot()
	if draft.IsSubmitted {
		http.Redirect(w, r, stepPath(wizard.StepReview), http.StatusSeeOther)
		return
	}

	if !s.guardStep(w, r, state, wizard.StepReview) {
		return
	}

	// the submission outlives a client that navigates away, otherwise the
	// draft would be left marked as submitting
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), time.Duration(s.config.GatewayTimeoutSec)*time.Second)
	defer cancel()

	sessionID, _ := s.sessionIDFromContext(ctx)
	entry := s.logger.WithField("session_id", sessionID)

	outcome, err := wizard.Submit(ctx, state, s.submitter, s.uploads, time.Now())
	switch {
	case errors.Is(err, wizard.ErrNoFile):
		entry.Info("submission attempted without a supporting document")
		http.Redirect(w, r, stepPath(wizard.StepUpload), http.StatusSeeOther)
		return
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		entry.Info("submission already in flight")
		http.Redirect(w, r, stepPath(wizard.StepReview), http.StatusSeeOther)
		return
	case err != nil:
		entry.WithError(err).Error("failed to submit document request")
		http.Redirect(w, r, stepPath(wizard.StepReview), http.StatusSeeOther)
		return
	}

	entry.WithField("request_id", outcome.ID).Info("document request submitted")

	http.Redirect(w, r, stepPath(wizard.StepReview), http.StatusSeeOther)
}

func (s *Service) handlePostNewRequest(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	// the gateway keeps its own copy of a submitted file
	s.removeUpload(r, state.Snapshot().FileInfo.File)

	if err := state.Reset(r.Context()); err != nil {
		s.persistFailed(w, r, err)
		return
	}

	http.Redirect(w, r, stepPath(wizard.StepPersonalInfo), http.StatusSeeOther)
}
