package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"docurequest/internal/wizard"
	"docurequest/pkg/types"

	"github.com/sirupsen/logrus"
)

var stepPaths = []string{
	wizard.StepPersonalInfo: "/request/step1",
	wizard.StepDocumentType: "/request/step2",
	wizard.StepUpload:       "/request/step3",
	wizard.StepReview:       "/request/review",
}

func stepPath(step int) string {
	if step < 0 || step >= len(stepPaths) {
		return stepPaths[wizard.StepPersonalInfo]
	}
	return stepPaths[step]
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	data := &types.HomePageData{
		BasePageData: types.BasePageData{Title: "DocuRequest"},
		Notice:       strings.TrimSpace(r.URL.Query().Get("notice")),
		Error:        strings.TrimSpace(r.URL.Query().Get("error")),
		LastStatus:   state.Snapshot().RequestStatus,
	}

	s.render(w, http.StatusOK, "page.home", data)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) sessionIDFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(contextKeySessionID).(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("session id not found in context")
	}
	return sessionID, nil
}

// loadState opens the session's wizard state, answering with a 500 when it
// cannot be read.
func (s *Service) loadState(w http.ResponseWriter, r *http.Request) (*wizard.State, bool) {
	ctx := r.Context()

	sessionID, err := s.sessionIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain session")
		s.internalServerError(w)
		return nil, false
	}

	state, err := wizard.Load(ctx, s.drafts, sessionID)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Error("failed to load draft")
		s.internalServerError(w)
		return nil, false
	}

	return state, true
}

// guardStep redirects to the earliest incomplete step when the page for
// step may not be shown yet.
func (s *Service) guardStep(w http.ResponseWriter, r *http.Request, state *wizard.State, step int) bool {
	redirect, ok := wizard.Guard(state.Snapshot(), step)
	if ok {
		return true
	}

	s.logger.WithFields(logrus.Fields{
		"entering": step,
		"redirect": redirect,
	}).Debug("step guard redirect")

	http.Redirect(w, r, stepPath(redirect), http.StatusSeeOther)
	return false
}

func (s *Service) persistFailed(w http.ResponseWriter, r *http.Request, err error) {
	sessionID, _ := s.sessionIDFromContext(r.Context())
	s.logger.WithError(err).WithField("session_id", sessionID).Error("failed to update draft")
	s.internalServerError(w)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
