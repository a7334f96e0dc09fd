package server

import (
	"errors"
	"net/http"
	"net/url"

	"docurequest/internal/wizard"
	"docurequest/pkg/types"

	"github.com/alexedwards/flow"
)

const statusLookupFailed = "Unable to retrieve request status. Please check your request ID and try again."

func (s *Service) handleGetStatusSearch(w http.ResponseWriter, r *http.Request) {
	data := &types.StatusSearchPageData{
		BasePageData: types.BasePageData{Title: "Check Request Status"},
		RequestID:    r.URL.Query().Get("id"),
	}

	s.render(w, http.StatusOK, "page.status.search", data)
}

func (s *Service) handlePostStatusSearch(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	requestID := r.PostForm.Get("requestId")

	fieldErrors := s.validator.RequestID(requestID)
	if len(fieldErrors) > 0 {
		data := &types.StatusSearchPageData{
			BasePageData: types.BasePageData{Title: "Check Request Status"},
			RequestID:    requestID,
			FieldErrors:  fieldErrors,
		}
		s.render(w, http.StatusUnprocessableEntity, "page.status.search", data)
		return
	}

	http.Redirect(w, r, "/status/"+url.PathEscape(wizard.NormalizeRequestID(requestID)), http.StatusSeeOther)
}

func (s *Service) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	requestID := flow.Param(r.Context(), "id")

	data := &types.StatusDetailPageData{
		BasePageData: types.BasePageData{Title: "Request Status"},
		RequestID:    wizard.NormalizeRequestID(requestID),
	}

	status, err := wizard.LookupStatus(r.Context(), s.statuses, requestID)
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, types.ErrRequestNotFound) || errors.Is(err, wizard.ErrInvalidRequestID) {
			code = http.StatusNotFound
		} else {
			s.logger.WithError(err).WithField("request_id", data.RequestID).Error("failed to look up request status")
		}

		data.Error = statusLookupFailed
		s.render(w, code, "page.status.detail", data)
		return
	}

	data.Status = status
	s.render(w, http.StatusOK, "page.status.detail", data)
}
