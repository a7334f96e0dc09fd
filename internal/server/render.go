package server

import (
	"net/http"
)

func (s *Service) renderTemplate(w http.ResponseWriter, status int, templateName string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	return s.templates.ExecuteTemplate(w, templateName, data)
}

func (s *Service) render(w http.ResponseWriter, status int, templateName string, data any) {
	err := s.renderTemplate(w, status, templateName, data)
	if err != nil {
		s.logger.WithError(err).WithField("template", templateName).Error("failed to render page")
		if status == http.StatusOK {
			s.internalServerError(w)
		}
	}
}
