package server

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"docurequest/internal/utils"
	"docurequest/internal/wizard"
	"docurequest/pkg/types"
)

// multipart overhead allowed on top of the largest accepted file
const uploadSlackBytes = 1 << 20

func (s *Service) handleGetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	data := &types.PersonalInfoPageData{
		BasePageData: types.BasePageData{Title: "Personal Information"},
		Steps:        types.StepProgress(wizard.StepPersonalInfo),
		Form:         state.Snapshot().PersonalInfo,
	}

	s.render(w, http.StatusOK, "page.request.step1", data)
}

func (s *Service) handlePostPersonalInfo(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	err := r.ParseForm()
	if err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var info = new(types.PersonalInfo)
	err = decoder.Decode(info, r.Form)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode form onto personal info")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	info.FullName = strings.TrimSpace(info.FullName)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)

	fieldErrors := s.validator.PersonalInfo(*info)
	if len(fieldErrors) > 0 {
		s.logger.WithField("field_errors", fieldErrors).Info("validation errors on personal info")

		data := &types.PersonalInfoPageData{
			BasePageData: types.BasePageData{Title: "Personal Information"},
			Steps:        types.StepProgress(wizard.StepPersonalInfo),
			Form:         *info,
			FieldErrors:  fieldErrors,
		}
		s.render(w, http.StatusUnprocessableEntity, "page.request.step1", data)
		return
	}

	if err := state.UpdatePersonalInfo(ctx, info.AsPatch()); err != nil {
		s.persistFailed(w, r, err)
		return
	}

	if err := state.SetStep(ctx, wizard.StepDocumentType); err != nil {
		s.persistFailed(w, r, err)
		return
	}

	http.Redirect(w, r, stepPath(wizard.StepDocumentType), http.StatusSeeOther)
}

func (s *Service) handleGetDocumentInfo(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	if !s.guardStep(w, r, state, wizard.StepDocumentType) {
		return
	}

	data := &types.DocumentInfoPageData{
		BasePageData:  types.BasePageData{Title: "Document Type"},
		Steps:         types.StepProgress(wizard.StepDocumentType),
		Form:          state.Snapshot().DocumentInfo,
		DocumentKinds: types.DocumentKinds,
	}

	s.render(w, http.StatusOK, "page.request.step2", data)
}

func (s *Service) handlePostDocumentInfo(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	if !s.guardStep(w, r, state, wizard.StepDocumentType) {
		return
	}

	err := r.ParseForm()
	if err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var info = new(types.DocumentInfo)
	err = decoder.Decode(info, r.Form)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode form onto document info")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	info.LicenseNumber = strings.TrimSpace(info.LicenseNumber)
	info.ReferenceNumber = strings.TrimSpace(info.ReferenceNumber)
	info.IssueDate = strings.TrimSpace(info.IssueDate)
	info.AdditionalInfo = strings.TrimSpace(info.AdditionalInfo)

	fieldErrors := s.validator.DocumentInfo(*info)
	if len(fieldErrors) > 0 {
		s.logger.WithField("field_errors", fieldErrors).Info("validation errors on document info")

		data := &types.DocumentInfoPageData{
			BasePageData:  types.BasePageData{Title: "Document Type"},
			Steps:         types.StepProgress(wizard.StepDocumentType),
			Form:          *info,
			DocumentKinds: types.DocumentKinds,
			FieldErrors:   fieldErrors,
		}
		s.render(w, http.StatusUnprocessableEntity, "page.request.step2", data)
		return
	}

	if err := state.UpdateDocumentInfo(ctx, info.AsPatch()); err != nil {
		s.persistFailed(w, r, err)
		return
	}

	if err := state.SetStep(ctx, wizard.StepUpload); err != nil {
		s.persistFailed(w, r, err)
		return
	}

	http.Redirect(w, r, stepPath(wizard.StepUpload), http.StatusSeeOther)
}

func (s *Service) handlePostDocumentInfoBack(w http.ResponseWriter, r *http.Request) {
	s.stepBack(w, r, wizard.StepPersonalInfo)
}

func (s *Service) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	if !s.guardStep(w, r, state, wizard.StepUpload) {
		return
	}

	s.renderUpload(w, http.StatusOK, state.Snapshot(), nil)
}

func (s *Service) renderUpload(w http.ResponseWriter, status int, draft types.RequestState, fieldErrors wizard.FieldErrors) {
	data := &types.UploadPageData{
		BasePageData:  types.BasePageData{Title: "Supporting Documents"},
		Steps:         types.StepProgress(wizard.StepUpload),
		DocumentLabel: draft.DocumentInfo.Type.Label(),
		File:          draft.FileInfo.File,
		Preview:       draft.FileInfo.Preview,
		MaxSizeMB:     s.config.MaxUploadBytes >> 20,
		FieldErrors:   fieldErrors,
	}

	s.render(w, status, "page.request.step3", data)
}

func (s *Service) handlePostUpload(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	if !s.guardStep(w, r, state, wizard.StepUpload) {
		return
	}

	draft := state.Snapshot()
	previous := draft.FileInfo.File

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes+uploadSlackBytes)
	err := r.ParseMultipartForm(s.config.MaxUploadBytes)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.renderUpload(w, http.StatusRequestEntityTooLarge, draft, wizard.FieldErrors{
				"file": "File size is too large. Maximum allowed size is 5MB.",
			})
			return
		}
		s.logger.WithError(err).Error("failed to parse upload form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	if r.FormValue("clear") != "" {
		s.removeUpload(r, previous)
		if err := state.ClearFile(ctx); err != nil {
			s.persistFailed(w, r, err)
			return
		}
		http.Redirect(w, r, stepPath(wizard.StepUpload), http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		// keep the file chosen on an earlier visit
		if previous != nil {
			s.advanceToReview(w, r, state)
			return
		}
		s.renderUpload(w, http.StatusUnprocessableEntity, draft, s.validator.File(nil))
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to read uploaded file")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ref := &types.FileRef{
		Name:        path.Base(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	fieldErrors := s.validator.File(ref)
	if len(fieldErrors) > 0 {
		s.logger.WithField("field_errors", fieldErrors).Info("validation errors on upload")
		s.renderUpload(w, http.StatusUnprocessableEntity, draft, fieldErrors)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		s.logger.WithError(err).Error("failed to read uploaded file")
		s.internalServerError(w)
		return
	}

	sessionID, _ := s.sessionIDFromContext(ctx)
	ref.StorageKey = path.Join("drafts", sessionID, utils.NanoIDSize(12), ref.Name)

	err = s.uploads.Put(ctx, ref.StorageKey, bytes.NewReader(content), ref.ContentType, ref.Size)
	if err != nil {
		s.logger.WithError(err).WithField("storage_key", ref.StorageKey).Error("failed to store upload")
		s.internalServerError(w)
		return
	}

	s.removeUpload(r, previous)

	err = state.UpdateFileInfo(ctx, types.FileInfoPatch{
		File:    ref,
		Preview: wizard.Preview(ref, content),
	})
	if err != nil {
		s.persistFailed(w, r, err)
		return
	}

	s.advanceToReview(w, r, state)
}

func (s *Service) advanceToReview(w http.ResponseWriter, r *http.Request, state *wizard.State) {
	if err := state.SetStep(r.Context(), wizard.StepReview); err != nil {
		s.persistFailed(w, r, err)
		return
	}

	http.Redirect(w, r, stepPath(wizard.StepReview), http.StatusSeeOther)
}

// removeUpload deletes a replaced draft file. Failures only leave an orphan
// object behind, so they are logged and otherwise ignored.
func (s *Service) removeUpload(r *http.Request, ref *types.FileRef) {
	if ref == nil || ref.StorageKey == "" {
		return
	}

	err := s.uploads.Delete(r.Context(), ref.StorageKey)
	if err != nil {
		s.logger.WithError(err).WithField("storage_key", ref.StorageKey).Warn("failed to remove previous upload")
	}
}

func (s *Service) handlePostUploadBack(w http.ResponseWriter, r *http.Request) {
	s.stepBack(w, r, wizard.StepDocumentType)
}

func (s *Service) stepBack(w http.ResponseWriter, r *http.Request, step int) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	if err := state.SetStep(r.Context(), step); err != nil {
		s.persistFailed(w, r, err)
		return
	}

	http.Redirect(w, r, stepPath(step), http.StatusSeeOther)
}

func (s *Service) handleGetUploadedFile(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	ref := state.Snapshot().FileInfo.File
	if ref == nil {
		http.NotFound(w, r)
		return
	}

	content, err := s.uploads.Open(r.Context(), ref.StorageKey)
	if err != nil {
		s.logger.WithError(err).WithField("storage_key", ref.StorageKey).Error("failed to open upload")
		http.NotFound(w, r)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", ref.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": ref.Name}))
	if _, err := io.Copy(w, content); err != nil {
		s.logger.WithError(err).Warn("failed to stream upload")
	}
}
