package gateway

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"docurequest/internal/storage"
	"docurequest/internal/utils"
	"docurequest/pkg/types"

	"github.com/sirupsen/logrus"
)

type requestStore interface {
	CreateRequest(ctx context.Context, request *types.DocumentRequest) error
	Request(ctx context.Context, requestID string) (*types.DocumentRequest, error)
}

// Repository is the persistent gateway: the document goes to the upload
// store and the request row to postgres. Status changes are made out of
// band (see the status command) and read back verbatim.
type Repository struct {
	logger   *logrus.Logger
	requests requestStore
	uploads  storage.Uploads
	now      func() time.Time
}

func NewRepository(logger *logrus.Logger, requests requestStore, uploads storage.Uploads) *Repository {
	return &Repository{
		logger:   logger,
		requests: requests,
		uploads:  uploads,
		now:      time.Now,
	}
}

func (g *Repository) SubmitRequest(ctx context.Context, payload types.SubmitRequestPayload) (*types.SubmitRequestResponse, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	requestID := utils.RequestID()
	storageKey := path.Join("requests", requestID, path.Base(payload.FileName))

	err := g.uploads.Put(ctx, storageKey, payload.Content, payload.FileType, payload.FileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to store supporting document: %w", err)
	}

	submittedAt := g.now()
	info := payload.DocumentInfo

	request := &types.DocumentRequest{
		ID:                      requestID,
		FullName:                payload.PersonalInfo.FullName,
		Email:                   payload.PersonalInfo.Email,
		Phone:                   payload.PersonalInfo.Phone,
		DocumentType:            info.Type,
		LicenseNumber:           utils.NilIfEmpty(info.LicenseNumber),
		ReferenceNumber:         utils.NilIfEmpty(info.ReferenceNumber),
		IssueDate:               utils.NilIfEmpty(info.IssueDate),
		AdditionalInfo:          utils.NilIfEmpty(info.AdditionalInfo),
		FileName:                payload.FileName,
		FileContentType:         payload.FileType,
		FileSizeBytes:           payload.FileSize,
		StorageKey:              storageKey,
		Status:                  types.StatusPending,
		Notes:                   utils.StringPtr(types.StatusPending.Notes()),
		SubmittedAt:             submittedAt,
		EstimatedCompletionDate: estimateCompletion(submittedAt),
	}

	err = g.requests.CreateRequest(ctx, request)
	if err != nil {
		if delErr := g.uploads.Delete(ctx, storageKey); delErr != nil {
			g.logger.WithError(delErr).WithField("storage_key", storageKey).Error("failed to remove orphaned supporting document")
		}
		return nil, err
	}

	g.logger.WithFields(logrus.Fields{
		"request_id":    requestID,
		"document_type": info.Type,
		"storage_key":   storageKey,
	}).Info("document request stored")

	return &types.SubmitRequestResponse{
		RequestID:               requestID,
		EstimatedCompletionDate: request.EstimatedCompletionDate.Format(types.DateLayout),
		Message:                 submittedMessage,
	}, nil
}

func (g *Repository) RequestStatus(ctx context.Context, requestID string) (*types.RequestStatus, error) {
	request, err := g.requests.Request(ctx, requestID)
	if err != nil {
		if errors.Is(err, types.ErrRequestNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}

	notes := utils.PtrString(request.Notes)
	if notes == "" {
		notes = request.Status.Notes()
	}

	return &types.RequestStatus{
		ID:                      request.ID,
		Status:                  request.Status,
		SubmittedDate:           request.SubmittedAt.Format(types.DateLayout),
		EstimatedCompletionDate: request.EstimatedCompletionDate.Format(types.DateLayout),
		Notes:                   notes,
	}, nil
}
