package gateway

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"docurequest/internal/utils"
	"docurequest/pkg/types"

	"github.com/sirupsen/logrus"
)

const DefaultStubDelay = 1500 * time.Millisecond

type stubRecord struct {
	submittedAt time.Time
	estimated   time.Time
}

// Stub is an in-process gateway with a fixed latency. It remembers every
// identifier it issued so status lookups are deterministic.
type Stub struct {
	logger *logrus.Logger
	delay  time.Duration
	now    func() time.Time

	mutex   sync.RWMutex
	records map[string]stubRecord
}

func NewStub(logger *logrus.Logger, delay time.Duration) *Stub {
	return &Stub{
		logger:  logger,
		delay:   delay,
		now:     time.Now,
		records: make(map[string]stubRecord),
	}
}

func (s *Stub) SubmitRequest(ctx context.Context, payload types.SubmitRequestPayload) (*types.SubmitRequestResponse, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	received, err := io.Copy(io.Discard, payload.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to read supporting document: %w", err)
	}

	submittedAt := s.now()
	record := stubRecord{
		submittedAt: submittedAt,
		estimated:   estimateCompletion(submittedAt),
	}

	s.mutex.Lock()
	requestID := utils.RequestID()
	for {
		if _, taken := s.records[requestID]; !taken {
			break
		}
		requestID = utils.RequestID()
	}
	s.records[requestID] = record
	s.mutex.Unlock()

	s.logger.WithFields(logrus.Fields{
		"request_id":    requestID,
		"document_type": payload.DocumentInfo.Type,
		"file_bytes":    received,
	}).Info("document request accepted")

	return &types.SubmitRequestResponse{
		RequestID:               requestID,
		EstimatedCompletionDate: record.estimated.Format(types.DateLayout),
		Message:                 submittedMessage,
	}, nil
}

func (s *Stub) RequestStatus(ctx context.Context, requestID string) (*types.RequestStatus, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	record, ok := s.records[requestID]
	s.mutex.RUnlock()

	if !ok {
		return nil, types.ErrRequestNotFound
	}

	status := statusAt(record.submittedAt, record.estimated, s.now())

	return &types.RequestStatus{
		ID:                      requestID,
		Status:                  status,
		SubmittedDate:           record.submittedAt.Format(types.DateLayout),
		EstimatedCompletionDate: record.estimated.Format(types.DateLayout),
		Notes:                   status.Notes(),
	}, nil
}

func (s *Stub) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
