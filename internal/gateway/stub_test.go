package gateway

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"docurequest/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testPayload(content string) types.SubmitRequestPayload {
	return types.SubmitRequestPayload{
		PersonalInfo: types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", Phone: "555-123-4567"},
		DocumentInfo: types.DocumentInfo{Type: types.DocTypeDriversLicense, LicenseNumber: "D1234567"},
		FileName:     "license.png",
		FileType:     "image/png",
		FileSize:     int64(len(content)),
		Content:      strings.NewReader(content),
	}
}

func TestStubSubmitRequest(t *testing.T) {
	stub := NewStub(quietLogger(), 0)
	submittedAt := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	stub.now = func() time.Time { return submittedAt }

	response, err := stub.SubmitRequest(context.Background(), testPayload("png"))
	require.NoError(t, err)
	require.Regexp(t, `^[0-9A-Z]{8}$`, response.RequestID)
	require.Equal(t, submittedMessage, response.Message)

	estimated, err := time.Parse(types.DateLayout, response.EstimatedCompletionDate)
	require.NoError(t, err)
	require.False(t, estimated.Before(time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC)))
	require.False(t, estimated.After(time.Date(2026, 10, 29, 0, 0, 0, 0, time.UTC)))
}

func TestStubSubmitWithoutFile(t *testing.T) {
	stub := NewStub(quietLogger(), 0)

	payload := testPayload("")
	payload.Content = nil

	_, err := stub.SubmitRequest(context.Background(), payload)
	require.ErrorIs(t, err, ErrMissingFile)
}

func TestStubIssuesUniqueIDs(t *testing.T) {
	stub := NewStub(quietLogger(), 0)
	seen := make(map[string]bool)

	for range 50 {
		response, err := stub.SubmitRequest(context.Background(), testPayload("pdf"))
		require.NoError(t, err)
		require.False(t, seen[response.RequestID])
		seen[response.RequestID] = true
	}
}

func TestStubRequestStatus(t *testing.T) {
	stub := NewStub(quietLogger(), 0)
	submittedAt := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	clock := submittedAt
	stub.now = func() time.Time { return clock }

	response, err := stub.SubmitRequest(context.Background(), testPayload("pdf"))
	require.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		_, err := stub.RequestStatus(context.Background(), "ZZZZZZZZ")
		require.ErrorIs(t, err, types.ErrRequestNotFound)
	})

	t.Run("repeated lookups agree", func(t *testing.T) {
		first, err := stub.RequestStatus(context.Background(), response.RequestID)
		require.NoError(t, err)
		second, err := stub.RequestStatus(context.Background(), response.RequestID)
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, "2026-10-15", first.SubmittedDate)
		require.Equal(t, response.EstimatedCompletionDate, first.EstimatedCompletionDate)
	})

	t.Run("status follows the schedule", func(t *testing.T) {
		clock = submittedAt.Add(time.Hour)
		status, err := stub.RequestStatus(context.Background(), response.RequestID)
		require.NoError(t, err)
		require.Equal(t, types.StatusPending, status.Status)
		require.Equal(t, types.StatusPending.Notes(), status.Notes)

		clock = submittedAt.Add(48 * time.Hour)
		status, err = stub.RequestStatus(context.Background(), response.RequestID)
		require.NoError(t, err)
		require.Equal(t, types.StatusUnderReview, status.Status)
		require.Equal(t, "Your request is currently being processed by our team.", status.Notes)

		clock = submittedAt.AddDate(0, 0, 15)
		status, err = stub.RequestStatus(context.Background(), response.RequestID)
		require.NoError(t, err)
		require.Equal(t, types.StatusCompleted, status.Status)
		require.Equal(t, "Your document is ready for collection.", status.Notes)
	})
}

func TestStubHonoursCancellation(t *testing.T) {
	stub := NewStub(quietLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stub.SubmitRequest(ctx, testPayload("pdf"))
	require.ErrorIs(t, err, context.Canceled)

	_, err = stub.RequestStatus(ctx, "AB12CD34")
	require.ErrorIs(t, err, context.Canceled)
}

func TestEstimateCompletionWindow(t *testing.T) {
	submittedAt := time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC)

	for range 200 {
		estimated := estimateCompletion(submittedAt)
		require.False(t, estimated.Before(submittedAt.AddDate(0, 0, minProcessingDays)))
		require.False(t, estimated.After(submittedAt.AddDate(0, 0, maxProcessingDays)))
	}
}
