package wizard

import (
	"context"
	"errors"
	"testing"

	"docurequest/internal/store"
	"docurequest/internal/utils"
	"docurequest/pkg/types"

	"github.com/stretchr/testify/require"
)

type failingStore struct {
	store.DraftStore
}

func (failingStore) Save(context.Context, string, *types.RequestState) error {
	return errors.New("disk full")
}

func loadFresh(t *testing.T) (*State, *store.MemoryDraftStore) {
	t.Helper()

	drafts := store.NewMemoryDraftStore()
	state, err := Load(context.Background(), drafts, "session-1")
	require.NoError(t, err)
	return state, drafts
}

func TestLoadStartsFromDefaults(t *testing.T) {
	state, _ := loadFresh(t)

	require.Equal(t, DefaultRequestState(), state.Snapshot())
}

func TestKeyIsScopedToSession(t *testing.T) {
	require.Equal(t, "document-request-store:abc", Key("abc"))
	require.NotEqual(t, Key("abc"), Key("abd"))
}

func TestMutationsArePersisted(t *testing.T) {
	ctx := context.Background()
	state, drafts := loadFresh(t)

	err := state.UpdatePersonalInfo(ctx, types.PersonalInfo{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-123-4567",
	}.AsPatch())
	require.NoError(t, err)
	require.NoError(t, state.SetStep(ctx, StepDocumentType))

	reloaded, err := Load(ctx, drafts, "session-1")
	require.NoError(t, err)
	require.Equal(t, state.Snapshot(), reloaded.Snapshot())
	require.Equal(t, StepDocumentType, reloaded.Snapshot().Step)
	require.Equal(t, "Jane Doe", reloaded.Snapshot().PersonalInfo.FullName)

	other, err := Load(ctx, drafts, "session-2")
	require.NoError(t, err)
	require.Equal(t, DefaultRequestState(), other.Snapshot())
}

func TestUpdatePersonalInfoMerges(t *testing.T) {
	ctx := context.Background()
	state, _ := loadFresh(t)

	require.NoError(t, state.UpdatePersonalInfo(ctx, types.PersonalInfo{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-123-4567",
	}.AsPatch()))

	require.NoError(t, state.UpdatePersonalInfo(ctx, types.PersonalInfoPatch{
		Email: utils.StringPtr("jane.doe@example.com"),
	}))

	info := state.Snapshot().PersonalInfo
	require.Equal(t, "Jane Doe", info.FullName)
	require.Equal(t, "jane.doe@example.com", info.Email)
	require.Equal(t, "555-123-4567", info.Phone)
}

func TestUpdateDocumentInfoMerges(t *testing.T) {
	ctx := context.Background()
	state, _ := loadFresh(t)

	docType := types.DocTypeDriversLicense
	require.NoError(t, state.UpdateDocumentInfo(ctx, types.DocumentInfoPatch{
		Type:          &docType,
		LicenseNumber: utils.StringPtr("D1234567"),
	}))
	require.NoError(t, state.UpdateDocumentInfo(ctx, types.DocumentInfoPatch{
		AdditionalInfo: utils.StringPtr("urgent"),
	}))

	info := state.Snapshot().DocumentInfo
	require.Equal(t, types.DocTypeDriversLicense, info.Type)
	require.Equal(t, "D1234567", info.LicenseNumber)
	require.Equal(t, "urgent", info.AdditionalInfo)
}

func TestUpdateFileInfoPreviewOnlyForImages(t *testing.T) {
	ctx := context.Background()
	pdf := &types.FileRef{Name: "scan.pdf", ContentType: "application/pdf", Size: 100, StorageKey: "k1"}
	png := &types.FileRef{Name: "scan.png", ContentType: "image/png", Size: 100, StorageKey: "k2"}

	t.Run("image keeps preview", func(t *testing.T) {
		state, _ := loadFresh(t)

		require.NoError(t, state.UpdateFileInfo(ctx, types.FileInfoPatch{
			File:    png,
			Preview: Preview(png, []byte{0x89, 'P', 'N', 'G'}),
		}))

		info := state.Snapshot().FileInfo
		require.Equal(t, png, info.File)
		require.NotNil(t, info.Preview)
		require.Contains(t, *info.Preview, "data:image/png;base64,")
	})

	t.Run("non image drops preview", func(t *testing.T) {
		state, _ := loadFresh(t)

		require.NoError(t, state.UpdateFileInfo(ctx, types.FileInfoPatch{
			File:    png,
			Preview: Preview(png, []byte("png")),
		}))
		require.NoError(t, state.UpdateFileInfo(ctx, types.FileInfoPatch{File: pdf}))

		info := state.Snapshot().FileInfo
		require.Equal(t, pdf, info.File)
		require.Nil(t, info.Preview)
	})

	t.Run("stray preview without image is ignored", func(t *testing.T) {
		state, _ := loadFresh(t)

		require.NoError(t, state.UpdateFileInfo(ctx, types.FileInfoPatch{
			File:    pdf,
			Preview: utils.StringPtr("data:application/pdf;base64,AAAA"),
		}))

		require.Nil(t, state.Snapshot().FileInfo.Preview)
	})
}

func TestClearFile(t *testing.T) {
	ctx := context.Background()
	state, _ := loadFresh(t)
	png := &types.FileRef{Name: "a.png", ContentType: "image/png", Size: 3}

	require.NoError(t, state.UpdateFileInfo(ctx, types.FileInfoPatch{File: png, Preview: Preview(png, []byte("abc"))}))
	require.NoError(t, state.ClearFile(ctx))

	require.Equal(t, types.FileInfo{}, state.Snapshot().FileInfo)
}

func TestResetKeepsLastOutcome(t *testing.T) {
	ctx := context.Background()
	state, drafts := loadFresh(t)

	outcome := types.RequestStatus{
		ID:                      "AB12CD34",
		Status:                  types.StatusPending,
		SubmittedDate:           "2026-10-15",
		EstimatedCompletionDate: "2026-10-25",
		Notes:                   types.StatusPending.Notes(),
	}

	require.NoError(t, state.UpdatePersonalInfo(ctx, types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", Phone: "555-123-4567"}.AsPatch()))
	require.NoError(t, state.SetStep(ctx, StepReview))
	require.NoError(t, state.SetSubmissionOutcome(ctx, outcome))
	require.NoError(t, state.MarkSubmitted(ctx, true))

	require.NoError(t, state.Reset(ctx))

	snapshot := state.Snapshot()
	require.Equal(t, StepPersonalInfo, snapshot.Step)
	require.Equal(t, types.PersonalInfo{}, snapshot.PersonalInfo)
	require.Equal(t, types.DocumentInfo{}, snapshot.DocumentInfo)
	require.Equal(t, types.FileInfo{}, snapshot.FileInfo)
	require.False(t, snapshot.IsSubmitted)
	require.False(t, snapshot.IsSubmitting)
	require.Nil(t, snapshot.SubmissionError)
	require.NotNil(t, snapshot.RequestStatus)
	require.Equal(t, outcome, *snapshot.RequestStatus)

	reloaded, err := Load(ctx, drafts, "session-1")
	require.NoError(t, err)
	require.Equal(t, outcome, *reloaded.Snapshot().RequestStatus)
}

func TestSubmissionFlags(t *testing.T) {
	ctx := context.Background()
	state, _ := loadFresh(t)

	require.NoError(t, state.EndSubmission(ctx, errors.New("gateway down")))
	require.NotNil(t, state.Snapshot().SubmissionError)
	require.Equal(t, "gateway down", *state.Snapshot().SubmissionError)

	require.NoError(t, state.BeginSubmission(ctx))
	require.True(t, state.Snapshot().IsSubmitting)
	require.Nil(t, state.Snapshot().SubmissionError)

	require.ErrorIs(t, state.BeginSubmission(ctx), ErrSubmissionInFlight)

	require.NoError(t, state.EndSubmission(ctx, nil))
	require.False(t, state.Snapshot().IsSubmitting)
	require.Nil(t, state.Snapshot().SubmissionError)
}

func TestPersistFailureIsReturned(t *testing.T) {
	state, err := Load(context.Background(), failingStore{store.NewMemoryDraftStore()}, "session-1")
	require.NoError(t, err)

	err = state.SetStep(context.Background(), StepDocumentType)
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
}
