package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryUploads(t *testing.T) {
	ctx := context.Background()
	uploads := NewMemoryUploads()

	_, err := uploads.Open(ctx, "drafts/s1/a.pdf")
	require.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, uploads.Put(ctx, "drafts/s1/a.pdf", strings.NewReader("%PDF-1.7"), "application/pdf", 8))

	body, err := uploads.Open(ctx, "drafts/s1/a.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	require.Equal(t, "%PDF-1.7", string(data))

	require.NoError(t, uploads.Delete(ctx, "drafts/s1/a.pdf"))
	_, err = uploads.Open(ctx, "drafts/s1/a.pdf")
	require.ErrorIs(t, err, ErrObjectNotFound)

	// deleting a missing object is not an error
	require.NoError(t, uploads.Delete(ctx, "drafts/s1/a.pdf"))
}
