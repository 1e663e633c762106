package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"newsingest/internal/domain"
)

type recordingStore struct {
	*fakeStore
	batches  []int
	failFrom int
}

func (s *recordingStore) UpdateKeywordsBatch(ctx context.Context, updates map[string][]string) error {
	if s.failFrom > 0 && len(s.batches)+1 >= s.failFrom {
		return errors.New("write conflict")
	}
	s.batches = append(s.batches, len(updates))
	return s.fakeStore.UpdateKeywordsBatch(ctx, updates)
}

func seedMissingKeywords(t *testing.T, store *fakeStore) {
	t.Helper()

	titles := map[string]string{
		"b1": "Harbor Expansion Approved",
		"b2": "Rates Hold Steady",
		"b3": "",
		"b4": "Museum Reopens Downtown",
		"b5": "Drought Restrictions Eased",
	}
	for id, title := range titles {
		titleCopy := title
		require.NoError(t, store.Upsert(context.Background(), id, domain.ArticlePatch{Title: &titleCopy}))
	}
}

func TestBackfillBatchesUpdates(t *testing.T) {
	store := &recordingStore{fakeStore: newFakeStore()}
	seedMissingKeywords(t, store.fakeStore)

	b := NewBackfill(store, 2, slog.New(slog.NewTextHandler(io.Discard, nil)))

	updated, skipped, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, updated)
	require.Equal(t, 1, skipped)
	require.Equal(t, []int{2, 2}, store.batches)

	require.Equal(t, []string{"approved", "expansion", "harbor"}, store.articles["b1"].Keywords)
	require.Nil(t, store.articles["b3"].Keywords)
}

func TestBackfillSecondRunFindsNothing(t *testing.T) {
	store := &recordingStore{fakeStore: newFakeStore()}
	seedMissingKeywords(t, store.fakeStore)

	b := NewBackfill(store, 2, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, _, err := b.Run(context.Background())
	require.NoError(t, err)

	updated, skipped, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, updated)
	// The article with no usable text is scanned and skipped again.
	require.Equal(t, 1, skipped)
}

func TestBackfillKeepsCommittedBatchesOnError(t *testing.T) {
	store := &recordingStore{fakeStore: newFakeStore(), failFrom: 2}
	seedMissingKeywords(t, store.fakeStore)

	b := NewBackfill(store, 2, slog.New(slog.NewTextHandler(io.Discard, nil)))

	updated, _, err := b.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, 2, updated)
	require.Equal(t, []int{2}, store.batches)
	require.NotNil(t, store.articles["b1"].Keywords)
	require.Nil(t, store.articles["b5"].Keywords)
}

func TestBackfillDefaultBatchSize(t *testing.T) {
	b := NewBackfill(newFakeStore(), 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Equal(t, 100, b.batchSize)
}
