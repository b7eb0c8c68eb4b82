package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
)

func TestTraceStoreUpsertAndGet(t *testing.T) {
	store := NewTraceStore()
	ctx := context.Background()

	run := entity.NewRun("q", "single_agent")
	run.Finish("a")
	doc := entity.BuildTraceDocument(run)

	require.NoError(t, store.Upsert(ctx, doc))

	got, err := store.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.Equal(t, 1, store.Len())
}

func TestTraceStoreUpsertOverwrites(t *testing.T) {
	store := NewTraceStore()
	ctx := context.Background()

	run := entity.NewRun("q", "single_agent")
	run.Finish("first")
	require.NoError(t, store.Upsert(ctx, entity.BuildTraceDocument(run)))

	run.FinalAnswer = "second"
	require.NoError(t, store.Upsert(ctx, entity.BuildTraceDocument(run)))

	got, err := store.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.FinalAnswer)
	assert.Equal(t, 1, store.Len(), "same run id never duplicates")
}

func TestTraceStoreGetMissing(t *testing.T) {
	store := NewTraceStore()
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, errno.ErrTraceNotFound)
}

func TestTraceStoreInfo(t *testing.T) {
	info, err := NewTraceStore().Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inmemory", info.Kind)
}
