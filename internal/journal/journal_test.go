package journal

import (
	"context"
	"testing"
	"time"

	natsutil "github.com/mark3labs/attachr/internal/nats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJournal(t *testing.T) (*Journal, context.Context) {
	t.Helper()
	e, err := natsutil.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	j, err := Open(ctx, e.JS)
	require.NoError(t, err)
	return j, ctx
}

func TestList_Empty(t *testing.T) {
	j, ctx := openJournal(t)
	entries, err := j.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordAndList(t *testing.T) {
	j, ctx := openJournal(t)
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	require.NoError(t, j.Record(ctx, Entry{
		IdempotencyKey: "key-1",
		ProductID:      "prod_1",
		ProductTitle:   "Tee",
		VariantIDs:     []string{"v1", "v2"},
		Outcome:        OutcomeFailed,
		Error:          "Network error",
		At:             at,
	}))
	require.NoError(t, j.Record(ctx, Entry{
		IdempotencyKey: "key-1",
		ProductID:      "prod_1",
		ProductTitle:   "Tee",
		VariantIDs:     []string{"v1", "v2"},
	}))

	entries, err := j.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, OutcomeFailed, entries[0].Outcome)
	assert.Equal(t, "Network error", entries[0].Error)
	assert.True(t, at.Equal(entries[0].At))
	assert.Equal(t, uint64(1), entries[0].Seq)

	assert.Equal(t, OutcomeSucceeded, entries[1].Outcome)
	assert.False(t, entries[1].At.IsZero())
	assert.Equal(t, []string{"v1", "v2"}, entries[1].VariantIDs)
	assert.Equal(t, uint64(2), entries[1].Seq)
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	e, err := natsutil.Open(dir)
	require.NoError(t, err)
	j, err := Open(ctx, e.JS)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, Entry{ProductID: "prod_1", IdempotencyKey: "k"}))
	require.NoError(t, e.Close())

	e, err = natsutil.Open(dir)
	require.NoError(t, err)
	defer func() { _ = e.Close() }()
	j, err = Open(ctx, e.JS)
	require.NoError(t, err)

	entries, err := j.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "prod_1", entries[0].ProductID)
}

func TestReplay_FetchErrorIsReturned(t *testing.T) {
	e, err := natsutil.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	j, err := Open(ctx, e.JS)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, Entry{ProductID: "prod_1", Outcome: OutcomeSucceeded}))

	consumer, err := natsutil.ReplayConsumer(ctx, j.stream, "")
	require.NoError(t, err)
	e.Conn.Close()

	entries, err := replay(consumer)
	require.Error(t, err)
	assert.Nil(t, entries)
}
