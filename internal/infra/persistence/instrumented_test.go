package persistence

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"addrcard/internal/domain/repository"
	"addrcard/internal/infra/metrics"
	"addrcard/internal/infra/persistence/memory"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumented(t *testing.T) {
	m := metrics.New()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	store := NewInstrumented(memory.New(), "memory", m, logger)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "address", []byte("v")))
	value, found, err := store.Get(ctx, "address")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", string(value))
	assert.Empty(t, logs.String())

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	err = store.Remove(canceled, "address")
	require.ErrorIs(t, err, repository.ErrStoreIO)

	assert.InDelta(t, 1, testutil.ToFloat64(m.StoreErrors.WithLabelValues("memory", repository.OpRemove)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.StoreErrors.WithLabelValues("memory", repository.OpSet)), 0)
	assert.Contains(t, logs.String(), "Record store operation failed")
	assert.Contains(t, logs.String(), "op=remove")
}

func TestInstrumented_NilCollaborators(t *testing.T) {
	store := NewInstrumented(memory.New(), "memory", nil, nil)

	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))
}
