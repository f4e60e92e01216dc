package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dtgosha/est92-resort2/internal/kv"
)

func TestSnapshotter_Snapshot(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	dir := t.TempDir()

	slot := kv.NewMemorySlot()
	snap := NewSnapshotter(slot, SnapshotConfig{Enabled: true, Path: dir}, &logger)

	t.Run("absent slot is skipped", func(t *testing.T) {
		require.NoError(t, snap.Snapshot(ctx))
		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("writes the raw payload", func(t *testing.T) {
		require.NoError(t, slot.Set(ctx, []byte(`[{"id":"bk_1"}]`)))
		require.NoError(t, snap.Snapshot(ctx))

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, files, 1)

		data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":"bk_1"}]`), data)
	})
}

func TestSnapshotter_CleanupOld(t *testing.T) {
	logger := zerolog.New(io.Discard)
	dir := t.TempDir()

	stale := filepath.Join(dir, "bookings_20200101_000000.json")
	require.NoError(t, os.WriteFile(stale, []byte("[]"), 0o644))
	old := time.Now().AddDate(0, 0, -30)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(dir, "bookings_fresh.json")
	require.NoError(t, os.WriteFile(fresh, []byte("[]"), 0o644))

	snap := NewSnapshotter(kv.NewMemorySlot(), SnapshotConfig{
		Enabled:       true,
		Path:          dir,
		RetentionDays: 14,
	}, &logger)
	snap.CleanupOld()

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
