package store

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dtgosha/est92-resort2/internal/booking"
	"github.com/Dtgosha/est92-resort2/internal/kv"
)

func newTestStore() (*Store, *kv.MemorySlot) {
	slot := kv.NewMemorySlot()
	return New(slot, zerolog.New(io.Discard)), slot
}

func sampleBooking(id string, kind booking.Kind) booking.Booking {
	return booking.Booking{
		ID:         id,
		Kind:       kind,
		Room:       "S3",
		Checkin:    "2024-01-01",
		Checkout:   "2024-01-03",
		Guests:     2,
		FullName:   "Ada Lovelace",
		Phone:      "+1 555 0100",
		Email:      "ada@example.com",
		TotalCents: 12000,
		Status:     booking.StatusPending,
		CreatedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_AppendRoundTrip(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	rec := sampleBooking("bk_1", booking.KindRoom)
	require.NoError(t, st.Append(ctx, rec))

	all := st.LoadAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, rec, all[0])
}

func TestStore_LoadAll_Recovery(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		payload []byte
	}{
		{"missing slot", nil},
		{"not json", []byte("definitely not json")},
		{"not an array", []byte(`{"id":"bk_1"}`)},
		{"truncated array", []byte(`[{"id":"bk_1"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, slot := newTestStore()
			if tt.payload != nil {
				require.NoError(t, slot.Set(ctx, tt.payload))
			}

			all := st.LoadAll(ctx)
			assert.Empty(t, all)
		})
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, sampleBooking("bk_1", booking.KindRoom)))
	require.NoError(t, st.Append(ctx, sampleBooking("bk_2", booking.KindRestaurant)))

	t.Run("marks exactly one record", func(t *testing.T) {
		require.NoError(t, st.UpdateStatus(ctx, "bk_1", booking.StatusPaid))

		all := st.LoadAll(ctx)
		require.Len(t, all, 2)
		assert.Equal(t, booking.StatusPaid, all[0].Status)
		assert.Equal(t, booking.StatusPending, all[1].Status)

		// Every other field is untouched.
		want := sampleBooking("bk_1", booking.KindRoom)
		want.Status = booking.StatusPaid
		assert.Equal(t, want, all[0])
	})

	t.Run("re-marking paid is idempotent", func(t *testing.T) {
		require.NoError(t, st.UpdateStatus(ctx, "bk_1", booking.StatusPaid))
		assert.Equal(t, booking.StatusPaid, st.LoadAll(ctx)[0].Status)
	})

	t.Run("paid never reverts", func(t *testing.T) {
		require.NoError(t, st.UpdateStatus(ctx, "bk_1", booking.StatusPending))
		assert.Equal(t, booking.StatusPaid, st.LoadAll(ctx)[0].Status)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := st.LoadAll(ctx)
		require.NoError(t, st.UpdateStatus(ctx, "bk_missing", booking.StatusPaid))
		assert.Equal(t, before, st.LoadAll(ctx))
	})
}

func TestStore_Remove(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	for _, id := range []string{"bk_1", "bk_2", "bk_3"} {
		require.NoError(t, st.Append(ctx, sampleBooking(id, booking.KindRoom)))
	}

	require.NoError(t, st.Remove(ctx, "bk_2"))

	all := st.LoadAll(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "bk_1", all[0].ID)
	assert.Equal(t, "bk_3", all[1].ID)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		require.NoError(t, st.Remove(ctx, "bk_missing"))
		assert.Len(t, st.LoadAll(ctx), 2)
	})
}

// Two store instances over one backend race last-writer-wins: the second
// writer's full-collection overwrite discards the first writer's change.
// This is the documented persisted-slot behavior, pinned here on purpose.
func TestStore_ConcurrentWritersLastWriterWins(t *testing.T) {
	slot := kv.NewMemorySlot()
	ctx := context.Background()

	first := New(slot, zerolog.New(io.Discard))
	second := New(slot, zerolog.New(io.Discard))

	require.NoError(t, first.Append(ctx, sampleBooking("bk_1", booking.KindRoom)))

	// Both stores read the same snapshot, then write in turn.
	snapshot := second.LoadAll(ctx)
	require.Len(t, snapshot, 1)

	require.NoError(t, first.Append(ctx, sampleBooking("bk_from_first", booking.KindRoom)))
	require.NoError(t, second.Append(ctx, sampleBooking("bk_from_second", booking.KindRoom)))

	// second's append re-read the slot, so here both survive; but a write
	// computed from the stale snapshot wipes first's record.
	stale := append(snapshot, sampleBooking("bk_stale", booking.KindRoom))
	data := mustMarshal(t, stale)
	require.NoError(t, slot.Set(ctx, data))

	ids := idsOf(first.LoadAll(ctx))
	assert.Equal(t, []string{"bk_1", "bk_stale"}, ids)
	assert.NotContains(t, ids, "bk_from_first")
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func idsOf(all []booking.Booking) []string {
	ids := make([]string, 0, len(all))
	for _, b := range all {
		ids = append(ids, b.ID)
	}
	return ids
}
