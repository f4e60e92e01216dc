package admin

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dtgosha/est92-resort2/internal/booking"
	"github.com/Dtgosha/est92-resort2/internal/kv"
	"github.com/Dtgosha/est92-resort2/internal/store"
)

type mockBus struct {
	mock.Mock
}

func (m *mockBus) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}

func seedBooking(id string, kind booking.Kind) booking.Booking {
	return booking.Booking{
		ID:         id,
		Kind:       kind,
		Room:       "S1",
		Guests:     2,
		FullName:   "Ada Lovelace",
		Phone:      "+1 555 0100",
		Email:      "ada@example.com",
		TotalCents: 6000,
		Status:     booking.StatusPending,
		CreatedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestDashboard(t *testing.T, bus EventPublisher) (*Dashboard, *store.Store) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	st := store.New(kv.NewMemorySlot(), logger)
	return NewDashboard(st, bus, logger), st
}

func TestDashboard_List(t *testing.T) {
	ctx := context.Background()
	dash, st := newTestDashboard(t, new(mockBus))

	require.NoError(t, st.Append(ctx, seedBooking("bk_1", booking.KindRoom)))
	require.NoError(t, st.Append(ctx, seedBooking("bk_2", booking.KindRestaurant)))
	require.NoError(t, st.Append(ctx, seedBooking("bk_3", booking.KindRoom)))

	tests := []struct {
		filter string
		want   []string
	}{
		{FilterAll, []string{"bk_1", "bk_2", "bk_3"}},
		{"", []string{"bk_1", "bk_2", "bk_3"}},
		{"room", []string{"bk_1", "bk_3"}},
		{"restaurant", []string{"bk_2"}},
		{"conference", nil},
	}

	for _, tt := range tests {
		t.Run("filter "+tt.filter, func(t *testing.T) {
			var ids []string
			for _, b := range dash.List(ctx, tt.filter) {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDashboard_MarkPaid(t *testing.T) {
	ctx := context.Background()
	bus := new(mockBus)
	bus.On("PublishJSON", "booking.paid", mock.Anything).Return(nil)
	dash, st := newTestDashboard(t, bus)

	require.NoError(t, st.Append(ctx, seedBooking("bk_1", booking.KindRoom)))

	require.NoError(t, dash.MarkPaid(ctx, "bk_1"))
	assert.Equal(t, booking.StatusPaid, st.LoadAll(ctx)[0].Status)

	// Idempotent re-mark.
	require.NoError(t, dash.MarkPaid(ctx, "bk_1"))
	assert.Equal(t, booking.StatusPaid, st.LoadAll(ctx)[0].Status)

	// Unknown id is a silent no-op.
	require.NoError(t, dash.MarkPaid(ctx, "bk_missing"))
}

func TestDashboard_Delete(t *testing.T) {
	ctx := context.Background()
	bus := new(mockBus)
	bus.On("PublishJSON", "booking.deleted", mock.Anything).Return(nil)
	dash, st := newTestDashboard(t, bus)

	require.NoError(t, st.Append(ctx, seedBooking("bk_1", booking.KindRoom)))
	require.NoError(t, st.Append(ctx, seedBooking("bk_2", booking.KindRoom)))

	require.NoError(t, dash.Delete(ctx, "bk_1"))

	all := st.LoadAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "bk_2", all[0].ID)
}

func TestDashboard_ExportExcel(t *testing.T) {
	ctx := context.Background()
	dash, st := newTestDashboard(t, new(mockBus))

	require.NoError(t, st.Append(ctx, seedBooking("bk_1", booking.KindRoom)))
	require.NoError(t, st.Append(ctx, seedBooking("bk_2", booking.KindRestaurant)))

	var buf bytes.Buffer
	require.NoError(t, dash.ExportExcel(ctx, FilterAll, &buf))
	require.NotZero(t, buf.Len())

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "bk_1", rows[1][0])
	assert.Equal(t, "$60.00", rows[1][9])
	assert.Equal(t, "restaurant", rows[2][1])
}
