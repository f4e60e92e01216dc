package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishJSON(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(TypeBookingConfirmed, func(e Event) error {
		got = append(got, e)
		return nil
	})
	bus.Subscribe(TypeBookingPaid, func(e Event) error {
		t.Fatal("handler for another type must not fire")
		return nil
	})

	require.NoError(t, bus.PublishJSON(TypeBookingConfirmed, map[string]string{"id": "bk_1"}))

	require.Len(t, got, 1)
	assert.Equal(t, TypeBookingConfirmed, got[0].Type)
	assert.JSONEq(t, `{"id":"bk_1"}`, string(got[0].Payload))
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	var secondRan bool
	bus.Subscribe(TypeBookingDeleted, func(e Event) error { return errors.New("boom") })
	bus.Subscribe(TypeBookingDeleted, func(e Event) error {
		secondRan = true
		return nil
	})

	bus.Publish(Event{Type: TypeBookingDeleted})
	assert.True(t, secondRan)
}

func TestBus_PublishJSON_MarshalError(t *testing.T) {
	bus := NewBus()
	err := bus.PublishJSON(TypeBookingConfirmed, func() {})
	require.Error(t, err)
}
