// Package admin exposes the dashboard operations over the booking store.
package admin

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Dtgosha/est92-resort2/internal/booking"
	"github.com/Dtgosha/est92-resort2/internal/events"
	"github.com/Dtgosha/est92-resort2/internal/metrics"
	"github.com/Dtgosha/est92-resort2/internal/store"
)

// FilterAll selects every booking regardless of kind.
const FilterAll = "all"

// EventPublisher publishes booking domain events.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Dashboard serves the admin table. Every read goes back to the store so
// the view is consistent with the slot at the instant of the read.
type Dashboard struct {
	store  *store.Store
	bus    EventPublisher
	logger zerolog.Logger
}

// NewDashboard wires the dashboard over the store.
func NewDashboard(st *store.Store, bus EventPublisher, logger zerolog.Logger) *Dashboard {
	return &Dashboard{
		store:  st,
		bus:    bus,
		logger: logger.With().Str("component", "dashboard").Logger(),
	}
}

// List returns bookings matching the filter, preserving store order.
// The filter is FilterAll or one booking kind.
func (d *Dashboard) List(ctx context.Context, filter string) []booking.Booking {
	all := d.store.LoadAll(ctx)
	if filter == FilterAll || filter == "" {
		return all
	}

	var matched []booking.Booking
	for _, b := range all {
		if string(b.Kind) == filter {
			matched = append(matched, b)
		}
	}
	return matched
}

// MarkPaid transitions the booking to Paid. Re-marking a Paid booking
// and marking an unknown id are both silent no-ops.
func (d *Dashboard) MarkPaid(ctx context.Context, id string) error {
	if err := d.store.UpdateStatus(ctx, id, booking.StatusPaid); err != nil {
		return err
	}
	metrics.IncBookingMarkedPaid()
	if err := d.bus.PublishJSON(events.TypeBookingPaid, map[string]string{"id": id}); err != nil {
		d.logger.Error().Err(err).Str("booking_id", id).Msg("publish paid event failed")
	}
	return nil
}

// Delete removes the booking from the store.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	if err := d.store.Remove(ctx, id); err != nil {
		return err
	}
	metrics.IncBookingDeleted()
	if err := d.bus.PublishJSON(events.TypeBookingDeleted, map[string]string{"id": id}); err != nil {
		d.logger.Error().Err(err).Str("booking_id", id).Msg("publish deleted event failed")
	}
	return nil
}
