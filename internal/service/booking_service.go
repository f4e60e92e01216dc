// Package service implements the booking confirmation lifecycle.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Dtgosha/est92-resort2/internal/booking"
	"github.com/Dtgosha/est92-resort2/internal/catalog"
	"github.com/Dtgosha/est92-resort2/internal/events"
	"github.com/Dtgosha/est92-resort2/internal/metrics"
	"github.com/Dtgosha/est92-resort2/internal/pricing"
	"github.com/Dtgosha/est92-resort2/internal/store"
)

// Draft carries raw form input for one submission attempt. Nothing in a
// draft is trusted: dates and guest count are parsed with the pricing
// fallbacks and contact fields are trimmed before validation.
type Draft struct {
	Kind     booking.Kind
	RoomID   string
	Checkin  string
	Checkout string
	Guests   string
	FullName string
	Phone    string
	Email    string
}

// ValidationError rejects a draft with a user-facing message.
// A rejected draft leaves the store untouched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EventPublisher publishes booking domain events.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Notifier delivers the operator notification for a confirmed booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b booking.Booking) error
}

// BookingService turns drafts into persisted bookings.
type BookingService struct {
	store    *store.Store
	engine   *pricing.Engine
	catalog  *catalog.Catalog
	bus      EventPublisher
	notifier Notifier
	logger   zerolog.Logger

	notifyTimeout time.Duration
	now           func() time.Time
	newID         func() string
}

// NewBookingService wires the lifecycle dependencies. notifier may be nil
// when no delivery channel is configured.
func NewBookingService(
	st *store.Store,
	engine *pricing.Engine,
	cat *catalog.Catalog,
	bus EventPublisher,
	notifier Notifier,
	logger *zerolog.Logger,
) *BookingService {
	return &BookingService{
		store:         st,
		engine:        engine,
		catalog:       cat,
		bus:           bus,
		notifier:      notifier,
		logger:        logger.With().Str("component", "booking_service").Logger(),
		notifyTimeout: 30 * time.Second,
		now:           time.Now,
		newID:         func() string { return "bk_" + uuid.NewString() },
	}
}

// Quote prices the draft as it stands. Pure: repeated calls with the same
// draft yield the same amount and never touch the store, so it is safe to
// recompute on every form edit.
func (s *BookingService) Quote(d Draft) pricing.Cents {
	return s.engine.Quote(d.Kind, pricing.Input{
		RoomID:   d.RoomID,
		Checkin:  pricing.ParseDate(d.Checkin),
		Checkout: pricing.ParseDate(d.Checkout),
		Guests:   pricing.ParseGuests(d.Guests),
	})
}

// Confirm validates the draft and, on success, persists a Pending booking
// with a fresh id, a creation timestamp and the quoted total frozen in.
// The operator notification is fired after the booking is durable and is
// strictly best effort: a delivery failure never unwinds the booking.
func (s *BookingService) Confirm(ctx context.Context, d Draft) (*booking.Booking, error) {
	if err := s.validate(d); err != nil {
		metrics.IncBookingRejected()
		return nil, err
	}

	rec := booking.Booking{
		ID:         s.newID(),
		Kind:       d.Kind,
		Room:       roomOrService(d),
		Checkin:    strings.TrimSpace(d.Checkin),
		Checkout:   strings.TrimSpace(d.Checkout),
		Guests:     pricing.ParseGuests(d.Guests),
		FullName:   strings.TrimSpace(d.FullName),
		Phone:      strings.TrimSpace(d.Phone),
		Email:      strings.TrimSpace(d.Email),
		TotalCents: int64(s.Quote(d)),
		Status:     booking.StatusPending,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated(string(rec.Kind))
	if err := s.bus.PublishJSON(events.TypeBookingConfirmed, rec); err != nil {
		s.logger.Error().Err(err).Str("booking_id", rec.ID).Msg("publish confirmed event failed")
	}

	if s.notifier != nil {
		go s.notify(rec)
	}

	s.logger.Info().
		Str("booking_id", rec.ID).
		Str("kind", string(rec.Kind)).
		Int64("total_cents", rec.TotalCents).
		Msg("booking confirmed")

	return &rec, nil
}

func (s *BookingService) validate(d Draft) error {
	if _, ok := booking.ParseKind(string(d.Kind)); !ok {
		return &ValidationError{Message: "Unknown booking type."}
	}
	if strings.TrimSpace(d.FullName) == "" ||
		strings.TrimSpace(d.Phone) == "" ||
		strings.TrimSpace(d.Email) == "" {
		return &ValidationError{Message: "Please complete all required fields."}
	}
	if d.Kind == booking.KindRoom || d.Kind == booking.KindConference {
		if strings.TrimSpace(d.Checkin) == "" || strings.TrimSpace(d.Checkout) == "" {
			return &ValidationError{Message: "Please select check-in and check-out dates."}
		}
	}
	if d.Kind == booking.KindRoom && !s.catalog.HasRoom(d.RoomID) {
		return &ValidationError{Message: "Please select a room."}
	}
	return nil
}

// notify runs detached from the submit handler with its own deadline so a
// slow delivery channel cannot delay the user-visible confirmation.
func (s *BookingService) notify(rec booking.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	if err := s.notifier.BookingConfirmed(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("booking_id", rec.ID).Msg("operator notification failed")
		metrics.IncNotification("failed")
		return
	}
	metrics.IncNotification("sent")
}

func roomOrService(d Draft) string {
	if d.Kind == booking.KindRoom {
		return d.RoomID
	}
	return string(d.Kind)
}
