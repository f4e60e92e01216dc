// Package notify delivers operator notifications for confirmed bookings.
// Delivery is best effort end to end: the booking is already durable by
// the time anything here runs.
package notify

import (
	"context"
	"strconv"

	"github.com/Dtgosha/est92-resort2/internal/booking"
	"github.com/Dtgosha/est92-resort2/internal/pricing"
)

// Payload is the flat key-value form handed to a delivery channel.
type Payload map[string]string

// Notifier is one delivery channel for a notification payload.
type Notifier interface {
	Send(ctx context.Context, p Payload) error
}

// NewPayload flattens a confirmed booking for delivery.
func NewPayload(recipient, recipientName string, b booking.Booking) Payload {
	return Payload{
		"to_email":     recipient,
		"to_name":      recipientName,
		"booking_id":   b.ID,
		"booking_type": string(b.Kind),
		"room":         b.Room,
		"checkin":      b.Checkin,
		"checkout":     b.Checkout,
		"guests":       strconv.Itoa(b.Guests),
		"fullname":     b.FullName,
		"phone":        b.Phone,
		"email":        b.Email,
		"total":        pricing.FormatUSD(pricing.Cents(b.TotalCents)),
	}
}
