// Package booking defines the persisted booking record and its JSON codec.
package booking

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the reservation category.
type Kind string

const (
	KindRoom       Kind = "room"
	KindConference Kind = "conference"
	KindRestaurant Kind = "restaurant"
)

// ParseKind returns the kind for s, if known.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindRoom, KindConference, KindRestaurant:
		return Kind(s), true
	}
	return "", false
}

// Status is the payment status of a booking. Transitions are monotonic:
// Pending may become Paid, Paid never reverts.
type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
)

// Booking is a confirmed reservation as stored in the bookings slot.
// TotalCents is frozen at confirmation time and never recomputed.
type Booking struct {
	ID         string `json:"id"`
	Kind       Kind   `json:"type"`
	Room       string `json:"room"` // room id for rooms, otherwise the kind name
	Checkin    string `json:"checkin,omitempty"`
	Checkout   string `json:"checkout,omitempty"`
	Guests     int    `json:"guests"`
	FullName   string `json:"fullname"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	TotalCents int64  `json:"total_cents"`
	Status     Status `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON decodes a record defensively. The persisted layout is
// versionless, so older payloads may carry guests as a string and the
// total as float dollars under "total"; both are accepted.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type alias Booking
	aux := struct {
		*alias
		Guests      json.RawMessage `json:"guests"`
		LegacyTotal json.RawMessage `json:"total"`
	}{alias: (*alias)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	b.Guests = decodeGuests(aux.Guests)
	if b.TotalCents == 0 && len(aux.LegacyTotal) > 0 {
		b.TotalCents = decodeLegacyTotal(aux.LegacyTotal)
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

func decodeGuests(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 1
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if n > 0 {
			return n
		}
		return 1
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

func decodeLegacyTotal(raw json.RawMessage) int64 {
	var dollars float64
	if err := json.Unmarshal(raw, &dollars); err != nil || dollars < 0 {
		return 0
	}
	return int64(math.Round(dollars * 100))
}
