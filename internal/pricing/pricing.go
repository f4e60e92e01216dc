// Package pricing implements the quote engine. Quotes are pure functions of
// the current form state and safe to recompute on every edit.
package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Dtgosha/est92-resort2/internal/booking"
	"github.com/Dtgosha/est92-resort2/internal/catalog"
)

// DateLayout is the calendar-date format used across form input and storage.
const DateLayout = "2006-01-02"

// Default rates in cents. Both are config-overridable.
const (
	DefaultConferenceNight = 10000 // flat per night
	DefaultRestaurantCover = 500   // per guest
)

// Input carries the quotable fields of a booking form.
// Zero times mean the date has not been entered yet.
type Input struct {
	RoomID   string
	Checkin  time.Time
	Checkout time.Time
	Guests   int
}

// Engine computes quotes against a catalog.
type Engine struct {
	catalog         *catalog.Catalog
	conferenceNight Cents
	restaurantCover Cents
}

// NewEngine builds an engine. Non-positive rates fall back to the defaults.
func NewEngine(cat *catalog.Catalog, conferenceNight, restaurantCover Cents) *Engine {
	if conferenceNight <= 0 {
		conferenceNight = DefaultConferenceNight
	}
	if restaurantCover <= 0 {
		restaurantCover = DefaultRestaurantCover
	}
	return &Engine{
		catalog:         cat,
		conferenceNight: conferenceNight,
		restaurantCover: restaurantCover,
	}
}

// Quote returns the amount for the given kind and input. It is total:
// unknown rooms price at zero, missing dates clamp to one night and a
// non-positive guest count counts as one guest.
func (e *Engine) Quote(kind booking.Kind, in Input) Cents {
	switch kind {
	case booking.KindRoom:
		per := Cents(e.catalog.PriceOf(catalog.SeriesOfRoom(in.RoomID)))
		return per * Cents(guestsOrOne(in.Guests)) * Cents(Nights(in.Checkin, in.Checkout))
	case booking.KindConference:
		return e.conferenceNight * Cents(Nights(in.Checkin, in.Checkout))
	case booking.KindRestaurant:
		return e.restaurantCover * Cents(guestsOrOne(in.Guests))
	}
	return 0
}

// Nights returns the whole-day span between checkin and checkout, never
// less than one. A missing endpoint contributes zero duration and the
// floor applies; an inverted range clamps the same way.
func Nights(checkin, checkout time.Time) int {
	if checkin.IsZero() || checkout.IsZero() {
		return 1
	}
	days := int(math.Round(checkout.Sub(checkin).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// ParseGuests parses a raw guest-count input, falling back to 1 on
// anything non-numeric or non-positive.
func ParseGuests(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseDate parses a calendar date, returning the zero time when the
// field is empty or malformed.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func guestsOrOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
