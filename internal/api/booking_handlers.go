package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dtgosha/est92-resort2/internal/booking"
	"github.com/Dtgosha/est92-resort2/internal/pricing"
	"github.com/Dtgosha/est92-resort2/internal/service"
)

// QuoteResponse is the live quote for the current form state.
type QuoteResponse struct {
	TotalCents int64  `json:"total_cents"`
	Display    string `json:"display"`
}

// BookingRequest is the submit payload of the public form.
type BookingRequest struct {
	Type     string `json:"type"`
	Room     string `json:"room,omitempty"`
	Checkin  string `json:"checkin,omitempty"`
	Checkout string `json:"checkout,omitempty"`
	Guests   string `json:"guests,omitempty"`
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (r *BookingRequest) draft() service.Draft {
	return service.Draft{
		Kind:     booking.Kind(r.Type),
		RoomID:   r.Room,
		Checkin:  r.Checkin,
		Checkout: r.Checkout,
		Guests:   r.Guests,
		FullName: r.FullName,
		Phone:    r.Phone,
		Email:    r.Email,
	}
}

// handleQuote recomputes the quote from query parameters.
// GET /api/quote?type=room&room=S3&checkin=...&checkout=...&guests=2
func (s *HTTPServer) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	total := s.bookings.Quote(service.Draft{
		Kind:     booking.Kind(q.Get("type")),
		RoomID:   q.Get("room"),
		Checkin:  q.Get("checkin"),
		Checkout: q.Get("checkout"),
		Guests:   q.Get("guests"),
	})

	writeJSON(w, http.StatusOK, QuoteResponse{
		TotalCents: int64(total),
		Display:    pricing.FormatUSD(total),
	})
}

// handlePrefill resolves initial form state from query parameters.
// GET /api/prefill?service=...&Troom=...&type=...
func (s *HTTPServer) handlePrefill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	p := service.ResolvePrefill(r.URL.Query())
	writeJSON(w, http.StatusOK, map[string]string{
		"type":   string(p.Kind),
		"series": string(p.Series),
		"room":   p.RoomID,
	})
}

// handleCreateBooking runs the confirmation flow.
// POST /api/bookings
func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req BookingRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := s.bookings.Confirm(r.Context(), req.draft())
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		s.logger.Error().Err(err).Msg("booking confirmation failed")
		writeError(w, http.StatusInternalServerError, "could not save booking")
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}
