package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dtgosha/est92-resort2/internal/admin"
	"github.com/Dtgosha/est92-resort2/internal/auth"
)

// LoginRequest carries the admin sign-in form.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin authenticates an admin and returns a session token.
// POST /api/admin/login
func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, err := s.gate.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// One generic message for every mismatch.
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleLogout clears the caller's session.
// POST /api/admin/logout
func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.gate.Logout(r.Header.Get(SessionHeader))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleListBookings returns the filtered booking table.
// GET /api/admin/bookings?filter=all|room|conference|restaurant
func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = admin.FilterAll
	}
	bookings := s.dashboard.List(r.Context(), filter)
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

type bookingActionRequest struct {
	ID string `json:"id"`
}

// handleMarkPaid transitions a booking to Paid.
// POST /api/admin/bookings/pay
func (s *HTTPServer) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	s.bookingAction(w, r, s.dashboard.MarkPaid)
}

// handleDelete removes a booking.
// POST /api/admin/bookings/delete
func (s *HTTPServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.bookingAction(w, r, s.dashboard.Delete)
}

func (s *HTTPServer) bookingAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id string) error) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	var req bookingActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := action(r.Context(), req.ID); err != nil {
		s.logger.Error().Err(err).Str("booking_id", req.ID).Msg("dashboard action failed")
		writeError(w, http.StatusInternalServerError, "could not update booking")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleExport streams the booking table as an .xlsx workbook.
// GET /api/admin/bookings/export?filter=...
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = admin.FilterAll
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := s.dashboard.ExportExcel(r.Context(), filter, w); err != nil {
		s.logger.Error().Err(err).Msg("export failed")
	}
}
