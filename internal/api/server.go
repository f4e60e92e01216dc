// Package api is the thin HTTP surface over the booking core. Handlers
// decode input, call a service and encode the result; every business rule
// lives below this layer.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dtgosha/est92-resort2/internal/admin"
	"github.com/Dtgosha/est92-resort2/internal/auth"
	"github.com/Dtgosha/est92-resort2/internal/service"
)

// SessionHeader carries the admin session token.
const SessionHeader = "X-Session-Token"

// HTTPServer serves the public booking endpoints and the admin dashboard.
type HTTPServer struct {
	bookings  *service.BookingService
	gate      *auth.Gate
	dashboard *admin.Dashboard
	logger    zerolog.Logger
	server    *http.Server
}

// NewHTTPServer wires the routes.
func NewHTTPServer(
	port int,
	bookings *service.BookingService,
	gate *auth.Gate,
	dashboard *admin.Dashboard,
	logger zerolog.Logger,
) *HTTPServer {
	s := &HTTPServer{
		bookings:  bookings,
		gate:      gate,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "api").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/quote", s.handleQuote)
	mux.HandleFunc("/api/prefill", s.handlePrefill)
	mux.HandleFunc("/api/bookings", s.handleCreateBooking)
	mux.HandleFunc("/api/admin/login", s.handleLogin)
	mux.HandleFunc("/api/admin/logout", s.handleLogout)
	mux.HandleFunc("/api/admin/bookings", s.handleListBookings)
	mux.HandleFunc("/api/admin/bookings/pay", s.handleMarkPaid)
	mux.HandleFunc("/api/admin/bookings/delete", s.handleDelete)
	mux.HandleFunc("/api/admin/bookings/export", s.handleExport)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the route table, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *HTTPServer) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctxShutdown)
	}()

	s.logger.Info().Str("addr", s.server.Addr).Msg("api server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error().Err(err).Msg("api server error")
	}
}

// requireAdmin resolves the session token, or writes a 401.
func (s *HTTPServer) requireAdmin(w http.ResponseWriter, r *http.Request) (auth.Admin, bool) {
	adm, ok := s.gate.Session(r.Header.Get(SessionHeader))
	if !ok {
		writeError(w, http.StatusUnauthorized, "not signed in")
	}
	return adm, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
