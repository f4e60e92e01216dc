package notify

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Dtgosha/est92-resort2/internal/booking"
)

// RetryConfig bounds the delivery attempts for a single notification.
type RetryConfig struct {
	MaxRetries  int
	RetryDelays []time.Duration
}

// DefaultRetryConfig returns the default retry schedule.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		RetryDelays: []time.Duration{
			1 * time.Second,
			5 * time.Second,
			30 * time.Second,
		},
	}
}

// Sender wraps a delivery channel with rate limiting and bounded retries.
// It implements the lifecycle's Notifier contract.
type Sender struct {
	notifier      Notifier
	limiter       *rate.Limiter
	retry         RetryConfig
	recipient     string
	recipientName string
	logger        zerolog.Logger
}

// NewSender builds a sender addressing notifications to the operator.
func NewSender(notifier Notifier, recipient, recipientName string, retry RetryConfig, logger zerolog.Logger) *Sender {
	return &Sender{
		notifier:      notifier,
		limiter:       rate.NewLimiter(rate.Limit(1), 5),
		retry:         retry,
		recipient:     recipient,
		recipientName: recipientName,
		logger:        logger.With().Str("component", "notify").Logger(),
	}
}

// BookingConfirmed delivers the confirmation payload, retrying transient
// failures. Permanent relay rejections stop immediately.
func (s *Sender) BookingConfirmed(ctx context.Context, b booking.Booking) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	payload := NewPayload(s.recipient, s.recipientName, b)

	var lastErr error
	for attempt := 0; attempt <= s.retry.MaxRetries; attempt++ {
		err := s.notifier.Send(ctx, payload)
		if err == nil {
			s.logger.Info().Str("booking_id", b.ID).Int("attempt", attempt).Msg("notification delivered")
			return nil
		}
		lastErr = err

		var relayErr *RelayError
		if errors.As(err, &relayErr) && !relayErr.Retryable() {
			s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("notification rejected permanently")
			return err
		}

		if attempt < s.retry.MaxRetries {
			delay := s.retry.RetryDelays[min(attempt, len(s.retry.RetryDelays)-1)]
			s.logger.Info().
				Err(err).
				Str("booking_id", b.ID).
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Msg("retrying notification")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	s.logger.Error().Err(lastErr).Str("booking_id", b.ID).Msg("notification retries exhausted")
	return lastErr
}
