// Package store persists the booking collection as a JSON array in a
// single kv slot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Dtgosha/est92-resort2/internal/booking"
	"github.com/Dtgosha/est92-resort2/internal/kv"
	"github.com/Dtgosha/est92-resort2/internal/metrics"
)

// DefaultKey is the slot key the booking collection lives under.
// The layout is versionless; see the defensive decoding in the booking package.
const DefaultKey = "est92_bookings"

// Store is the booking record store. Every mutation is a read-modify-write
// of the full collection, serialized by an in-process mutex. Two Store
// instances sharing one backend still race last-writer-wins; that matches
// the persisted-slot contract and is covered by tests rather than fixed.
type Store struct {
	slot   kv.Slot
	logger zerolog.Logger
	mu     sync.Mutex
}

// New creates a store over the given slot.
func New(slot kv.Slot, logger zerolog.Logger) *Store {
	return &Store{
		slot:   slot,
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// LoadAll returns every booking in insertion order. An absent slot, a
// payload that is not valid JSON, or a payload that is not an array all
// decode to an empty collection: corruption is logged and counted, never
// surfaced, so a broken slot cannot block submissions or the dashboard.
func (s *Store) LoadAll(ctx context.Context) []booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) []booking.Booking {
	data, err := s.slot.Get(ctx)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Error().Err(err).Msg("slot read failed, treating as empty")
			metrics.IncStoreDecodeFailure("read_error")
		}
		return nil
	}

	var all []booking.Booking
	if err := json.Unmarshal(data, &all); err != nil {
		s.logger.Warn().Err(err).Int("bytes", len(data)).
			Msg("booking slot payload unreadable, treating as empty")
		metrics.IncStoreDecodeFailure("corrupt")
		return nil
	}
	return all
}

func (s *Store) saveLocked(ctx context.Context, all []booking.Booking) error {
	if all == nil {
		all = []booking.Booking{}
	}
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if err := s.slot.Set(ctx, data); err != nil {
		return fmt.Errorf("persist bookings: %w", err)
	}
	return nil
}

// Append adds a record to the end of the collection.
func (s *Store) Append(ctx context.Context, b booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := append(s.loadLocked(ctx), b)
	if err := s.saveLocked(ctx, all); err != nil {
		return err
	}
	s.logger.Info().Str("booking_id", b.ID).Str("kind", string(b.Kind)).Msg("booking appended")
	return nil
}

// UpdateStatus sets the status of the first record with the given id.
// Unknown ids are a silent no-op. Paid is terminal: a record already
// Paid stays Paid and a transition back to Pending is ignored.
func (s *Store) UpdateStatus(ctx context.Context, id string, status booking.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadLocked(ctx)
	for i := range all {
		if all[i].ID != id {
			continue
		}
		if all[i].Status == booking.StatusPaid && status != booking.StatusPaid {
			s.logger.Warn().Str("booking_id", id).Msg("ignoring status reversal on paid booking")
			return nil
		}
		if all[i].Status == status {
			return nil
		}
		all[i].Status = status
		if err := s.saveLocked(ctx, all); err != nil {
			return err
		}
		s.logger.Info().Str("booking_id", id).Str("status", string(status)).Msg("booking status updated")
		return nil
	}
	return nil
}

// Remove deletes every record with the given id, preserving the relative
// order of the remaining records.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadLocked(ctx)
	kept := all[:0]
	for _, b := range all {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(all) {
		return nil
	}
	if err := s.saveLocked(ctx, kept); err != nil {
		return err
	}
	s.logger.Info().Str("booking_id", id).Msg("booking removed")
	return nil
}
