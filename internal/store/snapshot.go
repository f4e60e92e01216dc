package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dtgosha/est92-resort2/internal/kv"
)

// SnapshotConfig controls periodic snapshots of the booking slot.
type SnapshotConfig struct {
	Enabled       bool
	Interval      time.Duration
	Path          string
	RetentionDays int
}

// Snapshotter copies the raw slot payload to timestamped files. Since a
// corrupt slot self-heals as an empty collection, snapshots are the only
// way back to the data that was there before.
type Snapshotter struct {
	slot   kv.Slot
	config SnapshotConfig
	logger *zerolog.Logger
}

// NewSnapshotter creates a snapshotter for the given slot.
func NewSnapshotter(slot kv.Slot, cfg SnapshotConfig, logger *zerolog.Logger) *Snapshotter {
	return &Snapshotter{slot: slot, config: cfg, logger: logger}
}

// Start runs the snapshot loop until ctx is done. The first snapshot is
// taken immediately.
func (s *Snapshotter) Start(ctx context.Context) {
	if !s.config.Enabled {
		s.logger.Info().Msg("snapshot service is disabled")
		return
	}
	interval := s.config.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	s.logger.Info().Dur("interval", interval).Str("path", s.config.Path).Msg("snapshot service started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.Snapshot(ctx); err != nil {
		s.logger.Error().Err(err).Msg("initial snapshot failed")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Snapshot(ctx); err != nil {
				s.logger.Error().Err(err).Msg("scheduled snapshot failed")
			}
			s.CleanupOld()
		}
	}
}

// Snapshot writes the current slot payload to a timestamped file.
// An absent slot is skipped, not an error.
func (s *Snapshotter) Snapshot(ctx context.Context) error {
	data, err := s.slot.Get(ctx)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.config.Path, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	name := fmt.Sprintf("bookings_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.config.Path, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	s.logger.Info().Str("path", path).Int("bytes", len(data)).Msg("snapshot written")
	return nil
}

// CleanupOld removes snapshot files older than the retention window.
func (s *Snapshotter) CleanupOld() {
	if s.config.RetentionDays <= 0 {
		return
	}

	files, err := os.ReadDir(s.config.Path)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read snapshot directory for cleanup")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.config.RetentionDays)

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			s.logger.Info().Str("file", file.Name()).Msg("deleting old snapshot")
			os.Remove(filepath.Join(s.config.Path, file.Name()))
		}
	}
}
