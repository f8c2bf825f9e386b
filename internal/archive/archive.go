// Package archive persists merged readings to sqlite so they survive the
// in-memory retention window, and produces the CSV download payload.
package archive

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"codeberg.org/veland/scrubmon/internal/errors"
	"codeberg.org/veland/scrubmon/internal/logger"
	"codeberg.org/veland/scrubmon/internal/reading"
)

type service struct {
	repo Repository
	cfg  Config
}

// No-op implementation
type noopRecorder struct{}

func NewService(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	// If archiving is disabled, return a no-op recorder
	if !cfg.Enabled {
		logger.Debug().Msg("Reading archive disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err
	}

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, batch []reading.Reading) error {
	errFactory := errors.New()

	if len(batch) == 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(errors.ErrTimeout, ctx.Err())
	default:
		if err := s.repo.Store(batch); err != nil {
			return errFactory.Wrap(ErrStorageAccess, err)
		}
	}

	return nil
}

var csvHeader = []string{"identity", "channel", "timestamp", "time", "co2", "temperature", "humidity", "mode"}

// ExportCSV streams the archived readings of [from, to] as CSV. Absent
// measurements stay empty cells; they must not round-trip as zero.
func (s *service) ExportCSV(ctx context.Context, w io.Writer, from, to int64) error {
	errFactory := errors.New()

	batch, err := s.repo.ReadRange(ctx, from, to)
	if err != nil {
		return errFactory.Wrap(ErrExportFailed, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errFactory.Wrap(ErrExportFailed, err)
	}

	for _, rd := range batch {
		row := []string{
			rd.Identity(),
			rd.Channel,
			strconv.FormatInt(rd.Timestamp, 10),
			time.UnixMilli(rd.Timestamp).UTC().Format(time.RFC3339),
			csvFloat(rd.CO2),
			csvFloat(rd.Temperature),
			csvFloat(rd.Humidity),
			csvInt(rd.Mode),
		}
		if err := cw.Write(row); err != nil {
			return errFactory.Wrap(ErrExportFailed, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errFactory.Wrap(ErrExportFailed, err)
	}

	return nil
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.repo.Close(); err != nil {
		return errFactory.Wrap(errors.ErrShutdownFailed, err)
	}

	return nil
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvInt(v *int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(*v)
}

// No-op implementation
func (*noopRecorder) Record(_ context.Context, _ []reading.Reading) error {
	return nil
}

func (*noopRecorder) ExportCSV(_ context.Context, _ io.Writer, _, _ int64) error {
	return nil
}

func (*noopRecorder) Close() error {
	return nil
}
