package archive

import (
	"context"
	"io"

	"codeberg.org/veland/scrubmon/internal/reading"
)

// Recorder is the archiving interface consumed by the rest of the
// application.
type Recorder interface {
	Record(ctx context.Context, batch []reading.Reading) error
	ExportCSV(ctx context.Context, w io.Writer, from, to int64) error
	Close() error
}

// Repository defines the storage layer backing a Recorder.
type Repository interface {
	Store(batch []reading.Reading) error
	ReadRange(ctx context.Context, from, to int64) ([]reading.Reading, error)
	Close() error
}
