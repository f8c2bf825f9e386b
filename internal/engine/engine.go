// Package engine owns the retained set and recomputes every derived view
// whenever the set or the window changes. All merges go through one
// mutex, so a recomputation always observes batches applied in arrival
// order.
package engine

import (
	"sync"
	"time"

	"codeberg.org/veland/scrubmon/internal/errors"
	"codeberg.org/veland/scrubmon/internal/logger"
	"codeberg.org/veland/scrubmon/internal/reading"
	"codeberg.org/veland/scrubmon/internal/view"
)

// Frame is one complete derived state: everything the rendering and
// status-tile layers need, recomputed from scratch on every change. The
// bands are metric-independent and shared by all three charts.
type Frame struct {
	WindowStart int64
	WindowEnd   int64
	CO2         []view.Series
	Temperature []view.Series
	Humidity    []view.Series
	Bands       []view.Band
	Latest      map[string]view.Snapshot
	ModeText    string
}

// Config carries the engine's tunables.
type Config struct {
	Interval  time.Duration // tick cadence
	Retention time.Duration // initial retention window
	Now       func() time.Time
}

func (c Config) Validate() error {
	errFactory := errors.New()
	if c.Interval <= 0 {
		return errFactory.New(errors.ErrInvalidInterval)
	}
	if c.Retention <= 0 {
		return errFactory.New(errors.ErrInvalidRetention)
	}

	return nil
}

// Engine serializes merge application and holds the current frame.
type Engine struct {
	mu        sync.Mutex
	now       func() time.Time
	interval  time.Duration
	retention time.Duration
	set       reading.Set
	frame     Frame
	refetch   chan struct{}
}

func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	e := &Engine{
		now:       now,
		interval:  cfg.Interval,
		retention: cfg.Retention,
		refetch:   make(chan struct{}, 1),
	}
	e.mu.Lock()
	e.rebuild()
	e.mu.Unlock()

	return e, nil
}

// ApplyBatch merges one fetched batch into the retained set. The prune
// cutoff is computed from the current time here, at apply time, so a fetch
// that was superseded by a retention change cannot apply a stale cutoff.
func (e *Engine) ApplyBatch(batch []reading.Reading) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.nowMillis() - e.retention.Milliseconds()
	e.set = reading.Merge(e.set, batch, cutoff)
	e.rebuild()

	logger.Debug().
		Int("batch", len(batch)).
		Int("retained", len(e.set)).
		Msg("Batch applied")
}

// Tick advances the window to the current time, ages out old readings and
// recomputes the frame.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.set = reading.Prune(e.set, e.nowMillis()-e.retention.Milliseconds())
	e.rebuild()
}

// SetRetention switches to one of the fixed retention windows. The store
// is cleared and a full refetch for the new duration is requested; the
// stale data must not linger under a longer window it was never fetched
// for.
func (e *Engine) SetRetention(name string) error {
	d, err := reading.ParseRetention(name)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.retention = d
	e.set = nil
	e.rebuild()
	e.mu.Unlock()

	select {
	case e.refetch <- struct{}{}:
	default:
	}

	logger.Info().Str("retention", name).Msg("Retention window changed")

	return nil
}

// Retention returns the current retention window.
func (e *Engine) Retention() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.retention
}

// Refetch signals whenever a full refetch is required.
func (e *Engine) Refetch() <-chan struct{} {
	return e.refetch
}

// Frame returns the most recently computed derived state.
func (e *Engine) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.frame
}

// Interval returns the configured tick cadence.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

func (e *Engine) nowMillis() int64 {
	return e.now().UnixMilli()
}

// rebuild recomputes the frame from the retained set. Callers hold e.mu.
func (e *Engine) rebuild() {
	windowEnd := e.nowMillis()
	windowStart := windowEnd - e.retention.Milliseconds()

	latest := view.LatestPerChannel(e.set, view.TrackedChannels())

	e.frame = Frame{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		CO2:         view.BuildSeries(e.set, windowStart, windowEnd, view.CO2, view.ChannelLabel),
		Temperature: view.BuildSeries(e.set, windowStart, windowEnd, view.Temperature, view.ChannelLabel),
		Humidity:    view.BuildSeries(e.set, windowStart, windowEnd, view.Humidity, view.ChannelLabel),
		Bands:       view.BuildBands(e.set, windowStart, windowEnd),
		Latest:      latest,
		ModeText:    view.ModeText(latest[view.ControlChannel]),
	}
}
