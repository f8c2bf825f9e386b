// Package poller periodically fetches reading batches from the telemetry
// endpoint and feeds them to the engine. A failed fetch is logged and
// skipped; the retained set keeps its last-known-good contents and no
// partial merge is ever applied.
package poller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"codeberg.org/veland/scrubmon/internal/errors"
	"codeberg.org/veland/scrubmon/internal/logger"
	"codeberg.org/veland/scrubmon/internal/reading"
)

const defaultTimeout = 10 * time.Second

// Fetcher retrieves one batch of readings covering the given window.
type Fetcher interface {
	Fetch(ctx context.Context, window time.Duration) ([]reading.Reading, error)
}

// Sink receives successfully fetched batches.
type Sink interface {
	ApplyBatch(batch []reading.Reading)
	Retention() time.Duration
	Refetch() <-chan struct{}
}

type Config struct {
	Endpoint string
	Interval time.Duration
	Timeout  time.Duration
}

func (c Config) Validate() error {
	errFactory := errors.New()
	if c.Endpoint == "" {
		return errFactory.New(ErrInvalidEndpoint)
	}
	if _, err := url.Parse(c.Endpoint); err != nil {
		return errFactory.Wrap(ErrInvalidEndpoint, err)
	}
	if c.Interval <= 0 {
		return errFactory.New(errors.ErrInvalidInterval)
	}

	return nil
}

type httpFetcher struct {
	endpoint string
	client   *http.Client
}

// NewFetcher builds an HTTP fetcher for the telemetry endpoint.
func NewFetcher(cfg Config) (Fetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &httpFetcher{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (f *httpFetcher) Fetch(ctx context.Context, window time.Duration) ([]reading.Reading, error) {
	errFactory := errors.New()

	u, err := url.Parse(f.endpoint)
	if err != nil {
		return nil, errFactory.Wrap(ErrInvalidEndpoint, err)
	}
	q := u.Query()
	q.Set("seconds", fmt.Sprintf("%d", int(window.Seconds())))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, errFactory.Wrap(ErrFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errFactory.Wrap(ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errFactory.WithData(ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errFactory.Wrap(ErrFetchFailed, err)
	}

	batch, err := reading.DecodeBatch(body)
	if err != nil {
		return nil, errFactory.Wrap(ErrDecodeFailed, err)
	}

	return batch, nil
}

// Poller drives periodic fetching into a sink.
type Poller struct {
	fetcher  Fetcher
	sink     Sink
	interval time.Duration
}

func New(fetcher Fetcher, sink Sink, interval time.Duration) *Poller {
	return &Poller{
		fetcher:  fetcher,
		sink:     sink,
		interval: interval,
	}
}

// Run fetches once immediately, then on every tick, and again whenever the
// sink requests a full refetch after a retention change.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.poll(ctx)
		case <-p.sink.Refetch():
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	window := p.sink.Retention()

	batch, err := p.fetcher.Fetch(ctx, window)
	if err != nil {
		// Non-fatal: the last-known-good set keeps rendering.
		logger.Warn().Err(err).Msg("Fetch failed, keeping previous readings")
		return
	}

	p.sink.ApplyBatch(batch)
}
