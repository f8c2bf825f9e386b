package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/veland/scrubmon/internal/archive"
	"codeberg.org/veland/scrubmon/internal/config"
	"codeberg.org/veland/scrubmon/internal/engine"
	"codeberg.org/veland/scrubmon/internal/logger"
	"codeberg.org/veland/scrubmon/internal/poller"
	"codeberg.org/veland/scrubmon/internal/reading"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if !cfg.Debug && !cfg.Verbose {
		if err := logger.SetLogLevel(cfg.LogLevel); err != nil {
			fmt.Printf("invalid log level: %v\n", err)
			os.Exit(1)
		}
	}
	logger.Debug().Msg("Config loaded")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	recorder, err := archive.NewService(archive.Config{
		DBPath:       cfg.ArchiveDB,
		Enabled:      cfg.Archive,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize reading archive")
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close reading archive")
		}
	}()

	eng, err := engine.New(engine.Config{
		Interval:  cfg.PollInterval(),
		Retention: cfg.RetentionDuration(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize engine")
	}

	fetcher, err := poller.NewFetcher(poller.Config{
		Endpoint: cfg.Endpoint,
		Interval: cfg.PollInterval(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize fetcher")
	}

	sink := &archivingSink{engine: eng, recorder: recorder, ctx: ctx}
	p := poller.New(fetcher, sink, cfg.PollInterval())
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("error in poll loop")
		}
	}()

	if err := loop(ctx, eng); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
	logger.Info().Msg("Exiting...")
}

func loop(ctx context.Context, eng *engine.Engine) error {
	ticker := time.NewTicker(eng.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			eng.Tick()
			logFrame(eng.Frame())
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

// archivingSink feeds each applied batch to the archive as well as the
// engine.
type archivingSink struct {
	engine   *engine.Engine
	recorder archive.Recorder
	ctx      context.Context
}

func (s *archivingSink) ApplyBatch(batch []reading.Reading) {
	s.engine.ApplyBatch(batch)
	if err := s.recorder.Record(s.ctx, batch); err != nil {
		logger.Error().Err(err).Msg("failed to archive batch")
	}
}

func (s *archivingSink) Retention() time.Duration {
	return s.engine.Retention()
}

func (s *archivingSink) Refetch() <-chan struct{} {
	return s.engine.Refetch()
}

func logFrame(frame engine.Frame) {
	if !cfg.Verbose && !cfg.Debug {
		return
	}

	logger.Info().
		Int64("window_start", frame.WindowStart).
		Int64("window_end", frame.WindowEnd).
		Int("co2_series", len(frame.CO2)).
		Int("temperature_series", len(frame.Temperature)).
		Int("humidity_series", len(frame.Humidity)).
		Int("bands", len(frame.Bands)).
		Str("mode", frame.ModeText).
		Msg("")
}
