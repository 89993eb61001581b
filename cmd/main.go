package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/jamstats/internal/adapters/http/api"
	app "github.com/okian/jamstats/internal/app"
	"github.com/okian/jamstats/internal/config"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/pkg/logger"
	"github.com/okian/jamstats/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Gauge refresh intervals for the background samplers.
const (
	runtimeSampleInterval = 10 * time.Second
	serviceSampleInterval = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString("jamstats: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// run owns the process lifecycle: configuration, the ingestion service,
// the HTTP server and the graceful teardown of all three.
func run(ctx context.Context) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// Validate already vetted the level string.
	_ = logger.SetLevelString(cfg.LogLevel)

	// An optional seed corpus loads before the service starts so the
	// first leaderboard request has data to chew on.
	var seed []model.Track
	if cfg.SeedPath != "" {
		seed, err = loadSeedTracks(cfg.SeedPath)
		if err != nil {
			return fmt.Errorf("load seed corpus: %w", err)
		}
		log.Info(ctx, "loaded seed corpus", logger.String("path", cfg.SeedPath), logger.Int("tracks", len(seed)))
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithCacheSize(cfg.CacheSize),
		app.WithTourGapDays(cfg.TourGapDays),
		app.WithSeedTracks(seed),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	go sampleRuntime(ctx)
	go sampleService(ctx, svc)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, cfg.MaxLeaderboardLimit).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "http server listening", logger.String("addr", cfg.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info(ctx, "shutdown signal received")
	}

	// Stop taking requests first, then drain the ingestion backlog.
	// Both share the configured grace window.
	grace, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
	defer cancel()

	if err := srv.Shutdown(grace); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("http shutdown: %w", err))
	}
	if err := svc.Stop(grace); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("service stop: %w", err))
	}
	if runErr != nil {
		return runErr
	}

	log.Info(ctx, "jamstats stopped")
	return nil
}

// seedTrack mirrors the ingestion payload shape so a seed file can be
// assembled from the same records clients would POST.
type seedTrack struct {
	Song            string `json:"song"`
	ShowDate        string `json:"show_date"`
	Set             string `json:"set"`
	Position        int    `json:"position"`
	DurationSeconds int    `json:"duration_seconds"`
	Jamchart        bool   `json:"jamchart"`
	Venue           string `json:"venue"`
	Location        string `json:"location"`
}

// loadSeedTracks reads a JSON array of performance records from disk.
func loadSeedTracks(path string) ([]model.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []seedTrack
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	tracks := make([]model.Track, 0, len(records))
	for _, r := range records {
		tracks = append(tracks, model.Track{
			Song:            r.Song,
			ShowDate:        r.ShowDate,
			Set:             r.Set,
			Position:        r.Position,
			DurationSeconds: r.DurationSeconds,
			Jamchart:        r.Jamchart,
			Venue:           r.Venue,
			Location:        r.Location,
		})
	}
	return tracks, nil
}

// sampleRuntime refreshes the process gauges until ctx is done.
func sampleRuntime(ctx context.Context) {
	ticker := time.NewTicker(runtimeSampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			observeRuntime()
		}
	}
}

// sampleService polls an operational snapshot so the queue and dataset
// gauges stay fresh between requests.
func sampleService(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceSampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}

// observeRuntime snapshots runtime.MemStats into the runtime gauges.
func observeRuntime() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	metrics.UpdateRuntimeHeapBytes(m.Alloc)
	metrics.UpdateRuntimeGoroutines(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseNs := float64(m.PauseTotalNs) / float64(m.NumGC)
		metrics.RecordGCPause(avgPauseNs / 1e6)
	}
}
