package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"log-stats/internal/aggregators"
	"log-stats/internal/classifiers"
	"log-stats/internal/geolocators"
	internalhttp "log-stats/internal/http"
	"log-stats/internal/ingestors"
	"log-stats/internal/models"
	"log-stats/internal/parsers"
	"log-stats/internal/reports"
	"log-stats/internal/resolvers"
	"log-stats/internal/shared/configs"
	"log-stats/internal/shared/filestorages"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/ulid"
	"log-stats/internal/stores"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// RunResult summarises one Run.
type RunResult struct {
	RunID   string
	Ingest  *ingestors.IngestResult
	Group   *aggregators.GroupResult // nil when resolution is disabled
	Years   []int
	Reports []string
}

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	stdin     io.Reader

	cacheStore   stores.LogCacheStore  // nil when the cache is off
	loadSnapshot stores.SnapshotStore  // nil when no snapshot is loaded
	saveSnapshot stores.SnapshotStore  // nil when no snapshot is saved
	reportStore  stores.ReportStore
	geoStore     stores.GeolocationStore // nil without a geolocation db

	ingestionService ingestors.IngestionService
	ipGrouper        aggregators.IPGrouper // nil when resolution is disabled
	reportBuilder    reports.ReportBuilder
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(loggers.LevelFor(config.Log.Level, config.Log.Verbose))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger = appLogger.With().
		Str(loggers.FieldApp, "log-stats").
		Logger()

	app := &App{
		config:    config,
		appLogger: appLogger,
		stdin:     os.Stdin,
	}

	// Initialize stores
	if config.Cache.BasePath != "" {
		cacheStorage, err := filestorages.NewFileStorage(config.Cache.BasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache storage: %w", err)
		}
		app.cacheStore = stores.NewLogCacheStore(cacheStorage)
	}
	if app.loadSnapshot, err = newSnapshotStore(config.Snapshot.LoadPath); err != nil {
		return nil, err
	}
	if app.saveSnapshot, err = newSnapshotStore(config.Snapshot.SavePath); err != nil {
		return nil, err
	}
	outputStorage, err := filestorages.NewFileStorage(config.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize output storage: %w", err)
	}
	app.reportStore = stores.NewReportStore(outputStorage)

	// Initialize ingestion
	botIPs, err := loadBotIPs(config.Bots.IPFile)
	if err != nil {
		return nil, err
	}
	var classifierOpts []classifiers.Option
	if config.Bots.DetectKnownCrawlers {
		classifierOpts = append(classifierOpts, classifiers.WithKnownCrawlers())
	}
	botClassifier, err := classifiers.NewBotClassifier(botIPs, config.Bots.UserAgentPattern, classifierOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot classifier: %w", err)
	}
	app.ingestionService = ingestors.NewIngestionService(
		parsers.NewLogEntryParser(),
		botClassifier,
		config.Input.BatchSize,
		config.Session.Delimiter,
	)

	// Initialize resolution and geolocation
	ipResolver := resolvers.NewIPResolver(nil, config.Resolution.DNSTimeout)
	var reportResolver resolvers.IPResolver
	if config.Resolution.Enabled {
		app.ipGrouper = aggregators.NewIPGrouper(ipResolver)
		reportResolver = ipResolver
	}

	var geolocator geolocators.Geolocator
	if config.Geolocation.SampleSize > 0 {
		if config.Geolocation.DBPath != "" {
			app.geoStore, err = stores.NewGeolocationStore(context.Background(), config.Geolocation.DBPath)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize geolocation store: %w", err)
			}
		}
		limiter := geolocators.NewWindowLimiter(config.Geolocation.MaxCalls, config.Geolocation.Window)
		locationAPI, err := geolocators.NewGeopluginClient(config.Geolocation.APIURL, limiter, config.Geolocation.HTTPTimeout)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("failed to initialize geolocation client: %w", err)
		}
		geolocator = geolocators.NewGeolocator(locationAPI, app.geoStore, ipResolver)
	}

	app.reportBuilder = reports.NewReportBuilder(reportResolver, geolocator, resolvers.IPMemo{}, reports.BuilderOptions{
		SampleSize:    config.Geolocation.SampleSize,
		TLDSampleSize: config.Geolocation.TLDSampleSize,
		Seed:          uint64(time.Now().UnixNano()),
	})

	return app, nil
}

// Close releases the geolocation database.
func (app *App) Close() error {
	if app.geoStore != nil {
		return app.geoStore.Close()
	}
	return nil
}

// Run seeds the statistics, ingests the input, optionally resolves and merges keys,
// writes the reports and persists the result.
func (app *App) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{RunID: ulid.NewRunID()}
	logger := app.appLogger.With().Str(loggers.FieldRunID, result.RunID).Logger()
	ctx = logger.WithContext(ctx)

	stats, fromSnapshot, err := app.seed(ctx)
	if err != nil {
		return nil, err
	}

	// 1) Ingest
	input, closeInput, err := app.openInput()
	if err != nil {
		return nil, err
	}
	result.Ingest, err = app.ingestionService.Ingest(ctx, stats, input)
	closeInput()
	if err != nil {
		return nil, err
	}

	// 2) Resolve and merge
	if app.ipGrouper != nil {
		result.Group, err = app.ipGrouper.ResolveAndGroup(ctx, stats, resolvers.IPMemo{})
		if err != nil {
			return nil, err
		}
		logger.Info().
			Int("resolved", result.Group.Resolved).
			Int("unresolved", result.Group.Unresolved).
			Int("merged", result.Group.Merged).
			Msg("keys resolved")
	}

	// 3) Daily series, merged with the cached one before anything is written
	daily, err := app.dailySeries(ctx, stats, fromSnapshot)
	if err != nil {
		return nil, err
	}

	// 4) Reports, which resolve host names and geolocations in place
	result.Years, result.Reports, err = app.writeReports(ctx, stats, daily)
	if err != nil {
		return nil, err
	}

	// 5) Persist
	if err := app.persist(ctx, stats, daily); err != nil {
		return nil, err
	}
	logger.Info().Ints("years", result.Years).Msg("run completed")
	return result, nil
}

// Serve seeds the statistics once and serves their reports until ctx is cancelled.
func (app *App) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", app.config.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errServeFailed(err)
	}
	return app.serve(ctx, listener)
}

func (app *App) serve(ctx context.Context, listener net.Listener) error {
	ctx = app.appLogger.With().Str(loggers.FieldRunID, ulid.NewRunID()).Logger().WithContext(ctx)

	stats, fromSnapshot, err := app.seed(ctx)
	if err != nil {
		_ = listener.Close()
		return err
	}
	var daily []models.SimpleDailyStats
	if !fromSnapshot && app.cacheStore != nil {
		if daily, err = app.cacheStore.ReadDailyData(ctx); err != nil {
			_ = listener.Close()
			return storeError(err)
		}
	}

	httpLogger := app.appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	reportService := reports.NewReportService(stats, app.reportBuilder, daily)
	server := &http.Server{
		Handler:           internalhttp.NewRouter(reportService, app.config.Output.TopN, httpLogger),
		ReadHeaderTimeout: time.Duration(app.config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(app.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(app.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(app.config.Server.IdleTimeout) * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	app.appLogger.Info().
		Msgf("Starting report server on %s (log_level=%s, years=%v)",
			listener.Addr(),
			app.config.Log.Level,
			stats.Years())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errServeFailed(err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.appLogger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errServeFailed(fmt.Errorf("server shutdown failed: %w", err))
		}
		app.appLogger.Info().Msg("Server stopped")
		return nil
	})
	return g.Wait()
}

// seed restores the statistics from the snapshot when one is configured, else from the
// cache, else starts empty. It reports whether the snapshot was used.
func (app *App) seed(ctx context.Context) (*models.LogStats, bool, error) {
	logger := loggers.Ctx(ctx)
	if app.loadSnapshot != nil {
		stats, err := app.loadSnapshot.Load(ctx)
		if err != nil {
			return nil, false, storeError(err)
		}
		logger.Info().Ints("years", stats.Years()).Msg("seeded from snapshot")
		return stats, true, nil
	}
	if app.cacheStore != nil {
		stats, err := app.cacheStore.Read(ctx)
		if err != nil {
			return nil, false, storeError(err)
		}
		logger.Info().Ints("years", stats.Years()).Time("last_entry", stats.LastEntryTimestamp).Msg("seeded from cache")
		return stats, false, nil
	}
	return models.NewLogStats(), false, nil
}

// dailySeries returns the full daily series. Stats seeded from the cache only hold the
// days of this run, so their series is merged after the cached one; a snapshot holds
// every day already.
func (app *App) dailySeries(ctx context.Context, stats *models.LogStats, fromSnapshot bool) ([]models.SimpleDailyStats, error) {
	daily := stats.DailySeries()
	if app.cacheStore == nil || fromSnapshot {
		return daily, nil
	}
	merged, err := app.cacheStore.MergeDailyData(ctx, daily)
	if err != nil {
		return nil, storeError(err)
	}
	return merged, nil
}

// persist saves the snapshot and the cache. The cache checkpoint goes last.
func (app *App) persist(ctx context.Context, stats *models.LogStats, daily []models.SimpleDailyStats) error {
	if app.saveSnapshot != nil {
		if err := app.saveSnapshot.Save(ctx, stats); err != nil {
			return storeError(err)
		}
	}
	if app.cacheStore == nil {
		return nil
	}
	if err := app.cacheStore.WriteDailyData(ctx, daily); err != nil {
		return storeError(err)
	}
	if err := app.cacheStore.Write(ctx, stats); err != nil {
		return storeError(err)
	}
	return nil
}

func (app *App) writeReports(ctx context.Context, stats *models.LogStats, daily []models.SimpleDailyStats) ([]int, []string, error) {
	years := stats.Years()
	if app.config.Output.Year != 0 {
		years = []int{app.config.Output.Year}
	}

	var written []string
	for _, year := range years {
		report, err := app.reportBuilder.Build(ctx, stats, year, app.config.Output.TopN)
		if err != nil {
			return nil, nil, err
		}
		if err := app.reportStore.SaveYearReport(ctx, report); err != nil {
			return nil, nil, storeError(err)
		}
		written = append(written, filepath.Join(app.config.Output.Dir, "reports", fmt.Sprintf("%d.json", year)))
	}
	if err := app.reportStore.SaveDailyReport(ctx, daily); err != nil {
		return nil, nil, storeError(err)
	}
	written = append(written, filepath.Join(app.config.Output.Dir, "reports", "daily.json"))
	return years, written, nil
}

func (app *App) openInput() (io.Reader, func(), error) {
	path := app.config.Input.Path
	if path == "" || path == "-" {
		return app.stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errInputOpenFailed(path, err)
	}
	return file, func() { _ = file.Close() }, nil
}

func newSnapshotStore(path string) (stores.SnapshotStore, error) {
	if path == "" {
		return nil, nil
	}
	fileStorage, err := filestorages.NewFileStorage(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot storage: %w", err)
	}
	return stores.NewSnapshotStore(fileStorage, filepath.Base(path)), nil
}

func loadBotIPs(path string) (map[string]struct{}, error) {
	if path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errBotFileOpenFailed(path, err)
	}
	defer file.Close()

	botIPs, err := classifiers.LoadBotIPs(file)
	if err != nil {
		return nil, errBotFileOpenFailed(path, err)
	}
	return botIPs, nil
}
