package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"route-finder-service/internal/adapters/cache"
	"route-finder-service/internal/adapters/geocode"
	"route-finder-service/internal/adapters/network"
	"route-finder-service/internal/adapters/render"
	"route-finder-service/internal/adapters/session"
	"route-finder-service/internal/adapters/traffic"
	"route-finder-service/internal/api"
	"route-finder-service/internal/api/dto"
	"route-finder-service/internal/api/handlers"
	"route-finder-service/internal/config"
	"route-finder-service/internal/platform/db"
	"route-finder-service/internal/platform/httpx"
	"route-finder-service/internal/platform/obs"
	"route-finder-service/internal/ports"
	"route-finder-service/internal/services"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (OpenCage, TomTom, Overpass, stores) behind ports
// and starts the HTTP server.
func main() {
	boot, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load(boot)
	if err != nil {
		boot.Fatal("invalid configuration", zap.Error(err))
	}

	logger, err := obs.NewLogger(cfg.LogLevel, cfg.Development)
	if err != nil {
		boot.Fatal("build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	geoCache, closeCache, err := openGeocodeCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	store, closeStore, err := openMapStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	apiClient := httpx.NewClient(cfg.HTTPClientTimeout)

	geocoder, err := geocode.NewOpenCageGeocoder(cfg.OpenCageAPIKey, cfg.OpenCageBaseURL, apiClient, geoCache, logger)
	if err != nil {
		return err
	}

	sampler, err := traffic.NewTomTomSampler(cfg.TomTomAPIKey, apiClient, logger,
		traffic.WithBaseURL(cfg.TomTomBaseURL),
		traffic.WithZoom(cfg.TomTomZoom),
		traffic.WithRateLimit(cfg.TrafficQPS),
	)
	if err != nil {
		return err
	}

	// Overpass answers slowly for large areas; it gets its own client.
	overpassClient := httpx.NewClient(cfg.NetworkTimeout)
	overpassClient.MaxAttempts = 2
	provider, err := network.NewOverpassProvider(cfg.OverpassURL, overpassClient, logger)
	if err != nil {
		return err
	}

	finder, err := services.NewRouteFinder(geocoder, provider, sampler, render.NewLeafletRenderer(),
		services.WithRadius(cfg.NetworkRadiusMeters),
		services.WithMaxCandidates(cfg.MaxCandidates),
		services.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	routes := handlers.NewRouteHandler(finder, store, dto.RouteQuery{
		Start: cfg.DefaultStart,
		End:   cfg.DefaultEnd,
	}, logger)
	router := api.NewRouter(routes, logger)

	// Timeouts are tuned for a full pipeline run (network download plus one
	// traffic call per candidate edge).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func openGeocodeCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.GeocodeCache, func(), error) {
	var (
		conn *sql.DB
		err  error
	)

	switch cfg.GeocodeCache {
	case "postgres":
		conn, err = db.Open(cfg.DatabaseURL)
	case "sqlite":
		conn, err = db.OpenSQLite(cfg.DBPath)
	default:
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() { _ = conn.Close() }
	if err := cache.InitSchema(ctx, conn); err != nil {
		closeFn()
		return nil, nil, err
	}

	logger.Info("geocode cache enabled", zap.String("backend", cfg.GeocodeCache))
	if cfg.GeocodeCache == "postgres" {
		return cache.NewSQLGeocodeCache(conn), closeFn, nil
	}
	return cache.NewSqliteGeocodeCache(conn), closeFn, nil
}

func openMapStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.MapStore, func(), error) {
	if cfg.SessionStore != "redis" {
		return session.NewMemoryStore(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}

	store, err := session.NewRedisStore(rdb, cfg.SessionTTL)
	if err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}

	logger.Info("redis session store enabled", zap.String("addr", cfg.RedisAddr))
	return store, func() { _ = rdb.Close() }, nil
}
