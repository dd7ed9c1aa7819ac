package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/videra/data-server/internal/api"
	"github.com/videra/data-server/internal/config"
	"github.com/videra/data-server/internal/storage"
	"github.com/videra/data-server/internal/storage/cache"
	"github.com/videra/data-server/internal/storage/memory"
	"github.com/videra/data-server/internal/storage/postgres"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the storage driver
	log.Info().Str("driver", cfg.StorageDriver).Msg("initializing storage driver...")
	driver, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the storage driver")
	}
	defer driver.Close()

	if cfg.SeedMockData {
		log.Info().Msg("seeding mock data into empty collections...")
		if err := storage.SeedMockData(ctx, driver); err != nil {
			log.Fatal().Err(err).Msg("could not seed the mock data")
		}
	}

	// Wrap the storage driver into the caching layer
	if cfg.CacheEnabled {
		cached, err := wrapCache(ctx, cfg, driver)
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize the cache")
		}
		defer cached.Close()
		driver = cached
	}

	// Start up the dashboard API
	log.Info().Str("address", cfg.APIListenAddress).Msg("starting up the dashboard API...")
	apis := &api.Service{
		Config:  cfg,
		Storage: driver,
	}
	apiErrs := make(chan error, 1)
	apis.Startup(apiErrs)

	log.Info().Msg("done!")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		select {
		case err := <-apiErrs:
			return fmt.Errorf("the API service raised an unexpected error: %w", err)
		case <-groupCtx.Done():
			return nil
		}
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info().Msg("shutting down the dashboard API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.APIShutdownTimeout)
		defer cancel()
		return apis.Shutdown(shutdownCtx)
	})

	// Wait for the application to be terminated
	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("shut down with an error")
	}
	log.Info().Msg("shutting down...")
}

// openStorage creates and initializes the configured storage driver
func openStorage(ctx context.Context, cfg *config.Config) (storage.Driver, error) {
	var driver storage.Driver
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		driver = memory.New()
	case config.StorageDriverPostgres:
		driver = postgres.New(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err := driver.Initialize(ctx); err != nil {
		return nil, err
	}
	return driver, nil
}

// wrapCache wraps the given storage driver into the caching layer.
// A configured Redis address makes every server instance share one cache.
func wrapCache(ctx context.Context, cfg *config.Config, underlying storage.Driver) (storage.Driver, error) {
	var store cache.Store
	if cfg.CacheRedisAddress != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.CacheRedisAddress,
			Password: cfg.CacheRedisPassword,
			DB:       cfg.CacheRedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("could not reach Redis: %w", err)
		}
		log.Info().Str("address", cfg.CacheRedisAddress).Msg("using the Redis cache store")
		store = cache.NewRedisStore(client, "videra:")
	} else {
		store = cache.NewMemoryStore(cfg.CacheLifetime, cfg.CacheCleanupInterval)
	}

	driver := cache.New(underlying, store, cfg.CacheLifetime)
	if err := driver.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return driver, nil
}
