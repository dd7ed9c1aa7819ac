package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/storage"
	"github.com/videra/data-server/internal/trend"
	"github.com/videra/data-server/internal/user"
)

// DefaultLifetime is the lifetime of cached results if none is configured
const DefaultLifetime = 5 * time.Minute

// Driver represents a storage driver implementation that wraps another one in order to implement caching
type Driver struct {
	underlying storage.Driver
	layer      *layer
	content    *ContentRepository
	analytics  *AnalyticsRepository
	trends     *TrendRepository
	users      *UserRepository
}

var _ storage.Driver = (*Driver)(nil)

// New returns a new caching storage driver keeping its results in the given store.
// The underlying driver has to be initialized already.
func New(underlying storage.Driver, store Store, lifetime time.Duration) *Driver {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Driver{
		underlying: underlying,
		layer: &layer{
			store:    store,
			lifetime: lifetime,
		},
	}
}

// Initialize initializes the caching repositories
func (driver *Driver) Initialize(_ context.Context) error {
	driver.content = &ContentRepository{repo: driver.underlying.Content(), layer: driver.layer}
	driver.analytics = &AnalyticsRepository{repo: driver.underlying.Analytics(), layer: driver.layer}
	driver.trends = &TrendRepository{repo: driver.underlying.Trends(), layer: driver.layer}
	driver.users = &UserRepository{repo: driver.underlying.Users(), layer: driver.layer}
	return nil
}

// Content provides the caching content repository implementation
func (driver *Driver) Content() content.Repository {
	return driver.content
}

// Analytics provides the caching analytics repository implementation
func (driver *Driver) Analytics() analytics.Repository {
	return driver.analytics
}

// Trends provides the caching trending topic repository implementation
func (driver *Driver) Trends() trend.Repository {
	return driver.trends
}

// Users provides the caching user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Close closes the cache store and disposes the caching repositories.
// The underlying driver is left open.
func (driver *Driver) Close() {
	if err := driver.layer.store.Close(); err != nil {
		log.Warn().Err(err).Msg("could not close the cache store")
	}
	driver.content = nil
	driver.analytics = nil
	driver.trends = nil
	driver.users = nil
}
