package memory

import (
	"context"

	"github.com/hashicorp/go-memdb"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/storage"
	"github.com/videra/data-server/internal/trend"
	"github.com/videra/data-server/internal/user"
)

// Driver represents the in-memory storage driver built using hashicorp/go-memdb
type Driver struct {
	db        *memdb.MemDB
	content   *ContentRepository
	analytics *AnalyticsRepository
	trends    *TrendRepository
	users     *UserRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty in-memory storage driver.
// Use Initialize to create the database and initialize the repository implementations.
func New() *Driver {
	return &Driver{}
}

// Initialize creates the in-memory database and initializes the repository implementations
func (driver *Driver) Initialize(_ context.Context) error {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	driver.db = db

	driver.content = &ContentRepository{table: newTable[*content.Item](db, tableContent)}
	driver.analytics = &AnalyticsRepository{table: newTable[*analytics.DataPoint](db, tableAnalytics)}
	driver.trends = &TrendRepository{table: newTable[*trend.Topic](db, tableTrends)}
	driver.users = &UserRepository{table: newTable[*user.User](db, tableUsers)}
	return nil
}

// Content provides the in-memory content repository implementation
func (driver *Driver) Content() content.Repository {
	return driver.content
}

// Analytics provides the in-memory analytics repository implementation
func (driver *Driver) Analytics() analytics.Repository {
	return driver.analytics
}

// Trends provides the in-memory trending topic repository implementation
func (driver *Driver) Trends() trend.Repository {
	return driver.trends
}

// Users provides the in-memory user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Close discards the repository implementations and the in-memory database
func (driver *Driver) Close() {
	driver.content = nil
	driver.analytics = nil
	driver.trends = nil
	driver.users = nil
	driver.db = nil
}
