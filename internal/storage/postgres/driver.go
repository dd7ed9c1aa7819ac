package postgres

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/storage"
	"github.com/videra/data-server/internal/trend"
	"github.com/videra/data-server/internal/user"
)

const codeUniqueViolation = "23505"

//go:embed migrations/*.sql
var migrations embed.FS

// Driver represents the PostgreSQL storage driver implementation
type Driver struct {
	dsn       string
	db        *pgxpool.Pool
	content   *ContentRepository
	analytics *AnalyticsRepository
	trends    *TrendRepository
	users     *UserRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty PostgreSQL storage driver.
// Use Initialize to open the database connection and initialize the repository implementations.
func New(dsn string) *Driver {
	return &Driver{
		dsn: dsn,
	}
}

// Initialize opens the database connection, migrates the database and initializes the repository implementations
func (driver *Driver) Initialize(ctx context.Context) error {
	// Perform SQL migrations
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, driver.dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	// Initialize the database connection pool
	pool, err := pgxpool.Connect(ctx, driver.dsn)
	if err != nil {
		return err
	}
	driver.db = pool

	// Initialize the repository implementations
	driver.content = &ContentRepository{db: pool}
	driver.analytics = &AnalyticsRepository{db: pool}
	driver.trends = &TrendRepository{db: pool}
	driver.users = &UserRepository{db: pool}

	return nil
}

// Content provides the PostgreSQL content repository implementation
func (driver *Driver) Content() content.Repository {
	return driver.content
}

// Analytics provides the PostgreSQL analytics repository implementation
func (driver *Driver) Analytics() analytics.Repository {
	return driver.analytics
}

// Trends provides the PostgreSQL trending topic repository implementation
func (driver *Driver) Trends() trend.Repository {
	return driver.trends
}

// Users provides the PostgreSQL user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Close discards the repository implementations and closes the database connection
func (driver *Driver) Close() {
	driver.content = nil
	driver.analytics = nil
	driver.trends = nil
	driver.users = nil

	if driver.db != nil {
		driver.db.Close()
		driver.db = nil
	}
}

// translateError maps unique violations to storage.ErrDuplicateID
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return storage.ErrDuplicateID
	}
	return err
}
