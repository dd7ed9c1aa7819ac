package storage

import (
	"context"
	"errors"

	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/trend"
	"github.com/videra/data-server/internal/user"
)

// ErrDuplicateID is returned by repositories whenever a record with the same ID already exists
var ErrDuplicateID = errors.New("a record with the same ID already exists")

// Driver represents a storage driver
type Driver interface {
	// Initialize initializes the storage driver (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// Content provides a content repository implementation
	Content() content.Repository

	// Analytics provides an analytics repository implementation
	Analytics() analytics.Repository

	// Trends provides a trending topic repository implementation
	Trends() trend.Repository

	// Users provides a user repository implementation
	Users() user.Repository

	// Close closes the storage driver (i.e. closes a database connection)
	Close()
}
