package analytics

import (
	"context"

	"github.com/videra/data-server/internal/pagination"
)

// Repository defines the analytics repository API
type Repository interface {
	// List retrieves a page of data points matching the given query
	List(ctx context.Context, query pagination.Query) (*pagination.Page[*DataPoint], error)

	// Range retrieves all data points between two dates (inclusive, YYYY-MM-DD); empty bounds are open
	Range(ctx context.Context, from, to string) ([]*DataPoint, error)

	// Create creates a new data point
	Create(ctx context.Context, create *Create) (*DataPoint, error)
}
