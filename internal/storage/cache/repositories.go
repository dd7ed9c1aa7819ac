package cache

import (
	"context"

	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/trend"
	"github.com/videra/data-server/internal/user"
)

// ContentRepository implements the content.Repository interface in order to implement caching
type ContentRepository struct {
	repo  content.Repository
	layer *layer
}

var _ content.Repository = (*ContentRepository)(nil)

// List retrieves a page of content items matching the given query
func (repo *ContentRepository) List(ctx context.Context, query pagination.Query) (*pagination.Page[*content.Item], error) {
	return through(ctx, repo.layer, resourceContent, "list:"+query.Key(), func() (*pagination.Page[*content.Item], error) {
		return repo.repo.List(ctx, query)
	})
}

// GetByID retrieves a content item by its ID
func (repo *ContentRepository) GetByID(ctx context.Context, id string) (*content.Item, error) {
	return through(ctx, repo.layer, resourceContent, "id:"+id, func() (*content.Item, error) {
		return repo.repo.GetByID(ctx, id)
	})
}

// Create creates a new content item
func (repo *ContentRepository) Create(ctx context.Context, create *content.Create) (*content.Item, error) {
	obj, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	repo.layer.invalidate(ctx, resourceContent)
	return obj, nil
}

// Update updates an existing content item
func (repo *ContentRepository) Update(ctx context.Context, id string, update *content.Update) (*content.Item, error) {
	obj, err := repo.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	repo.layer.invalidate(ctx, resourceContent)
	return obj, nil
}

// Delete deletes a content item by its ID
func (repo *ContentRepository) Delete(ctx context.Context, id string) error {
	if err := repo.repo.Delete(ctx, id); err != nil {
		return err
	}
	repo.layer.invalidate(ctx, resourceContent)
	return nil
}

// AnalyticsRepository implements the analytics.Repository interface in order to implement caching
type AnalyticsRepository struct {
	repo  analytics.Repository
	layer *layer
}

var _ analytics.Repository = (*AnalyticsRepository)(nil)

// List retrieves a page of data points matching the given query
func (repo *AnalyticsRepository) List(ctx context.Context, query pagination.Query) (*pagination.Page[*analytics.DataPoint], error) {
	return through(ctx, repo.layer, resourceAnalytics, "list:"+query.Key(), func() (*pagination.Page[*analytics.DataPoint], error) {
		return repo.repo.List(ctx, query)
	})
}

// Range retrieves all data points between two dates
func (repo *AnalyticsRepository) Range(ctx context.Context, from, to string) ([]*analytics.DataPoint, error) {
	return through(ctx, repo.layer, resourceAnalytics, "range:"+from+":"+to, func() ([]*analytics.DataPoint, error) {
		return repo.repo.Range(ctx, from, to)
	})
}

// Create creates a new data point
func (repo *AnalyticsRepository) Create(ctx context.Context, create *analytics.Create) (*analytics.DataPoint, error) {
	obj, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	repo.layer.invalidate(ctx, resourceAnalytics)
	return obj, nil
}

// TrendRepository implements the trend.Repository interface in order to implement caching
type TrendRepository struct {
	repo  trend.Repository
	layer *layer
}

var _ trend.Repository = (*TrendRepository)(nil)

// List retrieves a page of trending topics matching the given query
func (repo *TrendRepository) List(ctx context.Context, query pagination.Query) (*pagination.Page[*trend.Topic], error) {
	return through(ctx, repo.layer, resourceTrends, "list:"+query.Key(), func() (*pagination.Page[*trend.Topic], error) {
		return repo.repo.List(ctx, query)
	})
}

// GetByID retrieves a trending topic by its ID
func (repo *TrendRepository) GetByID(ctx context.Context, id string) (*trend.Topic, error) {
	return through(ctx, repo.layer, resourceTrends, "id:"+id, func() (*trend.Topic, error) {
		return repo.repo.GetByID(ctx, id)
	})
}

// Create creates a new trending topic
func (repo *TrendRepository) Create(ctx context.Context, create *trend.Create) (*trend.Topic, error) {
	obj, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	repo.layer.invalidate(ctx, resourceTrends)
	return obj, nil
}

// UserRepository implements the user.Repository interface in order to implement caching.
// Account counts per signup IP are never cached.
type UserRepository struct {
	repo  user.Repository
	layer *layer
}

var _ user.Repository = (*UserRepository)(nil)

// List retrieves a page of users matching the given query
func (repo *UserRepository) List(ctx context.Context, query pagination.Query) (*pagination.Page[*user.User], error) {
	return through(ctx, repo.layer, resourceUsers, "list:"+query.Key(), func() (*pagination.Page[*user.User], error) {
		return repo.repo.List(ctx, query)
	})
}

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return through(ctx, repo.layer, resourceUsers, "id:"+id, func() (*user.User, error) {
		return repo.repo.GetByID(ctx, id)
	})
}

// Create creates a new user
func (repo *UserRepository) Create(ctx context.Context, create *user.Create) (*user.User, error) {
	obj, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	repo.layer.invalidate(ctx, resourceUsers)
	return obj, nil
}

// Update updates an existing user
func (repo *UserRepository) Update(ctx context.Context, id string, update *user.Update) (*user.User, error) {
	obj, err := repo.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	repo.layer.invalidate(ctx, resourceUsers)
	return obj, nil
}

// CountBySignupIP counts the users that signed up from the given IP address
func (repo *UserRepository) CountBySignupIP(ctx context.Context, ip string) (int, error) {
	return repo.repo.CountBySignupIP(ctx, ip)
}
