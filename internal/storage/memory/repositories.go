package memory

import (
	"context"

	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/trend"
	"github.com/videra/data-server/internal/user"
)

// ContentRepository implements the content.Repository interface using go-memdb
type ContentRepository struct {
	table *table[*content.Item]
}

var _ content.Repository = (*ContentRepository)(nil)

// List retrieves a page of content items matching the given query
func (repo *ContentRepository) List(_ context.Context, query pagination.Query) (*pagination.Page[*content.Item], error) {
	items, err := repo.table.all()
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(items, query, content.Schema), nil
}

// GetByID retrieves a content item by its ID
func (repo *ContentRepository) GetByID(_ context.Context, id string) (*content.Item, error) {
	obj, _, err := repo.table.get(id)
	return obj, err
}

// Create creates a new content item
func (repo *ContentRepository) Create(_ context.Context, create *content.Create) (*content.Item, error) {
	obj, err := create.Build()
	if err != nil {
		return nil, err
	}
	if err := repo.table.insert(obj.ID, "", obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// Update updates an existing content item; it returns nil if the item does not exist
func (repo *ContentRepository) Update(_ context.Context, id string, update *content.Update) (*content.Item, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	obj, _, err := repo.table.replace(id, update.Apply)
	return obj, err
}

// Delete deletes a content item by its ID
func (repo *ContentRepository) Delete(_ context.Context, id string) error {
	return repo.table.delete(id)
}

// AnalyticsRepository implements the analytics.Repository interface using go-memdb
type AnalyticsRepository struct {
	table *table[*analytics.DataPoint]
}

var _ analytics.Repository = (*AnalyticsRepository)(nil)

// List retrieves a page of data points matching the given query
func (repo *AnalyticsRepository) List(_ context.Context, query pagination.Query) (*pagination.Page[*analytics.DataPoint], error) {
	points, err := repo.table.all()
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(points, query, analytics.Schema), nil
}

// Range retrieves all data points between two dates (inclusive); empty bounds are open
func (repo *AnalyticsRepository) Range(_ context.Context, from, to string) ([]*analytics.DataPoint, error) {
	points, err := repo.table.all()
	if err != nil {
		return nil, err
	}
	result := make([]*analytics.DataPoint, 0, len(points))
	for _, point := range points {
		if (from != "" && point.Date < from) || (to != "" && point.Date > to) {
			continue
		}
		result = append(result, point)
	}
	return result, nil
}

// Create creates a new data point
func (repo *AnalyticsRepository) Create(_ context.Context, create *analytics.Create) (*analytics.DataPoint, error) {
	obj, err := create.Build()
	if err != nil {
		return nil, err
	}
	if err := repo.table.insert(obj.ID, "", obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// TrendRepository implements the trend.Repository interface using go-memdb
type TrendRepository struct {
	table *table[*trend.Topic]
}

var _ trend.Repository = (*TrendRepository)(nil)

// List retrieves a page of trending topics matching the given query
func (repo *TrendRepository) List(_ context.Context, query pagination.Query) (*pagination.Page[*trend.Topic], error) {
	topics, err := repo.table.all()
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(topics, query, trend.Schema), nil
}

// GetByID retrieves a trending topic by its ID
func (repo *TrendRepository) GetByID(_ context.Context, id string) (*trend.Topic, error) {
	obj, _, err := repo.table.get(id)
	return obj, err
}

// Create creates a new trending topic
func (repo *TrendRepository) Create(_ context.Context, create *trend.Create) (*trend.Topic, error) {
	obj, err := create.Build()
	if err != nil {
		return nil, err
	}
	if err := repo.table.insert(obj.ID, "", obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// UserRepository implements the user.Repository interface using go-memdb
type UserRepository struct {
	table *table[*user.User]
}

var _ user.Repository = (*UserRepository)(nil)

// List retrieves a page of users matching the given query
func (repo *UserRepository) List(_ context.Context, query pagination.Query) (*pagination.Page[*user.User], error) {
	users, err := repo.table.all()
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(users, query, user.Schema), nil
}

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	obj, _, err := repo.table.get(id)
	return obj, err
}

// Create creates a new user
func (repo *UserRepository) Create(_ context.Context, create *user.Create) (*user.User, error) {
	obj, err := create.Build()
	if err != nil {
		return nil, err
	}
	if err := repo.table.insert(obj.ID, obj.SignupIP, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// Update updates an existing user; it returns nil if the user does not exist
func (repo *UserRepository) Update(_ context.Context, id string, update *user.Update) (*user.User, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	obj, _, err := repo.table.replace(id, update.Apply)
	return obj, err
}

// CountBySignupIP counts the users that signed up from the given IP address
func (repo *UserRepository) CountBySignupIP(_ context.Context, ip string) (int, error) {
	if ip == "" {
		return 0, nil
	}
	return repo.table.count(ip)
}
