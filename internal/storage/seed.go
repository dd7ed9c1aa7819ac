package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/trend"
	"github.com/videra/data-server/internal/user"
)

var firstItem = pagination.Query{Page: 1, Limit: 1}

// SeedMockData inserts the mock collections into every repository of the given driver that is still empty
func SeedMockData(ctx context.Context, driver Driver) error {
	if err := seed(ctx, "content", driver.Content().List, content.Mock(), driver.Content().Create); err != nil {
		return err
	}
	if err := seed(ctx, "analytics", driver.Analytics().List, analytics.Mock(), driver.Analytics().Create); err != nil {
		return err
	}
	if err := seed(ctx, "trends", driver.Trends().List, trend.Mock(), driver.Trends().Create); err != nil {
		return err
	}
	return seed(ctx, "users", driver.Users().List, user.Mock(), driver.Users().Create)
}

func seed[T, C any](
	ctx context.Context,
	name string,
	list func(context.Context, pagination.Query) (*pagination.Page[T], error),
	creates []C,
	create func(context.Context, C) (T, error),
) error {
	page, err := list(ctx, firstItem)
	if err != nil {
		return fmt.Errorf("could not count the items of the %s repository: %w", name, err)
	}
	if page.Pagination.TotalItems > 0 {
		log.Debug().Str("repository", name).Int("items", page.Pagination.TotalItems).Msg("skipping mock data seeding")
		return nil
	}
	for _, obj := range creates {
		if _, err := create(ctx, obj); err != nil {
			return fmt.Errorf("could not seed the %s repository: %w", name, err)
		}
	}
	log.Info().Str("repository", name).Int("items", len(creates)).Msg("seeded mock data")
	return nil
}
