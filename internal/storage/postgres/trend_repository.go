package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/trend"
)

var trendColumns = []string{
	"id",
	"topic",
	"category",
	"growth",
	"posts",
	"engagement",
	"platforms",
	"timeframe",
	"difficulty",
	"hashtags",
	"viral_score",
}

var trendList = &listPlan{
	table:         "trends",
	columns:       trendColumns,
	searchColumns: []string{"topic", "category", "array_to_string(hashtags, ' ')"},
	filters: map[string]filterColumn{
		trend.FilterPlatform:  {column: "platforms", operator: operatorContains},
		trend.FilterTimeframe: {column: "timeframe"},
		trend.FilterCategory:  {column: "category", operator: operatorEqualsFold},
	},
	sorts: map[string]string{
		"viralScore": "viral_score",
		"topic":      "LOWER(topic)",
	},
}

// TrendRepository implements the trend.Repository interface using PostgreSQL
type TrendRepository struct {
	db *pgxpool.Pool
}

var _ trend.Repository = (*TrendRepository)(nil)

// List retrieves a page of trending topics matching the given query
func (repo *TrendRepository) List(ctx context.Context, query pagination.Query) (*pagination.Page[*trend.Topic], error) {
	return fetchPage(ctx, repo.db, trendList, query, repo.rowToTopic)
}

// GetByID retrieves a trending topic by its ID
func (repo *TrendRepository) GetByID(ctx context.Context, id string) (*trend.Topic, error) {
	sql, vals, err := squirrel.Select(trendColumns...).
		From("trends").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	obj, err := repo.rowToTopic(repo.db.QueryRow(ctx, sql, vals...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new trending topic
func (repo *TrendRepository) Create(ctx context.Context, create *trend.Create) (*trend.Topic, error) {
	obj, err := create.Build()
	if err != nil {
		return nil, err
	}

	sql, vals, err := squirrel.Insert("trends").
		Columns(trendColumns...).
		Values(
			obj.ID,
			obj.Topic,
			obj.Category,
			obj.Growth,
			obj.Posts,
			obj.Engagement,
			obj.Platforms,
			obj.Timeframe,
			obj.Difficulty,
			obj.Hashtags,
			obj.ViralScore,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := repo.db.Exec(ctx, sql, vals...); err != nil {
		return nil, translateError(err)
	}
	return obj, nil
}

func (repo *TrendRepository) rowToTopic(row pgx.Row) (*trend.Topic, error) {
	obj := new(trend.Topic)
	err := row.Scan(
		&obj.ID,
		&obj.Topic,
		&obj.Category,
		&obj.Growth,
		&obj.Posts,
		&obj.Engagement,
		&obj.Platforms,
		&obj.Timeframe,
		&obj.Difficulty,
		&obj.Hashtags,
		&obj.ViralScore,
	)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
