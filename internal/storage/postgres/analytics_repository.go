package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/pagination"
)

var analyticsColumns = []string{
	"id",
	"date",
	"views",
	"engagement",
	"platform",
	"content_id",
}

func convertDate(raw string) (any, error) {
	return analytics.ParseDate(raw)
}

var analyticsList = &listPlan{
	table:         "analytics",
	columns:       analyticsColumns,
	searchColumns: []string{"platform"},
	filters: map[string]filterColumn{
		analytics.FilterPlatform:  {column: "platform"},
		analytics.FilterStartDate: {column: "date", operator: operatorAtLeast, convert: convertDate},
		analytics.FilterEndDate:   {column: "date", operator: operatorAtMost, convert: convertDate},
		analytics.FilterContentID: {column: "content_id"},
	},
	sorts: map[string]string{
		"date":       "date",
		"views":      "views",
		"engagement": "engagement",
	},
}

// AnalyticsRepository implements the analytics.Repository interface using PostgreSQL
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

var _ analytics.Repository = (*AnalyticsRepository)(nil)

// List retrieves a page of data points matching the given query
func (repo *AnalyticsRepository) List(ctx context.Context, query pagination.Query) (*pagination.Page[*analytics.DataPoint], error) {
	return fetchPage(ctx, repo.db, analyticsList, query, repo.rowToDataPoint)
}

// Range retrieves all data points between two dates (inclusive), ordered by date; empty bounds are open
func (repo *AnalyticsRepository) Range(ctx context.Context, from, to string) ([]*analytics.DataPoint, error) {
	query := squirrel.Select(analyticsColumns...).From("analytics").OrderBy("date ASC", "id ASC")
	if from != "" {
		fromDate, err := analytics.ParseDate(from)
		if err != nil {
			return nil, err
		}
		query = query.Where(squirrel.GtOrEq{"date": fromDate})
	}
	if to != "" {
		toDate, err := analytics.ParseDate(to)
		if err != nil {
			return nil, err
		}
		query = query.Where(squirrel.LtOrEq{"date": toDate})
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []*analytics.DataPoint{}
	for rows.Next() {
		obj, err := repo.rowToDataPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, obj)
	}
	return points, rows.Err()
}

// Create creates a new data point
func (repo *AnalyticsRepository) Create(ctx context.Context, create *analytics.Create) (*analytics.DataPoint, error) {
	obj, err := create.Build()
	if err != nil {
		return nil, err
	}
	date, err := obj.Day()
	if err != nil {
		return nil, err
	}
	var contentID *string
	if obj.ContentID != "" {
		contentID = &obj.ContentID
	}

	_, err = repo.db.Exec(
		ctx,
		"INSERT INTO analytics (id, date, views, engagement, platform, content_id) VALUES ($1, $2, $3, $4, $5, $6)",
		obj.ID,
		date,
		obj.Views,
		obj.Engagement,
		obj.Platform,
		contentID,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return obj, nil
}

func (repo *AnalyticsRepository) rowToDataPoint(row pgx.Row) (*analytics.DataPoint, error) {
	obj := new(analytics.DataPoint)
	var date time.Time
	var contentID *string
	if err := row.Scan(&obj.ID, &date, &obj.Views, &obj.Engagement, &obj.Platform, &contentID); err != nil {
		return nil, err
	}
	obj.Date = date.Format(analytics.DateLayout)
	if contentID != nil {
		obj.ContentID = *contentID
	}
	return obj, nil
}
