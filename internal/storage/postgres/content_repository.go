package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/pagination"
)

var contentColumns = []string{
	"id",
	"title",
	"platform",
	"published_at",
	"views",
	"likes",
	"shares",
	"comments",
	"thumbnail",
	"status",
	"performance",
	"engagement_rate",
}

var contentList = &listPlan{
	table:         "content",
	columns:       contentColumns,
	searchColumns: []string{"title", "platform"},
	filters: map[string]filterColumn{
		content.FilterPlatform:    {column: "platform"},
		content.FilterStatus:      {column: "status"},
		content.FilterPerformance: {column: "performance"},
	},
	sorts: map[string]string{
		"publishedAt":    "published_at",
		"views":          "views",
		"likes":          "likes",
		"shares":         "shares",
		"comments":       "comments",
		"engagementRate": "engagement_rate",
		"title":          "LOWER(title)",
	},
}

// ContentRepository implements the content.Repository interface using PostgreSQL
type ContentRepository struct {
	db *pgxpool.Pool
}

var _ content.Repository = (*ContentRepository)(nil)

// List retrieves a page of content items matching the given query
func (repo *ContentRepository) List(ctx context.Context, query pagination.Query) (*pagination.Page[*content.Item], error) {
	return fetchPage(ctx, repo.db, contentList, query, repo.rowToItem)
}

// GetByID retrieves a content item by its ID
func (repo *ContentRepository) GetByID(ctx context.Context, id string) (*content.Item, error) {
	sql, vals, err := squirrel.Select(contentColumns...).
		From("content").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	obj, err := repo.rowToItem(repo.db.QueryRow(ctx, sql, vals...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new content item
func (repo *ContentRepository) Create(ctx context.Context, create *content.Create) (*content.Item, error) {
	obj, err := create.Build()
	if err != nil {
		return nil, err
	}

	sql, vals, err := squirrel.Insert("content").
		Columns(contentColumns...).
		Values(
			obj.ID,
			obj.Title,
			obj.Platform,
			obj.PublishedAt,
			obj.Views,
			obj.Likes,
			obj.Shares,
			obj.Comments,
			obj.Thumbnail,
			string(obj.Status),
			string(obj.Performance),
			obj.EngagementRate,
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

// Update updates an existing content item; it returns nil if the item does not exist
func (repo *ContentRepository) Update(ctx context.Context, id string, update *content.Update) (*content.Item, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	// Begin a new transaction
	tx, err := repo.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock and retrieve the current state of the item
	row := tx.QueryRow(ctx, "SELECT "+columnList(contentColumns)+" FROM content WHERE id = $1 FOR UPDATE", id)
	old, err := repo.rowToItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	// Write back the updated item
	obj := update.Apply(old)
	sql, vals, err := squirrel.Update("content").
		Set("title", obj.Title).
		Set("platform", obj.Platform).
		Set("published_at", obj.PublishedAt).
		Set("views", obj.Views).
		Set("likes", obj.Likes).
		Set("shares", obj.Shares).
		Set("comments", obj.Comments).
		Set("thumbnail", obj.Thumbnail).
		Set("status", string(obj.Status)).
		Set("performance", string(obj.Performance)).
		Set("engagement_rate", obj.EngagementRate).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, sql, vals...); err != nil {
		return nil, err
	}

	// Commit the changes
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return obj, nil
}

// Delete deletes a content item by its ID
func (repo *ContentRepository) Delete(ctx context.Context, id string) error {
	_, err := repo.db.Exec(ctx, "DELETE FROM content WHERE id = $1", id)
	return err
}

func (repo *ContentRepository) rowToItem(row pgx.Row) (*content.Item, error) {
	obj := new(content.Item)
	var status, performance string
	err := row.Scan(
		&obj.ID,
		&obj.Title,
		&obj.Platform,
		&obj.PublishedAt,
		&obj.Views,
		&obj.Likes,
		&obj.Shares,
		&obj.Comments,
		&obj.Thumbnail,
		&status,
		&performance,
		&obj.EngagementRate,
	)
	if err != nil {
		return nil, err
	}
	obj.PublishedAt = obj.PublishedAt.UTC()
	obj.Status = content.Status(status)
	obj.Performance = content.Performance(performance)
	return obj, nil
}

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}
