package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/user"
)

var userColumns = []string{
	"id",
	"email",
	"name",
	"plan",
	"status",
	"created_at",
	"last_login",
	"total_posts",
	"signup_ip",
}

var userList = &listPlan{
	table:         "users",
	columns:       userColumns,
	searchColumns: []string{"email", "name"},
	filters: map[string]filterColumn{
		user.FilterPlan:   {column: "plan"},
		user.FilterStatus: {column: "status"},
	},
	sorts: map[string]string{
		"createdAt":  "created_at",
		"lastLogin":  "last_login",
		"totalPosts": "total_posts",
		"name":       "LOWER(name)",
		"email":      "LOWER(email)",
	},
}

// UserRepository implements the user.Repository interface using PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

var _ user.Repository = (*UserRepository)(nil)

// List retrieves a page of users matching the given query
func (repo *UserRepository) List(ctx context.Context, query pagination.Query) (*pagination.Page[*user.User], error) {
	return fetchPage(ctx, repo.db, userList, query, repo.rowToUser)
}

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	row := repo.db.QueryRow(ctx, "SELECT "+columnList(userColumns)+" FROM users WHERE id = $1", id)
	obj, err := repo.rowToUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new user
func (repo *UserRepository) Create(ctx context.Context, create *user.Create) (*user.User, error) {
	obj, err := create.Build()
	if err != nil {
		return nil, err
	}

	sql, vals, err := squirrel.Insert("users").
		Columns(userColumns...).
		Values(
			obj.ID,
			obj.Email,
			obj.Name,
			string(obj.Plan),
			string(obj.Status),
			obj.CreatedAt,
			obj.LastLogin,
			obj.TotalPosts,
			obj.SignupIP,
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

// Update updates an existing user; it returns nil if the user does not exist
func (repo *UserRepository) Update(ctx context.Context, id string, update *user.Update) (*user.User, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if update.Plan != nil || update.Status != nil {
		query := squirrel.Update("users").Where(squirrel.Eq{"id": id})
		if update.Plan != nil {
			query = query.Set("plan", string(*update.Plan))
		}
		if update.Status != nil {
			query = query.Set("status", string(*update.Status))
		}

		sql, values, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return nil, err
		}
		if _, err := repo.db.Exec(ctx, sql, values...); err != nil {
			return nil, err
		}
	}

	// Re-fetch the user
	return repo.GetByID(ctx, id)
}

// CountBySignupIP counts the users that signed up from the given IP address
func (repo *UserRepository) CountBySignupIP(ctx context.Context, ip string) (int, error) {
	if ip == "" {
		return 0, nil
	}
	var n int
	if err := repo.db.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE signup_ip = $1", ip).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (repo *UserRepository) rowToUser(row pgx.Row) (*user.User, error) {
	obj := new(user.User)
	var plan, status string
	err := row.Scan(
		&obj.ID,
		&obj.Email,
		&obj.Name,
		&plan,
		&status,
		&obj.CreatedAt,
		&obj.LastLogin,
		&obj.TotalPosts,
		&obj.SignupIP,
	)
	if err != nil {
		return nil, err
	}
	obj.Plan = user.Plan(plan)
	obj.Status = user.Status(status)
	obj.CreatedAt = obj.CreatedAt.UTC()
	if obj.LastLogin != nil {
		lastLogin := obj.LastLogin.UTC()
		obj.LastLogin = &lastLogin
	}
	return obj, nil
}
