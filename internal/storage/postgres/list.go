package postgres

import (
	"context"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/videra/data-server/internal/pagination"
)

type filterOperator int

const (
	operatorEquals filterOperator = iota
	operatorEqualsFold
	operatorAtLeast
	operatorAtMost
	operatorContains
)

// filterColumn maps a query filter onto a column and the operator to compare it with
type filterColumn struct {
	column   string
	operator filterOperator
	convert  func(raw string) (any, error)
}

// listPlan describes how a pagination.Query is pushed down into SQL for a single table.
// Only allow-listed columns ever reach the generated statements.
type listPlan struct {
	table         string
	columns       []string
	searchColumns []string
	filters       map[string]filterColumn
	sorts         map[string]string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// build builds the COUNT statement and the paged SELECT statement answering the given query
func (plan *listPlan) build(query pagination.Query) (squirrel.SelectBuilder, squirrel.SelectBuilder, error) {
	where := squirrel.And{}

	if query.Search != "" && len(plan.searchColumns) > 0 {
		pattern := "%" + likeEscaper.Replace(query.Search) + "%"
		search := squirrel.Or{}
		for _, column := range plan.searchColumns {
			search = append(search, squirrel.ILike{column: pattern})
		}
		where = append(where, search)
	}

	keys := make([]string, 0, len(query.Filters))
	for key := range query.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		filter, ok := plan.filters[key]
		if !ok {
			continue
		}
		var value any = query.Filters[key]
		if filter.convert != nil {
			converted, err := filter.convert(query.Filters[key])
			if err != nil {
				return squirrel.SelectBuilder{}, squirrel.SelectBuilder{}, err
			}
			value = converted
		}

		switch filter.operator {
		case operatorEqualsFold:
			where = append(where, squirrel.Expr("LOWER("+filter.column+") = LOWER(?)", value))
		case operatorAtLeast:
			where = append(where, squirrel.GtOrEq{filter.column: value})
		case operatorAtMost:
			where = append(where, squirrel.LtOrEq{filter.column: value})
		case operatorContains:
			where = append(where, squirrel.Expr("? = ANY("+filter.column+")", value))
		default:
			where = append(where, squirrel.Eq{filter.column: value})
		}
	}

	count := squirrel.Select("COUNT(*)").From(plan.table)
	page := squirrel.Select(plan.columns...).From(plan.table)
	if len(where) > 0 {
		count = count.Where(where)
		page = page.Where(where)
	}

	if column, ok := plan.sorts[query.SortBy]; ok && query.SortBy != "" {
		if query.SortOrder == pagination.SortOrderDescending {
			page = page.OrderBy(column + " DESC NULLS LAST")
		} else {
			page = page.OrderBy(column + " ASC NULLS FIRST")
		}
	}
	page = page.OrderBy("id ASC").
		Limit(uint64(query.Limit)).
		Offset(uint64(query.Offset()))

	return count.PlaceholderFormat(squirrel.Dollar), page.PlaceholderFormat(squirrel.Dollar), nil
}

// fetchPage counts and fetches the page of rows answering the given query
func fetchPage[T any](ctx context.Context, db *pgxpool.Pool, plan *listPlan, query pagination.Query, scan func(pgx.Row) (T, error)) (*pagination.Page[T], error) {
	countQuery, pageQuery, err := plan.build(query)
	if err != nil {
		return nil, err
	}

	// Fetch the total amount of rows matching the query
	countSQL, countVals, err := countQuery.ToSql()
	if err != nil {
		return nil, err
	}
	var n int
	if err := db.QueryRow(ctx, countSQL, countVals...).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 || query.Offset() >= n {
		return pagination.NewPage[T](query, nil, n), nil
	}

	// Fetch the rows of the requested page
	pageSQL, pageVals, err := pageQuery.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, pageSQL, pageVals...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		obj, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pagination.NewPage(query, items, n), nil
}
