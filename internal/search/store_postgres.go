// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yomira-search/internal/platform/database/schema"
	"github.com/taibuivan/yomira-search/internal/platform/dberr"
	"github.com/taibuivan/yomira-search/internal/platform/postgres"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a PostgreSQL backed search data source.
func NewPostgresRepository(db postgres.Querier) Repository {
	return &postgresRepository{db: db}
}

// columnFor maps predicate and sort attributes to content columns.
var columnFor = map[Field]string{
	FieldTitle:    schema.CoreContent.Title,
	FieldAltTitle: schema.CoreContent.AltTitle,
	FieldAuthor:   schema.CoreContent.Author,
	FieldSynopsis: schema.CoreContent.Synopsis,
	FieldType:     schema.CoreContent.Type,
	FieldStatus:   schema.CoreContent.Status,
	FieldYear:     schema.CoreContent.Year,
	FieldRating:   schema.CoreContent.Rating,
}

var sortColumnFor = map[SortKey]string{
	KeyFavoriteCount: schema.CoreContent.FavoriteCount,
	KeyViewCount:     schema.CoreContent.ViewCount,
	KeyRating:        schema.CoreContent.Rating,
	KeyUpdatedAt:     schema.CoreContent.UpdatedAt,
	KeyTitle:         schema.CoreContent.Title,
	KeyYear:          schema.CoreContent.Year,
	KeyID:            schema.CoreContent.ID,
}

// # Content Query

/*
Query returns a filtered, ordered page of content and the total match count.

Description: Predicates are translated into a dynamic WHERE clause with positional
arguments. COUNT(*) OVER() returns the total in the same round-trip; when the window
lies past the last match a separate COUNT recovers the total.

Parameters:
  - context: context.Context
  - predicates: []Predicate
  - order: SortOrder
  - offset: int
  - limit: int

Returns:
  - []Record: Records of the page
  - int: Total count matching the predicates
  - error: Wrapped database errors
*/
func (repository *postgresRepository) Query(context context.Context, predicates []Predicate, order SortOrder, offset, limit int) ([]Record, int, error) {

	// 1. Filters
	where, args, err := buildWhere(predicates)
	if err != nil {
		return nil, 0, err
	}

	// 2. Projection, ordering and window
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("SELECT c.%s, COUNT(*) OVER() AS total_count FROM %s c WHERE %s",
		strings.Join(schema.CoreContent.SelectColumns(), ", c."),
		schema.CoreContent.Table,
		where,
	))
	queryBuilder.WriteString(" ORDER BY " + buildOrderBy(order))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))

	rows, err := repository.db.Query(context, queryBuilder.String(), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "query_content")
	}
	defer rows.Close()

	// 3. Scan
	var records []Record
	total := 0
	for rows.Next() {
		var record Record
		var status, kind string
		if err := rows.Scan(
			&record.ID, &record.Title, &record.AltTitle, &record.Author, &record.Artist,
			&record.Synopsis, &record.Genres, &record.Year, &record.Rating, &status, &kind,
			&record.FavoriteCount, &record.ViewCount, &record.UpdatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_content")
		}
		record.Status, record.Type = Status(status), Type(kind)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_content")
	}

	// 4. Past-the-end pages still report the real total
	if len(records) == 0 && offset > 0 {
		countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s c WHERE %s", schema.CoreContent.Table, where)
		if err := repository.db.QueryRow(context, countSQL, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_content")
		}
	}

	return records, total, nil
}

// buildWhere translates predicates into a SQL condition over alias c with $n arguments.
func buildWhere(predicates []Predicate) (string, []any, error) {
	conditions := []string{fmt.Sprintf("c.%s IS NULL", schema.CoreContent.DeletedAt)}
	var args []any

	next := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, predicate := range predicates {
		switch clause := predicate.(type) {

		case TextMatch:
			placeholder := next("%" + escapeLike(clause.Needle) + "%")
			alternatives := make([]string, 0, len(clause.Fields))
			for _, field := range clause.Fields {
				alternatives = append(alternatives, fmt.Sprintf("c.%s ILIKE %s", columnFor[field], placeholder))
			}
			conditions = append(conditions, "("+strings.Join(alternatives, " OR ")+")")

		case GenreIncludes:
			conditions = append(conditions, fmt.Sprintf("c.%s && %s::text[]", schema.CoreContent.Genres, next(clause.Genres)))

		case GenreExcludes:
			conditions = append(conditions, fmt.Sprintf("NOT (c.%s && %s::text[])", schema.CoreContent.Genres, next(clause.Genres)))

		case EqualityFilter:
			conditions = append(conditions, fmt.Sprintf("c.%s = %s", columnFor[clause.Field], next(clause.Value)))

		case RangeFilter:
			if clause.Min != nil {
				conditions = append(conditions, fmt.Sprintf("c.%s >= %s::float8", columnFor[clause.Field], next(*clause.Min)))
			}
			if clause.Max != nil {
				conditions = append(conditions, fmt.Sprintf("c.%s <= %s::float8", columnFor[clause.Field], next(*clause.Max)))
			}

		default:
			return "", nil, fmt.Errorf("search: unsupported predicate %T", predicate)
		}
	}

	return strings.Join(conditions, " AND "), args, nil
}

// buildOrderBy renders order with NULLS LAST so absent years trail in both directions.
func buildOrderBy(order SortOrder) string {
	terms := make([]string, 0, len(order))
	for _, term := range order {
		direction := "ASC"
		if term.Descending {
			direction = "DESC"
		}
		terms = append(terms, fmt.Sprintf("c.%s %s NULLS LAST", sortColumnFor[term.Key], direction))
	}
	return strings.Join(terms, ", ")
}

// escapeLike escapes LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// # Favorites

// FavoriteState implements [FavoriteSource].
func (repository *postgresRepository) FavoriteState(context context.Context, requesterID string, ids []string) (map[string]struct{}, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = ANY($2)",
		schema.SocialFavorite.ContentID,
		schema.SocialFavorite.Table,
		schema.SocialFavorite.UserID,
		schema.SocialFavorite.ContentID,
	)

	rows, err := repository.db.Query(context, query, requesterID, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "favorite_state")
	}

	favorited, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_favorite_state")
	}

	set := make(map[string]struct{}, len(favorited))
	for _, id := range favorited {
		set[id] = struct{}{}
	}
	return set, nil
}

// # Query Log

// AppendQueryLog implements [QueryLogStore].
func (repository *postgresRepository) AppendQueryLog(context context.Context, entry LogEntry) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)",
		schema.SearchQueryLog.Table,
		schema.SearchQueryLog.ID,
		schema.SearchQueryLog.Query,
		schema.SearchQueryLog.Scope,
		schema.SearchQueryLog.UserID,
		schema.SearchQueryLog.ResultCount,
		schema.SearchQueryLog.CreatedAt,
	)

	var requesterID *string
	if entry.RequesterID != "" {
		requesterID = &entry.RequesterID
	}

	if _, err := repository.db.Exec(context, query,
		entry.ID, entry.Query, entry.Scope, requesterID, entry.ResultCount, entry.CreatedAt,
	); err != nil {
		return dberr.Wrap(err, "append_querylog")
	}
	return nil
}

// CountQueries implements [QueryLogStore].
func (repository *postgresRepository) CountQueries(context context.Context, since time.Time, limit int) ([]QueryCount, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) AS hits
		FROM %s
		WHERE %s >= $1 AND btrim(%s) <> ''
		GROUP BY %s
		ORDER BY hits DESC, %s ASC
		LIMIT $2`,
		schema.SearchQueryLog.Query,
		schema.SearchQueryLog.Table,
		schema.SearchQueryLog.CreatedAt, schema.SearchQueryLog.Query,
		schema.SearchQueryLog.Query,
		schema.SearchQueryLog.Query,
	)

	rows, err := repository.db.Query(context, query, since, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "count_queries")
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (QueryCount, error) {
		var count QueryCount
		err := row.Scan(&count.Query, &count.Count)
		return count, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_query_counts")
	}
	return counts, nil
}

// # Suggestions

// SuggestContent implements [SuggestionSource].
func (repository *postgresRepository) SuggestContent(context context.Context, prefix string, limit int) ([]Record, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL AND (%s ILIKE $1 OR %s ILIKE $1)
		ORDER BY %s DESC, %s ASC
		LIMIT $2`,
		schema.CoreContent.ID, schema.CoreContent.Title, schema.CoreContent.Author, schema.CoreContent.FavoriteCount,
		schema.CoreContent.Table,
		schema.CoreContent.DeletedAt, schema.CoreContent.Title, schema.CoreContent.Author,
		schema.CoreContent.FavoriteCount, schema.CoreContent.ID,
	)

	rows, err := repository.db.Query(context, query, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, dberr.Wrap(err, "suggest_content")
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Record, error) {
		var record Record
		err := row.Scan(&record.ID, &record.Title, &record.Author, &record.FavoriteCount)
		return record, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_suggest_content")
	}
	return records, nil
}

// SuggestAuthors implements [SuggestionSource].
func (repository *postgresRepository) SuggestAuthors(context context.Context, prefix string, limit int) ([]AuthorCount, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) AS works
		FROM %s
		WHERE %s IS NULL AND %s ILIKE $1
		GROUP BY %s
		ORDER BY works DESC, %s ASC
		LIMIT $2`,
		schema.CoreContent.Author,
		schema.CoreContent.Table,
		schema.CoreContent.DeletedAt, schema.CoreContent.Author,
		schema.CoreContent.Author,
		schema.CoreContent.Author,
	)

	rows, err := repository.db.Query(context, query, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, dberr.Wrap(err, "suggest_authors")
	}

	authors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (AuthorCount, error) {
		var author AuthorCount
		err := row.Scan(&author.Author, &author.Works)
		return author, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_suggest_authors")
	}
	return authors, nil
}

// # Directory

// SearchUsers implements [DirectorySource].
func (repository *postgresRepository) SearchUsers(context context.Context, text string, offset, limit int) ([]UserHit, int, error) {
	from := fmt.Sprintf(`
		FROM %s
		WHERE %s IS NULL AND %s AND (%s ILIKE $1 OR %s ILIKE $1)`,
		schema.UserAccount.Table,
		schema.UserAccount.DeletedAt, schema.UserAccount.IsActive, schema.UserAccount.Username, schema.UserAccount.DisplayName,
	)
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COUNT(*) OVER() AS total_count %s
		ORDER BY %s ASC, %s ASC
		LIMIT $2 OFFSET $3`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
		from,
		schema.UserAccount.Username, schema.UserAccount.ID,
	)
	pattern := "%" + escapeLike(text) + "%"

	rows, err := repository.db.Query(context, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_users")
	}
	defer rows.Close()

	var users []UserHit
	total := 0
	for rows.Next() {
		var user UserHit
		if err := rows.Scan(&user.ID, &user.Username, &user.DisplayName, &user.AvatarURL, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_users")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_users")
	}

	if len(users) == 0 && offset > 0 {
		if total, err = repository.countMatches(context, from, pattern); err != nil {
			return nil, 0, dberr.Wrap(err, "count_users")
		}
	}
	return users, total, nil
}

// SearchLists implements [DirectorySource].
func (repository *postgresRepository) SearchLists(context context.Context, text string, offset, limit int) ([]ListHit, int, error) {
	from := fmt.Sprintf(`
		FROM %s l
		JOIN %s a ON a.%s = l.%s
		WHERE l.%s IS NULL AND l.%s = '%s' AND l.%s ILIKE $1`,
		schema.LibraryCustomList.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.LibraryCustomList.UserID,
		schema.LibraryCustomList.DeletedAt, schema.LibraryCustomList.Visibility, schema.ListVisibilityPublic, schema.LibraryCustomList.Name,
	)
	query := fmt.Sprintf(`
		SELECT l.%s, l.%s, l.%s, a.%s,
			(SELECT COUNT(*) FROM %s i WHERE i.%s = l.%s) AS item_count,
			COUNT(*) OVER() AS total_count %s
		ORDER BY l.%s ASC, l.%s ASC
		LIMIT $2 OFFSET $3`,
		schema.LibraryCustomList.ID, schema.LibraryCustomList.Name, schema.LibraryCustomList.UserID, schema.UserAccount.Username,
		schema.LibraryCustomListItem.Table, schema.LibraryCustomListItem.ListID, schema.LibraryCustomList.ID,
		from,
		schema.LibraryCustomList.Name, schema.LibraryCustomList.ID,
	)
	pattern := "%" + escapeLike(text) + "%"

	rows, err := repository.db.Query(context, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_lists")
	}
	defer rows.Close()

	var lists []ListHit
	total := 0
	for rows.Next() {
		var list ListHit
		if err := rows.Scan(&list.ID, &list.Name, &list.OwnerID, &list.OwnerUsername, &list.ItemCount, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_lists")
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_lists")
	}

	if len(lists) == 0 && offset > 0 {
		if total, err = repository.countMatches(context, from, pattern); err != nil {
			return nil, 0, dberr.Wrap(err, "count_lists")
		}
	}
	return lists, total, nil
}

// countMatches counts the rows of a FROM/WHERE fragment whose only argument is the ILIKE pattern.
// Window counts ride on returned rows, so pages past the end need it for their total.
func (repository *postgresRepository) countMatches(context context.Context, from, pattern string) (int, error) {
	total := 0
	err := repository.db.QueryRow(context, "SELECT COUNT(*) "+from, pattern).Scan(&total)
	return total, err
}
