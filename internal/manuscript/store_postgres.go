// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package manuscript

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/uuid"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the manuscript Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const manuscriptColumns = `
	id, authorid, editorid, title, slug, synopsis, wordcount, status, deadline, createdat, updatedat`

// scanManuscript hydrates one Manuscript from a pgx row.
func scanManuscript(row pgx.Row) (*Manuscript, error) {
	manuscript := &Manuscript{}
	err := row.Scan(
		&manuscript.ID,
		&manuscript.AuthorID,
		&manuscript.EditorID,
		&manuscript.Title,
		&manuscript.Slug,
		&manuscript.Synopsis,
		&manuscript.WordCount,
		&manuscript.Status,
		&manuscript.Deadline,
		&manuscript.CreatedAt,
		&manuscript.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return manuscript, nil
}

/*
Create persists a new manuscript row into core.manuscript.

Parameters:
  - context: context.Context
  - manuscript: *Manuscript

Returns:
  - error: Conflict on a duplicate slug, wrapped storage failures otherwise
*/
func (repository *PostgresRepository) Create(context context.Context, manuscript *Manuscript) error {
	const query = `
		INSERT INTO core.manuscript (
			id, authorid, editorid, title, slug, synopsis, wordcount, status, deadline, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	if manuscript.ID == "" {
		manuscript.ID = uuid.New()
	}
	if manuscript.CreatedAt.IsZero() {
		manuscript.CreatedAt = now
	}
	manuscript.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		manuscript.ID,
		manuscript.AuthorID,
		manuscript.EditorID,
		manuscript.Title,
		manuscript.Slug,
		manuscript.Synopsis,
		manuscript.WordCount,
		manuscript.Status,
		manuscript.Deadline,
		manuscript.CreatedAt,
		manuscript.UpdatedAt,
	)

	return dberr.Wrap(err, "manuscript_create")
}

/*
FindByID retrieves one manuscript by primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Manuscript: Hydrated entity
  - error: apperr.NotFound or wrapped storage failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Manuscript, error) {
	const query = `
		SELECT ` + manuscriptColumns + `
		FROM core.manuscript
		WHERE id = $1`

	manuscript, err := scanManuscript(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manuscript")
		}
		return nil, dberr.Wrap(err, "manuscript_find")
	}

	return manuscript, nil
}

/*
UpdateMetadata overwrites a manuscript's metadata columns.

Description: Status, authorship, and the assigned editor are deliberately
not in the SET list; this path can never leak a status write.

Parameters:
  - context: context.Context
  - manuscript: *Manuscript

Returns:
  - error: apperr.NotFound or wrapped storage failures
*/
func (repository *PostgresRepository) UpdateMetadata(context context.Context, manuscript *Manuscript) error {
	const query = `
		UPDATE core.manuscript
		SET title = $2, slug = $3, synopsis = $4, wordcount = $5, deadline = $6, updatedat = $7
		WHERE id = $1`

	manuscript.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		manuscript.ID,
		manuscript.Title,
		manuscript.Slug,
		manuscript.Synopsis,
		manuscript.WordCount,
		manuscript.Deadline,
		manuscript.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "manuscript_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manuscript")
	}

	return nil
}

/*
Delete removes a manuscript row; dependents cascade at the schema level.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or wrapped storage failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM core.manuscript WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "manuscript_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manuscript")
	}

	return nil
}

/*
List retrieves a filtered, paginated page of manuscripts, newest first.

Parameters:
  - context: context.Context
  - filter: Filter (status and/or author; empty fields are ignored)
  - params: pagination.Params

Returns:
  - []Manuscript
  - int: Total matching count
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) ([]Manuscript, int, error) {

	// Dynamic WHERE assembly with positional args; both filters are optional.
	where := "WHERE TRUE"
	args := []any{}

	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		where += fmt.Sprintf(" AND status = ANY($%d)", len(args))
	}
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		where += fmt.Sprintf(" AND authorid = $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) FROM core.manuscript " + where
	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "manuscript_count")
	}

	query := fmt.Sprintf(
		"SELECT %s FROM core.manuscript %s ORDER BY createdat DESC LIMIT $%d OFFSET $%d",
		manuscriptColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "manuscript_list")
	}
	defer rows.Close()

	manuscripts := []Manuscript{}
	for rows.Next() {
		manuscript, err := scanManuscript(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "manuscript_scan")
		}
		manuscripts = append(manuscripts, *manuscript)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "manuscript_rows")
	}

	return manuscripts, total, nil
}
