// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package history

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/uuid"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the audit log Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Append persists a new audit entry into the system.workflowhistory table.

Description: The single write path of the audit log. IDs are time-sortable
UUIDv7 so log order matches index order.

Parameters:
  - context: context.Context
  - entry: *Entry

Returns:
  - error: Wrapped storage failures (STORE_UNAVAILABLE when connectivity drops)
*/
func (repository *PostgresRepository) Append(context context.Context, entry *Entry) error {
	const query = `
		INSERT INTO system.workflowhistory (
			id, manuscriptid, actorid, actorrole, action, oldstatus, newstatus, notes, metadata, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if entry.ID == "" {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		entry.ID,
		entry.ManuscriptID,
		entry.ActorID,
		entry.ActorRole,
		entry.Action,
		entry.OldStatus,
		entry.NewStatus,
		entry.Notes,
		entry.Metadata,
		entry.CreatedAt,
	)

	return dberr.Wrap(err, "history_append")
}

/*
ListByManuscript retrieves a page of audit entries for a manuscript, newest first.

Parameters:
  - context: context.Context
  - manuscriptID: string
  - params: pagination.Params

Returns:
  - []Entry: Page of entries ordered by createdat DESC
  - int: Total count of entries for the manuscript
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) ListByManuscript(context context.Context, manuscriptID string, params pagination.Params) ([]Entry, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM system.workflowhistory
		WHERE manuscriptid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, manuscriptID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "history_count")
	}

	const query = `
		SELECT id, manuscriptid, actorid, actorrole, action, oldstatus, newstatus, notes, metadata, createdat
		FROM system.workflowhistory
		WHERE manuscriptid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, manuscriptID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "history_list")
	}
	defer rows.Close()

	entries := make([]Entry, 0, params.Limit)
	for rows.Next() {
		var entry Entry
		err := rows.Scan(
			&entry.ID,
			&entry.ManuscriptID,
			&entry.ActorID,
			&entry.ActorRole,
			&entry.Action,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.Notes,
			&entry.Metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "history_scan")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "history_rows")
	}

	return entries, total, nil
}
