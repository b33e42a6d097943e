// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
)

// PostgresManuscriptStore implements the ManuscriptStore interface using pgx.
type PostgresManuscriptStore struct {
	pool *pgxpool.Pool
}

// NewManuscriptStore creates the PostgreSQL implementation of ManuscriptStore.
func NewManuscriptStore(pool *pgxpool.Pool) *PostgresManuscriptStore {
	return &PostgresManuscriptStore{pool: pool}
}

/*
FindRef retrieves the transition-relevant projection of a manuscript.

Parameters:
  - context: context.Context
  - manuscriptID: string

Returns:
  - *ManuscriptRef: ID, title, author, assigned editor, current status
  - error: apperr.NotFound or wrapped storage failures
*/
func (store *PostgresManuscriptStore) FindRef(context context.Context, manuscriptID string) (*ManuscriptRef, error) {
	const query = `
		SELECT id, title, authorid, editorid, status
		FROM core.manuscript
		WHERE id = $1`

	ref := &ManuscriptRef{}
	err := store.pool.QueryRow(context, query, manuscriptID).Scan(
		&ref.ID,
		&ref.Title,
		&ref.AuthorID,
		&ref.EditorID,
		&ref.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manuscript")
		}
		return nil, dberr.Wrap(err, "workflow_find_ref")
	}

	return ref, nil
}

/*
UpdateStatus durably writes a manuscript's new status.

Description: The only place in the codebase that writes the status column.

Parameters:
  - context: context.Context
  - manuscriptID: string
  - status: Status
  - updatedAt: time.Time

Returns:
  - error: apperr.NotFound if the row vanished, wrapped storage failures
*/
func (store *PostgresManuscriptStore) UpdateStatus(context context.Context, manuscriptID string, status Status, updatedAt time.Time) error {
	const query = `
		UPDATE core.manuscript
		SET status = $2, updatedat = $3
		WHERE id = $1`

	tag, err := store.pool.Exec(context, query, manuscriptID, status, updatedAt)
	if err != nil {
		return dberr.Wrap(err, "workflow_update_status")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manuscript")
	}

	return nil
}
