// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/pkg/uuid"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the review Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new review row into core.review.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	const query = `
		INSERT INTO core.review (
			id, manuscriptid, reviewerid, assignmentid, chapterref, rating, content, reviewtype, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	if review.ID == "" {
		review.ID = uuid.New()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		review.ID,
		review.ManuscriptID,
		review.ReviewerID,
		review.AssignmentID,
		review.ChapterRef,
		review.Rating,
		review.Content,
		review.ReviewType,
		review.Status,
		review.CreatedAt,
		review.UpdatedAt,
	)

	return dberr.Wrap(err, "review_create")
}

/*
FindByID retrieves one review by primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Review: Hydrated entity
  - error: apperr.NotFound or wrapped storage failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Review, error) {
	const query = `
		SELECT id, manuscriptid, reviewerid, assignmentid, chapterref, rating, content, reviewtype, status, createdat, updatedat
		FROM core.review
		WHERE id = $1`

	review := &Review{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&review.ID,
		&review.ManuscriptID,
		&review.ReviewerID,
		&review.AssignmentID,
		&review.ChapterRef,
		&review.Rating,
		&review.Content,
		&review.ReviewType,
		&review.Status,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "review_find")
	}

	return review, nil
}

/*
UpdateStatus resolves a review.

Parameters:
  - context: context.Context
  - id: string
  - status: Status

Returns:
  - error: apperr.NotFound or wrapped storage failures
*/
func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, status Status) error {
	const query = `
		UPDATE core.review
		SET status = $2, updatedat = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, status, time.Now())
	if err != nil {
		return dberr.Wrap(err, "review_update_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

/*
ListByManuscript retrieves all reviews of a manuscript, newest first.

Parameters:
  - context: context.Context
  - manuscriptID: string

Returns:
  - []Review
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) ListByManuscript(context context.Context, manuscriptID string) ([]Review, error) {
	const query = `
		SELECT id, manuscriptid, reviewerid, assignmentid, chapterref, rating, content, reviewtype, status, createdat, updatedat
		FROM core.review
		WHERE manuscriptid = $1
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, manuscriptID)
	if err != nil {
		return nil, dberr.Wrap(err, "review_list")
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ID,
			&review.ManuscriptID,
			&review.ReviewerID,
			&review.AssignmentID,
			&review.ChapterRef,
			&review.Rating,
			&review.Content,
			&review.ReviewType,
			&review.Status,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "review_scan")
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "review_rows")
	}

	return reviews, nil
}
