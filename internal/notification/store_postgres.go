// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package notification

import (
	"context"
	"time"

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

// NewRepository creates a new PostgreSQL implementation of the notification Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new notification row into system.notification.

Parameters:
  - context: context.Context
  - notification: *Notification

Returns:
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, notification *Notification) error {
	const query = `
		INSERT INTO system.notification (
			id, recipientid, title, message, type, category, manuscriptid, assignmentid, isread, metadata, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	if notification.ID == "" {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		notification.ID,
		notification.RecipientID,
		notification.Title,
		notification.Message,
		notification.Type,
		notification.Category,
		notification.ManuscriptID,
		notification.AssignmentID,
		notification.IsRead,
		notification.Metadata,
		notification.CreatedAt,
	)

	return dberr.Wrap(err, "notification_create")
}

/*
ListByRecipient retrieves a page of a recipient's notifications, newest first.

Parameters:
  - context: context.Context
  - recipientID: string
  - params: pagination.Params

Returns:
  - []Notification: Page of notifications ordered by createdat DESC
  - int: Total count for the recipient
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) ListByRecipient(context context.Context, recipientID string, params pagination.Params) ([]Notification, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM system.notification
		WHERE recipientid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, recipientID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "notification_count")
	}

	const query = `
		SELECT id, recipientid, title, message, type, category, manuscriptid, assignmentid, isread, metadata, createdat
		FROM system.notification
		WHERE recipientid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, recipientID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "notification_list")
	}
	defer rows.Close()

	notifications := make([]Notification, 0, params.Limit)
	for rows.Next() {
		var notification Notification
		err := rows.Scan(
			&notification.ID,
			&notification.RecipientID,
			&notification.Title,
			&notification.Message,
			&notification.Type,
			&notification.Category,
			&notification.ManuscriptID,
			&notification.AssignmentID,
			&notification.IsRead,
			&notification.Metadata,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "notification_scan")
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "notification_rows")
	}

	return notifications, total, nil
}

/*
MarkRead flags one notification as read, scoped to its recipient.

Parameters:
  - context: context.Context
  - id: string
  - recipientID: string

Returns:
  - error: apperr.NotFound if no row matched, wrapped storage failures otherwise
*/
func (repository *PostgresRepository) MarkRead(context context.Context, id, recipientID string) error {
	const query = `
		UPDATE system.notification
		SET isread = TRUE
		WHERE id = $1 AND recipientid = $2`

	tag, err := repository.pool.Exec(context, query, id, recipientID)
	if err != nil {
		return dberr.Wrap(err, "notification_mark_read")
	}

	// Recipient scoping means a foreign or missing row looks identical: not found.
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Notification")
	}

	return nil
}

/*
MarkAllRead flags every unread notification of a recipient as read.

Parameters:
  - context: context.Context
  - recipientID: string

Returns:
  - int: Number of rows updated
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) MarkAllRead(context context.Context, recipientID string) (int, error) {
	const query = `
		UPDATE system.notification
		SET isread = TRUE
		WHERE recipientid = $1 AND isread = FALSE`

	tag, err := repository.pool.Exec(context, query, recipientID)
	if err != nil {
		return 0, dberr.Wrap(err, "notification_mark_all_read")
	}

	return int(tag.RowsAffected()), nil
}

/*
DeleteRead bulk-removes all read notifications of a recipient.

Parameters:
  - context: context.Context
  - recipientID: string

Returns:
  - int: Number of rows deleted
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) DeleteRead(context context.Context, recipientID string) (int, error) {
	const query = "DELETE FROM system.notification WHERE recipientid = $1 AND isread = TRUE"

	tag, err := repository.pool.Exec(context, query, recipientID)
	if err != nil {
		return 0, dberr.Wrap(err, "notification_delete_read")
	}

	return int(tag.RowsAffected()), nil
}
