// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package notification

import (
	"context"

	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// # Contracts

// Repository defines the persistence contract for durable notification rows.
type Repository interface {
	/*
		Create persists a new notification row.

		Parameters:
		  - context: context.Context
		  - notification: *Notification

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, notification *Notification) error

	/*
		ListByRecipient retrieves a recipient's notifications, newest first.

		Parameters:
		  - context: context.Context
		  - recipientID: string
		  - params: pagination.Params

		Returns:
		  - []Notification: Page of notifications
		  - int: Total count for the recipient
		  - error: Storage failures
	*/
	ListByRecipient(context context.Context, recipientID string, params pagination.Params) ([]Notification, int, error)

	/*
		MarkRead flags a single notification as read.

		Description: Scoped to the recipient so one user can never flip
		another user's read state.

		Parameters:
		  - context: context.Context
		  - id: string
		  - recipientID: string

		Returns:
		  - error: apperr.NotFound if the row does not exist for this recipient
	*/
	MarkRead(context context.Context, id, recipientID string) error

	/*
		MarkAllRead flags every unread notification of a recipient as read.

		Parameters:
		  - context: context.Context
		  - recipientID: string

		Returns:
		  - int: Number of rows updated
		  - error: Storage failures
	*/
	MarkAllRead(context context.Context, recipientID string) (int, error)

	/*
		DeleteRead bulk-removes all read notifications of a recipient.

		Parameters:
		  - context: context.Context
		  - recipientID: string

		Returns:
		  - int: Number of rows deleted
		  - error: Storage failures
	*/
	DeleteRead(context context.Context, recipientID string) (int, error)
}

// Publisher defines the best-effort live push contract.
//
// Implementations deliver the payload to whatever feed the recipient's UI is
// subscribed to. Errors are reported but dispatch never depends on them.
type Publisher interface {
	// Publish pushes a serialized notification to the recipient's channel.
	Publish(context context.Context, recipientID string, payload []byte) error
}
