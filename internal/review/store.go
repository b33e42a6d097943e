// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package review

import (
	"context"

	"github.com/inkwellhq/inkwell/internal/assignment"
	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/workflow"
)

// # Contracts

// Repository defines the persistence contract for reviews.
type Repository interface {
	/*
		Create persists a new review row.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, review *Review) error

	/*
		FindByID retrieves one review by primary key.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Review: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Review, error)

	/*
		UpdateStatus resolves a review to approved or rejected.

		Parameters:
		  - context: context.Context
		  - id: string
		  - status: Status

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	UpdateStatus(context context.Context, id string, status Status) error

	/*
		ListByManuscript retrieves all reviews of a manuscript, newest first.

		Parameters:
		  - context: context.Context
		  - manuscriptID: string

		Returns:
		  - []Review
		  - error: Storage failures
	*/
	ListByManuscript(context context.Context, manuscriptID string) ([]Review, error)
}

// AssignmentSource supplies the assignments feeding editor metrics.
type AssignmentSource interface {
	ListByEditor(context context.Context, editorID string) ([]assignment.Assignment, error)
}

// AvailabilitySource supplies the live workload for editor metrics.
type AvailabilitySource interface {
	Find(context context.Context, editorID string) (*assignment.EditorAvailability, error)
}

// ManuscriptSource resolves the manuscript projection for authorization and
// notification rendering.
type ManuscriptSource interface {
	FindRef(context context.Context, manuscriptID string) (*workflow.ManuscriptRef, error)
}

// HistoryAppender is the slice of the audit log this service needs.
type HistoryAppender interface {
	Append(context context.Context, entry *history.Entry) error
}

// Notifier is the slice of the dispatcher this service needs.
type Notifier interface {
	Notify(context context.Context, recipientID string, kind notification.Kind, eventContext notification.Context) (*notification.Notification, error)
}
