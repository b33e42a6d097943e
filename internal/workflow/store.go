// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package workflow

import (
	"context"
	"time"

	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/notification"
)

// # Contracts

// ManuscriptRef is the engine's projection of a manuscript: just enough to
// validate a transition and decide who gets notified.
type ManuscriptRef struct {
	ID       string
	Title    string
	AuthorID string
	EditorID *string
	Status   Status
}

// ManuscriptStore defines the engine's narrow persistence contract.
//
// The engine deliberately does not depend on the full manuscript CRUD layer;
// it reads one projection and writes one column.
type ManuscriptStore interface {
	/*
		FindRef retrieves the transition-relevant projection of a manuscript.

		Parameters:
		  - context: context.Context
		  - manuscriptID: string

		Returns:
		  - *ManuscriptRef: Current status plus notification recipients
		  - error: apperr.NotFound or wrapped storage failures
	*/
	FindRef(context context.Context, manuscriptID string) (*ManuscriptRef, error)

	/*
		UpdateStatus durably writes the manuscript's new status and updatedat.

		Parameters:
		  - context: context.Context
		  - manuscriptID: string
		  - status: Status
		  - updatedAt: time.Time

		Returns:
		  - error: apperr.NotFound if the row vanished, wrapped storage failures
	*/
	UpdateStatus(context context.Context, manuscriptID string, status Status, updatedAt time.Time) error
}

// HistoryAppender is the slice of the audit log the engine needs.
type HistoryAppender interface {
	Append(context context.Context, entry *history.Entry) error
}

// Notifier is the slice of the dispatcher the engine needs.
type Notifier interface {
	Notify(context context.Context, recipientID string, kind notification.Kind, eventContext notification.Context) (*notification.Notification, error)
}
