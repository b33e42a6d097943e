// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package manuscript

import (
	"context"

	"github.com/inkwellhq/inkwell/internal/assignment"
	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// # Contracts

// Filter narrows manuscript listings. Statuses is a union: a manuscript
// matches when its status is any of them.
type Filter struct {
	Statuses []string
	AuthorID string
}

// Repository defines the persistence contract for manuscripts.
//
// Note the absence of any status write: UpdateMetadata touches metadata
// columns only. Status belongs to the workflow engine's store.
type Repository interface {
	/*
		Create persists a new manuscript row.

		Parameters:
		  - context: context.Context
		  - manuscript: *Manuscript

		Returns:
		  - error: Conflict on a duplicate slug, storage failures otherwise
	*/
	Create(context context.Context, manuscript *Manuscript) error

	/*
		FindByID retrieves one manuscript by primary key.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Manuscript: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Manuscript, error)

	/*
		UpdateMetadata overwrites a manuscript's metadata columns
		(whole-record last-write-wins keyed by primary key; status and
		authorship are untouched).

		Parameters:
		  - context: context.Context
		  - manuscript: *Manuscript

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	UpdateMetadata(context context.Context, manuscript *Manuscript) error

	/*
		Delete removes a manuscript row. Dependent assignments, reviews,
		history entries, and notifications are removed by the schema's
		cascading foreign keys in the same statement.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id string) error

	/*
		List retrieves a filtered, paginated page of manuscripts.

		Parameters:
		  - context: context.Context
		  - filter: Filter (empty fields are ignored)
		  - params: pagination.Params

		Returns:
		  - []Manuscript: Page ordered by createdat DESC
		  - int: Total matching count
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, params pagination.Params) ([]Manuscript, int, error)
}

// AssignmentSource lists the assignments that must release editor workload
// slots before a manuscript delete cascades them away.
type AssignmentSource interface {
	ListByManuscript(context context.Context, manuscriptID string) ([]assignment.Assignment, error)
}

// WorkloadReleaser decrements an editor's workload counter (floored at zero).
type WorkloadReleaser interface {
	DecrementWorkload(context context.Context, editorID string) error
}

// HistoryAppender is the slice of the audit log this service needs.
type HistoryAppender interface {
	Append(context context.Context, entry *history.Entry) error
}
