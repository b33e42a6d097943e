// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package assignment

import (
	"context"
	"time"

	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/workflow"
)

// # Contracts

// DeadlineCandidate is an assignment due soon, joined with its manuscript
// title for notification rendering.
type DeadlineCandidate struct {
	Assignment
	ManuscriptTitle string
}

// Repository defines the persistence contract for assignments.
type Repository interface {
	/*
		Create persists a new assignment row.

		Parameters:
		  - context: context.Context
		  - assignment: *Assignment

		Returns:
		  - error: Storage failures (foreign key violations map to CONFLICT)
	*/
	Create(context context.Context, assignment *Assignment) error

	/*
		FindByID retrieves one assignment by primary key.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Assignment: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Assignment, error)

	/*
		Update overwrites an assignment's mutable fields (whole-record,
		last-write-wins, keyed by primary key — no version check).

		Parameters:
		  - context: context.Context
		  - assignment: *Assignment

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Update(context context.Context, assignment *Assignment) error

	/*
		Delete removes an assignment row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id string) error

	/*
		ListByManuscript retrieves all assignments for one manuscript.

		Parameters:
		  - context: context.Context
		  - manuscriptID: string

		Returns:
		  - []Assignment: All assignments, newest first
		  - error: Storage failures
	*/
	ListByManuscript(context context.Context, manuscriptID string) ([]Assignment, error)

	/*
		ListByEditor retrieves all assignments held by one editor.

		Parameters:
		  - context: context.Context
		  - editorID: string

		Returns:
		  - []Assignment: All assignments, newest first
		  - error: Storage failures
	*/
	ListByEditor(context context.Context, editorID string) ([]Assignment, error)

	/*
		ListDueSoon retrieves incomplete assignments whose deadline falls
		within the window and which have not been warned about in the last
		24 hours.

		Parameters:
		  - context: context.Context
		  - window: time.Duration

		Returns:
		  - []DeadlineCandidate: Assignments joined with manuscript titles
		  - error: Storage failures
	*/
	ListDueSoon(context context.Context, window time.Duration) ([]DeadlineCandidate, error)
}

// AvailabilityRepository defines the persistence contract for editor capacity.
type AvailabilityRepository interface {
	/*
		Find retrieves an editor's capacity record.

		Parameters:
		  - context: context.Context
		  - editorID: string

		Returns:
		  - *EditorAvailability: Capacity record
		  - error: apperr.NotFound if the editor has no profile
	*/
	Find(context context.Context, editorID string) (*EditorAvailability, error)

	/*
		Upsert creates or updates an editor's declared capacity.

		Description: Writes availabilitystatus and maxconcurrentprojects
		only. CurrentWorkload is never touched here — it belongs to the
		atomic increment/decrement paths.

		Parameters:
		  - context: context.Context
		  - availability: *EditorAvailability

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, availability *EditorAvailability) error

	/*
		IncrementWorkload atomically adds 1 to the editor's workload.

		Description: Store-side arithmetic (currentworkload + 1), not a
		read-modify-write, to reduce lost-update risk under concurrency.

		Parameters:
		  - context: context.Context
		  - editorID: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	IncrementWorkload(context context.Context, editorID string) error

	/*
		DecrementWorkload atomically subtracts 1 from the editor's
		workload, floored at zero (never negative).

		Parameters:
		  - context: context.Context
		  - editorID: string

		Returns:
		  - error: Storage failures; a missing profile is not an error here
	*/
	DecrementWorkload(context context.Context, editorID string) error
}

// ManuscriptSource resolves the manuscript projection needed for history
// entries and notification rendering. Satisfied by the workflow engine's
// Postgres store so both engines share one projection.
type ManuscriptSource interface {
	FindRef(context context.Context, manuscriptID string) (*workflow.ManuscriptRef, error)
}

// HistoryAppender is the slice of the audit log this engine needs.
type HistoryAppender interface {
	Append(context context.Context, entry *history.Entry) error
}

// Notifier is the slice of the dispatcher this engine needs.
type Notifier interface {
	Notify(context context.Context, recipientID string, kind notification.Kind, eventContext notification.Context) (*notification.Notification, error)
}
