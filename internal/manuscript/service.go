// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package manuscript

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/ctxutil"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/workflow"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/pointer"
	"github.com/inkwellhq/inkwell/pkg/slug"
)

// Service implements manuscript CRUD use cases.
type Service struct {
	manuscripts Repository
	assignments AssignmentSource
	workloads   WorkloadReleaser
	auditLog    HistoryAppender
}

// NewService constructs a new manuscript [Service].
func NewService(
	manuscripts Repository,
	assignments AssignmentSource,
	workloads WorkloadReleaser,
	auditLog HistoryAppender,
) *Service {
	return &Service{
		manuscripts: manuscripts,
		assignments: assignments,
		workloads:   workloads,
		auditLog:    auditLog,
	}
}

// # Creation

// CreateInput holds the data of a new submission.
type CreateInput struct {
	Title     string
	Synopsis  string
	WordCount int
	Deadline  *time.Time
}

/*
Create registers a new manuscript submission.

Description: The manuscript starts in 'submitted' — creation IS the
submission. A manuscript_submitted audit entry records the birth of the
status so the history is complete from the first row.

Parameters:
  - context: context.Context
  - actor: workflow.Actor (becomes the author)
  - input: CreateInput

Returns:
  - *Manuscript: Created entity
  - error: Conflict on a duplicate slug, Partial if the audit entry fails
*/
func (service *Service) Create(context context.Context, actor workflow.Actor, input CreateInput) (*Manuscript, error) {

	manuscript := &Manuscript{
		AuthorID:  actor.ID,
		Title:     input.Title,
		Slug:      slug.From(input.Title),
		Synopsis:  input.Synopsis,
		WordCount: input.WordCount,
		Status:    workflow.StatusSubmitted,
		Deadline:  input.Deadline,
	}

	if err := service.manuscripts.Create(context, manuscript); err != nil {
		return nil, fmt.Errorf("manuscript_service_create_failed: %w", err)
	}

	entry := &history.Entry{
		ManuscriptID: manuscript.ID,
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       history.ActionManuscriptSubmitted,
		NewStatus:    pointer.To(string(workflow.StatusSubmitted)),
	}
	if err := service.auditLog.Append(context, entry); err != nil {
		return manuscript, apperr.Partial("Manuscript was created but the audit entry could not be recorded", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "manuscript_created",
		slog.String("manuscript_id", manuscript.ID),
		slog.String("author_id", actor.ID),
	)

	return manuscript, nil
}

// # Reads

/*
Get retrieves one manuscript.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Manuscript
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Manuscript, error) {
	return service.manuscripts.FindByID(context, id)
}

/*
List retrieves a filtered, paginated page of manuscripts.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - []Manuscript
  - int: Total matching count
  - error: Storage failures
*/
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]Manuscript, int, error) {
	return service.manuscripts.List(context, filter, params)
}

// # Metadata Editing

// UpdateInput holds the editable metadata of a manuscript.
type UpdateInput struct {
	Title     string
	Synopsis  string
	WordCount int
	Deadline  *time.Time
}

/*
Update edits a manuscript's metadata.

Description: Owner or admin only. The status column is out of reach by
construction — the repository's metadata write doesn't include it; status
changes go through the workflow engine.

Parameters:
  - context: context.Context
  - actor: workflow.Actor
  - id: string
  - input: UpdateInput

Returns:
  - *Manuscript: Updated entity
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) Update(context context.Context, actor workflow.Actor, id string, input UpdateInput) (*Manuscript, error) {

	manuscript, err := service.manuscripts.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if manuscript.AuthorID != actor.ID && !actor.Role.AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("You can only edit your own manuscripts")
	}

	manuscript.Title = input.Title
	manuscript.Slug = slug.From(input.Title)
	manuscript.Synopsis = input.Synopsis
	manuscript.WordCount = input.WordCount
	manuscript.Deadline = input.Deadline

	if err := service.manuscripts.UpdateMetadata(context, manuscript); err != nil {
		return nil, err
	}

	return manuscript, nil
}

// # Deletion

/*
Delete removes a manuscript and everything that depends on it.

Description: Owner or admin only. Active assignments must give their editors
the workload slot back before the cascade wipes the rows, so the counters
stay honest. The cascade itself (assignments, reviews, history,
notifications) runs at the schema level in one statement.

Parameters:
  - context: context.Context
  - actor: workflow.Actor
  - id: string

Returns:
  - error: Forbidden, NotFound, Partial if a workload release fails
*/
func (service *Service) Delete(context context.Context, actor workflow.Actor, id string) error {

	manuscript, err := service.manuscripts.FindByID(context, id)
	if err != nil {
		return err
	}

	if manuscript.AuthorID != actor.ID && !actor.Role.AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("You can only delete your own manuscripts")
	}

	// Release workload slots before the rows disappear.
	assignments, err := service.assignments.ListByManuscript(context, id)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := service.workloads.DecrementWorkload(context, a.EditorID); err != nil {
			return apperr.Partial("Manuscript deletion aborted: an editor's workload could not be released", err)
		}
	}

	if err := service.manuscripts.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "manuscript_deleted",
		slog.String("manuscript_id", id),
		slog.String("actor_id", actor.ID),
	)

	return nil
}
