// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package assignment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/constants"
	"github.com/inkwellhq/inkwell/internal/platform/ctxutil"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/workflow"
)

// Engine implements the editor assignment use cases.
type Engine struct {
	assignments  Repository
	availability AvailabilityRepository
	manuscripts  ManuscriptSource
	auditLog     HistoryAppender
	notifier     Notifier
}

// NewEngine constructs the assignment [Engine] with its collaborators.
func NewEngine(
	assignments Repository,
	availability AvailabilityRepository,
	manuscripts ManuscriptSource,
	auditLog HistoryAppender,
	notifier Notifier,
) *Engine {
	return &Engine{
		assignments:  assignments,
		availability: availability,
		manuscripts:  manuscripts,
		auditLog:     auditLog,
		notifier:     notifier,
	}
}

// # Assignment Creation

// AssignInput holds the parameters for pairing an editor with a manuscript.
type AssignInput struct {
	ManuscriptID   string
	EditorID       string
	Priority       string
	AssignmentType string
	Deadline       *time.Time
	EstimatedHours *float64
	HourlyRate     *float64
}

/*
Assign pairs an editor with a manuscript under capacity preconditions.

Description: Only publisher+ may assign. The editor must be 'available' with
current workload strictly below their maximum. The precondition check and the
later write are NOT serialized against concurrent Assign calls for the same
editor (see the package doc); the workload increment itself is atomic.

Not safely retryable after an ambiguous (timeout) response: check resulting
state before retrying, or the editor is assigned twice.

Parameters:
  - context: context.Context
  - actor: workflow.Actor (must be publisher or admin)
  - input: AssignInput

Returns:
  - *Assignment: Created entity with computed status and total cost
  - error: Forbidden, NotFound, EditorUnavailable, Partial, or storage failures
*/
func (engine *Engine) Assign(context context.Context, actor workflow.Actor, input AssignInput) (*Assignment, error) {

	// Only publishers and admins hand out assignments.
	if !actor.Role.AtLeast(sec.RolePublisher) {
		return nil, apperr.Forbidden("Only publishers can assign editors")
	}

	// The manuscript must exist; its title feeds the notification.
	manuscript, err := engine.manuscripts.FindRef(context, input.ManuscriptID)
	if err != nil {
		return nil, err
	}

	// Capacity preconditions. An editor without a profile is unassignable.
	availability, err := engine.availability.Find(context, input.EditorID)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, apperr.EditorUnavailable("Editor has not published an availability profile")
		}
		return nil, err
	}

	if availability.AvailabilityStatus != AvailabilityAvailable {
		return nil, apperr.EditorUnavailable("Editor is not accepting new assignments")
	}
	if availability.CurrentWorkload >= availability.MaxConcurrentProjects {
		return nil, apperr.EditorUnavailable("Editor is at maximum concurrent workload")
	}

	assignment := &Assignment{
		ManuscriptID:   input.ManuscriptID,
		EditorID:       input.EditorID,
		AssignedBy:     actor.ID,
		Status:         StatusForProgress(0),
		Priority:       input.Priority,
		AssignmentType: input.AssignmentType,
		Progress:       0,
		Deadline:       input.Deadline,
		EstimatedHours: input.EstimatedHours,
		HourlyRate:     input.HourlyRate,
		TotalCost:      TotalCost(input.EstimatedHours, input.HourlyRate),
	}

	if err := engine.assignments.Create(context, assignment); err != nil {
		return nil, fmt.Errorf("assignment_engine_create_failed: %w", err)
	}

	// Atomic counter bump; a plain +1, never a read-modify-write.
	if err := engine.availability.IncrementWorkload(context, input.EditorID); err != nil {
		return assignment, apperr.Partial("Assignment was created but the workload counter could not be updated", err)
	}

	entry := &history.Entry{
		ManuscriptID: input.ManuscriptID,
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       history.ActionAssignmentCreated,
		Metadata: map[string]any{
			"assignment_id": assignment.ID,
			"editor_id":     input.EditorID,
			"priority":      input.Priority,
		},
	}
	if err := engine.auditLog.Append(context, entry); err != nil {
		return assignment, apperr.Partial("Assignment was created but the audit entry could not be recorded", err)
	}

	eventContext := notification.Context{
		ManuscriptID:    manuscript.ID,
		ManuscriptTitle: manuscript.Title,
		AssignmentID:    assignment.ID,
		ActorName:       actor.Username,
		Deadline:        input.Deadline,
	}
	if _, err := engine.notifier.Notify(context, input.EditorID, notification.KindAssignmentCreated, eventContext); err != nil {
		return assignment, apperr.Partial("Assignment was created but the editor could not be notified", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "assignment_created",
		slog.String("assignment_id", assignment.ID),
		slog.String("manuscript_id", input.ManuscriptID),
		slog.String("editor_id", input.EditorID),
	)

	return assignment, nil
}

// # Assignment Removal

/*
Remove deletes an assignment and releases the editor's workload slot.

Description: Reads the assignment for its editor reference, deletes the row,
then decrements the editor's workload with a floor at zero — the counter can
never go negative even if it was already out of sync.

Parameters:
  - context: context.Context
  - actor: workflow.Actor (must be publisher or admin)
  - assignmentID: string

Returns:
  - error: Forbidden, apperr.NotFound if the assignment does not exist,
    Partial if the decrement or audit entry fails after the delete
*/
func (engine *Engine) Remove(context context.Context, actor workflow.Actor, assignmentID string) error {

	if !actor.Role.AtLeast(sec.RolePublisher) {
		return apperr.Forbidden("Only publishers can remove assignments")
	}

	assignment, err := engine.assignments.FindByID(context, assignmentID)
	if err != nil {
		return err
	}

	if err := engine.assignments.Delete(context, assignmentID); err != nil {
		return err
	}

	if err := engine.availability.DecrementWorkload(context, assignment.EditorID); err != nil {
		return apperr.Partial("Assignment was removed but the workload counter could not be updated", err)
	}

	entry := &history.Entry{
		ManuscriptID: assignment.ManuscriptID,
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       history.ActionAssignmentRemoved,
		Metadata: map[string]any{
			"assignment_id": assignmentID,
			"editor_id":     assignment.EditorID,
		},
	}
	if err := engine.auditLog.Append(context, entry); err != nil {
		return apperr.Partial("Assignment was removed but the audit entry could not be recorded", err)
	}

	return nil
}

// # Progress Tracking

/*
UpdateProgress records editing progress and derives the assignment status.

Description: Progress is constrained to [0,100]. Status is always recomputed
from progress via [StatusForProgress], never set independently. A
notification goes out only when the DERIVED STATUS changes, not on every
progress tick, to avoid flooding the author.

Parameters:
  - context: context.Context
  - actor: workflow.Actor (the assigned editor, or admin)
  - assignmentID: string
  - progress: int (0–100)

Returns:
  - *Assignment: Updated entity
  - error: ValidationError, Forbidden, NotFound, Partial, or storage failures
*/
func (engine *Engine) UpdateProgress(context context.Context, actor workflow.Actor, assignmentID string, progress int) (*Assignment, error) {

	if progress < 0 || progress > 100 {
		return nil, apperr.ValidationError("Progress must be between 0 and 100")
	}

	assignment, err := engine.assignments.FindByID(context, assignmentID)
	if err != nil {
		return nil, err
	}

	// Only the assigned editor reports progress (admins may repair).
	if assignment.EditorID != actor.ID && !actor.Role.AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("Only the assigned editor can update progress")
	}

	previousStatus := assignment.Status
	assignment.Progress = progress
	assignment.Status = StatusForProgress(progress)

	if err := engine.assignments.Update(context, assignment); err != nil {
		return nil, err
	}

	entry := &history.Entry{
		ManuscriptID: assignment.ManuscriptID,
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       history.ActionProgressUpdated,
		Metadata: map[string]any{
			"assignment_id": assignmentID,
			"progress":      progress,
			"status":        string(assignment.Status),
		},
	}
	if err := engine.auditLog.Append(context, entry); err != nil {
		return assignment, apperr.Partial("Progress was updated but the audit entry could not be recorded", err)
	}

	// Notify only when the bucket flips; a 50% -> 60% tick is silent.
	if assignment.Status != previousStatus {
		manuscript, err := engine.manuscripts.FindRef(context, assignment.ManuscriptID)
		if err != nil {
			return assignment, apperr.Partial("Progress was updated but the author could not be notified", err)
		}

		eventContext := notification.Context{
			ManuscriptID:    manuscript.ID,
			ManuscriptTitle: manuscript.Title,
			AssignmentID:    assignmentID,
			OldStatus:       string(previousStatus),
			NewStatus:       string(assignment.Status),
			ActorName:       actor.Username,
		}
		if _, err := engine.notifier.Notify(context, manuscript.AuthorID, notification.KindAssignmentUpdated, eventContext); err != nil {
			return assignment, apperr.Partial("Progress was updated but the author could not be notified", err)
		}
	}

	return assignment, nil
}

// # Availability Management

// AvailabilityInput holds an editor's declared capacity.
type AvailabilityInput struct {
	AvailabilityStatus    string
	MaxConcurrentProjects int
}

/*
SetAvailability declares or updates an editor's capacity profile.

Description: Editors manage their own profile; admins may manage anyone's.
The current workload counter is never written here.

Parameters:
  - context: context.Context
  - actor: workflow.Actor
  - editorID: string
  - input: AvailabilityInput

Returns:
  - *EditorAvailability: The stored capacity record
  - error: Forbidden or storage failures
*/
func (engine *Engine) SetAvailability(context context.Context, actor workflow.Actor, editorID string, input AvailabilityInput) (*EditorAvailability, error) {

	if actor.ID != editorID && !actor.Role.AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("You can only manage your own availability")
	}

	availability := &EditorAvailability{
		EditorID:              editorID,
		AvailabilityStatus:    input.AvailabilityStatus,
		MaxConcurrentProjects: input.MaxConcurrentProjects,
	}

	if err := engine.availability.Upsert(context, availability); err != nil {
		return nil, fmt.Errorf("assignment_engine_set_availability_failed: %w", err)
	}

	// Re-read so the response carries the live workload counter.
	return engine.availability.Find(context, editorID)
}

/*
GetAvailability retrieves an editor's capacity record.

Parameters:
  - context: context.Context
  - editorID: string

Returns:
  - *EditorAvailability
  - error: apperr.NotFound or storage failures
*/
func (engine *Engine) GetAvailability(context context.Context, editorID string) (*EditorAvailability, error) {
	return engine.availability.Find(context, editorID)
}

// # Deadline Sweep

/*
NotifyApproachingDeadlines warns editors about assignments due soon.

Description: Invoked by the background ticker. Finds incomplete assignments
due within the warning window that have not been warned in the last 24 hours
(the durable notification rows are the dedup record) and dispatches one
deadline_approaching notification per assignment to its editor.

Parameters:
  - context: context.Context

Returns:
  - int: Number of warnings dispatched
  - error: Listing failures; per-assignment dispatch failures are logged
    and skipped so one bad row doesn't starve the rest
*/
func (engine *Engine) NotifyApproachingDeadlines(context context.Context) (int, error) {
	candidates, err := engine.assignments.ListDueSoon(context, constants.DeadlineWarningWindow)
	if err != nil {
		return 0, fmt.Errorf("assignment_engine_deadline_sweep_failed: %w", err)
	}

	dispatched := 0
	for _, candidate := range candidates {
		eventContext := notification.Context{
			ManuscriptID:    candidate.ManuscriptID,
			ManuscriptTitle: candidate.ManuscriptTitle,
			AssignmentID:    candidate.ID,
			Deadline:        candidate.Deadline,
		}

		if _, err := engine.notifier.Notify(context, candidate.EditorID, notification.KindDeadlineApproaching, eventContext); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "deadline_warning_failed",
				slog.String("assignment_id", candidate.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		dispatched++
	}

	return dispatched, nil
}

/*
ListByManuscript retrieves all assignments for one manuscript.

Parameters:
  - context: context.Context
  - manuscriptID: string

Returns:
  - []Assignment
  - error: Storage failures
*/
func (engine *Engine) ListByManuscript(context context.Context, manuscriptID string) ([]Assignment, error) {
	return engine.assignments.ListByManuscript(context, manuscriptID)
}
