// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/ctxutil"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// # Types

// Actor is the authenticated identity performing an engine operation.
//
// Always an explicit parameter, never ambient state: this keeps every engine
// call deterministic and testable.
type Actor struct {
	ID       string
	Username string
	Role     sec.UserRole
}

// TransitionResult is the success payload of a transition.
//
// It is also returned alongside a PARTIAL_FAILURE error, because in that case
// the status change IS durable and the caller must not pretend it isn't.
type TransitionResult struct {
	ManuscriptID string    `json:"manuscript_id"`
	From         Status    `json:"from"`
	To           Status    `json:"to"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Engine validates and executes manuscript status transitions.
type Engine struct {
	manuscripts ManuscriptStore
	auditLog    HistoryAppender
	notifier    Notifier
}

// NewEngine constructs the workflow [Engine] with its collaborators.
func NewEngine(manuscripts ManuscriptStore, auditLog HistoryAppender, notifier Notifier) *Engine {
	return &Engine{
		manuscripts: manuscripts,
		auditLog:    auditLog,
		notifier:    notifier,
	}
}

/*
Transition moves a manuscript to a new status.

Description: Re-validates the requested transition against the state machine
(client-offered transitions are never trusted), enforces per-target role
minimums and writer ownership, then executes the ordered side effects:
durable status write, audit history append, notifications.

A history or notification failure AFTER the durable status write surfaces as
a PARTIAL_FAILURE error together with a non-nil result — the status change
happened and is never rolled back.

Parameters:
  - context: context.Context
  - actor: Actor (explicit identity, enforced here, not at the router)
  - manuscriptID: string
  - target: Status
  - notes: string (free text recorded in the audit entry)

Returns:
  - *TransitionResult: Non-nil whenever the status write committed
  - error: InvalidTransition, Forbidden, NotFound, StoreUnavailable, or Partial
*/
func (engine *Engine) Transition(context context.Context, actor Actor, manuscriptID string, target Status, notes string) (*TransitionResult, error) {

	if !target.IsValid() {
		return nil, apperr.ValidationError("Unknown target status: " + string(target))
	}

	// Read the current status. A missing manuscript is the caller's problem.
	manuscript, err := engine.manuscripts.FindRef(context, manuscriptID)
	if err != nil {
		return nil, err
	}

	// Hard reject: the engine never auto-corrects the requested target.
	if !CanTransition(manuscript.Status, target) {
		return nil, apperr.InvalidTransition(string(manuscript.Status), string(target))
	}

	// Per-target role minimum.
	if !actor.Role.AtLeast(RequiredRole(target)) {
		return nil, apperr.Forbidden("Your role cannot move a manuscript to '" + string(target) + "'")
	}

	// Writers act only on their own manuscripts.
	if !actor.Role.AtLeast(sec.RoleEditor) && manuscript.AuthorID != actor.ID {
		return nil, apperr.Forbidden("You can only move your own manuscripts")
	}

	// 1. Durable status write. Everything after this point is best-effort.
	now := time.Now()
	if err := engine.manuscripts.UpdateStatus(context, manuscriptID, target, now); err != nil {
		return nil, err
	}

	result := &TransitionResult{
		ManuscriptID: manuscriptID,
		From:         manuscript.Status,
		To:           target,
		UpdatedAt:    now,
	}

	// 2. Audit history append.
	entry := &history.Entry{
		ManuscriptID: manuscriptID,
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       history.ActionStatusChanged,
		OldStatus:    pointer.To(string(manuscript.Status)),
		NewStatus:    pointer.To(string(target)),
		Notes:        notes,
	}
	if err := engine.auditLog.Append(context, entry); err != nil {
		return result, apperr.Partial("Status was updated but the audit entry could not be recorded", err)
	}

	// 3. Notifications: author always, assigned editor when relevant.
	if err := engine.notifyParties(context, actor, manuscript, target); err != nil {
		return result, apperr.Partial("Status was updated but a notification could not be delivered", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "manuscript_transitioned",
		slog.String("manuscript_id", manuscriptID),
		slog.String("from", string(manuscript.Status)),
		slog.String("to", string(target)),
		slog.String("actor_id", actor.ID),
	)

	return result, nil
}

// notifyParties dispatches the post-transition notifications.
func (engine *Engine) notifyParties(context context.Context, actor Actor, manuscript *ManuscriptRef, target Status) error {
	eventContext := notification.Context{
		ManuscriptID:    manuscript.ID,
		ManuscriptTitle: manuscript.Title,
		OldStatus:       string(manuscript.Status),
		NewStatus:       string(target),
		ActorName:       actor.Username,
	}

	// The author always hears about their manuscript moving.
	if _, err := engine.notifier.Notify(context, manuscript.AuthorID, kindForTarget(target), eventContext); err != nil {
		return err
	}

	// The assigned editor hears about moves they didn't make themselves.
	if manuscript.EditorID != nil && *manuscript.EditorID != actor.ID && *manuscript.EditorID != manuscript.AuthorID {
		if _, err := engine.notifier.Notify(context, *manuscript.EditorID, notification.KindStatusChanged, eventContext); err != nil {
			return err
		}
	}

	return nil
}

// kindForTarget picks the author-facing notification kind for a transition.
func kindForTarget(target Status) notification.Kind {
	switch target {
	case StatusApproved:
		return notification.KindManuscriptApproved
	case StatusRejected:
		return notification.KindManuscriptRejected
	default:
		return notification.KindStatusChanged
	}
}

/*
Available returns the transitions currently offered for a manuscript.

Description: Reads the current status and applies the pure table lookup.
The result is advisory for UIs; Transition re-validates regardless.

Parameters:
  - context: context.Context
  - manuscriptID: string

Returns:
  - Status: The manuscript's current status
  - []Status: Statuses reachable from it
  - error: apperr.NotFound or wrapped storage failures
*/
func (engine *Engine) Available(context context.Context, manuscriptID string) (Status, []Status, error) {
	manuscript, err := engine.manuscripts.FindRef(context, manuscriptID)
	if err != nil {
		return "", nil, err
	}

	return manuscript.Status, AvailableTransitions(manuscript.Status), nil
}
