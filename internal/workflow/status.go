// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

/*
Package workflow implements the manuscript status state machine.

A manuscript's status is owned exclusively by this engine: no other package
writes the status column. Every change is validated against the transition
table, recorded in the audit log, and announced to interested parties.

# State Machine

	submitted          -> under_review, rejected
	under_review       -> approved, rejected, revision_requested
	revision_requested -> submitted, rejected
	approved           -> published, under_review
	rejected           -> submitted
	published          -> (terminal)

# Side-Effect Ordering

Within one transition: status write -> history append -> notifications.
The status write must be durable before anything else happens. If a later
step fails, the operation reports a PARTIAL_FAILURE instead of rolling back —
the store offers no multi-row transaction across these writes as used.
*/
package workflow

import "github.com/inkwellhq/inkwell/internal/platform/sec"

// # Statuses

// Status is a manuscript's position in the editorial pipeline.
type Status string

const (
	StatusSubmitted         Status = "submitted"
	StatusUnderReview       Status = "under_review"
	StatusRevisionRequested Status = "revision_requested"
	StatusApproved          Status = "approved"
	StatusRejected          Status = "rejected"
	StatusPublished         Status = "published"
)

// # Transition Table

// transitions maps each status to the set of statuses it may move to.
// Published is terminal and has no outgoing edges.
var transitions = map[Status][]Status{
	StatusSubmitted:         {StatusUnderReview, StatusRejected},
	StatusUnderReview:       {StatusApproved, StatusRejected, StatusRevisionRequested},
	StatusRevisionRequested: {StatusSubmitted, StatusRejected},
	StatusApproved:          {StatusPublished, StatusUnderReview},
	StatusRejected:          {StatusSubmitted},
	StatusPublished:         {},
}

// minimumRoles maps each target status to the least role allowed to move a
// manuscript INTO it. Moving back to submitted is the writer's resubmission;
// editorial verdicts need an editor; going live needs a publisher.
var minimumRoles = map[Status]sec.UserRole{
	StatusSubmitted:         sec.RoleWriter,
	StatusUnderReview:       sec.RoleEditor,
	StatusRevisionRequested: sec.RoleEditor,
	StatusApproved:          sec.RoleEditor,
	StatusRejected:          sec.RoleEditor,
	StatusPublished:         sec.RolePublisher,
}

// IsValid reports whether s is one of the six pipeline statuses.
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// AvailableTransitions returns the statuses reachable from the given status.
//
// Pure lookup, no I/O. UIs use it to restrict offered actions, but the engine
// re-validates on every write: a client-offered transition is never trusted.
func AvailableTransitions(from Status) []Status {
	allowed := transitions[from]

	// Defensive copy so callers cannot mutate the table.
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransition reports whether the state machine permits from -> to.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// RequiredRole returns the minimum role allowed to move a manuscript into
// the target status.
func RequiredRole(target Status) sec.UserRole {
	if role, ok := minimumRoles[target]; ok {
		return role
	}
	return sec.RoleAdmin
}
