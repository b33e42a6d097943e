// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

/*
Package history implements the append-only workflow audit log.

Every meaningful action against a manuscript (status transition, assignment,
review submission) is recorded as an immutable [Entry]. The log is evidence,
not state: current entity state is always read from the primary tables and is
never reconstructed by replaying history.

# Invariants

  - Append is the only write. No update or delete path exists in this package.
  - Entries are ordered by creation time.
*/
package history

import "time"

// # Action Labels

// Closed set of action labels recorded in the audit log. Consumers filter
// and render on these, so new labels are additive only.
const (
	ActionManuscriptSubmitted = "manuscript_submitted"
	ActionStatusChanged       = "status_changed"
	ActionAssignmentCreated   = "assignment_created"
	ActionAssignmentRemoved   = "assignment_removed"
	ActionProgressUpdated     = "progress_updated"
	ActionReviewSubmitted     = "review_submitted"
	ActionReviewResolved      = "review_resolved"
)

// # Entity

// Entry is one immutable audit record.
//
// OldStatus and NewStatus are nullable: non-status actions (e.g. a review
// submission) carry no status pair.
type Entry struct {
	ID           string         `json:"id"`
	ManuscriptID string         `json:"manuscript_id"`
	ActorID      string         `json:"actor_id"`
	ActorRole    string         `json:"actor_role"`
	Action       string         `json:"action"`
	OldStatus    *string        `json:"old_status"`
	NewStatus    *string        `json:"new_status"`
	Notes        string         `json:"notes,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// # Field Identifiers

const (
	FieldAction = "action"
	FieldNotes  = "notes"
)
