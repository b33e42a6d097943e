// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

/*
Package notification implements the notification dispatcher.

It turns a closed set of event kinds into user-facing notifications: one
durable Postgres row per recipient, plus a best-effort live push over Redis
pub/sub. The row is the record; the push is a UI nicety. A lost push never
loses the notification.

# Delivery Model

  - Durable write first. The row must exist before any push is attempted.
  - Push failures are logged and swallowed. They never fail the dispatch.
  - One row per recipient. Multiple recipients are never batched into one row.
*/
package notification

import "time"

// # Event Kinds

// Kind identifies a notification event category.
//
// The set is closed: every kind maps to a title/message template in
// dispatch.go, and unknown kinds are rejected at dispatch time.
type Kind string

const (
	KindStatusChanged       Kind = "status_changed"
	KindAssignmentCreated   Kind = "assignment_created"
	KindAssignmentUpdated   Kind = "assignment_updated"
	KindDeadlineApproaching Kind = "deadline_approaching"
	KindReviewReceived      Kind = "review_received"
	KindManuscriptApproved  Kind = "manuscript_approved"
	KindManuscriptRejected  Kind = "manuscript_rejected"
)

// # Severity Types

// Severity levels rendered by clients (badge color, toast style).
const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"
)

// # Entity

// Notification is one durable per-recipient notification row.
type Notification struct {
	ID           string         `json:"id"`
	RecipientID  string         `json:"recipient_id"`
	Title        string         `json:"title"`
	Message      string         `json:"message"`
	Type         string         `json:"type"`
	Category     string         `json:"category"`
	ManuscriptID *string        `json:"manuscript_id,omitempty"`
	AssignmentID *string        `json:"assignment_id,omitempty"`
	IsRead       bool           `json:"is_read"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Context carries the event data a template is filled from.
//
// Not every kind uses every field; templates pick what they need.
type Context struct {
	ManuscriptID    string
	ManuscriptTitle string
	AssignmentID    string
	OldStatus       string
	NewStatus       string
	ActorName       string
	Deadline        *time.Time
	Metadata        map[string]any
}
