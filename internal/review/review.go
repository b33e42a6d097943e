// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

/*
Package review implements manuscript reviews and the read-side aggregator.

Reviews are editorial feedback attached to a manuscript, optionally scoped to
a specific assignment or chapter. Aggregates (average rating, completion
rate, pending count) are pure functions recomputed from current store data on
every read; no cached aggregate is ever treated as authoritative.
*/
package review

import "time"

// # Statuses

// Status is a review's resolution state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// # Review Types

const (
	TypeGeneral = "general"
	TypeChapter = "chapter"
	TypeFinal   = "final"
)

// # Entity

// Review is one piece of editorial feedback on a manuscript.
//
// Rating is nullable: a chapter note doesn't have to score the whole work.
type Review struct {
	ID           string    `json:"id"`
	ManuscriptID string    `json:"manuscript_id"`
	ReviewerID   string    `json:"reviewer_id"`
	AssignmentID *string   `json:"assignment_id,omitempty"`
	ChapterRef   *string   `json:"chapter_ref,omitempty"`
	Rating       *int      `json:"rating,omitempty"`
	Content      string    `json:"content"`
	ReviewType   string    `json:"review_type"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldRating     = "rating"
	FieldContent    = "content"
	FieldReviewType = "review_type"
	FieldStatus     = "status"
)
