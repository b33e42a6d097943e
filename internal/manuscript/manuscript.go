// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

/*
Package manuscript implements manuscript CRUD and lifecycle entry points.

A manuscript is created directly into the workflow's 'submitted' status and
from then on its status column belongs to the workflow engine — the update
path here covers metadata only. Deletion is owner/admin and cascades to all
dependent assignments, reviews, history, and notifications.
*/
package manuscript

import (
	"time"

	"github.com/inkwellhq/inkwell/internal/workflow"
)

// # Entity

// Manuscript is a writer's submitted work.
type Manuscript struct {
	ID        string          `json:"id"`
	AuthorID  string          `json:"author_id"`
	EditorID  *string         `json:"editor_id,omitempty"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Synopsis  string          `json:"synopsis"`
	WordCount int             `json:"word_count"`
	Status    workflow.Status `json:"status"`
	Deadline  *time.Time      `json:"deadline,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldSynopsis  = "synopsis"
	FieldWordCount = "word_count"
	FieldStatus    = "status"
	FieldAuthor    = "author"
)
