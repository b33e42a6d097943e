// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package review

import (
	"context"
	"fmt"

	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/workflow"
)

// Service implements review submission, resolution, and metric reads.
type Service struct {
	reviews      Repository
	assignments  AssignmentSource
	availability AvailabilitySource
	manuscripts  ManuscriptSource
	auditLog     HistoryAppender
	notifier     Notifier
}

// NewService constructs a new review [Service] with its collaborators.
func NewService(
	reviews Repository,
	assignments AssignmentSource,
	availability AvailabilitySource,
	manuscripts ManuscriptSource,
	auditLog HistoryAppender,
	notifier Notifier,
) *Service {
	return &Service{
		reviews:      reviews,
		assignments:  assignments,
		availability: availability,
		manuscripts:  manuscripts,
		auditLog:     auditLog,
		notifier:     notifier,
	}
}

// # Submission

// CreateInput holds the data of a new review.
type CreateInput struct {
	ManuscriptID string
	AssignmentID *string
	ChapterRef   *string
	Rating       *int
	Content      string
	ReviewType   string
}

/*
Create submits a new review on a manuscript.

Description: Reviews start pending. Submission appends a non-status audit
entry (old/new status stay null) and notifies the manuscript's author.

Parameters:
  - context: context.Context
  - actor: workflow.Actor (must be editor or above)
  - input: CreateInput

Returns:
  - *Review: Created entity
  - error: Forbidden, NotFound, Partial, or storage failures
*/
func (service *Service) Create(context context.Context, actor workflow.Actor, input CreateInput) (*Review, error) {

	if !actor.Role.AtLeast(sec.RoleEditor) {
		return nil, apperr.Forbidden("Only editors can submit reviews")
	}

	manuscript, err := service.manuscripts.FindRef(context, input.ManuscriptID)
	if err != nil {
		return nil, err
	}

	review := &Review{
		ManuscriptID: input.ManuscriptID,
		ReviewerID:   actor.ID,
		AssignmentID: input.AssignmentID,
		ChapterRef:   input.ChapterRef,
		Rating:       input.Rating,
		Content:      input.Content,
		ReviewType:   input.ReviewType,
		Status:       StatusPending,
	}

	if err := service.reviews.Create(context, review); err != nil {
		return nil, fmt.Errorf("review_service_create_failed: %w", err)
	}

	// Non-status audit entry: the manuscript's status pair stays null.
	entry := &history.Entry{
		ManuscriptID: input.ManuscriptID,
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       history.ActionReviewSubmitted,
		Metadata: map[string]any{
			"review_id":   review.ID,
			"review_type": input.ReviewType,
		},
	}
	if err := service.auditLog.Append(context, entry); err != nil {
		return review, apperr.Partial("Review was created but the audit entry could not be recorded", err)
	}

	eventContext := notification.Context{
		ManuscriptID:    manuscript.ID,
		ManuscriptTitle: manuscript.Title,
		ActorName:       actor.Username,
	}
	if _, err := service.notifier.Notify(context, manuscript.AuthorID, notification.KindReviewReceived, eventContext); err != nil {
		return review, apperr.Partial("Review was created but the author could not be notified", err)
	}

	return review, nil
}

// # Resolution

/*
Resolve marks a pending review approved or rejected.

Description: Allowed for the manuscript's author (acting on feedback they
received) and for publisher+. Resolution is recorded in the audit log.

Parameters:
  - context: context.Context
  - actor: workflow.Actor
  - reviewID: string
  - status: Status (StatusApproved or StatusRejected)

Returns:
  - *Review: The resolved entity
  - error: ValidationError, Forbidden, NotFound, Partial, or storage failures
*/
func (service *Service) Resolve(context context.Context, actor workflow.Actor, reviewID string, status Status) (*Review, error) {

	if status != StatusApproved && status != StatusRejected {
		return nil, apperr.ValidationError("Resolution must be 'approved' or 'rejected'")
	}

	review, err := service.reviews.FindByID(context, reviewID)
	if err != nil {
		return nil, err
	}

	manuscript, err := service.manuscripts.FindRef(context, review.ManuscriptID)
	if err != nil {
		return nil, err
	}

	if actor.ID != manuscript.AuthorID && !actor.Role.AtLeast(sec.RolePublisher) {
		return nil, apperr.Forbidden("Only the manuscript's author or a publisher can resolve reviews")
	}

	if err := service.reviews.UpdateStatus(context, reviewID, status); err != nil {
		return nil, err
	}
	review.Status = status

	entry := &history.Entry{
		ManuscriptID: review.ManuscriptID,
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       history.ActionReviewResolved,
		Metadata: map[string]any{
			"review_id":  reviewID,
			"resolution": string(status),
		},
	}
	if err := service.auditLog.Append(context, entry); err != nil {
		return review, apperr.Partial("Review was resolved but the audit entry could not be recorded", err)
	}

	return review, nil
}

// # Metrics

// ManuscriptMetrics is the aggregate read for one manuscript.
//
// Recomputed from current rows on every call; nothing here is cached.
type ManuscriptMetrics struct {
	ManuscriptID  string  `json:"manuscript_id"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
	PendingCount  int     `json:"pending_count"`
}

// EditorMetrics is the aggregate read for one editor.
type EditorMetrics struct {
	EditorID        string  `json:"editor_id"`
	AssignmentCount int     `json:"assignment_count"`
	CompletionRate  float64 `json:"completion_rate"`
	CurrentWorkload int     `json:"current_workload"`
}

/*
MetricsForManuscript computes the review aggregates of a manuscript.

Parameters:
  - context: context.Context
  - manuscriptID: string

Returns:
  - *ManuscriptMetrics: Zero-safe aggregates (0, never NaN)
  - error: apperr.NotFound or storage failures
*/
func (service *Service) MetricsForManuscript(context context.Context, manuscriptID string) (*ManuscriptMetrics, error) {

	// Resolve first so an unknown manuscript is a 404, not empty metrics.
	if _, err := service.manuscripts.FindRef(context, manuscriptID); err != nil {
		return nil, err
	}

	reviews, err := service.reviews.ListByManuscript(context, manuscriptID)
	if err != nil {
		return nil, err
	}

	return &ManuscriptMetrics{
		ManuscriptID:  manuscriptID,
		ReviewCount:   len(reviews),
		AverageRating: AverageRating(reviews),
		PendingCount:  PendingCount(reviews),
	}, nil
}

/*
MetricsForEditor computes an editor's assignment aggregates.

Parameters:
  - context: context.Context
  - editorID: string

Returns:
  - *EditorMetrics: Completion rate plus live workload (0 without a profile)
  - error: Storage failures
*/
func (service *Service) MetricsForEditor(context context.Context, editorID string) (*EditorMetrics, error) {
	assignments, err := service.assignments.ListByEditor(context, editorID)
	if err != nil {
		return nil, err
	}

	metrics := &EditorMetrics{
		EditorID:        editorID,
		AssignmentCount: len(assignments),
		CompletionRate:  CompletionRate(assignments),
	}

	// An editor without a declared profile simply has no workload yet.
	if availability, err := service.availability.Find(context, editorID); err == nil {
		metrics.CurrentWorkload = availability.CurrentWorkload
	}

	return metrics, nil
}

/*
ListByManuscript retrieves all reviews of a manuscript.

Parameters:
  - context: context.Context
  - manuscriptID: string

Returns:
  - []Review
  - error: Storage failures
*/
func (service *Service) ListByManuscript(context context.Context, manuscriptID string) ([]Review, error) {
	return service.reviews.ListByManuscript(context, manuscriptID)
}
