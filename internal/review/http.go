// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package review

import (
	"net/http"

	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/internal/workflow"
)

// Handler implements review and metrics HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// # Request Payloads

type createRequest struct {
	AssignmentID *string `json:"assignment_id"`
	ChapterRef   *string `json:"chapter_ref"`
	Rating       *int    `json:"rating"`
	Content      string  `json:"content"`
	ReviewType   string  `json:"review_type"`
}

type resolveRequest struct {
	Status string `json:"status"`
}

// actorFromRequest resolves the authenticated actor for service calls.
func actorFromRequest(request *http.Request) (workflow.Actor, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return workflow.Actor{}, err
	}

	return workflow.Actor{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     sec.UserRole(claims.Role),
	}, nil
}

/*
Create submits a review on a manuscript.

POST /api/v1/manuscripts/{id}/reviews

Request:
  - Body: createRequest

Response:
  - 201: Review (status pending)
  - 403: ErrForbidden: Caller is not an editor
  - 404: ErrNotFound: Unknown manuscript
*/
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, 10000).
		Required(FieldReviewType, input.ReviewType).
		OneOf(FieldReviewType, input.ReviewType, TypeGeneral, TypeChapter, TypeFinal)

	if input.Rating != nil {
		validator.Range(FieldRating, *input.Rating, 1, 5)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), actor, CreateInput{
		ManuscriptID: requestutil.ID(request, "id"),
		AssignmentID: input.AssignmentID,
		ChapterRef:   input.ChapterRef,
		Rating:       input.Rating,
		Content:      input.Content,
		ReviewType:   input.ReviewType,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
ListByManuscript returns all reviews of a manuscript.

GET /api/v1/manuscripts/{id}/reviews

Response:
  - 200: []Review
*/
func (handler *Handler) ListByManuscript(writer http.ResponseWriter, request *http.Request) {
	reviews, err := handler.service.ListByManuscript(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reviews)
}

/*
Resolve approves or rejects a review.

PATCH /api/v1/reviews/{id}/status

Request:
  - Body: resolveRequest (Status: approved | rejected)

Response:
  - 200: Review
  - 403: ErrForbidden: Not the author and not publisher+
  - 404: ErrNotFound
*/
func (handler *Handler) Resolve(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input resolveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.Resolve(request.Context(), actor, requestutil.ID(request, "id"), Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
ManuscriptMetrics returns the review aggregates of a manuscript.

GET /api/v1/manuscripts/{id}/metrics

Response:
  - 200: ManuscriptMetrics (recomputed per read)
  - 404: ErrNotFound
*/
func (handler *Handler) ManuscriptMetrics(writer http.ResponseWriter, request *http.Request) {
	metrics, err := handler.service.MetricsForManuscript(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, metrics)
}

/*
EditorMetrics returns an editor's assignment aggregates.

GET /api/v1/editors/{id}/metrics

Response:
  - 200: EditorMetrics
*/
func (handler *Handler) EditorMetrics(writer http.ResponseWriter, request *http.Request) {
	metrics, err := handler.service.MetricsForEditor(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, metrics)
}
