// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package manuscript

import (
	"net/http"
	"time"

	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/internal/workflow"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/query"
)

// Handler implements manuscript CRUD HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new manuscript [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// # Request Payloads

type manuscriptRequest struct {
	Title     string     `json:"title"`
	Synopsis  string     `json:"synopsis"`
	WordCount int        `json:"word_count"`
	Deadline  *time.Time `json:"deadline"`
}

// validateManuscriptPayload applies the shared title/synopsis/word count rules.
func validateManuscriptPayload(input manuscriptRequest) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MinLen(FieldTitle, input.Title, 3).
		MaxLen(FieldTitle, input.Title, 200).
		MaxLen(FieldSynopsis, input.Synopsis, 5000).
		Range(FieldWordCount, input.WordCount, 0, 2000000)

	return validator.Err()
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
Create registers a new manuscript submission.

POST /api/v1/manuscripts

Request:
  - Body: manuscriptRequest

Response:
  - 201: Manuscript (status 'submitted')
  - 409: ErrConflict: A manuscript with the same slug exists
*/
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input manuscriptRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateManuscriptPayload(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	manuscript, err := handler.service.Create(request.Context(), actor, CreateInput{
		Title:     input.Title,
		Synopsis:  input.Synopsis,
		WordCount: input.WordCount,
		Deadline:  input.Deadline,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, manuscript)
}

/*
Get retrieves one manuscript.

GET /api/v1/manuscripts/{id}

Response:
  - 200: Manuscript
  - 404: ErrNotFound
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	manuscript, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, manuscript)
}

/*
List retrieves manuscripts filtered by status and/or author. The status
filter accepts a comma-separated union (status=submitted,under_review).

GET /api/v1/manuscripts?status=&author=&page=&limit=

Response:
  - 200: []Manuscript with pagination metadata
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		Statuses: query.StringSlice(request.URL.Query().Get(FieldStatus)),
		AuthorID: request.URL.Query().Get(FieldAuthor),
	}
	params := pagination.FromRequest(request)

	manuscripts, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, manuscripts, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Update edits a manuscript's metadata (never its status).

PATCH /api/v1/manuscripts/{id}

Request:
  - Body: manuscriptRequest

Response:
  - 200: Manuscript
  - 403: ErrForbidden: Not the owner
  - 404: ErrNotFound
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input manuscriptRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateManuscriptPayload(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	manuscript, err := handler.service.Update(request.Context(), actor, requestutil.ID(request, "id"), UpdateInput{
		Title:     input.Title,
		Synopsis:  input.Synopsis,
		WordCount: input.WordCount,
		Deadline:  input.Deadline,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, manuscript)
}

/*
Delete removes a manuscript and cascades its dependents.

DELETE /api/v1/manuscripts/{id}

Response:
  - 204: No Content
  - 403: ErrForbidden: Not the owner and not an admin
  - 404: ErrNotFound
*/
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
