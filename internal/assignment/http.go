// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package assignment

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/internal/workflow"
)

// Handler implements assignment and editor-availability HTTP endpoints.
type Handler struct {
	engine *Engine
}

// NewHandler constructs a new assignment [Handler].
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Routes returns a [chi.Router] for the /assignments subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.assign)
	router.Delete("/{id}", handler.remove)
	router.Patch("/{id}/progress", handler.updateProgress)

	return router
}

// # Request Payloads

type assignRequest struct {
	ManuscriptID   string     `json:"manuscript_id"`
	EditorID       string     `json:"editor_id"`
	Priority       string     `json:"priority"`
	AssignmentType string     `json:"assignment_type"`
	Deadline       *time.Time `json:"deadline"`
	EstimatedHours *float64   `json:"estimated_hours"`
	HourlyRate     *float64   `json:"hourly_rate"`
}

type progressRequest struct {
	Progress int `json:"progress"`
}

type availabilityRequest struct {
	AvailabilityStatus    string `json:"availability_status"`
	MaxConcurrentProjects int    `json:"max_concurrent_projects"`
}

// actorFromRequest resolves the authenticated actor for engine calls.
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
Assign pairs an editor with a manuscript.

POST /api/v1/assignments

Request:
  - Body: assignRequest

Response:
  - 201: Assignment
  - 403: ErrForbidden: Caller is not a publisher
  - 409: EDITOR_UNAVAILABLE: Capacity or availability precondition failed
*/
func (handler *Handler) assign(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input assignRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldManuscriptID, input.ManuscriptID).
		UUID(FieldManuscriptID, input.ManuscriptID).
		Required(FieldEditorID, input.EditorID).
		UUID(FieldEditorID, input.EditorID).
		Required(FieldPriority, input.Priority).
		OneOf(FieldPriority, input.Priority, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent).
		Required(FieldAssignmentType, input.AssignmentType)

	if input.EstimatedHours != nil && *input.EstimatedHours < 0 {
		validator.Custom(FieldEstimatedHours, true, "must not be negative")
	}
	if input.HourlyRate != nil && *input.HourlyRate < 0 {
		validator.Custom(FieldHourlyRate, true, "must not be negative")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.engine.Assign(request.Context(), actor, AssignInput{
		ManuscriptID:   input.ManuscriptID,
		EditorID:       input.EditorID,
		Priority:       input.Priority,
		AssignmentType: input.AssignmentType,
		Deadline:       input.Deadline,
		EstimatedHours: input.EstimatedHours,
		HourlyRate:     input.HourlyRate,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, assignment)
}

/*
Remove deletes an assignment and releases the editor's slot.

DELETE /api/v1/assignments/{id}

Response:
  - 204: No Content
  - 403: ErrForbidden
  - 404: ErrNotFound
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.engine.Remove(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
UpdateProgress records editing progress.

PATCH /api/v1/assignments/{id}/progress

Request:
  - Body: progressRequest (Progress 0–100)

Response:
  - 200: Assignment with derived status
  - 400: VALIDATION_ERROR: Progress out of range
  - 403: ErrForbidden: Caller is not the assigned editor
*/
func (handler *Handler) updateProgress(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input progressRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	assignment, err := handler.engine.UpdateProgress(request.Context(), actor, requestutil.ID(request, "id"), input.Progress)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, assignment)
}

/*
ListByManuscript returns all assignments for a manuscript.

GET /api/v1/manuscripts/{id}/assignments

Response:
  - 200: []Assignment
*/
func (handler *Handler) ListByManuscript(writer http.ResponseWriter, request *http.Request) {
	assignments, err := handler.engine.ListByManuscript(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, assignments)
}

/*
GetAvailability returns an editor's capacity record.

GET /api/v1/editors/{id}/availability

Response:
  - 200: EditorAvailability
  - 404: ErrNotFound: No profile declared yet
*/
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	availability, err := handler.engine.GetAvailability(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, availability)
}

/*
SetAvailability declares or updates an editor's capacity.

PUT /api/v1/editors/{id}/availability

Request:
  - Body: availabilityRequest

Response:
  - 200: EditorAvailability with the live workload counter
  - 403: ErrForbidden: Not your profile
*/
func (handler *Handler) SetAvailability(writer http.ResponseWriter, request *http.Request) {
	actor, err := actorFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input availabilityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldAvailability, input.AvailabilityStatus).
		OneOf(FieldAvailability, input.AvailabilityStatus, AvailabilityAvailable, AvailabilityBusy, AvailabilityUnavailable).
		Range(FieldMaxProjects, input.MaxConcurrentProjects, 1, 50)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	availability, err := handler.engine.SetAvailability(request.Context(), actor, requestutil.ID(request, "id"), AvailabilityInput{
		AvailabilityStatus:    input.AvailabilityStatus,
		MaxConcurrentProjects: input.MaxConcurrentProjects,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, availability)
}
