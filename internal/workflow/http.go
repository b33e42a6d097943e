// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package workflow

import (
	"net/http"

	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"

	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
)

// Handler exposes the workflow engine over HTTP.
type Handler struct {
	engine *Engine
}

// NewHandler constructs a new workflow [Handler].
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// # Request Payloads

type transitionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

/*
Transition moves a manuscript to a new status.

POST /api/v1/manuscripts/{id}/transition

Description: Validates the payload, resolves the actor from verified JWT
claims, and delegates to the engine. A PARTIAL_FAILURE response still means
the status change committed.

Request:
  - Body: transitionRequest (Status, Notes)

Response:
  - 200: TransitionResult
  - 403: ErrForbidden: Role below the target's minimum, or foreign manuscript
  - 404: ErrNotFound: Unknown manuscript
  - 409: INVALID_TRANSITION: Not allowed from the current status
  - 500: PARTIAL_FAILURE: Status changed, audit or notification incomplete
  - 503: STORE_UNAVAILABLE: Retryable storage outage
*/
func (handler *Handler) Transition(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input transitionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("status", input.Status).
		MaxLen("notes", input.Notes, 2000)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor := Actor{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     sec.UserRole(claims.Role),
	}

	result, err := handler.engine.Transition(
		request.Context(),
		actor,
		requestutil.ID(request, "id"),
		Status(input.Status),
		input.Notes,
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Available returns the transitions currently offered for a manuscript.

GET /api/v1/manuscripts/{id}/transitions

Description: Pure advisory lookup for UIs to restrict offered actions.
The engine re-validates on every write regardless of what was offered.

Response:
  - 200: {"current_status": s, "available": [..]}
  - 404: ErrNotFound
*/
func (handler *Handler) Available(writer http.ResponseWriter, request *http.Request) {
	current, available, err := handler.engine.Available(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"current_status": current,
		"available":      available,
	})
}
