// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// Handler implements recipient-scoped notification endpoints.
//
// Every route requires authentication; the recipient is always the caller.
// There is no endpoint to read or mutate another user's notifications.
type Handler struct {
	service    *Service
	repository Repository
}

// NewHandler constructs a new notification [Handler].
func NewHandler(service *Service, repository Repository) *Handler {
	return &Handler{service: service, repository: repository}
}

// Routes returns a [chi.Router] with the notification endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Patch("/{id}/read", handler.markRead)
	router.Post("/read-all", handler.markAllRead)
	router.Delete("/read", handler.deleteRead)

	return router
}

/*
List returns the caller's notifications, newest first.

GET /api/v1/notifications

Response:
  - 200: []Notification with pagination metadata
  - 401: ErrUnauthorized
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	notifications, total, err := handler.repository.ListByRecipient(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, notifications, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
MarkRead flags a single notification of the caller as read.

PATCH /api/v1/notifications/{id}/read

Response:
  - 204: No Content
  - 404: ErrNotFound: The row does not exist or belongs to someone else
*/
func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.ID(request, "id")
	if err := handler.service.MarkRead(request.Context(), id, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
MarkAllRead flags all unread notifications of the caller as read.

POST /api/v1/notifications/read-all

Response:
  - 200: {"updated": n}
*/
func (handler *Handler) markAllRead(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.MarkAllRead(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"updated": updated})
}

/*
DeleteRead bulk-removes the caller's read notifications.

DELETE /api/v1/notifications/read

Response:
  - 200: {"deleted": n}
*/
func (handler *Handler) deleteRead(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteRead(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"deleted": deleted})
}
