// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package history

import (
	"net/http"

	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// Handler exposes the read side of the audit log.
type Handler struct {
	repository Repository
}

// NewHandler constructs a new [Handler] backed by the given repository.
func NewHandler(repository Repository) *Handler {
	return &Handler{repository: repository}
}

/*
ListByManuscript returns the audit trail of a manuscript.

GET /api/v1/manuscripts/{id}/history

Description: Paginated, newest-first list of immutable audit entries.
There is no write endpoint; entries are only created by the engines.

Response:
  - 200: []Entry with pagination metadata
*/
func (handler *Handler) ListByManuscript(writer http.ResponseWriter, request *http.Request) {
	manuscriptID := requestutil.ID(request, "id")
	params := pagination.FromRequest(request)

	entries, total, err := handler.repository.ListByManuscript(request.Context(), manuscriptID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}
