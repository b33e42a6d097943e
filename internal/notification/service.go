// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/inkwellhq/inkwell/internal/platform/ctxutil"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// Service implements notification dispatch and recipient-scoped reads.
type Service struct {
	repository Repository
	publisher  Publisher
}

// NewService constructs a new notification [Service].
//
// The publisher may be nil (e.g. in tests); dispatch then skips the live push
// and only performs the durable write.
func NewService(repository Repository, publisher Publisher) *Service {
	return &Service{repository: repository, publisher: publisher}
}

/*
Notify renders and dispatches one notification to one recipient.

Description: Renders the template for the event kind, writes the durable row,
then attempts a best-effort live push. The push failure path is logged and
swallowed: the durable write is the delivery guarantee.

Parameters:
  - context: context.Context
  - recipientID: string
  - kind: Kind (must be in the closed kind set)
  - eventContext: Context

Returns:
  - *Notification: The persisted row
  - error: Render or durable-write failures; push failures are never returned
*/
func (service *Service) Notify(context context.Context, recipientID string, kind Kind, eventContext Context) (*Notification, error) {

	// Render the kind into a client-facing title/message/type triple
	output, err := render(kind, eventContext)
	if err != nil {
		return nil, err
	}

	notification := &Notification{
		RecipientID: recipientID,
		Title:       output.Title,
		Message:     output.Message,
		Type:        output.Type,
		Category:    string(kind),
		Metadata:    eventContext.Metadata,
	}
	if eventContext.ManuscriptID != "" {
		notification.ManuscriptID = pointer.To(eventContext.ManuscriptID)
	}
	if eventContext.AssignmentID != "" {
		notification.AssignmentID = pointer.To(eventContext.AssignmentID)
	}

	// Durable write first: this row IS the notification.
	if err := service.repository.Create(context, notification); err != nil {
		return nil, fmt.Errorf("notification_service_create_failed: %w", err)
	}

	// Best-effort live push on top of the durable row.
	service.push(context, notification)

	return notification, nil
}

// push attempts the live delivery and logs (never propagates) failures.
func (service *Service) push(context context.Context, notification *Notification) {
	if service.publisher == nil {
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}

	if err := service.publisher.Publish(context, notification.RecipientID, payload); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "notification_push_failed",
			slog.String("notification_id", notification.ID),
			slog.String("recipient_id", notification.RecipientID),
			slog.String("error", err.Error()),
		)
	}
}

/*
MarkRead flags one of the recipient's notifications as read.

Parameters:
  - context: context.Context
  - id: string
  - recipientID: string

Returns:
  - error: apperr.NotFound for foreign or missing rows
*/
func (service *Service) MarkRead(context context.Context, id, recipientID string) error {
	return service.repository.MarkRead(context, id, recipientID)
}

/*
MarkAllRead flags all of the recipient's unread notifications as read.

Parameters:
  - context: context.Context
  - recipientID: string

Returns:
  - int: Number of rows updated
  - error: Storage failures
*/
func (service *Service) MarkAllRead(context context.Context, recipientID string) (int, error) {
	return service.repository.MarkAllRead(context, recipientID)
}

/*
DeleteRead bulk-removes the recipient's read notifications.

Parameters:
  - context: context.Context
  - recipientID: string

Returns:
  - int: Number of rows deleted
  - error: Storage failures
*/
func (service *Service) DeleteRead(context context.Context, recipientID string) (int, error) {
	return service.repository.DeleteRead(context, recipientID)
}
