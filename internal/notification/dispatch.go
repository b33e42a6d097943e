// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package notification

import (
	"fmt"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
)

// # Template Rendering

// rendered is the client-facing output of a template for one event.
type rendered struct {
	Title   string
	Message string
	Type    string
}

/*
render maps an event kind plus its context to a title, message, and severity.

Description: Pure function, no I/O. Unknown kinds are a programming error
on the caller's side and are rejected rather than rendered generically.

Parameters:
  - kind: Kind
  - eventContext: Context

Returns:
  - rendered: Title/Message/Type triple
  - error: apperr.ValidationError for a kind outside the closed set
*/
func render(kind Kind, eventContext Context) (rendered, error) {
	switch kind {

	case KindStatusChanged:
		return rendered{
			Title: "Manuscript status updated",
			Message: fmt.Sprintf("'%s' moved from %s to %s",
				eventContext.ManuscriptTitle, eventContext.OldStatus, eventContext.NewStatus),
			Type: TypeInfo,
		}, nil

	case KindAssignmentCreated:
		return rendered{
			Title:   "New editing assignment",
			Message: fmt.Sprintf("You have been assigned to edit '%s'", eventContext.ManuscriptTitle),
			Type:    TypeInfo,
		}, nil

	case KindAssignmentUpdated:
		return rendered{
			Title:   "Assignment progress updated",
			Message: fmt.Sprintf("Editing of '%s' is now %s", eventContext.ManuscriptTitle, eventContext.NewStatus),
			Type:    TypeInfo,
		}, nil

	case KindDeadlineApproaching:
		message := fmt.Sprintf("The editing deadline for '%s' is approaching", eventContext.ManuscriptTitle)
		if eventContext.Deadline != nil {
			message = fmt.Sprintf("The editing deadline for '%s' is %s",
				eventContext.ManuscriptTitle, eventContext.Deadline.Format("Jan 2, 2006"))
		}
		return rendered{
			Title:   "Deadline approaching",
			Message: message,
			Type:    TypeWarning,
		}, nil

	case KindReviewReceived:
		return rendered{
			Title:   "New review received",
			Message: fmt.Sprintf("'%s' received a review from %s", eventContext.ManuscriptTitle, eventContext.ActorName),
			Type:    TypeInfo,
		}, nil

	case KindManuscriptApproved:
		return rendered{
			Title:   "Manuscript approved",
			Message: fmt.Sprintf("Congratulations! '%s' has been approved", eventContext.ManuscriptTitle),
			Type:    TypeSuccess,
		}, nil

	case KindManuscriptRejected:
		return rendered{
			Title:   "Manuscript rejected",
			Message: fmt.Sprintf("'%s' has been rejected", eventContext.ManuscriptTitle),
			Type:    TypeError,
		}, nil
	}

	return rendered{}, apperr.ValidationError("Unknown notification kind: " + string(kind))
}
