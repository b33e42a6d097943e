// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_KindTemplates(t *testing.T) {
	deadline := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name            string
		kind            Kind
		eventContext    Context
		expectedType    string
		expectedTitle   string
		messageContains string
	}{
		{
			name:            "status changed is informational",
			kind:            KindStatusChanged,
			eventContext:    Context{ManuscriptTitle: "The Lighthouse", OldStatus: "submitted", NewStatus: "under_review"},
			expectedType:    TypeInfo,
			expectedTitle:   "Manuscript status updated",
			messageContains: "from submitted to under_review",
		},
		{
			name:            "assignment created targets the editor",
			kind:            KindAssignmentCreated,
			eventContext:    Context{ManuscriptTitle: "The Lighthouse"},
			expectedType:    TypeInfo,
			expectedTitle:   "New editing assignment",
			messageContains: "assigned to edit 'The Lighthouse'",
		},
		{
			name:            "approval is a success",
			kind:            KindManuscriptApproved,
			eventContext:    Context{ManuscriptTitle: "The Lighthouse"},
			expectedType:    TypeSuccess,
			expectedTitle:   "Manuscript approved",
			messageContains: "has been approved",
		},
		{
			name:            "rejection is an error",
			kind:            KindManuscriptRejected,
			eventContext:    Context{ManuscriptTitle: "The Lighthouse"},
			expectedType:    TypeError,
			expectedTitle:   "Manuscript rejected",
			messageContains: "has been rejected",
		},
		{
			name:            "deadline approaching is a warning with the date",
			kind:            KindDeadlineApproaching,
			eventContext:    Context{ManuscriptTitle: "The Lighthouse", Deadline: &deadline},
			expectedType:    TypeWarning,
			expectedTitle:   "Deadline approaching",
			messageContains: "Mar 14, 2026",
		},
		{
			name:            "review received names the reviewer",
			kind:            KindReviewReceived,
			eventContext:    Context{ManuscriptTitle: "The Lighthouse", ActorName: "mira"},
			expectedType:    TypeInfo,
			expectedTitle:   "New review received",
			messageContains: "review from mira",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			output, err := render(testCase.kind, testCase.eventContext)

			require.NoError(t, err)
			assert.Equal(t, testCase.expectedType, output.Type)
			assert.Equal(t, testCase.expectedTitle, output.Title)
			assert.Contains(t, output.Message, testCase.messageContains)
		})
	}
}

func TestRender_RejectsUnknownKind(t *testing.T) {
	_, err := render(Kind("someone_sneezed"), Context{})
	require.Error(t, err)
}
