// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwellhq/inkwell/internal/platform/sec"
)

func TestCanTransition_FullTable(t *testing.T) {
	allStatuses := []Status{
		StatusSubmitted, StatusUnderReview, StatusRevisionRequested,
		StatusApproved, StatusRejected, StatusPublished,
	}

	allowed := map[Status][]Status{
		StatusSubmitted:         {StatusUnderReview, StatusRejected},
		StatusUnderReview:       {StatusApproved, StatusRejected, StatusRevisionRequested},
		StatusRevisionRequested: {StatusSubmitted, StatusRejected},
		StatusApproved:          {StatusPublished, StatusUnderReview},
		StatusRejected:          {StatusSubmitted},
		StatusPublished:         {},
	}

	// Check every one of the 36 from/to pairs, not just the legal edges.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			expected := false
			for _, target := range allowed[from] {
				if target == to {
					expected = true
				}
			}

			assert.Equal(t, expected, CanTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestAvailableTransitions_ReturnsCopy(t *testing.T) {
	first := AvailableTransitions(StatusUnderReview)
	first[0] = Status("mangled")

	second := AvailableTransitions(StatusUnderReview)
	assert.Equal(t, StatusApproved, second[0], "callers must not be able to mutate the table")
}

func TestAvailableTransitions_PublishedIsTerminal(t *testing.T) {
	assert.Empty(t, AvailableTransitions(StatusPublished))
	assert.True(t, StatusPublished.IsTerminal())
	assert.False(t, StatusSubmitted.IsTerminal())
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusRevisionRequested.IsValid())
	assert.False(t, Status("in_limbo").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestRequiredRole(t *testing.T) {
	testCases := []struct {
		target   Status
		expected sec.UserRole
	}{
		{StatusSubmitted, sec.RoleWriter},
		{StatusUnderReview, sec.RoleEditor},
		{StatusRevisionRequested, sec.RoleEditor},
		{StatusApproved, sec.RoleEditor},
		{StatusRejected, sec.RoleEditor},
		{StatusPublished, sec.RolePublisher},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, RequiredRole(testCase.target), "target %s", testCase.target)
	}

	// Unknown targets are locked down, not open.
	assert.Equal(t, sec.RoleAdmin, RequiredRole(Status("in_limbo")))
}
