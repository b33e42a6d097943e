// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package review

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwellhq/inkwell/internal/assignment"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

func TestAverageRating(t *testing.T) {
	testCases := []struct {
		name     string
		reviews  []Review
		expected float64
	}{
		{
			name:     "empty slice is zero, not NaN",
			reviews:  []Review{},
			expected: 0,
		},
		{
			name:     "nil slice is zero",
			reviews:  nil,
			expected: 0,
		},
		{
			name: "all reviews unrated is zero",
			reviews: []Review{
				{Rating: nil}, {Rating: nil},
			},
			expected: 0,
		},
		{
			name: "null ratings are excluded from the mean",
			reviews: []Review{
				{Rating: pointer.To(4)},
				{Rating: nil},
				{Rating: pointer.To(2)},
			},
			expected: 3,
		},
		{
			name: "single rating",
			reviews: []Review{
				{Rating: pointer.To(5)},
			},
			expected: 5,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := AverageRating(testCase.reviews)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, testCase.expected, got, 0.0001)
		})
	}
}

func TestCompletionRate(t *testing.T) {
	assert.Zero(t, CompletionRate(nil), "no assignments must not divide by zero")
	assert.Zero(t, CompletionRate([]assignment.Assignment{}))

	assignments := []assignment.Assignment{
		{Status: assignment.StatusCompleted},
		{Status: assignment.StatusInProgress},
		{Status: assignment.StatusCompleted},
		{Status: assignment.StatusAssigned},
	}

	assert.InDelta(t, 50.0, CompletionRate(assignments), 0.0001)
}

func TestPendingCount(t *testing.T) {
	assert.Zero(t, PendingCount(nil))

	reviews := []Review{
		{Status: StatusPending},
		{Status: StatusApproved},
		{Status: StatusPending},
		{Status: StatusRejected},
	}

	assert.Equal(t, 2, PendingCount(reviews))
}
