// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package review

import (
	"github.com/inkwellhq/inkwell/internal/assignment"
	"github.com/inkwellhq/inkwell/pkg/slice"
)

// # Pure Aggregates

// AverageRating returns the mean of the non-null ratings in reviews.
//
// Zero-safe: an empty slice or a slice with no rated reviews yields 0,
// never NaN.
func AverageRating(reviews []Review) float64 {
	sum := 0
	count := 0

	for _, r := range reviews {
		if r.Rating != nil {
			sum += *r.Rating
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return float64(sum) / float64(count)
}

// CompletionRate returns the share of completed assignments as a percentage.
//
// Zero-safe: no assignments yields 0, never a division by zero.
func CompletionRate(assignments []assignment.Assignment) float64 {
	if len(assignments) == 0 {
		return 0
	}

	completed := slice.Filter(assignments, func(a assignment.Assignment) bool {
		return a.Status == assignment.StatusCompleted
	})

	return float64(len(completed)) / float64(len(assignments)) * 100
}

// PendingCount returns the number of unresolved reviews.
func PendingCount(reviews []Review) int {
	pending := slice.Filter(reviews, func(r Review) bool {
		return r.Status == StatusPending
	})

	return len(pending)
}
