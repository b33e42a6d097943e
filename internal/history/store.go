// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package history

import (
	"context"

	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// # Contracts

// Repository defines the persistence contract for the audit log.
//
// # Append-Only
//
// The interface intentionally exposes no update or delete. Implementations
// must not grow them either; the log's value is that it cannot be rewritten.
type Repository interface {
	/*
		Append persists a single immutable audit entry.

		Parameters:
		  - context: context.Context
		  - entry: *Entry (Timestamps are initialized if zero)

		Returns:
		  - error: Storage failures
	*/
	Append(context context.Context, entry *Entry) error

	/*
		ListByManuscript retrieves the audit trail for one manuscript,
		newest first.

		Parameters:
		  - context: context.Context
		  - manuscriptID: string
		  - params: pagination.Params

		Returns:
		  - []Entry: Page of audit entries
		  - int: Total entry count for the manuscript
		  - error: Storage failures
	*/
	ListByManuscript(context context.Context, manuscriptID string, params pagination.Params) ([]Entry, int, error)
}
