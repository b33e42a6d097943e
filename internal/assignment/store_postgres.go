// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/pkg/uuid"
)

// # Assignment Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the assignment Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const assignmentColumns = `
	id, manuscriptid, editorid, assignedby, status, priority, assignmenttype,
	progress, deadline, estimatedhours, hourlyrate, totalcost, createdat, updatedat`

// scanAssignment hydrates one Assignment from a pgx row.
func scanAssignment(row pgx.Row) (*Assignment, error) {
	assignment := &Assignment{}
	err := row.Scan(
		&assignment.ID,
		&assignment.ManuscriptID,
		&assignment.EditorID,
		&assignment.AssignedBy,
		&assignment.Status,
		&assignment.Priority,
		&assignment.AssignmentType,
		&assignment.Progress,
		&assignment.Deadline,
		&assignment.EstimatedHours,
		&assignment.HourlyRate,
		&assignment.TotalCost,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

/*
Create persists a new assignment row into core.assignment.

Parameters:
  - context: context.Context
  - assignment: *Assignment

Returns:
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, assignment *Assignment) error {
	const query = `
		INSERT INTO core.assignment (
			id, manuscriptid, editorid, assignedby, status, priority, assignmenttype,
			progress, deadline, estimatedhours, hourlyrate, totalcost, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	now := time.Now()
	if assignment.ID == "" {
		assignment.ID = uuid.New()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		assignment.ID,
		assignment.ManuscriptID,
		assignment.EditorID,
		assignment.AssignedBy,
		assignment.Status,
		assignment.Priority,
		assignment.AssignmentType,
		assignment.Progress,
		assignment.Deadline,
		assignment.EstimatedHours,
		assignment.HourlyRate,
		assignment.TotalCost,
		assignment.CreatedAt,
		assignment.UpdatedAt,
	)

	return dberr.Wrap(err, "assignment_create")
}

/*
FindByID retrieves one assignment by primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Assignment: Hydrated entity
  - error: apperr.NotFound or wrapped storage failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Assignment, error) {
	const query = `
		SELECT ` + assignmentColumns + `
		FROM core.assignment
		WHERE id = $1`

	assignment, err := scanAssignment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Assignment")
		}
		return nil, dberr.Wrap(err, "assignment_find")
	}

	return assignment, nil
}

/*
Update overwrites an assignment's mutable fields.

Description: Whole-record last-write-wins write keyed by primary key, no
optimistic version check.

Parameters:
  - context: context.Context
  - assignment: *Assignment

Returns:
  - error: apperr.NotFound or wrapped storage failures
*/
func (repository *PostgresRepository) Update(context context.Context, assignment *Assignment) error {
	const query = `
		UPDATE core.assignment
		SET status = $2, priority = $3, assignmenttype = $4, progress = $5,
		    deadline = $6, estimatedhours = $7, hourlyrate = $8, totalcost = $9,
		    updatedat = $10
		WHERE id = $1`

	assignment.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		assignment.ID,
		assignment.Status,
		assignment.Priority,
		assignment.AssignmentType,
		assignment.Progress,
		assignment.Deadline,
		assignment.EstimatedHours,
		assignment.HourlyRate,
		assignment.TotalCost,
		assignment.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "assignment_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Assignment")
	}

	return nil
}

/*
Delete removes an assignment row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or wrapped storage failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM core.assignment WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "assignment_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Assignment")
	}

	return nil
}

/*
ListByManuscript retrieves all assignments for one manuscript, newest first.

Parameters:
  - context: context.Context
  - manuscriptID: string

Returns:
  - []Assignment
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) ListByManuscript(context context.Context, manuscriptID string) ([]Assignment, error) {
	const query = `
		SELECT ` + assignmentColumns + `
		FROM core.assignment
		WHERE manuscriptid = $1
		ORDER BY createdat DESC`

	return repository.list(context, query, manuscriptID)
}

/*
ListByEditor retrieves all assignments held by one editor, newest first.

Parameters:
  - context: context.Context
  - editorID: string

Returns:
  - []Assignment
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) ListByEditor(context context.Context, editorID string) ([]Assignment, error) {
	const query = `
		SELECT ` + assignmentColumns + `
		FROM core.assignment
		WHERE editorid = $1
		ORDER BY createdat DESC`

	return repository.list(context, query, editorID)
}

// list executes a single-argument assignment query and hydrates the rows.
func (repository *PostgresRepository) list(context context.Context, query, arg string) ([]Assignment, error) {
	rows, err := repository.pool.Query(context, query, arg)
	if err != nil {
		return nil, dberr.Wrap(err, "assignment_list")
	}
	defer rows.Close()

	assignments := []Assignment{}
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "assignment_scan")
		}
		assignments = append(assignments, *assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "assignment_rows")
	}

	return assignments, nil
}

/*
ListDueSoon retrieves incomplete assignments due within the window that have
not been warned about in the last 24 hours.

Description: The NOT EXISTS clause keys the once-per-day guarantee off the
durable notification rows themselves, so restarts don't re-warn.

Parameters:
  - context: context.Context
  - window: time.Duration

Returns:
  - []DeadlineCandidate: Joined with manuscript titles for rendering
  - error: Wrapped storage failures
*/
func (repository *PostgresRepository) ListDueSoon(context context.Context, window time.Duration) ([]DeadlineCandidate, error) {
	const query = `
		SELECT a.id, a.manuscriptid, a.editorid, a.assignedby, a.status, a.priority,
		       a.assignmenttype, a.progress, a.deadline, a.estimatedhours, a.hourlyrate,
		       a.totalcost, a.createdat, a.updatedat, m.title
		FROM core.assignment a
		JOIN core.manuscript m ON m.id = a.manuscriptid
		WHERE a.status != $1
		  AND a.deadline IS NOT NULL
		  AND a.deadline <= NOW() + $2
		  AND NOT EXISTS (
			SELECT 1 FROM system.notification n
			WHERE n.assignmentid = a.id
			  AND n.category = $3
			  AND n.createdat > NOW() - INTERVAL '1 day'
		  )
		ORDER BY a.deadline ASC`

	rows, err := repository.pool.Query(context, query, StatusCompleted, window, "deadline_approaching")
	if err != nil {
		return nil, dberr.Wrap(err, "assignment_list_due_soon")
	}
	defer rows.Close()

	candidates := []DeadlineCandidate{}
	for rows.Next() {
		var candidate DeadlineCandidate
		err := rows.Scan(
			&candidate.ID,
			&candidate.ManuscriptID,
			&candidate.EditorID,
			&candidate.AssignedBy,
			&candidate.Status,
			&candidate.Priority,
			&candidate.AssignmentType,
			&candidate.Progress,
			&candidate.Deadline,
			&candidate.EstimatedHours,
			&candidate.HourlyRate,
			&candidate.TotalCost,
			&candidate.CreatedAt,
			&candidate.UpdatedAt,
			&candidate.ManuscriptTitle,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "assignment_due_soon_scan")
		}
		candidates = append(candidates, candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "assignment_due_soon_rows")
	}

	return candidates, nil
}

// # Availability Repository

// PostgresAvailabilityRepository implements AvailabilityRepository using pgx.
type PostgresAvailabilityRepository struct {
	pool *pgxpool.Pool
}

// NewAvailabilityRepository creates the PostgreSQL implementation of AvailabilityRepository.
func NewAvailabilityRepository(pool *pgxpool.Pool) *PostgresAvailabilityRepository {
	return &PostgresAvailabilityRepository{pool: pool}
}

/*
Find retrieves an editor's capacity record.

Parameters:
  - context: context.Context
  - editorID: string

Returns:
  - *EditorAvailability
  - error: apperr.NotFound or wrapped storage failures
*/
func (repository *PostgresAvailabilityRepository) Find(context context.Context, editorID string) (*EditorAvailability, error) {
	const query = `
		SELECT editorid, availabilitystatus, maxconcurrentprojects, currentworkload, updatedat
		FROM core.editoravailability
		WHERE editorid = $1`

	availability := &EditorAvailability{}
	err := repository.pool.QueryRow(context, query, editorID).Scan(
		&availability.EditorID,
		&availability.AvailabilityStatus,
		&availability.MaxConcurrentProjects,
		&availability.CurrentWorkload,
		&availability.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Editor availability")
		}
		return nil, dberr.Wrap(err, "availability_find")
	}

	return availability, nil
}

/*
Upsert creates or updates an editor's declared capacity.

Description: The ON CONFLICT arm deliberately omits currentworkload; only the
atomic increment/decrement paths may touch the counter.

Parameters:
  - context: context.Context
  - availability: *EditorAvailability

Returns:
  - error: Wrapped storage failures
*/
func (repository *PostgresAvailabilityRepository) Upsert(context context.Context, availability *EditorAvailability) error {
	const query = `
		INSERT INTO core.editoravailability (
			editorid, availabilitystatus, maxconcurrentprojects, currentworkload, updatedat
		) VALUES ($1, $2, $3, 0, $4)
		ON CONFLICT (editorid) DO UPDATE
		SET availabilitystatus = EXCLUDED.availabilitystatus,
		    maxconcurrentprojects = EXCLUDED.maxconcurrentprojects,
		    updatedat = EXCLUDED.updatedat`

	availability.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		availability.EditorID,
		availability.AvailabilityStatus,
		availability.MaxConcurrentProjects,
		availability.UpdatedAt,
	)

	return dberr.Wrap(err, "availability_upsert")
}

/*
IncrementWorkload atomically adds 1 to the editor's workload counter.

Parameters:
  - context: context.Context
  - editorID: string

Returns:
  - error: apperr.NotFound if the editor has no profile, wrapped storage failures
*/
func (repository *PostgresAvailabilityRepository) IncrementWorkload(context context.Context, editorID string) error {
	const query = `
		UPDATE core.editoravailability
		SET currentworkload = currentworkload + 1, updatedat = NOW()
		WHERE editorid = $1`

	tag, err := repository.pool.Exec(context, query, editorID)
	if err != nil {
		return dberr.Wrap(err, "availability_increment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Editor availability")
	}

	return nil
}

/*
DecrementWorkload atomically subtracts 1 from the editor's workload counter,
floored at zero.

Parameters:
  - context: context.Context
  - editorID: string

Returns:
  - error: Wrapped storage failures
*/
func (repository *PostgresAvailabilityRepository) DecrementWorkload(context context.Context, editorID string) error {
	const query = `
		UPDATE core.editoravailability
		SET currentworkload = GREATEST(currentworkload - 1, 0), updatedat = NOW()
		WHERE editorid = $1`

	_, err := repository.pool.Exec(context, query, editorID)
	return dberr.Wrap(err, "availability_decrement")
}
