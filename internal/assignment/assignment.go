// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

/*
Package assignment implements the editor assignment engine.

It pairs manuscripts with editors under capacity constraints, tracks editing
progress, and maintains each editor's workload counter.

# Concurrency

The capacity precondition (available AND below max workload) is a read
followed by a later write. Concurrent Assign calls for the same editor are
NOT serialized against each other: two calls can both pass the check before
either writes, briefly pushing the workload over the maximum. The workload
counter itself uses store-side atomic arithmetic, so it never corrupts — it
can only transiently overshoot. This is an accepted, documented trade;
do not "fix" it by adding engine-level locks.
*/
package assignment

import "time"

// # Statuses

// Status is an assignment's progress bucket. It is always derived from the
// progress percentage, never set independently.
type Status string

const (
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// # Priorities

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// # Availability

const (
	AvailabilityAvailable   = "available"
	AvailabilityBusy        = "busy"
	AvailabilityUnavailable = "unavailable"
)

// # Entities

// Assignment is one editor's engagement on one manuscript.
type Assignment struct {
	ID             string     `json:"id"`
	ManuscriptID   string     `json:"manuscript_id"`
	EditorID       string     `json:"editor_id"`
	AssignedBy     string     `json:"assigned_by"`
	Status         Status     `json:"status"`
	Priority       string     `json:"priority"`
	AssignmentType string     `json:"assignment_type"`
	Progress       int        `json:"progress"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	HourlyRate     *float64   `json:"hourly_rate,omitempty"`
	TotalCost      *float64   `json:"total_cost,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// EditorAvailability is an editor's capacity record.
//
// CurrentWorkload is maintained exclusively by this engine through atomic
// SQL arithmetic; the availability endpoints never write it directly.
type EditorAvailability struct {
	EditorID              string    `json:"editor_id"`
	AvailabilityStatus    string    `json:"availability_status"`
	MaxConcurrentProjects int       `json:"max_concurrent_projects"`
	CurrentWorkload       int       `json:"current_workload"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// # Pure Derivations

// StatusForProgress derives the assignment status from a progress percentage.
//
//	0      -> assigned
//	1..99  -> in_progress
//	100    -> completed
//
// Status and progress stay consistent by construction because this is the
// only way status is ever computed.
func StatusForProgress(progress int) Status {
	switch {
	case progress <= 0:
		return StatusAssigned
	case progress >= 100:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// TotalCost computes hours × rate when both are present, nil otherwise.
func TotalCost(estimatedHours, hourlyRate *float64) *float64 {
	if estimatedHours == nil || hourlyRate == nil {
		return nil
	}

	cost := *estimatedHours * *hourlyRate
	return &cost
}

// # Field Identifiers

const (
	FieldManuscriptID   = "manuscript_id"
	FieldEditorID       = "editor_id"
	FieldPriority       = "priority"
	FieldAssignmentType = "assignment_type"
	FieldProgress       = "progress"
	FieldDeadline       = "deadline"
	FieldEstimatedHours = "estimated_hours"
	FieldHourlyRate     = "hourly_rate"
	FieldAvailability   = "availability_status"
	FieldMaxProjects    = "max_concurrent_projects"
)
