package schema

// CoreAssignmentTable represents the 'core.assignment' table
type CoreAssignmentTable struct {
	Table          string
	ID             string
	ManuscriptID   string
	EditorID       string
	AssignedBy     string
	Status         string
	Priority       string
	AssignmentType string
	Progress       string
	Deadline       string
	EstimatedHours string
	HourlyRate     string
	TotalCost      string
	CreatedAt      string
	UpdatedAt      string
}

// CoreAssignment is the schema definition for core.assignment
var CoreAssignment = CoreAssignmentTable{
	Table:          "core.assignment",
	ID:             "id",
	ManuscriptID:   "manuscriptid",
	EditorID:       "editorid",
	AssignedBy:     "assignedby",
	Status:         "status",
	Priority:       "priority",
	AssignmentType: "assignmenttype",
	Progress:       "progress",
	Deadline:       "deadline",
	EstimatedHours: "estimatedhours",
	HourlyRate:     "hourlyrate",
	TotalCost:      "totalcost",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t CoreAssignmentTable) Columns() []string {
	return []string{
		t.ID, t.ManuscriptID, t.EditorID, t.AssignedBy, t.Status, t.Priority,
		t.AssignmentType, t.Progress, t.Deadline, t.EstimatedHours,
		t.HourlyRate, t.TotalCost, t.CreatedAt, t.UpdatedAt,
	}
}
