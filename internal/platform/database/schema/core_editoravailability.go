package schema

// CoreEditorAvailabilityTable represents the 'core.editoravailability' table
type CoreEditorAvailabilityTable struct {
	Table                 string
	EditorID              string
	AvailabilityStatus    string
	MaxConcurrentProjects string
	CurrentWorkload       string
	UpdatedAt             string
}

// CoreEditorAvailability is the schema definition for core.editoravailability
var CoreEditorAvailability = CoreEditorAvailabilityTable{
	Table:                 "core.editoravailability",
	EditorID:              "editorid",
	AvailabilityStatus:    "availabilitystatus",
	MaxConcurrentProjects: "maxconcurrentprojects",
	CurrentWorkload:       "currentworkload",
	UpdatedAt:             "updatedat",
}

// Columns returns all standard column names
func (t CoreEditorAvailabilityTable) Columns() []string {
	return []string{
		t.EditorID, t.AvailabilityStatus, t.MaxConcurrentProjects,
		t.CurrentWorkload, t.UpdatedAt,
	}
}
