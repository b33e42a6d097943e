package schema

// SystemWorkflowHistoryTable represents the 'system.workflowhistory' table
type SystemWorkflowHistoryTable struct {
	Table        string
	ID           string
	ManuscriptID string
	ActorID      string
	ActorRole    string
	Action       string
	OldStatus    string
	NewStatus    string
	Notes        string
	Metadata     string
	CreatedAt    string
}

var SystemWorkflowHistory = SystemWorkflowHistoryTable{
	Table:        "system.workflowhistory",
	ID:           "id",
	ManuscriptID: "manuscriptid",
	ActorID:      "actorid",
	ActorRole:    "actorrole",
	Action:       "action",
	OldStatus:    "oldstatus",
	NewStatus:    "newstatus",
	Notes:        "notes",
	Metadata:     "metadata",
	CreatedAt:    "createdat",
}

// Columns returns all standard column names
func (t SystemWorkflowHistoryTable) Columns() []string {
	return []string{
		t.ID, t.ManuscriptID, t.ActorID, t.ActorRole, t.Action, t.OldStatus,
		t.NewStatus, t.Notes, t.Metadata, t.CreatedAt,
	}
}
