package schema

// SystemNotificationTable represents the 'system.notification' table
type SystemNotificationTable struct {
	Table        string
	ID           string
	RecipientID  string
	Title        string
	Message      string
	Type         string
	Category     string
	ManuscriptID string
	AssignmentID string
	IsRead       string
	Metadata     string
	CreatedAt    string
}

var SystemNotification = SystemNotificationTable{
	Table:        "system.notification",
	ID:           "id",
	RecipientID:  "recipientid",
	Title:        "title",
	Message:      "message",
	Type:         "type",
	Category:     "category",
	ManuscriptID: "manuscriptid",
	AssignmentID: "assignmentid",
	IsRead:       "isread",
	Metadata:     "metadata",
	CreatedAt:    "createdat",
}

// Columns returns all standard column names
func (t SystemNotificationTable) Columns() []string {
	return []string{
		t.ID, t.RecipientID, t.Title, t.Message, t.Type, t.Category,
		t.ManuscriptID, t.AssignmentID, t.IsRead, t.Metadata, t.CreatedAt,
	}
}
