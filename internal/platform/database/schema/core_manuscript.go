package schema

// CoreManuscriptTable represents the 'core.manuscript' table
type CoreManuscriptTable struct {
	Table     string
	ID        string
	AuthorID  string
	EditorID  string
	Title     string
	Slug      string
	Synopsis  string
	WordCount string
	Status    string
	Deadline  string
	CreatedAt string
	UpdatedAt string
}

// CoreManuscript is the schema definition for core.manuscript
var CoreManuscript = CoreManuscriptTable{
	Table:     "core.manuscript",
	ID:        "id",
	AuthorID:  "authorid",
	EditorID:  "editorid",
	Title:     "title",
	Slug:      "slug",
	Synopsis:  "synopsis",
	WordCount: "wordcount",
	Status:    "status",
	Deadline:  "deadline",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CoreManuscriptTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.EditorID, t.Title, t.Slug, t.Synopsis, t.WordCount,
		t.Status, t.Deadline, t.CreatedAt, t.UpdatedAt,
	}
}
