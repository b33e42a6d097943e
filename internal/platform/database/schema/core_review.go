package schema

// CoreReviewTable represents the 'core.review' table
type CoreReviewTable struct {
	Table        string
	ID           string
	ManuscriptID string
	ReviewerID   string
	AssignmentID string
	ChapterRef   string
	Rating       string
	Content      string
	ReviewType   string
	Status       string
	CreatedAt    string
	UpdatedAt    string
}

// CoreReview is the schema definition for core.review
var CoreReview = CoreReviewTable{
	Table:        "core.review",
	ID:           "id",
	ManuscriptID: "manuscriptid",
	ReviewerID:   "reviewerid",
	AssignmentID: "assignmentid",
	ChapterRef:   "chapterref",
	Rating:       "rating",
	Content:      "content",
	ReviewType:   "reviewtype",
	Status:       "status",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t CoreReviewTable) Columns() []string {
	return []string{
		t.ID, t.ManuscriptID, t.ReviewerID, t.AssignmentID, t.ChapterRef,
		t.Rating, t.Content, t.ReviewType, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
