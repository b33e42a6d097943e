// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package manuscript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/assignment"
	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/workflow"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// # Fakes

type fakeRepository struct {
	byID    map[string]*Manuscript
	created []*Manuscript
	updated []*Manuscript
	deleted []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*Manuscript{}}
}

func (repo *fakeRepository) Create(_ context.Context, manuscript *Manuscript) error {
	if manuscript.ID == "" {
		manuscript.ID = "ms-1"
	}
	repo.byID[manuscript.ID] = manuscript
	repo.created = append(repo.created, manuscript)
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*Manuscript, error) {
	if manuscript, ok := repo.byID[id]; ok {
		copied := *manuscript
		return &copied, nil
	}
	return nil, apperr.NotFound("Manuscript")
}

func (repo *fakeRepository) UpdateMetadata(_ context.Context, manuscript *Manuscript) error {
	repo.byID[manuscript.ID] = manuscript
	repo.updated = append(repo.updated, manuscript)
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.byID[id]; !ok {
		return apperr.NotFound("Manuscript")
	}
	delete(repo.byID, id)
	repo.deleted = append(repo.deleted, id)
	return nil
}

func (repo *fakeRepository) List(_ context.Context, _ Filter, _ pagination.Params) ([]Manuscript, int, error) {
	manuscripts := []Manuscript{}
	for _, manuscript := range repo.byID {
		manuscripts = append(manuscripts, *manuscript)
	}
	return manuscripts, len(manuscripts), nil
}

type fakeAssignmentSource struct {
	assignments []assignment.Assignment
}

func (source *fakeAssignmentSource) ListByManuscript(_ context.Context, _ string) ([]assignment.Assignment, error) {
	return source.assignments, nil
}

type fakeWorkloadReleaser struct {
	decremented []string
}

func (releaser *fakeWorkloadReleaser) DecrementWorkload(_ context.Context, editorID string) error {
	releaser.decremented = append(releaser.decremented, editorID)
	return nil
}

type fakeAuditLog struct {
	entries []*history.Entry
}

func (log *fakeAuditLog) Append(_ context.Context, entry *history.Entry) error {
	log.entries = append(log.entries, entry)
	return nil
}

// # Helpers

type serviceFixture struct {
	service     *Service
	manuscripts *fakeRepository
	workloads   *fakeWorkloadReleaser
	auditLog    *fakeAuditLog
}

func newFixture(assignments []assignment.Assignment) *serviceFixture {
	fixture := &serviceFixture{
		manuscripts: newFakeRepository(),
		workloads:   &fakeWorkloadReleaser{},
		auditLog:    &fakeAuditLog{},
	}
	fixture.service = NewService(
		fixture.manuscripts,
		&fakeAssignmentSource{assignments: assignments},
		fixture.workloads,
		fixture.auditLog,
	)
	return fixture
}

var (
	writerActor   = workflow.Actor{ID: "author-1", Username: "jo", Role: sec.RoleWriter}
	strangerActor = workflow.Actor{ID: "author-2", Username: "sam", Role: sec.RoleWriter}
	adminActor    = workflow.Actor{ID: "admin-1", Username: "root", Role: sec.RoleAdmin}
)

// # Tests

func TestCreate_StartsSubmittedWithAuditTrail(t *testing.T) {
	fixture := newFixture(nil)

	manuscript, err := fixture.service.Create(context.Background(), writerActor, CreateInput{
		Title:     "The Lighthouse Keeper",
		Synopsis:  "A keeper and a storm.",
		WordCount: 82000,
	})

	require.NoError(t, err)
	assert.Equal(t, workflow.StatusSubmitted, manuscript.Status)
	assert.Equal(t, "author-1", manuscript.AuthorID)
	assert.Equal(t, "the-lighthouse-keeper", manuscript.Slug)

	// Creation is the submission: one audit entry, new status only.
	require.Len(t, fixture.auditLog.entries, 1)
	entry := fixture.auditLog.entries[0]
	assert.Equal(t, history.ActionManuscriptSubmitted, entry.Action)
	assert.Nil(t, entry.OldStatus)
	require.NotNil(t, entry.NewStatus)
	assert.Equal(t, string(workflow.StatusSubmitted), *entry.NewStatus)
}

func TestUpdate_OwnerEditsMetadataOnly(t *testing.T) {
	fixture := newFixture(nil)
	fixture.manuscripts.byID["ms-1"] = &Manuscript{
		ID: "ms-1", AuthorID: "author-1", Title: "Draft", Status: workflow.StatusUnderReview,
	}

	manuscript, err := fixture.service.Update(context.Background(), writerActor, "ms-1", UpdateInput{
		Title:     "Final Title",
		Synopsis:  "Revised.",
		WordCount: 90000,
	})

	require.NoError(t, err)
	assert.Equal(t, "Final Title", manuscript.Title)
	assert.Equal(t, "final-title", manuscript.Slug)
	// The status survives every metadata edit.
	assert.Equal(t, workflow.StatusUnderReview, manuscript.Status)
}

func TestUpdate_ForbiddenForNonOwner(t *testing.T) {
	fixture := newFixture(nil)
	fixture.manuscripts.byID["ms-1"] = &Manuscript{ID: "ms-1", AuthorID: "author-1"}

	_, err := fixture.service.Update(context.Background(), strangerActor, "ms-1", UpdateInput{Title: "Hijacked"})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.Empty(t, fixture.manuscripts.updated)
}

func TestDelete_ReleasesWorkloadsBeforeCascade(t *testing.T) {
	assignments := []assignment.Assignment{
		{ID: "as-1", ManuscriptID: "ms-1", EditorID: "editor-1"},
		{ID: "as-2", ManuscriptID: "ms-1", EditorID: "editor-2"},
	}
	fixture := newFixture(assignments)
	fixture.manuscripts.byID["ms-1"] = &Manuscript{ID: "ms-1", AuthorID: "author-1"}

	err := fixture.service.Delete(context.Background(), writerActor, "ms-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"editor-1", "editor-2"}, fixture.workloads.decremented)
	assert.Equal(t, []string{"ms-1"}, fixture.manuscripts.deleted)
}

func TestDelete_AdminMayDeleteAnyManuscript(t *testing.T) {
	fixture := newFixture(nil)
	fixture.manuscripts.byID["ms-1"] = &Manuscript{ID: "ms-1", AuthorID: "author-1"}

	err := fixture.service.Delete(context.Background(), adminActor, "ms-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"ms-1"}, fixture.manuscripts.deleted)
}

func TestDelete_ForbiddenForNonOwner(t *testing.T) {
	fixture := newFixture(nil)
	fixture.manuscripts.byID["ms-1"] = &Manuscript{ID: "ms-1", AuthorID: "author-1"}

	err := fixture.service.Delete(context.Background(), strangerActor, "ms-1")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.Empty(t, fixture.manuscripts.deleted)
	assert.Empty(t, fixture.workloads.decremented)
}

func TestDelete_NotFoundPassthrough(t *testing.T) {
	fixture := newFixture(nil)

	err := fixture.service.Delete(context.Background(), writerActor, "ghost")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
