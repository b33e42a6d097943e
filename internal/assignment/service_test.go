// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/workflow"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// # Fakes

type fakeRepository struct {
	byID       map[string]*Assignment
	created    []*Assignment
	deleted    []string
	updated    []*Assignment
	candidates []DeadlineCandidate
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*Assignment{}}
}

func (repo *fakeRepository) Create(_ context.Context, assignment *Assignment) error {
	if assignment.ID == "" {
		assignment.ID = "as-1"
	}
	repo.byID[assignment.ID] = assignment
	repo.created = append(repo.created, assignment)
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*Assignment, error) {
	if assignment, ok := repo.byID[id]; ok {
		copied := *assignment
		return &copied, nil
	}
	return nil, apperr.NotFound("Assignment")
}

func (repo *fakeRepository) Update(_ context.Context, assignment *Assignment) error {
	repo.byID[assignment.ID] = assignment
	repo.updated = append(repo.updated, assignment)
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.byID[id]; !ok {
		return apperr.NotFound("Assignment")
	}
	delete(repo.byID, id)
	repo.deleted = append(repo.deleted, id)
	return nil
}

func (repo *fakeRepository) ListByManuscript(_ context.Context, _ string) ([]Assignment, error) {
	return nil, nil
}

func (repo *fakeRepository) ListByEditor(_ context.Context, _ string) ([]Assignment, error) {
	return nil, nil
}

func (repo *fakeRepository) ListDueSoon(_ context.Context, _ time.Duration) ([]DeadlineCandidate, error) {
	return repo.candidates, nil
}

type fakeAvailabilityRepository struct {
	profiles   map[string]*EditorAvailability
	increments []string
	decrements []string
}

func newFakeAvailabilityRepository() *fakeAvailabilityRepository {
	return &fakeAvailabilityRepository{profiles: map[string]*EditorAvailability{}}
}

func (repo *fakeAvailabilityRepository) Find(_ context.Context, editorID string) (*EditorAvailability, error) {
	if profile, ok := repo.profiles[editorID]; ok {
		copied := *profile
		return &copied, nil
	}
	return nil, apperr.NotFound("Editor availability")
}

func (repo *fakeAvailabilityRepository) Upsert(_ context.Context, availability *EditorAvailability) error {
	existing, ok := repo.profiles[availability.EditorID]
	if ok {
		existing.AvailabilityStatus = availability.AvailabilityStatus
		existing.MaxConcurrentProjects = availability.MaxConcurrentProjects
		return nil
	}
	repo.profiles[availability.EditorID] = availability
	return nil
}

func (repo *fakeAvailabilityRepository) IncrementWorkload(_ context.Context, editorID string) error {
	profile, ok := repo.profiles[editorID]
	if !ok {
		return apperr.NotFound("Editor availability")
	}
	profile.CurrentWorkload++
	repo.increments = append(repo.increments, editorID)
	return nil
}

func (repo *fakeAvailabilityRepository) DecrementWorkload(_ context.Context, editorID string) error {
	if profile, ok := repo.profiles[editorID]; ok && profile.CurrentWorkload > 0 {
		profile.CurrentWorkload--
	}
	repo.decrements = append(repo.decrements, editorID)
	return nil
}

type fakeManuscriptSource struct {
	ref *workflow.ManuscriptRef
}

func (source *fakeManuscriptSource) FindRef(_ context.Context, _ string) (*workflow.ManuscriptRef, error) {
	if source.ref == nil {
		return nil, apperr.NotFound("Manuscript")
	}
	copied := *source.ref
	return &copied, nil
}

type fakeAuditLog struct {
	entries []*history.Entry
}

func (log *fakeAuditLog) Append(_ context.Context, entry *history.Entry) error {
	log.entries = append(log.entries, entry)
	return nil
}

type sentNotification struct {
	recipientID string
	kind        notification.Kind
}

type fakeNotifier struct {
	sent []sentNotification
}

func (notifier *fakeNotifier) Notify(_ context.Context, recipientID string, kind notification.Kind, _ notification.Context) (*notification.Notification, error) {
	notifier.sent = append(notifier.sent, sentNotification{recipientID: recipientID, kind: kind})
	return &notification.Notification{RecipientID: recipientID}, nil
}

// # Helpers

type engineFixture struct {
	engine       *Engine
	assignments  *fakeRepository
	availability *fakeAvailabilityRepository
	auditLog     *fakeAuditLog
	notifier     *fakeNotifier
}

func newFixture(ref *workflow.ManuscriptRef) *engineFixture {
	fixture := &engineFixture{
		assignments:  newFakeRepository(),
		availability: newFakeAvailabilityRepository(),
		auditLog:     &fakeAuditLog{},
		notifier:     &fakeNotifier{},
	}
	fixture.engine = NewEngine(
		fixture.assignments,
		fixture.availability,
		&fakeManuscriptSource{ref: ref},
		fixture.auditLog,
		fixture.notifier,
	)
	return fixture
}

var (
	publisherActor = workflow.Actor{ID: "pub-1", Username: "otto", Role: sec.RolePublisher}
	editorActor    = workflow.Actor{ID: "editor-1", Username: "mira", Role: sec.RoleEditor}
)

func availableEditor(maxProjects, workload int) *EditorAvailability {
	return &EditorAvailability{
		EditorID:              "editor-1",
		AvailabilityStatus:    AvailabilityAvailable,
		MaxConcurrentProjects: maxProjects,
		CurrentWorkload:       workload,
	}
}

// # Pure Derivation Tests

func TestStatusForProgress(t *testing.T) {
	assert.Equal(t, StatusAssigned, StatusForProgress(0))
	assert.Equal(t, StatusInProgress, StatusForProgress(1))
	assert.Equal(t, StatusInProgress, StatusForProgress(50))
	assert.Equal(t, StatusInProgress, StatusForProgress(99))
	assert.Equal(t, StatusCompleted, StatusForProgress(100))
}

func TestTotalCost(t *testing.T) {
	assert.Nil(t, TotalCost(nil, nil))
	assert.Nil(t, TotalCost(pointer.To(10.0), nil))
	assert.Nil(t, TotalCost(nil, pointer.To(45.0)))

	cost := TotalCost(pointer.To(10.0), pointer.To(45.0))
	require.NotNil(t, cost)
	assert.InDelta(t, 450.0, *cost, 0.0001)
}

// # Assign Tests

func TestAssign_HappyPath(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1"})
	fixture.availability.profiles["editor-1"] = availableEditor(3, 1)

	assignment, err := fixture.engine.Assign(context.Background(), publisherActor, AssignInput{
		ManuscriptID:   "ms-1",
		EditorID:       "editor-1",
		Priority:       PriorityHigh,
		AssignmentType: "developmental",
		EstimatedHours: pointer.To(20.0),
		HourlyRate:     pointer.To(45.0),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, assignment.Status)
	assert.Equal(t, 0, assignment.Progress)
	require.NotNil(t, assignment.TotalCost)
	assert.InDelta(t, 900.0, *assignment.TotalCost, 0.0001)

	// Workload bumped by exactly one.
	assert.Equal(t, 2, fixture.availability.profiles["editor-1"].CurrentWorkload)
	assert.Equal(t, []string{"editor-1"}, fixture.availability.increments)

	// One audit entry with no status pair, one notification to the editor.
	require.Len(t, fixture.auditLog.entries, 1)
	assert.Equal(t, history.ActionAssignmentCreated, fixture.auditLog.entries[0].Action)
	assert.Nil(t, fixture.auditLog.entries[0].OldStatus)

	require.Len(t, fixture.notifier.sent, 1)
	assert.Equal(t, "editor-1", fixture.notifier.sent[0].recipientID)
	assert.Equal(t, notification.KindAssignmentCreated, fixture.notifier.sent[0].kind)
}

func TestAssign_EditorAtCapacity(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1"})
	fixture.availability.profiles["editor-1"] = availableEditor(1, 1)

	_, err := fixture.engine.Assign(context.Background(), publisherActor, AssignInput{
		ManuscriptID: "ms-1", EditorID: "editor-1", Priority: PriorityLow, AssignmentType: "copyedit",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeEditorUnavailable))
	assert.Empty(t, fixture.assignments.created)
	assert.Empty(t, fixture.availability.increments)
}

func TestAssign_EditorNotAccepting(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1"})
	profile := availableEditor(3, 0)
	profile.AvailabilityStatus = AvailabilityUnavailable
	fixture.availability.profiles["editor-1"] = profile

	_, err := fixture.engine.Assign(context.Background(), publisherActor, AssignInput{
		ManuscriptID: "ms-1", EditorID: "editor-1", Priority: PriorityLow, AssignmentType: "copyedit",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeEditorUnavailable))
}

func TestAssign_NoAvailabilityProfile(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1"})

	_, err := fixture.engine.Assign(context.Background(), publisherActor, AssignInput{
		ManuscriptID: "ms-1", EditorID: "editor-1", Priority: PriorityLow, AssignmentType: "copyedit",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeEditorUnavailable))
}

func TestAssign_RequiresPublisher(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1"})
	fixture.availability.profiles["editor-1"] = availableEditor(3, 0)

	_, err := fixture.engine.Assign(context.Background(), editorActor, AssignInput{
		ManuscriptID: "ms-1", EditorID: "editor-1", Priority: PriorityLow, AssignmentType: "copyedit",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
}

// # Remove Tests

func TestRemove_DeletesAndDecrements(t *testing.T) {
	fixture := newFixture(nil)
	fixture.availability.profiles["editor-1"] = availableEditor(3, 2)
	fixture.assignments.byID["as-1"] = &Assignment{ID: "as-1", ManuscriptID: "ms-1", EditorID: "editor-1"}

	err := fixture.engine.Remove(context.Background(), publisherActor, "as-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"as-1"}, fixture.assignments.deleted)
	assert.Equal(t, 1, fixture.availability.profiles["editor-1"].CurrentWorkload)
	require.Len(t, fixture.auditLog.entries, 1)
	assert.Equal(t, history.ActionAssignmentRemoved, fixture.auditLog.entries[0].Action)
}

func TestRemove_MissingAssignmentIsNotFound(t *testing.T) {
	fixture := newFixture(nil)

	err := fixture.engine.Remove(context.Background(), publisherActor, "as-404")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.Empty(t, fixture.availability.decrements)
}

func TestRemove_WorkloadNeverGoesNegative(t *testing.T) {
	fixture := newFixture(nil)
	fixture.availability.profiles["editor-1"] = availableEditor(3, 0)
	fixture.assignments.byID["as-1"] = &Assignment{ID: "as-1", ManuscriptID: "ms-1", EditorID: "editor-1"}

	err := fixture.engine.Remove(context.Background(), publisherActor, "as-1")

	require.NoError(t, err)
	assert.Equal(t, 0, fixture.availability.profiles["editor-1"].CurrentWorkload)
}

// # Progress Tests

func TestUpdateProgress_DerivesStatus(t *testing.T) {
	testCases := []struct {
		progress int
		expected Status
	}{
		{0, StatusAssigned},
		{50, StatusInProgress},
		{100, StatusCompleted},
	}

	for _, testCase := range testCases {
		fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1"})
		fixture.assignments.byID["as-1"] = &Assignment{
			ID: "as-1", ManuscriptID: "ms-1", EditorID: "editor-1", Status: StatusInProgress, Progress: 10,
		}

		assignment, err := fixture.engine.UpdateProgress(context.Background(), editorActor, "as-1", testCase.progress)

		require.NoError(t, err)
		assert.Equal(t, testCase.expected, assignment.Status, "progress %d", testCase.progress)
		assert.Equal(t, testCase.progress, assignment.Progress)
	}
}

func TestUpdateProgress_NotifiesOnlyOnStatusChange(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1"})
	fixture.assignments.byID["as-1"] = &Assignment{
		ID: "as-1", ManuscriptID: "ms-1", EditorID: "editor-1", Status: StatusInProgress, Progress: 50,
	}

	// 50 -> 60 stays in_progress: history yes, notification no.
	_, err := fixture.engine.UpdateProgress(context.Background(), editorActor, "as-1", 60)
	require.NoError(t, err)
	assert.Len(t, fixture.auditLog.entries, 1)
	assert.Empty(t, fixture.notifier.sent)

	// 60 -> 100 flips to completed: the author hears about it.
	_, err = fixture.engine.UpdateProgress(context.Background(), editorActor, "as-1", 100)
	require.NoError(t, err)
	require.Len(t, fixture.notifier.sent, 1)
	assert.Equal(t, "author-1", fixture.notifier.sent[0].recipientID)
	assert.Equal(t, notification.KindAssignmentUpdated, fixture.notifier.sent[0].kind)
}

func TestUpdateProgress_RejectsOutOfRange(t *testing.T) {
	fixture := newFixture(nil)
	fixture.assignments.byID["as-1"] = &Assignment{ID: "as-1", EditorID: "editor-1"}

	for _, progress := range []int{-1, 101} {
		_, err := fixture.engine.UpdateProgress(context.Background(), editorActor, "as-1", progress)
		require.Error(t, err, "progress %d", progress)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	}
}

func TestUpdateProgress_OnlyAssignedEditor(t *testing.T) {
	fixture := newFixture(nil)
	fixture.assignments.byID["as-1"] = &Assignment{ID: "as-1", EditorID: "someone-else"}

	_, err := fixture.engine.UpdateProgress(context.Background(), editorActor, "as-1", 40)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
}

// # Availability Tests

func TestSetAvailability_SelfOnly(t *testing.T) {
	fixture := newFixture(nil)

	_, err := fixture.engine.SetAvailability(context.Background(), editorActor, "someone-else", AvailabilityInput{
		AvailabilityStatus: AvailabilityAvailable, MaxConcurrentProjects: 3,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	availability, err := fixture.engine.SetAvailability(context.Background(), editorActor, editorActor.ID, AvailabilityInput{
		AvailabilityStatus: AvailabilityBusy, MaxConcurrentProjects: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, AvailabilityBusy, availability.AvailabilityStatus)
	assert.Equal(t, 5, availability.MaxConcurrentProjects)
	assert.Equal(t, 0, availability.CurrentWorkload)
}

func TestSetAvailability_PreservesWorkloadCounter(t *testing.T) {
	fixture := newFixture(nil)
	fixture.availability.profiles["editor-1"] = availableEditor(3, 2)

	availability, err := fixture.engine.SetAvailability(context.Background(), editorActor, "editor-1", AvailabilityInput{
		AvailabilityStatus: AvailabilityAvailable, MaxConcurrentProjects: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 10, availability.MaxConcurrentProjects)
	assert.Equal(t, 2, availability.CurrentWorkload, "declaring capacity must not reset the live counter")
}

// # Deadline Sweep Tests

func TestNotifyApproachingDeadlines(t *testing.T) {
	fixture := newFixture(nil)
	deadline := time.Now().Add(24 * time.Hour)
	fixture.assignments.candidates = []DeadlineCandidate{
		{
			Assignment:      Assignment{ID: "as-1", ManuscriptID: "ms-1", EditorID: "editor-1", Deadline: &deadline},
			ManuscriptTitle: "The Lighthouse",
		},
		{
			Assignment:      Assignment{ID: "as-2", ManuscriptID: "ms-2", EditorID: "editor-2", Deadline: &deadline},
			ManuscriptTitle: "Northern Light",
		},
	}

	dispatched, err := fixture.engine.NotifyApproachingDeadlines(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, dispatched)
	require.Len(t, fixture.notifier.sent, 2)
	assert.Equal(t, notification.KindDeadlineApproaching, fixture.notifier.sent[0].kind)
	assert.Equal(t, "editor-1", fixture.notifier.sent[0].recipientID)
}
