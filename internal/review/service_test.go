// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/assignment"
	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/workflow"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// # Fakes

type fakeRepository struct {
	byID     map[string]*Review
	created  []*Review
	resolved map[string]Status
	list     []Review
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*Review{}, resolved: map[string]Status{}}
}

func (repo *fakeRepository) Create(_ context.Context, review *Review) error {
	if review.ID == "" {
		review.ID = "rev-1"
	}
	repo.byID[review.ID] = review
	repo.created = append(repo.created, review)
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*Review, error) {
	if review, ok := repo.byID[id]; ok {
		copied := *review
		return &copied, nil
	}
	return nil, apperr.NotFound("Review")
}

func (repo *fakeRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	repo.resolved[id] = status
	return nil
}

func (repo *fakeRepository) ListByManuscript(_ context.Context, _ string) ([]Review, error) {
	return repo.list, nil
}

type fakeAssignmentSource struct {
	assignments []assignment.Assignment
}

func (source *fakeAssignmentSource) ListByEditor(_ context.Context, _ string) ([]assignment.Assignment, error) {
	return source.assignments, nil
}

type fakeAvailabilitySource struct {
	availability *assignment.EditorAvailability
}

func (source *fakeAvailabilitySource) Find(_ context.Context, _ string) (*assignment.EditorAvailability, error) {
	if source.availability == nil {
		return nil, apperr.NotFound("Editor availability")
	}
	return source.availability, nil
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

type fakeNotifier struct {
	recipients []string
	kinds      []notification.Kind
}

func (notifier *fakeNotifier) Notify(_ context.Context, recipientID string, kind notification.Kind, _ notification.Context) (*notification.Notification, error) {
	notifier.recipients = append(notifier.recipients, recipientID)
	notifier.kinds = append(notifier.kinds, kind)
	return &notification.Notification{RecipientID: recipientID}, nil
}

// # Helpers

type serviceFixture struct {
	service  *Service
	reviews  *fakeRepository
	auditLog *fakeAuditLog
	notifier *fakeNotifier
}

func newFixture(ref *workflow.ManuscriptRef, assignments []assignment.Assignment, availability *assignment.EditorAvailability) *serviceFixture {
	fixture := &serviceFixture{
		reviews:  newFakeRepository(),
		auditLog: &fakeAuditLog{},
		notifier: &fakeNotifier{},
	}
	fixture.service = NewService(
		fixture.reviews,
		&fakeAssignmentSource{assignments: assignments},
		&fakeAvailabilitySource{availability: availability},
		&fakeManuscriptSource{ref: ref},
		fixture.auditLog,
		fixture.notifier,
	)
	return fixture
}

var (
	editorActor = workflow.Actor{ID: "editor-1", Username: "mira", Role: sec.RoleEditor}
	writerActor = workflow.Actor{ID: "author-1", Username: "jo", Role: sec.RoleWriter}
)

// # Tests

func TestCreate_AppendsNonStatusHistoryAndNotifiesAuthor(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1"}, nil, nil)

	review, err := fixture.service.Create(context.Background(), editorActor, CreateInput{
		ManuscriptID: "ms-1",
		Rating:       pointer.To(4),
		Content:      "Strong opening, slow middle.",
		ReviewType:   TypeGeneral,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, review.Status)
	assert.Equal(t, "editor-1", review.ReviewerID)

	// The audit entry carries no status pair.
	require.Len(t, fixture.auditLog.entries, 1)
	entry := fixture.auditLog.entries[0]
	assert.Equal(t, history.ActionReviewSubmitted, entry.Action)
	assert.Nil(t, entry.OldStatus)
	assert.Nil(t, entry.NewStatus)

	require.Len(t, fixture.notifier.recipients, 1)
	assert.Equal(t, "author-1", fixture.notifier.recipients[0])
	assert.Equal(t, notification.KindReviewReceived, fixture.notifier.kinds[0])
}

func TestCreate_RequiresEditor(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", AuthorID: "author-1"}, nil, nil)

	_, err := fixture.service.Create(context.Background(), writerActor, CreateInput{
		ManuscriptID: "ms-1", Content: "nice", ReviewType: TypeGeneral,
	})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.Empty(t, fixture.reviews.created)
}

func TestResolve_AuthorAndPublisherOnly(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", AuthorID: "author-1"}, nil, nil)
	fixture.reviews.byID["rev-1"] = &Review{ID: "rev-1", ManuscriptID: "ms-1", Status: StatusPending}

	// The reviewer's fellow editor has no say.
	_, err := fixture.service.Resolve(context.Background(), editorActor, "rev-1", StatusApproved)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// The author resolves their own feedback.
	review, err := fixture.service.Resolve(context.Background(), writerActor, "rev-1", StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, review.Status)
	assert.Equal(t, StatusApproved, fixture.reviews.resolved["rev-1"])
}

func TestResolve_RejectsNonTerminalStatus(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", AuthorID: "author-1"}, nil, nil)
	fixture.reviews.byID["rev-1"] = &Review{ID: "rev-1", ManuscriptID: "ms-1", Status: StatusPending}

	_, err := fixture.service.Resolve(context.Background(), writerActor, "rev-1", StatusPending)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

func TestMetricsForManuscript_RecomputedFromRows(t *testing.T) {
	fixture := newFixture(&workflow.ManuscriptRef{ID: "ms-1", AuthorID: "author-1"}, nil, nil)
	fixture.reviews.list = []Review{
		{Rating: pointer.To(5), Status: StatusApproved},
		{Rating: pointer.To(3), Status: StatusPending},
		{Rating: nil, Status: StatusPending},
	}

	metrics, err := fixture.service.MetricsForManuscript(context.Background(), "ms-1")

	require.NoError(t, err)
	assert.Equal(t, 3, metrics.ReviewCount)
	assert.InDelta(t, 4.0, metrics.AverageRating, 0.0001)
	assert.Equal(t, 2, metrics.PendingCount)
}

func TestMetricsForEditor(t *testing.T) {
	assignments := []assignment.Assignment{
		{Status: assignment.StatusCompleted},
		{Status: assignment.StatusInProgress},
	}
	availability := &assignment.EditorAvailability{EditorID: "editor-1", CurrentWorkload: 1}
	fixture := newFixture(nil, assignments, availability)

	metrics, err := fixture.service.MetricsForEditor(context.Background(), "editor-1")

	require.NoError(t, err)
	assert.Equal(t, 2, metrics.AssignmentCount)
	assert.InDelta(t, 50.0, metrics.CompletionRate, 0.0001)
	assert.Equal(t, 1, metrics.CurrentWorkload)
}

func TestMetricsForEditor_NoProfileMeansZeroWorkload(t *testing.T) {
	fixture := newFixture(nil, nil, nil)

	metrics, err := fixture.service.MetricsForEditor(context.Background(), "editor-1")

	require.NoError(t, err)
	assert.Zero(t, metrics.AssignmentCount)
	assert.Zero(t, metrics.CompletionRate)
	assert.Zero(t, metrics.CurrentWorkload)
}
