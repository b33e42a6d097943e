// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// # Fakes

type fakeManuscriptStore struct {
	ref       *ManuscriptRef
	findErr   error
	updateErr error

	updatedTo     Status
	updateCalled  bool
	updatedAtSeen time.Time
}

func (store *fakeManuscriptStore) FindRef(_ context.Context, _ string) (*ManuscriptRef, error) {
	if store.findErr != nil {
		return nil, store.findErr
	}
	ref := *store.ref
	return &ref, nil
}

func (store *fakeManuscriptStore) UpdateStatus(_ context.Context, _ string, status Status, updatedAt time.Time) error {
	if store.updateErr != nil {
		return store.updateErr
	}
	store.updateCalled = true
	store.updatedTo = status
	store.updatedAtSeen = updatedAt
	return nil
}

type fakeAuditLog struct {
	appendErr error
	entries   []*history.Entry
}

func (log *fakeAuditLog) Append(_ context.Context, entry *history.Entry) error {
	if log.appendErr != nil {
		return log.appendErr
	}
	log.entries = append(log.entries, entry)
	return nil
}

type sentNotification struct {
	recipientID string
	kind        notification.Kind
}

type fakeNotifier struct {
	notifyErr error
	sent      []sentNotification
}

func (notifier *fakeNotifier) Notify(_ context.Context, recipientID string, kind notification.Kind, _ notification.Context) (*notification.Notification, error) {
	if notifier.notifyErr != nil {
		return nil, notifier.notifyErr
	}
	notifier.sent = append(notifier.sent, sentNotification{recipientID: recipientID, kind: kind})
	return &notification.Notification{RecipientID: recipientID}, nil
}

// # Helpers

func newTestEngine(ref *ManuscriptRef) (*Engine, *fakeManuscriptStore, *fakeAuditLog, *fakeNotifier) {
	store := &fakeManuscriptStore{ref: ref}
	auditLog := &fakeAuditLog{}
	notifier := &fakeNotifier{}
	return NewEngine(store, auditLog, notifier), store, auditLog, notifier
}

var (
	editorActor    = Actor{ID: "editor-1", Username: "mira", Role: sec.RoleEditor}
	publisherActor = Actor{ID: "pub-1", Username: "otto", Role: sec.RolePublisher}
	writerActor    = Actor{ID: "author-1", Username: "jo", Role: sec.RoleWriter}
)

// # Tests

func TestTransition_HappyPath(t *testing.T) {
	ref := &ManuscriptRef{
		ID:       "ms-1",
		Title:    "The Lighthouse",
		AuthorID: "author-1",
		Status:   StatusUnderReview,
	}
	engine, store, auditLog, notifier := newTestEngine(ref)

	result, err := engine.Transition(context.Background(), editorActor, "ms-1", StatusApproved, "looks great")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, StatusUnderReview, result.From)
	assert.Equal(t, StatusApproved, result.To)
	assert.Equal(t, StatusApproved, store.updatedTo)

	// Exactly one audit entry, carrying the old/new pair and the actor.
	require.Len(t, auditLog.entries, 1)
	entry := auditLog.entries[0]
	assert.Equal(t, history.ActionStatusChanged, entry.Action)
	assert.Equal(t, pointer.To("under_review"), entry.OldStatus)
	assert.Equal(t, pointer.To("approved"), entry.NewStatus)
	assert.Equal(t, "editor-1", entry.ActorID)
	assert.Equal(t, "editor", entry.ActorRole)
	assert.Equal(t, "looks great", entry.Notes)

	// The author always hears about it, as an approval.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "author-1", notifier.sent[0].recipientID)
	assert.Equal(t, notification.KindManuscriptApproved, notifier.sent[0].kind)
}

func TestTransition_RejectsIllegalEdge(t *testing.T) {
	ref := &ManuscriptRef{ID: "ms-1", AuthorID: "author-1", Status: StatusSubmitted}
	engine, store, auditLog, notifier := newTestEngine(ref)

	// submitted -> published skips the whole pipeline.
	result, err := engine.Transition(context.Background(), publisherActor, "ms-1", StatusPublished, "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidTransition))

	// Nothing happened: no write, no audit, no noise.
	assert.False(t, store.updateCalled)
	assert.Empty(t, auditLog.entries)
	assert.Empty(t, notifier.sent)
}

func TestTransition_RejectsUnknownTarget(t *testing.T) {
	ref := &ManuscriptRef{ID: "ms-1", AuthorID: "author-1", Status: StatusSubmitted}
	engine, _, _, _ := newTestEngine(ref)

	_, err := engine.Transition(context.Background(), editorActor, "ms-1", Status("archived"), "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

func TestTransition_EnforcesRoleMinimums(t *testing.T) {
	testCases := []struct {
		name   string
		actor  Actor
		from   Status
		target Status
		code   string
	}{
		{
			name:   "editor cannot publish",
			actor:  editorActor,
			from:   StatusApproved,
			target: StatusPublished,
			code:   "FORBIDDEN",
		},
		{
			name:   "writer cannot approve",
			actor:  writerActor,
			from:   StatusUnderReview,
			target: StatusApproved,
			code:   "FORBIDDEN",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ref := &ManuscriptRef{ID: "ms-1", AuthorID: "author-1", Status: testCase.from}
			engine, store, _, _ := newTestEngine(ref)

			_, err := engine.Transition(context.Background(), testCase.actor, "ms-1", testCase.target, "")

			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, testCase.code))
			assert.False(t, store.updateCalled)
		})
	}
}

func TestTransition_WriterOwnsOnlyTheirManuscripts(t *testing.T) {
	ref := &ManuscriptRef{ID: "ms-1", AuthorID: "someone-else", Status: StatusRevisionRequested}
	engine, store, _, _ := newTestEngine(ref)

	_, err := engine.Transition(context.Background(), writerActor, "ms-1", StatusSubmitted, "")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.False(t, store.updateCalled)

	// The same resubmission on their own manuscript is fine.
	ref.AuthorID = writerActor.ID
	result, err := engine.Transition(context.Background(), writerActor, "ms-1", StatusSubmitted, "revised chapter 3")
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, result.To)
}

func TestTransition_HistoryFailureIsPartialNotRollback(t *testing.T) {
	ref := &ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1", Status: StatusUnderReview}
	store := &fakeManuscriptStore{ref: ref}
	auditLog := &fakeAuditLog{appendErr: errors.New("disk on fire")}
	notifier := &fakeNotifier{}
	engine := NewEngine(store, auditLog, notifier)

	result, err := engine.Transition(context.Background(), editorActor, "ms-1", StatusApproved, "")

	// The status write committed and the caller gets both facts at once.
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodePartialFailure))
	require.NotNil(t, result)
	assert.Equal(t, StatusApproved, result.To)
	assert.True(t, store.updateCalled)

	// Notifications come after history, so none were attempted.
	assert.Empty(t, notifier.sent)
}

func TestTransition_NotificationFailureIsPartial(t *testing.T) {
	ref := &ManuscriptRef{ID: "ms-1", Title: "The Lighthouse", AuthorID: "author-1", Status: StatusUnderReview}
	store := &fakeManuscriptStore{ref: ref}
	auditLog := &fakeAuditLog{}
	notifier := &fakeNotifier{notifyErr: errors.New("redis gone")}
	engine := NewEngine(store, auditLog, notifier)

	result, err := engine.Transition(context.Background(), editorActor, "ms-1", StatusRejected, "not a fit")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodePartialFailure))
	require.NotNil(t, result)

	// Status write and audit entry both landed before the failure.
	assert.True(t, store.updateCalled)
	assert.Len(t, auditLog.entries, 1)
}

func TestTransition_NotifiesAssignedEditor(t *testing.T) {
	ref := &ManuscriptRef{
		ID:       "ms-1",
		Title:    "The Lighthouse",
		AuthorID: "author-1",
		EditorID: pointer.To("editor-2"),
		Status:   StatusApproved,
	}
	engine, _, _, notifier := newTestEngine(ref)

	_, err := engine.Transition(context.Background(), publisherActor, "ms-1", StatusPublished, "")
	require.NoError(t, err)

	// Author first, then the assigned editor who didn't perform the move.
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "author-1", notifier.sent[0].recipientID)
	assert.Equal(t, "editor-2", notifier.sent[1].recipientID)
	assert.Equal(t, notification.KindStatusChanged, notifier.sent[1].kind)
}

func TestTransition_ActingEditorIsNotSelfNotified(t *testing.T) {
	ref := &ManuscriptRef{
		ID:       "ms-1",
		Title:    "The Lighthouse",
		AuthorID: "author-1",
		EditorID: pointer.To(editorActor.ID),
		Status:   StatusUnderReview,
	}
	engine, _, _, notifier := newTestEngine(ref)

	_, err := engine.Transition(context.Background(), editorActor, "ms-1", StatusRevisionRequested, "tighten act two")
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "author-1", notifier.sent[0].recipientID)
}

func TestTransition_NotFoundPassesThrough(t *testing.T) {
	store := &fakeManuscriptStore{findErr: apperr.NotFound("Manuscript")}
	engine := NewEngine(store, &fakeAuditLog{}, &fakeNotifier{})

	result, err := engine.Transition(context.Background(), editorActor, "ms-404", StatusUnderReview, "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestAvailable(t *testing.T) {
	ref := &ManuscriptRef{ID: "ms-1", AuthorID: "author-1", Status: StatusUnderReview}
	engine, _, _, _ := newTestEngine(ref)

	current, available, err := engine.Available(context.Background(), "ms-1")

	require.NoError(t, err)
	assert.Equal(t, StatusUnderReview, current)
	assert.ElementsMatch(t, []Status{StatusApproved, StatusRejected, StatusRevisionRequested}, available)
}
