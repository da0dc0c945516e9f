package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"classroom/internal/media"
	"classroom/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAssignmentService() (*AssignmentService, *mockAssignmentRepo, *mockAttachmentRepo, *mockUploader) {
	assignments := new(mockAssignmentRepo)
	attachments := new(mockAttachmentRepo)
	uploader := new(mockUploader)
	svc := NewAssignmentService(assignments, attachments, uploader, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, assignments, attachments, uploader
}

func TestSubmit_WithFile(t *testing.T) {
	svc, assignments, attachments, uploader := newTestAssignmentService()
	userID, assignmentID := uuid.New(), uuid.New()

	assignments.On("GetByID", mock.Anything, assignmentID).Return(&model.Assignment{ID: assignmentID}, nil)
	uploader.On("Upload", mock.Anything, mock.Anything, int64(3), "essay.pdf").
		Return(&media.Object{Key: "k", URL: "https://cdn/essay.pdf"}, nil).Once()
	attachments.On("Create", mock.Anything, mock.AnythingOfType("*model.Attachment")).Return(nil)

	got, err := svc.Submit(context.Background(), userID, assignmentID, SubmitInput{
		File: &Upload{Reader: bytes.NewReader([]byte("pdf")), Size: 3, Filename: "essay.pdf"},
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, assignmentID, got.AssignmentID)
	assert.Equal(t, "https://cdn/essay.pdf", *got.AttachmentPath)
	assert.Equal(t, model.DefaultPoint, got.Point)
	assert.Equal(t, 2024, got.SubmittedTime.Year())
	uploader.AssertExpectations(t)
}

func TestSubmit_RequiresContentOrFile(t *testing.T) {
	svc, assignments, _, _ := newTestAssignmentService()

	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), SubmitInput{})

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assignments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSubmit_UnknownAssignment(t *testing.T) {
	svc, assignments, attachments, uploader := newTestAssignmentService()
	assignmentID := uuid.New()
	content := "answer"

	assignments.On("GetByID", mock.Anything, assignmentID).Return(nil, nil)

	_, err := svc.Submit(context.Background(), uuid.New(), assignmentID, SubmitInput{
		Content: &content,
		File:    &Upload{Reader: bytes.NewReader(nil), Filename: "a.png"},
	})

	assert.ErrorIs(t, err, ErrAssignmentNotFound)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	attachments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_SaveFailureRemovesUpload(t *testing.T) {
	svc, assignments, attachments, uploader := newTestAssignmentService()
	assignmentID := uuid.New()

	assignments.On("GetByID", mock.Anything, assignmentID).Return(&model.Assignment{ID: assignmentID}, nil)
	uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&media.Object{Key: "orphan", URL: "https://cdn/orphan"}, nil)
	attachments.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	uploader.On("Delete", mock.Anything, "orphan").Return(assert.AnError).Once()

	_, err := svc.Submit(context.Background(), uuid.New(), assignmentID, SubmitInput{
		File: &Upload{Reader: bytes.NewReader(nil), Filename: "a.png"},
	})

	assert.ErrorIs(t, err, assert.AnError)
	uploader.AssertExpectations(t)
}

func TestDeleteAttachment(t *testing.T) {
	svc, _, attachments, _ := newTestAssignmentService()
	owner := uuid.New()
	attachment := &model.Attachment{ID: uuid.New(), UserID: owner}
	missing := uuid.New()

	attachments.On("GetByID", mock.Anything, attachment.ID).Return(attachment, nil)
	attachments.On("GetByID", mock.Anything, missing).Return(nil, nil)
	attachments.On("Delete", mock.Anything, attachment.ID).Return(nil).Once()

	assert.ErrorIs(t, svc.DeleteAttachment(context.Background(), uuid.New(), attachment.ID), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteAttachment(context.Background(), owner, missing), ErrAttachmentNotFound)
	assert.NoError(t, svc.DeleteAttachment(context.Background(), owner, attachment.ID))
	attachments.AssertExpectations(t)
}

func TestAttachments_UnknownAssignment(t *testing.T) {
	svc, assignments, attachments, _ := newTestAssignmentService()
	id := uuid.New()

	assignments.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.Attachments(context.Background(), id)

	assert.ErrorIs(t, err, ErrAssignmentNotFound)
	attachments.AssertNotCalled(t, "GetByAssignmentID", mock.Anything, mock.Anything)
}
