package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"classroom/internal/media"
	"classroom/internal/metrics"
	"classroom/internal/model"
	"classroom/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateAssignmentInput is the payload for a new assignment.
type CreateAssignmentInput struct {
	Title       string
	Description string
	DueAt       *time.Time
}

// SubmitInput is a user's submission for an assignment. At least one of
// Content and File must be set.
type SubmitInput struct {
	Content *string
	File    *Upload
}

type AssignmentService struct {
	assignments repository.AssignmentRepositoryInterface
	attachments repository.AttachmentRepositoryInterface
	uploader    media.Uploader
	logger      *zap.Logger
	now         func() time.Time
}

func NewAssignmentService(
	assignments repository.AssignmentRepositoryInterface,
	attachments repository.AttachmentRepositoryInterface,
	uploader media.Uploader,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		attachments: attachments,
		uploader:    uploader,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *AssignmentService) Create(ctx context.Context, in CreateAssignmentInput) (*model.Assignment, error) {
	assignment := &model.Assignment{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		DueAt:       in.DueAt,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	metrics.RecordWritesTotal.WithLabelValues("assignment", "create").Inc()
	return assignment, nil
}

func (s *AssignmentService) Get(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}
	return assignment, nil
}

// Submit stores a new attachment for the assignment on behalf of userID.
// The attachment id is generated here, before the record is first saved.
func (s *AssignmentService) Submit(ctx context.Context, userID, assignmentID uuid.UUID, in SubmitInput) (*model.Attachment, error) {
	if in.Content == nil && in.File == nil {
		return nil, NewValidationError("content", "required", "content or file is required")
	}

	if _, err := s.Get(ctx, assignmentID); err != nil {
		return nil, err
	}

	obj, err := uploadFile(ctx, s.uploader, s.logger, in.File)
	if err != nil {
		return nil, err
	}

	attachment := &model.Attachment{
		ID:            uuid.New(),
		AssignmentID:  assignmentID,
		UserID:        userID,
		Content:       in.Content,
		SubmittedTime: s.now(),
		Point:         model.DefaultPoint,
	}
	if obj != nil {
		attachment.AttachmentPath = &obj.URL
	}

	if err := s.attachments.Create(ctx, attachment); err != nil {
		discardUpload(ctx, s.uploader, s.logger, obj)
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}
	metrics.RecordWritesTotal.WithLabelValues("attachment", "create").Inc()
	return attachment, nil
}

func (s *AssignmentService) Attachments(ctx context.Context, assignmentID uuid.UUID) ([]model.Attachment, error) {
	if _, err := s.Get(ctx, assignmentID); err != nil {
		return nil, err
	}
	attachments, err := s.attachments.GetByAssignmentID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// DeleteAttachment removes an attachment submitted by userID.
func (s *AssignmentService) DeleteAttachment(ctx context.Context, userID, attachmentID uuid.UUID) error {
	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to load attachment: %w", err)
	}
	if attachment == nil {
		return ErrAttachmentNotFound
	}
	if attachment.UserID != userID {
		return ErrForbidden
	}

	if err := s.attachments.Delete(ctx, attachmentID); err != nil {
		if errors.Is(err, repository.ErrAttachmentNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	metrics.RecordWritesTotal.WithLabelValues("attachment", "delete").Inc()
	return nil
}
