package handler

import (
	"context"
	"errors"
	"time"

	"classroom/internal/media"
	"classroom/internal/middleware"
	"classroom/internal/model"
	"classroom/internal/response"
	"classroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentService interface {
	Create(ctx context.Context, in service.CreateAssignmentInput) (*model.Assignment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	Submit(ctx context.Context, userID, assignmentID uuid.UUID, in service.SubmitInput) (*model.Attachment, error)
	Attachments(ctx context.Context, assignmentID uuid.UUID) ([]model.Attachment, error)
	DeleteAttachment(ctx context.Context, userID, attachmentID uuid.UUID) error
}

var _ AssignmentService = (*service.AssignmentService)(nil)

// AssignmentHandler handles assignments and the attachments submitted for them
type AssignmentHandler struct {
	assignments AssignmentService
}

func NewAssignmentHandler(assignments AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

type CreateAssignmentRequest struct {
	Title       string     `form:"title" json:"title" binding:"required"`
	Description string     `form:"description" json:"description"`
	DueAt       *time.Time `form:"due_at" json:"due_at"`
}

type SubmitAttachmentRequest struct {
	Content string `form:"content" json:"content"`
}

// Create godoc
// @Summary      Create an assignment
// @Tags         Assignments
// @Accept       json
// @Produce      json
// @Param        request  body  CreateAssignmentRequest  true  "Assignment"
// @Success      201  {object}  response.Response{data=model.Assignment}
// @Failure      422  {object}  response.Response
// @Security     BearerAuth
// @Router       /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req CreateAssignmentRequest
	fields, ok := bindRequest(c, &req)
	if !ok {
		return
	}
	if len(fields) > 0 {
		response.Unprocessable(c, validationFailedMessage, fields)
		return
	}

	assignment, err := h.assignments.Create(c.Request.Context(), service.CreateAssignmentInput{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, assignment, "Assignment created successfully")
}

// Show godoc
// @Summary      Get an assignment
// @Tags         Assignments
// @Produce      json
// @Param        id   path  string  true  "Assignment ID"
// @Success      200  {object}  response.Response{data=model.Assignment}
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /assignments/{id} [get]
func (h *AssignmentHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid assignment ID format")
	if !ok {
		return
	}

	assignment, err := h.assignments.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrAssignmentNotFound) {
		response.NotFound(c, "Assignment not found")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, assignment, "Assignment retrieved successfully")
}

// Submit godoc
// @Summary      Submit an attachment
// @Description  Stores the caller's answer. At least one of content and file is required.
// @Tags         Assignments
// @Accept       multipart/form-data
// @Produce      json
// @Param        id       path      string  true   "Assignment ID"
// @Param        content  formData  string  false  "Text answer"
// @Param        file     formData  file    false  "jpg, gif, png or pdf up to 2mb"
// @Success      201  {object}  response.Response{data=model.Attachment}
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Security     BearerAuth
// @Router       /assignments/{id}/attachments [post]
func (h *AssignmentHandler) Submit(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}
	assignmentID, ok := parseID(c, "id", "Invalid assignment ID format")
	if !ok {
		return
	}

	var req SubmitAttachmentRequest
	fields, ok := bindRequest(c, &req)
	if !ok {
		return
	}
	fh, ferr := formFile(c, "file", media.AttachmentExtensions)
	if ferr != nil {
		fields = append(fields, *ferr)
	}
	if len(fields) > 0 {
		response.Unprocessable(c, validationFailedMessage, fields)
		return
	}

	upload, file, err := openUpload(fh)
	if err != nil {
		writeError(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	attachment, err := h.assignments.Submit(c.Request.Context(), userID, assignmentID, service.SubmitInput{
		Content: optional(req.Content),
		File:    upload,
	})
	if errors.Is(err, service.ErrAssignmentNotFound) {
		response.NotFound(c, "Assignment not found")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, attachment, "Attachment submitted successfully")
}

// Attachments godoc
// @Summary      List attachments of an assignment
// @Tags         Assignments
// @Produce      json
// @Param        id   path  string  true  "Assignment ID"
// @Success      200  {object}  response.Response{data=[]model.Attachment}
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /assignments/{id}/attachments [get]
func (h *AssignmentHandler) Attachments(c *gin.Context) {
	assignmentID, ok := parseID(c, "id", "Invalid assignment ID format")
	if !ok {
		return
	}

	attachments, err := h.assignments.Attachments(c.Request.Context(), assignmentID)
	if errors.Is(err, service.ErrAssignmentNotFound) {
		response.NotFound(c, "Assignment not found")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, attachments, "Attachments retrieved successfully")
}

// DeleteAttachment godoc
// @Summary      Delete own attachment
// @Tags         Assignments
// @Produce      json
// @Param        id   path  string  true  "Attachment ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Security     BearerAuth
// @Router       /attachments/{id} [delete]
func (h *AssignmentHandler) DeleteAttachment(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}
	attachmentID, ok := parseID(c, "id", "Invalid attachment ID format")
	if !ok {
		return
	}

	err := h.assignments.DeleteAttachment(c.Request.Context(), userID, attachmentID)
	if errors.Is(err, service.ErrAttachmentNotFound) {
		response.BadRequest(c, "No data to delete.")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil, "Attachment deleted successfully")
}
