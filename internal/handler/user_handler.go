package handler

import (
	"context"
	"errors"
	"strconv"

	"classroom/internal/media"
	"classroom/internal/model"
	"classroom/internal/response"
	"classroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserService is the user workflow the handlers drive.
type UserService interface {
	List(ctx context.Context, page, limit int) (*service.UserPage, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, in service.CreateUserInput) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, patch service.UserPatch) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch service.UserPatch) (*model.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, password string) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

var _ UserService = (*service.UserService)(nil)

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

type CreateUserRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Email       string `form:"email" json:"email" binding:"required,email"`
	Password    string `form:"password" json:"password" binding:"required,min=6,max=72"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
}

type UpdateUserRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Email       string `form:"email" json:"email" binding:"required,email"`
	Password    string `form:"password" json:"password" binding:"omitempty,min=6,max=72"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
}

// List godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Param        page   query  int  false  "Page number"     default(1)
// @Param        limit  query  int  false  "Users per page"  default(10)
// @Success      200  {object}  response.Response{data=response.Page}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		response.BadRequest(c, "Invalid page")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		response.BadRequest(c, "Invalid limit")
		return
	}

	result, err := h.users.List(c.Request.Context(), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Paginated(c, result.Users, response.Meta{
		Total:       result.Total,
		PerPage:     result.Limit,
		CurrentPage: result.Page,
		LastPage:    result.LastPage(),
		FirstPage:   1,
	}, "User retrieved successfully")
}

// Show godoc
// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  response.Response{data=model.User}
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid user ID format")
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		response.NotFound(c, "User not found")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, user, "User show retrieved successfully")
}

// Store godoc
// @Summary      Create a user
// @Tags         Users
// @Accept       multipart/form-data
// @Produce      json
// @Param        name         formData  string  true   "Name"
// @Param        email        formData  string  true   "Email"
// @Param        password     formData  string  true   "Password, at least 6 characters"
// @Param        phoneNumber  formData  string  false  "Phone number"
// @Param        image        formData  file    true   "jpg, gif or png up to 2mb"
// @Success      201  {object}  response.Response{data=model.User}
// @Failure      422  {object}  response.Response
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Store(c *gin.Context) {
	var req CreateUserRequest
	fields, ok := bindRequest(c, &req)
	if !ok {
		return
	}

	fh, ferr := formFile(c, "image", media.ImageExtensions)
	switch {
	case ferr != nil:
		fields = append(fields, *ferr)
	case fh == nil:
		fields = append(fields, service.FieldError{Field: "image", Rule: "required", Message: "image is required"})
	}
	if len(fields) > 0 {
		response.Unprocessable(c, validationFailedMessage, fields)
		return
	}

	image, file, err := openUpload(fh)
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	user, err := h.users.Create(c.Request.Context(), service.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Image:       image,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, user, "User created successfully")
}

// Update godoc
// @Summary      Update a user
// @Description  Password, phone number and image are only replaced when provided.
// @Tags         Users
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string  true   "User ID"
// @Param        name         formData  string  true   "Name"
// @Param        email        formData  string  true   "Email"
// @Param        password     formData  string  false  "New password"
// @Param        phoneNumber  formData  string  false  "Phone number"
// @Param        image        formData  file    false  "jpg, gif or png up to 2mb"
// @Success      200  {object}  response.Response{data=model.User}
// @Failure      400  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid user ID format")
	if !ok {
		return
	}

	var req UpdateUserRequest
	fields, ok := bindRequest(c, &req)
	if !ok {
		return
	}
	fh, ferr := formFile(c, "image", media.ImageExtensions)
	if ferr != nil {
		fields = append(fields, *ferr)
	}
	if len(fields) > 0 {
		response.Unprocessable(c, validationFailedMessage, fields)
		return
	}

	image, file, err := openUpload(fh)
	if err != nil {
		writeError(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	user, err := h.users.Update(c.Request.Context(), id, service.UserPatch{
		Name:        &req.Name,
		Email:       &req.Email,
		Password:    optional(req.Password),
		PhoneNumber: optional(req.PhoneNumber),
		Image:       image,
	})
	if errors.Is(err, service.ErrUserNotFound) {
		response.BadRequest(c, "No data to update.")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, user, "User updated successfully")
}

// Destroy godoc
// @Summary      Delete a user
// @Tags         Users
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid user ID format")
	if !ok {
		return
	}

	err := h.users.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		response.BadRequest(c, "No data to delete.")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil, "User deleted successfully")
}
