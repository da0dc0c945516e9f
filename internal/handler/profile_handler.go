package handler

import (
	"errors"

	"classroom/internal/media"
	"classroom/internal/middleware"
	"classroom/internal/response"
	"classroom/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the authenticated user's own record.
type ProfileHandler struct {
	users UserService
}

func NewProfileHandler(users UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

type UpdateProfileRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Email       string `form:"email" json:"email" binding:"required,email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber" binding:"required"`
}

type ChangePasswordRequest struct {
	Password string `form:"password" json:"password" binding:"required,min=6,max=72"`
}

// Update godoc
// @Summary      Update own profile
// @Tags         Profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        name         formData  string  true   "Name"
// @Param        email        formData  string  true   "Email"
// @Param        phoneNumber  formData  string  true   "Phone number"
// @Param        image        formData  file    false  "jpg, gif or png up to 2mb"
// @Success      200  {object}  response.Response{data=model.User}
// @Failure      422  {object}  response.Response
// @Security     BearerAuth
// @Router       /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req UpdateProfileRequest
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

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, service.UserPatch{
		Name:        &req.Name,
		Email:       &req.Email,
		PhoneNumber: &req.PhoneNumber,
		Image:       image,
	})
	if errors.Is(err, service.ErrUserNotFound) {
		response.Unauthorized(c, "Not authenticated")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, user, "Profile update successfully")
}

// ChangePassword godoc
// @Summary      Change own password
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request  body  ChangePasswordRequest  true  "New password"
// @Success      200  {object}  response.Response{data=model.User}
// @Failure      422  {object}  response.Response
// @Security     BearerAuth
// @Router       /profile/password [put]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req ChangePasswordRequest
	fields, ok := bindRequest(c, &req)
	if !ok {
		return
	}
	if len(fields) > 0 {
		response.Unprocessable(c, validationFailedMessage, fields)
		return
	}

	user, err := h.users.ChangePassword(c.Request.Context(), userID, req.Password)
	if errors.Is(err, service.ErrUserNotFound) {
		response.Unauthorized(c, "Not authenticated")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, user, "Password change successfully")
}
