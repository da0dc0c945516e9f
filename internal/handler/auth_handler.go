package handler

import (
	"errors"
	"net/http"

	"classroom/internal/auth"
	"classroom/internal/model"
	"classroom/internal/response"
	"classroom/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users  UserService
	tokens *auth.Manager
}

func NewAuthHandler(users UserService, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresIn int         `json:"expires_in"`
	User      *model.User `json:"user"`
}

// Login godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  response.Response{data=LoginResponse}
// @Failure      401  {object}  response.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	fields, ok := bindRequest(c, &req)
	if !ok {
		return
	}
	if len(fields) > 0 {
		response.Unprocessable(c, validationFailedMessage, fields)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		response.Unauthorized(c, "Invalid credentials")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(user.ID.String())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	response.OK(c, LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(h.tokens.TTL().Seconds()),
		User:      user,
	}, "Login successfully")
}
