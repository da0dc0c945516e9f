// Package response writes the uniform {status, message, data} envelope.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Meta describes one page of a paginated list.
type Meta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	FirstPage   int   `json:"first_page"`
}

// Page is the data of a paginated response.
type Page struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data"`
}

func OK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: message, Data: data})
}

func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{Status: StatusSuccess, Message: message, Data: data})
}

// Paginated writes a 200 response whose data is a Page.
func Paginated(c *gin.Context, list interface{}, meta Meta, message string) {
	OK(c, Page{Meta: meta, Data: list}, message)
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{Status: StatusError, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Unprocessable reports rejected input with per-field details.
func Unprocessable(c *gin.Context, message string, errors interface{}) {
	c.JSON(http.StatusUnprocessableEntity, Response{Status: StatusError, Message: message, Errors: errors})
}

func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}
