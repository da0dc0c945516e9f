package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode"

	"classroom/internal/media"
	"classroom/internal/response"
	"classroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const validationFailedMessage = "Validation failed"

// bindRequest binds the body into req and collects field errors. A body that
// cannot be decoded at all is reported as a bad request and ok is false.
func bindRequest(c *gin.Context, req interface{}) (fields []service.FieldError, ok bool) {
	err := c.ShouldBind(req)
	if err == nil {
		return nil, true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return translateValidationErrors(verrs), true
	}

	response.BadRequest(c, "Invalid input")
	return nil, false
}

func translateValidationErrors(verrs validator.ValidationErrors) []service.FieldError {
	fields := make([]service.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		name := lowerFirst(fe.Field())
		fields = append(fields, service.FieldError{
			Field:   name,
			Rule:    fe.Tag(),
			Message: ruleMessage(name, fe),
		})
	}
	return fields
}

func ruleMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not be longer than %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// formFile returns the uploaded file under field, or nil when the request
// carries none. The file is checked against the size and extension rules.
func formFile(c *gin.Context, field string, allowed []string) (*multipart.FileHeader, *service.FieldError) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, &service.FieldError{Field: field, Rule: "file", Message: field + " could not be read"}
	}

	switch err := media.CheckFile(fh.Filename, fh.Size, allowed); {
	case errors.Is(err, media.ErrFileTooLarge):
		return nil, &service.FieldError{Field: field, Rule: "size", Message: field + " must not be larger than 2mb"}
	case errors.Is(err, media.ErrExtensionNotAllowed):
		return nil, &service.FieldError{
			Field:   field,
			Rule:    "extnames",
			Message: field + " must have one of these extensions: " + strings.Join(allowed, ", "),
		}
	}
	return fh, nil
}

// openUpload opens fh for the service layer. The caller closes the returned file.
func openUpload(fh *multipart.FileHeader) (*service.Upload, multipart.File, error) {
	if fh == nil {
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.Upload{Reader: f, Size: fh.Size, Filename: fh.Filename}, f, nil
}

// optional turns an empty optional input into nil. Whitespace is kept as sent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseID(c *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors that are not endpoint specific.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Unprocessable(c, validationFailedMessage, verr.Fields)
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "You don't have permission to perform this action")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
