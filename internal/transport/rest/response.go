package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carepulse/internal/domain"
	"carepulse/internal/form"
)

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// fieldErrorResponseBody is the 422 body of a rejected edit or submit.
type fieldErrorResponseBody struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Errors  map[string]string `json:"errors"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	successResponse(c, http.StatusCreated, data)
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func fieldErrorsResponse(c *gin.Context, errs form.FieldErrors) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, fieldErrorResponseBody{
		Status:  "error",
		Message: "some fields are invalid",
		Code:    http.StatusUnprocessableEntity,
		Errors:  errs,
	})
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "authorization required")
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message)
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "internal server error")
}

// domainErrorResponse maps the domain sentinels to HTTP statuses. Unknown
// errors are reported as internal errors without their text.
func domainErrorResponse(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notFoundResponse(c, notFound)
	case errors.Is(err, domain.ErrConflict):
		errorResponse(c, http.StatusConflict, "record already exists")
	case errors.Is(err, domain.ErrUnauthorized):
		unauthorizedResponse(c)
	case errors.Is(err, domain.ErrInvalidFile):
		badRequestResponse(c, "the identification document must be an image or a PDF")
	case errors.Is(err, domain.ErrUnavailable):
		errorResponse(c, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		internalServerErrorResponse(c)
	}
}
