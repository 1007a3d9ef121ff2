package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`            // human readable message
	Code    string   `json:"code"`             // code constant (codes.go)
	Fields  []string `json:"fields,omitempty"` // offending inputs for validation errors
	Details string   `json:"details,omitempty"`
}

// RespondWithError writes a failure body.
// statusCode: HTTP status code
// errorCode: code constant (codes.go)
// message: message shown to the admin user
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    errorCode,
	})
}

// Respond writes the failure body for an error returned by the service layer.
// Messages of internal and upstream errors are replaced by fallback, with the
// underlying message kept in details.
func Respond(c *gin.Context, err error, fallback string) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		info := ParseError(err, fallback)
		c.JSON(info.Status, ErrorResponse{
			Success: false,
			Error:   info.Message,
			Code:    info.Code,
			Details: err.Error(),
		})
		return
	}

	status := StatusFor(err)
	resp := ErrorResponse{
		Success: false,
		Error:   appErr.Message,
		Code:    appErr.Code,
		Fields:  appErr.Fields,
	}
	if status == http.StatusInternalServerError {
		resp.Error = fallback
		resp.Details = appErr.Error()
	}
	c.JSON(status, resp)
}

// Shorthand responders

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFoundResponse(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithValidationError reports several invalid inputs at once.
func RespondWithValidationError(c *gin.Context, message string, fields []string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    ValidationInvalidInput,
		Fields:  fields,
	})
}
