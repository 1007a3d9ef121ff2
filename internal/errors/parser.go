package errors

import (
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ErrorInfo is the client-facing translation of a raw store error.
type ErrorInfo struct {
	Status  int
	Code    string // codes.go
	Message string
}

// IsDuplicateKey reports whether err is a unique index violation from any
// supported store (postgres, sqlite, mongo).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || mongo.IsDuplicateKeyError(err) {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate key") || strings.Contains(lower, "unique constraint")
}

// IsRecordNotFound reports whether err means the lookup matched nothing.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, mongo.ErrNoDocuments)
}

// ParseError converts a raw error into a client-safe code and message.
// context is the fallback message used when nothing more specific matches.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: defaultMessage(context),
		}
	}

	if IsRecordNotFound(err) {
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	if IsDuplicateKey(err) {
		return parseDuplicateKeyError(err.Error())
	}

	errLower := strings.ToLower(err.Error())

	if (strings.Contains(errLower, "null value") && strings.Contains(errLower, "violates not-null constraint")) ||
		strings.Contains(errLower, "not null constraint failed") {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	if strings.Contains(errLower, "check constraint") {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ValidationInvalidInput,
			Message: "Input value is not valid",
		}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalExternalAPI,
			Message: "Could not reach an external service. Please try again later",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: defaultMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "main_categories") || strings.Contains(errLower, "name_key"):
		return ErrorInfo{Status: http.StatusBadRequest, Code: CategoryAlreadyExists, Message: "Category already exists"}
	case strings.Contains(errLower, "sub_categories"):
		return ErrorInfo{Status: http.StatusBadRequest, Code: SubCategoryAlreadyExists, Message: "Sub category already exists"}
	case strings.Contains(errLower, "handpicked") || strings.Contains(errLower, "slot"):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ResourceAlreadyExists, Message: "Slot is already taken"}
	case strings.Contains(errLower, "sku"):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ResourceAlreadyExists, Message: "SKU already exists"}
	}

	return ErrorInfo{
		Status:  http.StatusBadRequest,
		Code:    ResourceAlreadyExists,
		Message: "Record already exists",
	}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "sub category"):
		return "Sub category not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "banner"):
		return "Banner not found"
	case strings.Contains(contextLower, "handpicked"):
		return "Item not found"
	}
	return "Requested record not found"
}

func defaultMessage(context string) string {
	if context != "" {
		return context
	}
	return "Internal server error. Please try again later"
}

// ParseAndRespond parses err and writes the response in one call.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, err error, context string) {
	info := ParseError(err, context)
	c.JSON(info.Status, ErrorResponse{
		Success: false,
		Error:   info.Message,
		Code:    info.Code,
	})
}
