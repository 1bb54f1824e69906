package apperror

import (
	"fmt"
	"net/http"
)

// Codes are stable and part of the API contract.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidID       = "INVALID_ID"
	CodeInvalidLocation = "INVALID_LOCATION"
	CodeInvalidRadius   = "INVALID_RADIUS"
	CodeRadiusTooLarge  = "RADIUS_TOO_LARGE"
	CodeInvalidFile     = "INVALID_FILE"
	CodeInvalidType     = "INVALID_TYPE"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodePhotoLimit      = "PHOTO_LIMIT"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

func InvalidID(resource string) *AppError {
	return New(CodeInvalidID, fmt.Sprintf("invalid %s id", resource), http.StatusBadRequest)
}

func InvalidLocation(message string) *AppError {
	return New(CodeInvalidLocation, message, http.StatusBadRequest)
}

func InvalidRadius(message string) *AppError {
	return New(CodeInvalidRadius, message, http.StatusBadRequest)
}

func RadiusTooLarge(message string) *AppError {
	return New(CodeRadiusTooLarge, message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func PhotoLimit(max int) *AppError {
	return New(CodePhotoLimit, fmt.Sprintf("a report holds at most %d photos", max), http.StatusConflict)
}

func RateLimited() *AppError {
	return New(CodeRateLimited, "rate limit exceeded", http.StatusTooManyRequests)
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "internal server error",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}
