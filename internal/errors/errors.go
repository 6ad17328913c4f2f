package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a record is absent or owned by another user.
	// Foreign rows report not-found rather than forbidden so that valid ids
	// belonging to other users are not distinguishable from missing ones.
	ErrNotFound = errors.New("not found")
	// ErrEmailRequired is returned when a user is created without an email.
	ErrEmailRequired = errors.New("users must have an email address")
	// ErrUnknownTagID is returned when a relation payload references a tag id
	// that does not exist.
	ErrUnknownTagID = errors.New("unknown tag id")
	// ErrUnknownChildID is returned when a relation payload references a child
	// id that does not exist.
	ErrUnknownChildID = errors.New("unknown child id")
	// ErrInvalidImage is returned when an uploaded payload cannot be decoded
	// as an image.
	ErrInvalidImage = errors.New("invalid image")
	// ErrInvalidIDList is returned when a comma-separated id filter contains
	// anything that is not a positive integer.
	ErrInvalidIDList = errors.New("invalid id list")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrEmailRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_REQUIRED")
	case errors.Is(err, ErrUnknownTagID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_TAG_ID")
	case errors.Is(err, ErrUnknownChildID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_CHILD_ID")
	case errors.Is(err, ErrInvalidImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_IMAGE")
	case errors.Is(err, ErrInvalidIDList):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ID_LIST")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
