package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProductNotFound is returned when a product lookup misses.
	ErrProductNotFound = errors.New("product not found")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmptyCart is returned when checkout is attempted with no purchasable items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidQuantity is returned when a cart quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidPrice is returned when a product price is negative.
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrNotAuthorized is returned when a non-admin touches an admin operation.
	ErrNotAuthorized = errors.New("not authorized")
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
	switch err {
	case ErrProductNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrEmptyCart:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_CART")
	case ErrInvalidQuantity:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	case ErrInvalidPrice:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRICE")
	case ErrNotAuthorized:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_AUTHORIZED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
