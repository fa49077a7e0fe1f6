// Package apierrors defines the errors returned to API clients.
//
// Every APIError carries a Kind from the error taxonomy and the HTTP status it
// is rendered with. Store failures never reach clients as APIErrors; handlers
// render them as a generic internal error.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind string

const (
	KindValidation   Kind = "ValidationError"
	KindNotFound     Kind = "NotFound"
	KindAccessDenied Kind = "AccessDenied"
	KindConflict     Kind = "Conflict"
	KindStore        Kind = "StoreError"
	KindRateLimited  Kind = "RateLimited"
)

// APIError is an error with a client-facing message and HTTP status.
type APIError struct {
	Kind     Kind
	HTTPCode int
	Message  string
	err      error
}

func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

// As extracts an APIError from the error chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

func newErr(kind Kind, code int, msg string) *APIError {
	return &APIError{Kind: kind, HTTPCode: code, Message: msg}
}

func NewErrValidation(msg string) *APIError {
	return newErr(KindValidation, http.StatusBadRequest, msg)
}

func NewErrUnprocessable(msg string) *APIError {
	return newErr(KindValidation, http.StatusUnprocessableEntity, msg)
}

func NewErrMissingFields() *APIError {
	return NewErrValidation("Please include all the fields")
}

func NewErrPhotoTooLarge() *APIError {
	return NewErrValidation("File size is too large!")
}

func NewErrInvalidID(name, value string) *APIError {
	return NewErrValidation(fmt.Sprintf("invalid %s %q", name, value))
}

func NewErrInvalidOrderStatus(status string) *APIError {
	return NewErrValidation(fmt.Sprintf("invalid order status %q", status))
}

func NewErrStatusTransition(from, to string) *APIError {
	return NewErrValidation(fmt.Sprintf("order status cannot change from %q to %q", from, to))
}

func NewErrUserNotRegistered() *APIError {
	return NewErrValidation("User not registered, please register and try again")
}

func NewErrEmailIsTaken(email string) *APIError {
	e := newErr(KindConflict, http.StatusUnprocessableEntity, "Email is already in use, please try another one.")
	e.err = fmt.Errorf("email %s already taken", email)
	return e
}

func NewErrCategoryExists(name string) *APIError {
	return newErr(KindConflict, http.StatusUnprocessableEntity, fmt.Sprintf("category %q already exists", name))
}

func NewErrOrderStatusChanged() *APIError {
	return newErr(KindConflict, http.StatusConflict, "order status was changed by another request, retry")
}

func NewErrUserNotFound() *APIError {
	return newErr(KindNotFound, http.StatusNotFound, "No user found in database")
}

func NewErrOrderNotFound() *APIError {
	return newErr(KindNotFound, http.StatusNotFound, "Order not found in database")
}

func NewErrNoOrders() *APIError {
	return newErr(KindNotFound, http.StatusNotFound, "No orders found in database")
}

func NewErrProductNotFound() *APIError {
	return newErr(KindNotFound, http.StatusNotFound, "Product not found in database")
}

func NewErrNoUploadedProducts() *APIError {
	return newErr(KindNotFound, http.StatusNotFound, "You haven't uploaded any product to sell")
}

func NewErrPhotoNotFound() *APIError {
	return newErr(KindNotFound, http.StatusNotFound, "Product has no photo")
}

func NewErrCategoryNotFound() *APIError {
	return newErr(KindNotFound, http.StatusNotFound, "Category not found in database")
}

func NewErrMissingAuthorizationToken() *APIError {
	return newErr(KindAccessDenied, http.StatusUnauthorized, "missing authorization token")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return newErr(KindAccessDenied, http.StatusUnauthorized, "invalid authorization token")
}

func NewErrInvalidCredentials() *APIError {
	return newErr(KindAccessDenied, http.StatusUnauthorized, "Invalid credentials")
}

func NewErrAccessDenied() *APIError {
	return newErr(KindAccessDenied, http.StatusForbidden, "Access Denied")
}

func NewErrNotAdmin() *APIError {
	return newErr(KindAccessDenied, http.StatusForbidden, "You are not ADMIN, Access denied")
}

func NewErrNotProductOwner() *APIError {
	return newErr(KindAccessDenied, http.StatusForbidden, "You are not the owner of this product")
}

func NewErrTooManyRequests() *APIError {
	return newErr(KindRateLimited, http.StatusTooManyRequests, "too many requests, slow down")
}

func NewErrInternalServerError(err error) *APIError {
	e := newErr(KindStore, http.StatusInternalServerError, "internal server error")
	e.err = err
	return e
}
