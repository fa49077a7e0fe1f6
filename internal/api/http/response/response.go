// Package response writes JSON bodies and renders errors for the HTTP API.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/storefront-server/internal/apierrors"
)

const internalErrorMessage = "internal server error"

// Error is the JSON body of every failed request.
type Error struct {
	Error string `json:"error"`
}

// Message is the JSON body of requests that only report an outcome.
type Message struct {
	Message string `json:"message"`
}

// Status returns the HTTP status and client-facing message for err. Errors
// that are not APIErrors are never exposed.
func Status(err error) (int, string) {
	if apiErr, ok := apierrors.As(err); ok && apiErr.Kind != apierrors.KindStore {
		return apiErr.HTTPCode, apiErr.Message
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// Abort records err on the gin context for the access log and aborts the
// chain with the rendered error body.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	code, msg := Status(err)
	c.AbortWithStatusJSON(code, Error{Error: msg})
}

// OK writes body with status 200.
func OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// OKMessage writes {"message": msg} with status 200.
func OKMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Message{Message: msg})
}
