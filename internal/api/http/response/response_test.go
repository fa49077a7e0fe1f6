package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/apierrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "validation", err: apierrors.NewErrMissingFields(), wantCode: http.StatusBadRequest, wantMsg: "Please include all the fields"},
		{name: "email taken", err: apierrors.NewErrEmailIsTaken("a@x.com"), wantCode: http.StatusUnprocessableEntity, wantMsg: "Email is already in use, please try another one."},
		{name: "not found", err: apierrors.NewErrUserNotFound(), wantCode: http.StatusNotFound, wantMsg: "No user found in database"},
		{name: "not admin", err: apierrors.NewErrNotAdmin(), wantCode: http.StatusForbidden, wantMsg: "You are not ADMIN, Access denied"},
		{name: "store error hides cause", err: apierrors.NewErrInternalServerError(errors.New("pq: connection reset")), wantCode: http.StatusInternalServerError, wantMsg: "internal server error"},
		{name: "plain error", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Status(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestAbort(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Abort(c, apierrors.NewErrAccessDenied())

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.Len(t, c.Errors, 1)

	var body Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Access Denied", body.Error)
}

func TestOKMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OKMessage(c, "done")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"done"}`, w.Body.String())
}
