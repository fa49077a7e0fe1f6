package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/storefront-server/internal/api/http/context"
	"github.com/dtroode/storefront-server/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine returns a bare engine. When profile is set every request carries
// it, as the profile middleware would.
func newEngine(cm *httpctx.Manager, profile *model.User) *gin.Engine {
	r := gin.New()
	if profile != nil {
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(cm.SetProfileToContext(c.Request.Context(), *profile))
			c.Next()
		})
	}
	return r
}

func serve(r *gin.Engine, method, target string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

var jsonHeader = http.Header{"Content-Type": []string{"application/json"}}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}
