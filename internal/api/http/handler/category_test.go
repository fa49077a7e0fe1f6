package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/testutil"
)

func categoryRouter(svc *mocks.CategoryService) *gin.Engine {
	h := NewCategory(svc, testutil.MakeNoopLogger())

	r := newEngine(nil, nil)
	r.GET("/api/categories", h.List)
	r.GET("/api/category/:categoryId", h.Get)
	r.POST("/api/admin/:userId/category", h.Create)
	return r
}

func TestCategory_List(t *testing.T) {
	svc := mocks.NewCategoryService(t)
	svc.On("List", mock.Anything).Return([]model.Category{{ID: uuid.New(), Name: "Books"}}, nil)

	w := serve(categoryRouter(svc), http.MethodGet, "/api/categories", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]categoryResponse](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, "Books", got[0].Name)
}

func TestCategory_Get(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := mocks.NewCategoryService(t)
		svc.On("Get", mock.Anything, id).Return(model.Category{ID: id, Name: "Books"}, nil)

		w := serve(categoryRouter(svc), http.MethodGet, "/api/category/"+id.String(), nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, decode[categoryResponse](t, w).ID)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := serve(categoryRouter(mocks.NewCategoryService(t)), http.MethodGet, "/api/category/1", nil, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, `invalid categoryId "1"`, decode[errorResponse](t, w).Error)
	})
}

func TestCategory_Create(t *testing.T) {
	target := "/api/admin/" + uuid.NewString() + "/category"

	tests := []struct {
		name      string
		body      map[string]any
		setup     func(svc *mocks.CategoryService)
		wantCode  int
		wantError string
	}{
		{
			name: "success",
			body: map[string]any{"name": "Books"},
			setup: func(svc *mocks.CategoryService) {
				svc.On("Create", mock.Anything, "Books").Return(model.Category{ID: uuid.New(), Name: "Books"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "missing name",
			body:      map[string]any{},
			setup:     func(svc *mocks.CategoryService) {},
			wantCode:  http.StatusUnprocessableEntity,
			wantError: "name is required",
		},
		{
			name: "duplicate",
			body: map[string]any{"name": "Books"},
			setup: func(svc *mocks.CategoryService) {
				svc.On("Create", mock.Anything, "Books").Return(model.Category{}, apierrors.NewErrCategoryExists("Books"))
			},
			wantCode:  http.StatusUnprocessableEntity,
			wantError: `category "Books" already exists`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewCategoryService(t)
			tt.setup(svc)

			w := serve(categoryRouter(svc), http.MethodPost, target, jsonBody(t, tt.body), jsonHeader)

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decode[errorResponse](t, w).Error)
			}
		})
	}
}
