package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/model"
)

const (
	productParam = "productId"
	orderParam   = "orderId"
	photoField   = "photo"
)

// pathID parses the uuid route parameter name. It aborts the request and
// returns false when the value is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Abort(c, apierrors.NewErrInvalidID(name, raw))
		return uuid.Nil, false
	}
	return id, true
}

// profileFrom returns the user resolved for the route. It aborts with 403
// when the profile middleware did not run.
func profileFrom(c *gin.Context, cm model.ContextManager) (model.User, bool) {
	profile, ok := cm.GetProfileFromContext(c.Request.Context())
	if !ok {
		response.Abort(c, apierrors.NewErrAccessDenied())
		return model.User{}, false
	}
	return profile, true
}

// bindingMessage turns the first validation failure into a client message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}

	fe := verrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "email is not valid"
	case "min":
		return fmt.Sprintf("%s should be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s should be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// productForm reads product fields and the optional photo from a multipart
// form. Absent fields stay nil. The returned file, if any, must be closed.
func productForm(c *gin.Context) (model.ProductParams, *model.Photo, multipart.File, error) {
	var params model.ProductParams

	if v, ok := c.GetPostForm("name"); ok {
		params.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		params.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok && v != "" {
		price, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return model.ProductParams{}, nil, nil, apierrors.NewErrValidation("price must be a whole number")
		}
		params.Price = &price
	}
	if v, ok := c.GetPostForm("stock"); ok && v != "" {
		stock, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return model.ProductParams{}, nil, nil, apierrors.NewErrValidation("stock must be a whole number")
		}
		params.Stock = &stock
	}
	if v, ok := c.GetPostForm("category"); ok && v != "" {
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return model.ProductParams{}, nil, nil, apierrors.NewErrInvalidID("category", v)
		}
		params.CategoryID = &id
	}

	header, err := c.FormFile(photoField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return params, nil, nil, nil
	}
	if err != nil {
		return model.ProductParams{}, nil, nil, apierrors.NewErrValidation("Error parsing form data")
	}

	file, err := header.Open()
	if err != nil {
		return model.ProductParams{}, nil, nil, fmt.Errorf("failed to open uploaded photo: %w", err)
	}

	photo := &model.Photo{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}
	if photo.ContentType == "" {
		photo.ContentType = "application/octet-stream"
	}

	return params, photo, file, nil
}
