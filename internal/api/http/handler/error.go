package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/logger"
)

// handleError renders err and logs it when it is not a client error.
func handleError(c *gin.Context, log *logger.Logger, msg string, err error) {
	if apiErr, ok := apierrors.As(err); !ok || apiErr.Kind == apierrors.KindStore {
		log.Error(msg,
			"path", c.FullPath(),
			"error", err.Error())
	}
	response.Abort(c, err)
}
