package testutil

import (
	"io"

	"github.com/dtroode/storefront-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
