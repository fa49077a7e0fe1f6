package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/testutil"
)

func TestHealth_Check(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{name: "database up", wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "database down", pingErr: errors.New("connection refused"), wantCode: http.StatusServiceUnavailable, wantStatus: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := mocks.NewPinger(t)
			pinger.On("Ping", mock.Anything).Return(tt.pingErr).Once()

			r := newEngine(nil, nil)
			r.GET("/api/health", NewHealth(pinger, testutil.MakeNoopLogger()).Check)

			w := serve(r, http.MethodGet, "/api/health", nil, nil)

			require.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantStatus, decode[healthResponse](t, w).Status)
		})
	}
}
