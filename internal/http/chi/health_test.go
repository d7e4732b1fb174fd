package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marcelsud/stream-relay/relay/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	get := func(t *testing.T, h http.Handler) (*httptest.ResponseRecorder, healthResponse) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		var resp healthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w, resp
	}

	t.Run("healthy when the queue backend responds", func(t *testing.T) {
		h := Handlers(mocks.NewUseCase(t), testSecret, okPinger{}, http.NotFoundHandler())

		w, resp := get(t, h)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", resp.Status)
		assert.True(t, resp.RedisConnected)
	})

	t.Run("unhealthy when the queue backend is unreachable", func(t *testing.T) {
		h := Handlers(mocks.NewUseCase(t), testSecret, okPinger{err: errors.New("connection refused")}, http.NotFoundHandler())

		w, resp := get(t, h)

		// Liveness probe still answers 200; the body carries the state
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.False(t, resp.RedisConnected)
	})
}
