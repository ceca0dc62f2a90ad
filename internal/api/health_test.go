package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weconnect/agrisearch/internal/log"
)

// stubReady implements ReadyChecker with a fixed count.
type stubReady int

func (s stubReady) Count() int { return int(s) }

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(nil, log.NewNop())

	w := httptest.NewRecorder()
	h.liveness(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	h := NewHealthHandler(stubReady(42), log.NewNop())

	w := httptest.NewRecorder()
	h.readiness(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", w.Body.String())
}

func TestHealthHandler_Readiness_EmptyCollection(t *testing.T) {
	h := NewHealthHandler(stubReady(0), log.NewNop())

	w := httptest.NewRecorder()
	h.readiness(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthHandler_Readiness_NilChecker(t *testing.T) {
	h := NewHealthHandler(nil, log.NewNop())

	w := httptest.NewRecorder()
	h.readiness(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
