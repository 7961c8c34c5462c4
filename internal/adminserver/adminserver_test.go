package adminserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ShayBox/VRC-OSC/internal/metrics"
)

func TestAdminServer_HealthzUnreadyThenReady(t *testing.T) {
	log := zerolog.Nop()
	a := New("", metrics.New(), &log)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	a.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	a.MarkReady()

	w2 := httptest.NewRecorder()
	a.engine.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestAdminServer_Metrics(t *testing.T) {
	log := zerolog.Nop()
	reg := metrics.New()
	reg.DatagramForwarded()
	a := New("", reg, &log)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	a.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "oscrouter_datagrams_forwarded_total")
}

func TestAdminServer_StartNoopWhenAddrEmpty(t *testing.T) {
	log := zerolog.Nop()
	a := New("", metrics.New(), &log)

	assert.NotPanics(t, func() {
		a.Start(&log)
	})
	assert.Nil(t, a.server)
}
