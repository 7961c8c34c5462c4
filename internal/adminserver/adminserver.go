// Package adminserver exposes the optional admin HTTP surface: a
// Prometheus /metrics endpoint and a /healthz liveness probe. It is only
// started when metrics_addr is configured; the router and plugin host work
// exactly the same whether or not it's running.
package adminserver

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ShayBox/VRC-OSC/internal/metrics"
)

// AdminServer wraps a gin.Engine serving /healthz and /metrics.
type AdminServer struct {
	addr   string
	engine *gin.Engine
	server *http.Server
	ready  atomic.Bool
}

// New constructs an AdminServer bound to addr. If addr is empty, Start is a
// no-op — callers don't need a separate "is this enabled" check.
func New(addr string, reg *metrics.Registry, log *zerolog.Logger) *AdminServer {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	a := &AdminServer{addr: addr, engine: engine}

	engine.GET("/healthz", func(c *gin.Context) {
		if !a.ready.Load() {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg.Registerer(), promhttp.HandlerOpts{})))

	return a
}

// MarkReady flips the /healthz probe to report healthy. Call it once the
// router has entered its receive loop.
func (a *AdminServer) MarkReady() {
	a.ready.Store(true)
}

// Start runs the HTTP server in the background. It is a no-op if addr is
// empty. Any bind error is logged, not fatal — the admin surface is purely
// observational and must never take down the router.
func (a *AdminServer) Start(log *zerolog.Logger) {
	if a.addr == "" {
		return
	}

	a.server = &http.Server{Addr: a.addr, Handler: a.engine}
	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn().Err(err).Str("addr", a.addr).Msg("admin server stopped")
		}
	}()
}

// Stop gracefully shuts the server down, if it was started.
func (a *AdminServer) Stop(ctx context.Context) {
	if a.server == nil {
		return
	}
	_ = a.server.Shutdown(ctx)
}
