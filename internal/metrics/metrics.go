// Package metrics defines the Prometheus collectors the router and plugin
// host update, and the registry they're grouped under for the admin HTTP
// surface's /metrics endpoint.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry groups the router's Prometheus collectors. The zero value is
// not usable; construct with New. All counters are safe for concurrent use
// without additional locking, matching Prometheus's own concurrency
// guarantees.
type Registry struct {
	registry *prometheus.Registry

	datagramsForwarded prometheus.Counter
	datagramsBroadcast prometheus.Counter
	pluginsLoaded      prometheus.Gauge
	chatPipelineRuns   prometheus.Counter
}

// New creates a Registry and registers its collectors.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		datagramsForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oscrouter_datagrams_forwarded_total",
			Help: "Datagrams forwarded from a plugin endpoint to the upstream app.",
		}),
		datagramsBroadcast: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oscrouter_datagrams_broadcast_total",
			Help: "Datagrams broadcast from the upstream app to a plugin endpoint (one increment per delivery).",
		}),
		pluginsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oscrouter_plugins_loaded",
			Help: "Number of plugins currently loaded.",
		}),
		chatPipelineRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oscrouter_chat_pipeline_runs_total",
			Help: "Completed chat-transform pipeline runs, across all plugins that drive one.",
		}),
	}

	reg.MustRegister(r.datagramsForwarded, r.datagramsBroadcast, r.pluginsLoaded, r.chatPipelineRuns)
	return r
}

// Registerer exposes the underlying Prometheus registry for promhttp.
func (r *Registry) Registerer() *prometheus.Registry {
	return r.registry
}

// DatagramForwarded increments the plugin->app forward counter.
func (r *Registry) DatagramForwarded() {
	if r == nil {
		return
	}
	r.datagramsForwarded.Inc()
}

// DatagramBroadcast increments the app->plugin broadcast counter.
func (r *Registry) DatagramBroadcast() {
	if r == nil {
		return
	}
	r.datagramsBroadcast.Inc()
}

// SetPluginsLoaded sets the current plugin count gauge.
func (r *Registry) SetPluginsLoaded(n int) {
	if r == nil {
		return
	}
	r.pluginsLoaded.Set(float64(n))
}

// ChatPipelineRun increments the chat pipeline run counter.
func (r *Registry) ChatPipelineRun() {
	if r == nil {
		return
	}
	r.chatPipelineRuns.Inc()
}
