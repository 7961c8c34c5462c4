// Package router implements the UDP fan-out/fan-in hub (C4): the single
// socket bound to the upstream app's address, classifying every inbound
// datagram by source and either forwarding it upstream (plugin -> app) or
// broadcasting it to every known plugin endpoint (app -> plugins).
//
//	        +------------------+                        +--------------------+
//	VRChat ◄┤ UPSTREAM SOCKET  ├─ recv ─►  ROUTER  ─►  │ PLUGIN ENDPOINT N │
//	  app  ─┤ (bind bind_addr) │               │        +--------------------+
//	        +------------------+   broadcast   │             ...
//	                  ▲                        │        +--------------------+
//	                  │  forward               └──────► │ PLUGIN ENDPOINT 1 │
//	                  └────── (from any plugin endpoint)+--------------------+
//
// The router is stateless past construction: plugin_addrs is built once,
// before Run is ever called, and is read-only thereafter — no locking needed.
package router

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog"

	"github.com/ShayBox/VRC-OSC/internal/metrics"
)

// MTU bounds the router's fixed-size receive buffer — one recv is always
// one send, with no reassembly. This matches the OSC codec's documented
// MTU (the rosc crate's decoder::MTU constant in the original loader).
const MTU = 1536

// Router owns the upstream socket and the closed, read-only set of known
// plugin endpoints.
type Router struct {
	conn        *net.UDPConn
	sendAddr    *net.UDPAddr
	pluginAddrs map[string]*net.UDPAddr
	log         *zerolog.Logger
	metrics     *metrics.Registry
}

// New constructs a Router. conn must already be bound to the configured
// bind_addr. pluginAddrs is the full, closed set of plugin source addresses
// recorded by the plugin host before any worker could possibly send.
func New(conn *net.UDPConn, sendAddr *net.UDPAddr, pluginAddrs []*net.UDPAddr, log *zerolog.Logger, reg *metrics.Registry) *Router {
	set := make(map[string]*net.UDPAddr, len(pluginAddrs))
	for _, a := range pluginAddrs {
		set[a.String()] = a
	}

	return &Router{
		conn:        conn,
		sendAddr:    sendAddr,
		pluginAddrs: set,
		log:         log,
		metrics:     reg,
	}
}

// Run enters the infinite receive loop. It only returns on a fatal I/O
// error — recoverable recv errors (a net.Error reporting Timeout(); see
// isRecoverable) are logged and the loop continues. ReadFromUDP blocks indefinitely between
// datagrams, so ctx cancellation is delivered by closing conn from a watcher
// goroutine rather than by polling ctx.Done() between reads — otherwise a
// cancellation would sit unnoticed until the next datagram arrived.
func (r *Router) Run(ctx context.Context) error {
	buf := make([]byte, MTU)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			r.conn.Close()
		case <-stop:
		}
	}()

	for {
		n, src, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if isRecoverable(err) {
				r.log.Warn().Err(err).Msg("recoverable error on router recv, continuing")
				continue
			}
			return err
		}

		payload := buf[:n]
		if _, fromPlugin := r.pluginAddrs[src.String()]; fromPlugin {
			r.forwardToApp(payload)
			continue
		}

		r.broadcastToPlugins(payload)
	}
}

// forwardToApp sends payload to send_addr (plugin -> upstream app).
func (r *Router) forwardToApp(payload []byte) {
	if _, err := r.conn.WriteToUDP(payload, r.sendAddr); err != nil {
		r.log.Warn().Err(err).Msg("failed to forward datagram to upstream app")
		return
	}
	r.metrics.DatagramForwarded()
}

// broadcastToPlugins sends payload to every known plugin endpoint
// (upstream app -> plugins). A send failure to one plugin is logged and
// does not stop delivery to the rest.
func (r *Router) broadcastToPlugins(payload []byte) {
	for _, addr := range r.pluginAddrs {
		if _, err := r.conn.WriteToUDP(payload, addr); err != nil {
			r.log.Warn().Err(err).Stringer("plugin_addr", addr).Msg("failed to broadcast datagram to plugin")
			continue
		}
		r.metrics.DatagramBroadcast()
	}
}

// isRecoverable reports whether err represents a transient condition the
// router should keep running through, as opposed to a fatal socket failure.
func isRecoverable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
