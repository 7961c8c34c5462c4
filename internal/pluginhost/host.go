// Package pluginhost implements the plugin loader (C3): for each enabled
// plugin it binds a dedicated loopback UDP endpoint, records that endpoint's
// address before anything can send from it, then hands the endpoint to a
// freshly-opened plugin's Load entry point on its own goroutine.
//
// Binding happens before the worker goroutine starts so the router is
// guaranteed to already know the plugin's source address the moment the
// plugin can possibly send — closing the race the original design note
// calls out explicitly.
package pluginhost

import (
	"fmt"
	"net"
	"plugin"

	"github.com/ShayBox/VRC-OSC/internal/telemetry"
	"github.com/ShayBox/VRC-OSC/pkg/oscplugin"
	"github.com/rs/zerolog"
)

// Descriptor is the immutable record of one loaded plugin: its resolved
// path, its display name (the file name), and the loopback endpoint the
// router will see its traffic arrive from.
type Descriptor struct {
	Path string
	Name string
	Addr *net.UDPAddr
}

// Host loads enabled plugins and spawns their workers.
type Host struct {
	log       *zerolog.Logger
	telemetry *telemetry.Publisher
}

// New creates a Host. telemetry may be a disabled Publisher; Host never
// special-cases that, it just calls Publish.
func New(log *zerolog.Logger, tel *telemetry.Publisher) *Host {
	return &Host{log: log, telemetry: tel}
}

// Load resolves, binds, and spawns a worker for every name that is both
// present in names and in cfg.Enabled, returning the ordered list of
// resulting descriptors. Any path-resolution, bind, or library-open failure
// for an *enabled* plugin is fatal for the whole process — there is no
// partial-startup recovery this early.
func (h *Host) Load(names []string, cfg oscplugin.HostConfig) ([]Descriptor, error) {
	peerAddr, err := net.ResolveUDPAddr("udp", cfg.PeerAddr())
	if err != nil {
		return nil, fmt.Errorf("pluginhost: resolve peer address %s: %w", cfg.PeerAddr(), err)
	}

	var descriptors []Descriptor
	for _, name := range names {
		if !cfg.IsEnabled(name) {
			continue
		}

		desc, conn, err := h.bind(name, peerAddr)
		if err != nil {
			return nil, err
		}

		// Open the library here so an unopenable enabled plugin fails startup;
		// plugin.Open returns the same *Plugin when spawn opens it again.
		if _, err := plugin.Open(desc.Path); err != nil {
			conn.Close()
			return nil, fmt.Errorf("pluginhost: open library for %s: %w", name, err)
		}

		// Record the address before the worker can possibly send anything.
		descriptors = append(descriptors, desc)
		h.log.Info().Str("plugin", name).Stringer("addr", desc.Addr).Msg("plugin endpoint bound")
		h.telemetry.PluginLoaded(name, desc.Addr.String())

		h.spawn(desc, conn)
	}

	return descriptors, nil
}

// bind resolves name's path and dials a connected, loopback-bound UDP socket
// to peerAddr, returning the descriptor and the still-open connection.
func (h *Host) bind(name string, peerAddr *net.UDPAddr) (Descriptor, *net.UDPConn, error) {
	path, err := oscplugin.PluginPath(name)
	if err != nil {
		return Descriptor{}, nil, fmt.Errorf("pluginhost: resolve path for %s: %w", name, err)
	}

	localAddr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0}
	conn, err := net.DialUDP("udp", localAddr, peerAddr)
	if err != nil {
		return Descriptor{}, nil, fmt.Errorf("pluginhost: bind endpoint for %s: %w", name, err)
	}

	desc := Descriptor{
		Path: path,
		Name: name,
		Addr: conn.LocalAddr().(*net.UDPAddr),
	}

	return desc, conn, nil
}

// spawn opens the plugin's library, resolves its Load symbol, and calls it
// on a new goroutine. A missing Load symbol or wrong-typed symbol is fatal
// for that plugin's worker but does not take down the router: the worker
// goroutine logs and returns, leaving the plugin's endpoint a silent sink.
func (h *Host) spawn(desc Descriptor, conn *net.UDPConn) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.log.Error().Str("plugin", desc.Name).Interface("panic", r).Msg("plugin worker panicked")
				h.telemetry.PluginPanicked(desc.Name, fmt.Sprint(r))
			}
		}()

		lib, err := plugin.Open(desc.Path)
		if err != nil {
			h.log.Error().Err(err).Str("plugin", desc.Name).Msg("failed to open plugin library")
			return
		}

		sym, err := lib.Lookup(oscplugin.SymbolLoad)
		if err != nil {
			h.log.Error().Err(err).Str("plugin", desc.Name).Msg("plugin missing Load symbol")
			return
		}

		// A naturally-written plugin exports a plain func declaration
		// (func Load(conn *net.UDPConn) error), whose dynamic type is the
		// unnamed literal func(*net.UDPConn) error, not the named
		// oscplugin.LoadFunc — a defined type is never identical to any
		// other type, so asserting against LoadFunc itself would fail for
		// every such plugin. Assert against the literal type instead and
		// convert.
		loadFn, ok := sym.(func(conn *net.UDPConn) error)
		if !ok {
			h.log.Error().Str("plugin", desc.Name).Msg("plugin Load has the wrong signature")
			return
		}

		if err := loadFn(conn); err != nil {
			h.log.Error().Err(err).Str("plugin", desc.Name).Msg("plugin Load returned an error")
		}
	}()
}
