// Package oscplugin is the public contract between the loader host and the
// plugins it loads as Go shared objects (-buildmode=plugin). A plugin module
// imports this package for the shared types below (and the helpers in the
// rest of the package); it does not link against the host binary.
//
// Every plugin MUST export a package-level function named Load with the
// signature of LoadFunc. A plugin MAY additionally export a package-level
// function named Chat with the signature of ChatFunc to participate in the
// chat-transform pipeline.
//
// LoadFunc and ChatFunc are documentation aliases, not the types the loader
// asserts against: plugin.Lookup returns the symbol's own dynamic type, and
// a plain "func Load(conn *net.UDPConn) error" declaration has the unnamed
// literal type func(*net.UDPConn) error, never the named type LoadFunc (a
// defined type is never identical to another type, named or not). The
// loader therefore type-asserts against the literal func signature.
//
// Go's plugin.Lookup only resolves exported (capitalized) package-level
// symbols, so the ABI uses Load/Chat rather than the lowercase load/chat
// names of the original cdylib-based ABI; the contract — ownership, timing,
// and optionality — is otherwise unchanged.
package oscplugin

import (
	"context"
	"net"
)

// Symbol names the loader looks up via the Go plugin package.
const (
	SymbolLoad = "Load"
	SymbolChat = "Chat"
)

// LoadFunc is the required entry point. It is invoked exactly once, on a
// dedicated goroutine, with a UDP connection that is:
//   - bound to a loopback ephemeral port (the plugin's own endpoint), and
//   - connected to the router's peer address,
//
// so that plain Read/Write calls exchange datagrams with the router. Load is
// expected to run its own loop until process exit; returning from it ends
// the plugin's involvement in the UDP path (the router keeps sending to its
// now-unread port, per the documented "black hole" failure mode).
type LoadFunc func(conn *net.UDPConn) error

// ChatFunc is the optional chat-transform entry point. It receives the
// running (chatbox, console) pair and a context standing in for the
// original's scheduler handle — Go plugins don't need an explicit scheduler
// reference since every Load/Chat call already runs on the host's runtime.
// It returns the replacement pair, or an error to leave the pair unchanged.
type ChatFunc func(ctx context.Context, chatbox, console string) (string, string, error)

// ChatMessage is the (chatbox, console) pair threaded through the pipeline.
type ChatMessage struct {
	Chatbox string
	Console string
}
