package oscplugin

import (
	"context"
	"plugin"

	"github.com/ShayBox/VRC-OSC/internal/metrics"
	"github.com/ShayBox/VRC-OSC/internal/telemetry"
)

// RunChatPipeline threads msg through the Chat entry point of every enabled
// plugin in names, in order, pull-style: each stage receives the previous
// stage's output. A plugin with no Chat symbol is silently skipped. A plugin
// whose Chat call returns an error leaves the running pair unchanged and the
// pipeline continues with the next plugin.
//
// tel and reg are optional: both the telemetry.Publisher and metrics.Registry
// types are nil-safe, so a calling plugin that doesn't care about
// observability can pass nil for either and RunChatPipeline still completes
// the pipeline, just without publishing the tick. A calling plugin that does
// care constructs them from the same HostConfig file it already loads to
// learn its siblings' enabled state.
//
// This is invoked by plugin bodies, from inside their own Load loop — never
// by the host. The host's router never calls RunChatPipeline; see the design
// note on this being an intentionally-preserved, not "fixed", behavior.
func RunChatPipeline(ctx context.Context, names []string, cfg HostConfig, msg ChatMessage, tel *telemetry.Publisher, reg *metrics.Registry) ChatMessage {
	for _, name := range names {
		if !cfg.IsEnabled(name) {
			continue
		}

		next, ok := callChat(ctx, name, msg)
		if !ok {
			continue
		}

		msg = next
	}

	reg.ChatPipelineRun()
	tel.ChatTick(msg.Chatbox, msg.Console)

	return msg
}

// callChat opens the named plugin and invokes its Chat symbol if present.
// The second return value is false when the plugin has no Chat symbol, its
// library can't be opened, or the call itself failed — in all those cases
// the caller keeps the previous message unchanged.
func callChat(ctx context.Context, name string, msg ChatMessage) (ChatMessage, bool) {
	path, err := PluginPath(name)
	if err != nil {
		return msg, false
	}

	lib, err := plugin.Open(path)
	if err != nil {
		return msg, false
	}

	sym, err := lib.Lookup(SymbolChat)
	if err != nil {
		return msg, false // optional symbol, expected to be absent often
	}

	// See the matching comment in internal/pluginhost.spawn: a naturally
	// written plugin's Chat has the unnamed literal dynamic type below, not
	// the named ChatFunc, so the assertion must target the literal type.
	chatFn, ok := sym.(func(ctx context.Context, chatbox, console string) (string, string, error))
	if !ok {
		return msg, false
	}

	chatbox, console, err := chatFn(ctx, msg.Chatbox, msg.Console)
	if err != nil {
		return msg, false
	}

	return ChatMessage{Chatbox: chatbox, Console: console}, true
}
