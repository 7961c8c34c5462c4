// Package oscplugin is the SDK that VRC-OSC plugins build against. It is the
// Go analogue of the original's shared `loader` library crate: a plugin
// module (its own go.mod, built with -buildmode=plugin) imports it for the
// ABI function types, the shared TOML config format, plugin-name discovery,
// and the chat-transform pipeline helper — without linking the host binary
// itself.
package oscplugin
