package oscplugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunChatPipeline_SkipsDisabledPlugins(t *testing.T) {
	cfg := HostConfig{Enabled: []string{"enabled.so"}}
	msg := ChatMessage{Chatbox: "hello", Console: "log"}

	// "disabled.so" is not in cfg.Enabled, so callChat must never run for
	// it. It does not resolve to a real library either, so the open-failure
	// path would also leave msg unchanged: this assertion holds on both
	// paths and does not tell them apart.
	result := RunChatPipeline(context.Background(), []string{"disabled.so"}, cfg, msg, nil, nil)

	assert.Equal(t, msg, result)
}

func TestRunChatPipeline_EmptyNames_ReturnsInputUnchanged(t *testing.T) {
	cfg := HostConfig{}
	msg := ChatMessage{Chatbox: "a", Console: "b"}

	result := RunChatPipeline(context.Background(), nil, cfg, msg, nil, nil)

	assert.Equal(t, msg, result)
}

func TestCallChat_UnresolvableLibrary_LeavesMessageUnchanged(t *testing.T) {
	msg := ChatMessage{Chatbox: "x", Console: "y"}

	result, ok := callChat(context.Background(), "does-not-exist.so", msg)

	assert.False(t, ok)
	assert.Equal(t, msg, result)
}
