package oscplugin

import (
	"os"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Enabled)
	assert.Equal(t, "0.0.0.0:9001", cfg.BindAddr)
	assert.Equal(t, "127.0.0.1:9000", cfg.SendAddr)
}

func TestHostConfig_PeerAddr(t *testing.T) {
	tests := []struct {
		name     string
		bindAddr string
		expected string
	}{
		{"wildcard host", "0.0.0.0:9001", "127.0.0.1:9001"},
		{"already loopback", "127.0.0.1:9001", "127.0.0.1:9001"},
		{"non-wildcard host", "192.168.1.5:9001", "192.168.1.5:9001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := HostConfig{BindAddr: tt.bindAddr}
			assert.Equal(t, tt.expected, cfg.PeerAddr())
		})
	}
}

func TestHostConfig_IsEnabled(t *testing.T) {
	cfg := HostConfig{Enabled: []string{"plugin-clock.so", "plugin-chatbox.so"}}

	assert.True(t, cfg.IsEnabled("plugin-clock.so"))
	assert.True(t, cfg.IsEnabled("plugin-chatbox.so"))
	assert.False(t, cfg.IsEnabled("plugin-unknown.so"))
	assert.False(t, cfg.IsEnabled(""))
}

func TestHostConfig_SaveAndLoad_RoundTrip(t *testing.T) {
	// ConfigPath derives its location from os.Executable, which is the test
	// binary during `go test` — exercise the TOML round trip directly
	// against a known path rather than depending on that resolution.
	path := t.TempDir() + "/loader.toml"
	cfg := HostConfig{
		Enabled:  []string{"plugin-clock.so"},
		BindAddr: "0.0.0.0:9001",
		SendAddr: "127.0.0.1:9000",
		NatsURL:  "nats://localhost:4222",
	}

	f, err := os.Create(path)
	assert.NoError(t, err)
	assert.NoError(t, toml.NewEncoder(f).Encode(cfg))
	assert.NoError(t, f.Close())

	loaded := DefaultConfig()
	_, err = toml.DecodeFile(path, &loaded)
	assert.NoError(t, err)
	assert.Equal(t, cfg.Enabled, loaded.Enabled)
	assert.Equal(t, cfg.BindAddr, loaded.BindAddr)
	assert.Equal(t, cfg.NatsURL, loaded.NatsURL)
}
