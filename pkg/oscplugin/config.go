package oscplugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// HostConfig is the loader's persisted configuration: the enabled-plugin
// allow-list and the two socket addresses. It is shared between the host
// binary and plugin bodies — a plugin that wants to know its siblings'
// enabled state (for the chat pipeline) loads the same file the host does.
type HostConfig struct {
	Enabled     []string `toml:"enabled"`
	BindAddr    string   `toml:"bind_addr"`
	SendAddr    string   `toml:"send_addr"`
	NatsURL     string   `toml:"nats_url,omitempty"`
	MetricsAddr string   `toml:"metrics_addr,omitempty"`
}

// DefaultConfig returns a HostConfig with no enabled plugins and the
// project's default socket addresses.
func DefaultConfig() HostConfig {
	return HostConfig{
		Enabled:  []string{},
		BindAddr: "0.0.0.0:9001",
		SendAddr: "127.0.0.1:9000",
	}
}

// ConfigPath returns the fixed config file location: next to the executable,
// named after the executable's stem with a ".toml" extension.
func ConfigPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("oscplugin: resolve executable path: %w", err)
	}

	dir := filepath.Dir(exe)
	stem := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	return filepath.Join(dir, stem+".toml"), nil
}

// LoadConfig decodes the config file at ConfigPath. Callers that need
// first-run wizard behavior (the host) treat any error here as "no config
// yet" rather than fatal.
func LoadConfig() (HostConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return HostConfig{}, err
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return HostConfig{}, fmt.Errorf("oscplugin: load %s: %w", path, err)
	}

	return cfg, nil
}

// Save encodes cfg as TOML to ConfigPath, overwriting any existing file.
func (c HostConfig) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("oscplugin: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("oscplugin: encode %s: %w", path, err)
	}

	return nil
}

// PeerAddr rewrites a wildcard host (0.0.0.0) in BindAddr to the loopback
// address — the address plugin endpoints connect to.
func (c HostConfig) PeerAddr() string {
	return strings.Replace(c.BindAddr, "0.0.0.0", "127.0.0.1", 1)
}

// IsEnabled reports whether name appears in the enabled allow-list.
func (c HostConfig) IsEnabled(name string) bool {
	for _, n := range c.Enabled {
		if n == name {
			return true
		}
	}
	return false
}
