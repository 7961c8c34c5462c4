package oscplugin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLibraryExtensions(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"plugin.so", true},
		{"plugin.dylib", true},
		{"plugin.dll", true},
		{"plugin.txt", false},
		{"plugin", false},
		{"plugin.SO", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, libraryExtensions[filepath.Ext(tt.name)])
		})
	}
}

func TestPluginPath_IsAbsolute(t *testing.T) {
	dir, err := PluginDir()
	assert.NoError(t, err)
	assert.NotEmpty(t, dir)

	path, err := PluginPath("plugin-clock.so")
	assert.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Contains(t, path, "plugin-clock.so")
}
