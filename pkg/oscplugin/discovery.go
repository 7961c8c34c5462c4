package oscplugin

import (
	"fmt"
	"os"
	"path/filepath"
)

// libraryExtensions are matched exactly, regardless of host OS — mirroring
// the original loader, which checks all three suffixes unconditionally.
var libraryExtensions = map[string]bool{
	".dll":   true,
	".dylib": true,
	".so":    true,
}

// EnumeratePluginNames lists the file names of entries in the executable's
// directory whose extension is a known dynamic-library suffix. Recursion
// depth is exactly one. Entries that cannot be stat'd are silently skipped;
// this fails only if the executable's directory cannot be determined or
// cannot be read.
func EnumeratePluginNames() ([]string, error) {
	dir, err := PluginDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("oscplugin: read %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue // unstat-able entry, skip
		}
		if info.IsDir() {
			continue
		}

		if !libraryExtensions[filepath.Ext(entry.Name())] {
			continue
		}

		names = append(names, entry.Name())
	}

	return names, nil
}

// PluginDir returns the directory EnumeratePluginNames searches, and the
// directory plugin paths are resolved against.
func PluginDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("oscplugin: resolve executable path: %w", err)
	}

	dir := filepath.Dir(exe)
	if dir == "" || dir == "." {
		return "", fmt.Errorf("oscplugin: executable %q has no parent directory", exe)
	}

	return dir, nil
}

// PluginPath resolves name to an absolute path inside PluginDir. Go's plugin
// package requires an absolute path on most platforms, mirroring the
// original's use of Absolutize for the same reason.
func PluginPath(name string) (string, error) {
	dir, err := PluginDir()
	if err != nil {
		return "", err
	}

	path, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("oscplugin: absolutize %s: %w", name, err)
	}

	return path, nil
}
