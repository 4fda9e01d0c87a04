// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

const (
	// LocalDir is the per-project settings directory.
	LocalDir = ".petsense"
	// ConfigName is the config file name inside LocalDir and the user dir.
	ConfigName = "config.yaml"
)

// UserConfigDir returns ~/.config/petsense, or "" when there is no home.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "petsense")
}

// UserConfigFile returns ~/.config/petsense/config.yaml, or "".
func UserConfigFile() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigName)
}

// ResolveConfigFile picks the config file to load.
//
// Input normalization:
//   - "/path/to/config.yaml" -> "/path/to/config.yaml"
//   - "/path/to/project" (a directory) -> "/path/to/project/.petsense/config.yaml",
//     or "/path/to/project/config.yaml" when the directory is itself a
//     .petsense directory
//   - "" -> "./.petsense/config.yaml" when it exists, else the user config
//
// found reports whether the returned file exists. When nothing exists the
// user config path is returned so a default can be written there.
func ResolveConfigFile(path string) (resolved string, found bool) {
	if path != "" {
		path = filepath.Clean(path)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if filepath.Base(path) == LocalDir {
				path = filepath.Join(path, ConfigName)
			} else {
				path = filepath.Join(path, LocalDir, ConfigName)
			}
		}
		return path, exists(path)
	}

	local := filepath.Join(LocalDir, ConfigName)
	if exists(local) {
		return local, true
	}
	user := UserConfigFile()
	return user, user != "" && exists(user)
}

// TracesFile is the default trace output file under the user config dir.
func TracesFile() string {
	dir := UserConfigDir()
	if dir == "" {
		return filepath.Join(LocalDir, "traces", "traces.jsonl")
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
