// Package platform maps a host platform identifier to the installer
// executable used for it.
package platform

import (
	"strings"

	"github.com/melih-ucgun/fecoding/internal/consts"
)

// Resolver picks the installer executable for a platform identifier. It
// must be pure.
type Resolver func(platform string) string

// IsWindows accepts both Go's GOOS value and Node's process.platform value.
func IsWindows(platform string) bool {
	switch strings.ToLower(platform) {
	case "windows", "win32":
		return true
	}
	return false
}

// Default returns npm.cmd on Windows-like platforms and npm everywhere else.
func Default(platform string) string {
	if IsWindows(platform) {
		return consts.InstallerWindows
	}
	return consts.InstallerDefault
}

// FromTable looks platform up in table first and falls back otherwise.
// Windows aliases share an entry: a "windows" key also serves "win32".
func FromTable(table map[string]string, fallback Resolver) Resolver {
	if fallback == nil {
		fallback = Default
	}
	entries := make(map[string]string, len(table))
	for k, v := range table {
		if v == "" {
			continue
		}
		entries[strings.ToLower(k)] = v
	}
	return func(platform string) string {
		key := strings.ToLower(platform)
		if exe, ok := entries[key]; ok {
			return exe
		}
		if IsWindows(key) {
			for _, alias := range []string{"windows", "win32"} {
				if exe, ok := entries[alias]; ok {
					return exe
				}
			}
		}
		return fallback(platform)
	}
}
