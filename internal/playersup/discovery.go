// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package playersup

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrPlayerNotFound is returned when no candidate location yields an
// executable.
var ErrPlayerNotFound = errors.New("playersup: player executable not found")

const executableName = "mpv"

// wellKnownRoots lists platform install locations searched after an
// explicit path and before falling back to PATH.
func wellKnownRoots() []string {
	switch runtime.GOOS {
	case "windows":
		roots := []string{}
		for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)", "LOCALAPPDATA"} {
			if v := os.Getenv(env); v != "" {
				roots = append(roots,
					filepath.Join(v, "mpv", "mpv.exe"),
					filepath.Join(v, "mpv.net", "mpvnet.exe"),
				)
			}
		}
		return roots
	case "darwin":
		return []string{
			"/Applications/mpv.app/Contents/MacOS/mpv",
			"/opt/homebrew/bin/mpv",
			"/usr/local/bin/mpv",
		}
	default:
		return []string{
			"/usr/bin/mpv",
			"/usr/local/bin/mpv",
			"/var/lib/flatpak/exports/bin/io.mpv.Mpv",
		}
	}
}

// Discover resolves the player executable: explicitPath if set and present,
// then well-known install roots, then PATH. The result is fully resolved
// through symlinks (package-manager shims chain through several) and, on
// Windows, rewritten from the console variant to the windowed one.
func Discover(explicitPath string) (string, error) {
	candidates := make([]string, 0, 1+len(wellKnownRoots())+1)
	if explicitPath != "" {
		candidates = append(candidates, explicitPath)
	}
	candidates = append(candidates, wellKnownRoots()...)
	if found, err := exec.LookPath(executableName); err == nil {
		candidates = append(candidates, found)
	}

	for _, c := range candidates {
		if resolved, ok := resolveExecutable(c); ok {
			return resolved, nil
		}
	}
	return "", ErrPlayerNotFound
}

func resolveExecutable(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}

	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		canonical = path
	}

	return windowedVariant(canonical), true
}
