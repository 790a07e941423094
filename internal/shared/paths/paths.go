package paths

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// HomeEnv is the environment variable consulted for tilde expansion
const HomeEnv = "HOME"

// ErrNoHome is returned when a path needs tilde expansion and no home
// directory value is available
var ErrNoHome = errors.New("Cannot determine home directory from $HOME")

// LookupFunc looks up an environment value, matching os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Resolve expands a leading "~" or "~/" using the HOME environment variable.
// Any other path is returned unchanged.
func Resolve(path string) (string, error) {
	return ResolveWith(path, os.LookupEnv)
}

// ResolveWith is Resolve with an explicit environment lookup
func ResolveWith(path string, lookup LookupFunc) (string, error) {
	if !NeedsExpansion(path) {
		return path, nil
	}

	home, ok := lookup(HomeEnv)
	if !ok || home == "" {
		return "", ErrNoHome
	}

	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// NeedsExpansion reports whether path starts with a home-directory reference
func NeedsExpansion(path string) bool {
	return path == "~" || strings.HasPrefix(path, "~/")
}
