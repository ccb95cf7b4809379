package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// maxExpansions bounds recursive variable expansion so a variable that
// refers to itself cannot loop forever.
const maxExpansions = 32

// ExpandPath expands a leading ~ to the home directory and every $VAR or
// ${VAR} reference from the process environment.
func ExpandPath(path string) string {
	return expandPath(path, os.LookupEnv)
}

// expandPath expands variables repeatedly until the result stops changing.
// Unset variables expand to the empty string.
func expandPath(path string, lookup func(string) (string, bool)) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = filepath.Join(xdg.Home, strings.TrimPrefix(path, "~"))
	}

	mapping := func(name string) string {
		value, _ := lookup(name)
		return value
	}

	for i := 0; i < maxExpansions; i++ {
		expanded := os.Expand(path, mapping)
		if expanded == path {
			break
		}
		path = expanded
	}

	return path
}
