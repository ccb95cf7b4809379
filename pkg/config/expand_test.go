package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func TestExpandPath(t *testing.T) {
	env := map[string]string{
		"GAMES":   "$BASE/games",
		"BASE":    "${ROOT}/srv",
		"ROOT":    "/mnt",
		"SELF":    "$SELF",
		"GROWING": "x$GROWING",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/tmp/rxr", "/tmp/rxr"},
		{"dollar_name", "$ROOT/rxr", "/mnt/rxr"},
		{"braced", "${ROOT}/rxr", "/mnt/rxr"},
		{"recursive_to_fixed_point", "$GAMES/doom", "/mnt/srv/games/doom"},
		{"unset_is_empty", "$NOPE/rxr", "/rxr"},
		{"self_reference_terminates", "$SELF", "$SELF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandPath(tt.in, lookupFrom(env)))
		})
	}

	t.Run("growing_reference_is_bounded", func(t *testing.T) {
		got := expandPath("$GROWING", lookupFrom(env))
		assert.Equal(t, maxExpansions, strings.Count(got, "x"))
	})
}

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	xdg.Reload()

	assert.Equal(t, filepath.Join(home, "games"), expandPath("~/games", lookupFrom(nil)))
	assert.Equal(t, home, expandPath("~", lookupFrom(nil)))
	assert.Equal(t, "/a/~b", expandPath("/a/~b", lookupFrom(nil)))
}
