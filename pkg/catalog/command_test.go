package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/mappings"
)

func TestCommandRender(t *testing.T) {
	table := mappings.New().
		Insert("tmp", "/tmp/rxr").
		Insert("target", "{tmp}/doom").
		Insert("executable", "{target}/DOOM.EXE")

	t.Run("lenient_substitution", func(t *testing.T) {
		c := Command{
			Cmd:   "dosbox",
			Args:  []string{"{executable}", "-conf", "{unknown}/dosbox.conf"},
			Evars: map[string]string{"SDL_VIDEODRIVER": "x11", "HOME": "{target}"},
		}

		inv, err := c.Render(table, nil)
		require.NoError(t, err)
		assert.Equal(t, Invocation{
			Program: "dosbox",
			Args:    []string{"/tmp/rxr/doom/DOOM.EXE", "-conf", "{unknown}/dosbox.conf"},
			Env:     map[string]string{"SDL_VIDEODRIVER": "x11", "HOME": "/tmp/rxr/doom"},
			Dir:     "/tmp/rxr/doom",
		}, inv)
		assert.Equal(t, "{target}", c.Evars["HOME"], "command must not be modified")
	})

	t.Run("expansion_per_item", func(t *testing.T) {
		c := Command{Cmd: "dosbox", Args: []string{"-c", "imgmount d {{$val}} -t iso", "-c", "mount {{$i}}"}, Wd: "{tmp}"}

		inv, err := c.Render(table, []string{"cd1.iso", "cd2.iso"})
		require.NoError(t, err)
		assert.Equal(t, []string{"-c", "imgmount d cd1.iso -t iso", "imgmount d cd2.iso -t iso", "-c", "mount 0", "mount 1"}, inv.Args)
		assert.Equal(t, "/tmp/rxr", inv.Dir)
		assert.Nil(t, inv.Env)
	})

	t.Run("unclosed_braces_stay_one_argument", func(t *testing.T) {
		c := Command{Cmd: "echo", Args: []string{"{{ literal {target}", "{{ {nope}"}}

		inv, err := c.Render(table, []string{"a.zip", "b.zip"})
		require.NoError(t, err)
		assert.Equal(t, []string{"{{ literal /tmp/rxr/doom", "{{ {nope}"}, inv.Args)
	})

	t.Run("expansion_with_missing_key_fails", func(t *testing.T) {
		c := Command{Cmd: "x", Args: []string{"{nope}:{{$val}}"}}
		_, err := c.Render(table, []string{"a"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingKey))
	})
}
