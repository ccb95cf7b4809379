package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters(t *testing.T) {
	f, err := NewFilters([]string{`\.exe$`, `\.bat$`}, []string{`setup`, `^install`})
	require.NoError(t, err)

	items := []string{"GAME.EXE", "setup.exe", "install.bat", "run.bat", "readme.txt", "sub/install.exe"}
	assert.Equal(t, []string{"GAME.EXE", "run.bat", "sub/install.exe"}, f.Filter(items))

	t.Run("no_includes_matches_nothing", func(t *testing.T) {
		f, err := NewFilters(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, f.Filter(items))
	})
}

func TestFeature(t *testing.T) {
	f, err := FeatureSpec{Pattern: `dosbox`}.Compile()
	require.NoError(t, err)
	assert.Equal(t, DefaultWeight, f.Weight)
	assert.Equal(t, 2, f.ScoreAll([]string{"DOSBox.conf", "dosbox/readme", "game.exe"}))

	f, err = FeatureSpec{Pattern: `\.exe$`, Weight: intPtr(0)}.Compile()
	require.NoError(t, err)
	assert.Equal(t, 0, f.Score("game.exe"))

	p := &Profile{Features: []Feature{mustFeature(t, `\.exe$`, 3), mustFeature(t, `\.com$`, 1)}}
	assert.Equal(t, 7, p.Score([]string{"a.exe", "b.exe", "c.com"}))
}

func mustFeature(t *testing.T, pattern string, weight int) Feature {
	t.Helper()
	f, err := NewFeature(pattern, weight)
	require.NoError(t, err)
	return f
}

func TestProfileFilterExecutables(t *testing.T) {
	p, err := ProfileSpec{
		Command:     Command{Cmd: "dosbox"},
		Executables: []string{`\.(exe|bat)$`},
		Exclude:     []string{`setup`},
	}.Compile("dosbox")
	require.NoError(t, err)

	files := []string{"DOOM/DOOM.EXE", "DOOM/SETUP.EXE", "DOOM/doom1.wad", "GO.BAT"}
	assert.Equal(t, []string{"DOOM/DOOM.EXE", "GO.BAT"}, p.FilterExecutables(files))
	assert.Empty(t, p.FilterExecutables([]string{"readme.txt"}))
}
