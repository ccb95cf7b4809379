package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rxr/pkg/errors"
)

func intPtr(i int) *int { return &i }

func mustCatalog(t *testing.T, extractors map[string]ExtractorSpec, profiles map[string]ProfileSpec) *Catalog {
	t.Helper()
	ex, err := BuildExtractors(extractors)
	require.NoError(t, err)
	pr, err := CompileProfiles(profiles)
	require.NoError(t, err)
	c, err := New(ex, pr)
	require.NoError(t, err)
	return c
}

func cmd(name string) Command {
	return Command{Cmd: name, Args: []string{"{archive}"}}
}

func TestSelectExtractor(t *testing.T) {
	c := mustCatalog(t, map[string]ExtractorSpec{
		"unzip":    {Extensions: []string{"zip"}, Command: cmd("unzip")},
		"7z":       {Extensions: []string{"zip", "7z"}, Command: cmd("7z")},
		"tar":      {Extensions: []string{"tar", "tar.gz", ".tgz"}, Command: cmd("tar")},
		"fallback": {Command: cmd("bsdtar")},
	}, nil)

	tests := []struct {
		name     string
		explicit string
		archive  string
		want     string
	}{
		{"last_match_in_name_order_wins", "", "/games/doom.zip", "unzip"},
		{"extension_case_ignored", "", "DOOM.ZIP", "unzip"},
		{"multi_part_extension", "", "src.tar.gz", "tar"},
		{"leading_dot_in_catalog", "", "src.tgz", "tar"},
		{"unknown_extension_uses_fallback", "", "disk.rar", "fallback"},
		{"explicit_name", "7z", "doom.zip", "7z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := c.SelectExtractor(tt.explicit, tt.archive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Name)
		})
	}

	t.Run("explicit_miss_is_fatal", func(t *testing.T) {
		e, err := c.SelectExtractor("rar", "doom.zip")
		require.Error(t, err)
		assert.Nil(t, e)
		assert.True(t, errors.IsErrorCode(err, errors.ErrExtractorNotFound))
	})

	t.Run("no_match_without_fallback", func(t *testing.T) {
		c := mustCatalog(t, map[string]ExtractorSpec{"unzip": {Extensions: []string{"zip"}, Command: cmd("unzip")}}, nil)
		_, err := c.SelectExtractor("", "disk.rar")
		assert.True(t, errors.IsErrorCode(err, errors.ErrExtractorNotFound))
	})
}

func TestCanExtract(t *testing.T) {
	e, err := ExtractorSpec{Extensions: []string{"zip"}, Command: cmd("unzip")}.Build("zip")
	require.NoError(t, err)

	assert.True(t, e.CanExtract("archive.zip"))
	assert.False(t, e.CanExtract("archive.tar"))
	assert.False(t, e.CanExtract("zip"))
	assert.False(t, e.IsBuiltin())
}

func TestSelectProfileHeuristic(t *testing.T) {
	profiles := map[string]ProfileSpec{
		"P1": {Command: cmd("p1"), Features: []FeatureSpec{{Pattern: `\.exe$`, Weight: intPtr(2)}}},
		"P2": {Command: cmd("p2"), Features: []FeatureSpec{{Pattern: `\.bat$`}}},
	}
	c := mustCatalog(t, nil, profiles)
	files := []string{"run.exe", "run.bat"}

	assert.Equal(t, []Score{{"P1", 2}, {"P2", 1}}, c.Scores(files))

	p, err := c.SelectProfile("", files)
	require.NoError(t, err)
	assert.Equal(t, "P1", p.Name)

	t.Run("tie_goes_to_first_name", func(t *testing.T) {
		c := mustCatalog(t, nil, map[string]ProfileSpec{
			"zeta":  {Command: cmd("z"), Features: []FeatureSpec{{Pattern: `\.exe$`}}},
			"alpha": {Command: cmd("a"), Features: []FeatureSpec{{Pattern: `\.EXE$`}}},
		})
		for i := 0; i < 10; i++ {
			p, err := c.SelectProfile("", []string{"GAME.exe"})
			require.NoError(t, err)
			assert.Equal(t, "alpha", p.Name)
		}
	})

	t.Run("no_score_prefers_fallback", func(t *testing.T) {
		with := map[string]ProfileSpec{"fallback": {Command: cmd("sh")}}
		for k, v := range profiles {
			with[k] = v
		}
		c := mustCatalog(t, nil, with)
		p, err := c.SelectProfile("", []string{"readme.txt"})
		require.NoError(t, err)
		assert.Equal(t, "fallback", p.Name)
	})

	t.Run("no_score_without_fallback_uses_top_scorer", func(t *testing.T) {
		p, err := c.SelectProfile("", []string{"readme.txt"})
		require.NoError(t, err)
		assert.Equal(t, "P1", p.Name)
	})

	t.Run("empty_catalog", func(t *testing.T) {
		c := mustCatalog(t, nil, nil)
		_, err := c.SelectProfile("", files)
		assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
	})
}

func TestSelectProfileExplicit(t *testing.T) {
	c := mustCatalog(t, nil, map[string]ProfileSpec{
		"dosbox":   {Command: cmd("dosbox")},
		"fallback": {Command: cmd("xdg-open")},
	})

	p, err := c.SelectProfile("dosbox", nil)
	require.NoError(t, err)
	assert.Equal(t, "dosbox", p.Name)

	p, err = c.SelectProfile("scummvm", nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback", p.Name)

	c = mustCatalog(t, nil, map[string]ProfileSpec{"dosbox": {Command: cmd("dosbox")}})
	_, err = c.SelectProfile("scummvm", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))

	_, ok := c.LookupProfile("scummvm")
	assert.False(t, ok)
}

func TestLookupExtractor(t *testing.T) {
	c := mustCatalog(t, map[string]ExtractorSpec{
		"zip":      {Extensions: []string{"zip"}, Command: cmd("unzip")},
		"fallback": {Command: cmd("bsdtar")},
	}, nil)

	e, ok := c.LookupExtractor("zip")
	require.True(t, ok)
	assert.Equal(t, "zip", e.Name)

	e, ok = c.LookupExtractor("rar")
	require.True(t, ok)
	assert.Equal(t, "fallback", e.Name)

	names := []string{}
	for _, e := range c.Extractors() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"fallback", "zip"}, names)
}

func TestCompileFailsOnInvalidPattern(t *testing.T) {
	tests := []struct {
		name string
		spec ProfileSpec
	}{
		{"executable", ProfileSpec{Command: cmd("x"), Executables: []string{"("}}},
		{"exclude", ProfileSpec{Command: cmd("x"), Exclude: []string{"[a-"}}},
		{"feature", ProfileSpec{Command: cmd("x"), Features: []FeatureSpec{{Pattern: "*"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileProfiles(map[string]ProfileSpec{"broken": tt.spec})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
			assert.Contains(t, err.Error(), "broken")
		})
	}

	t.Run("missing_program", func(t *testing.T) {
		_, err := BuildExtractors(map[string]ExtractorSpec{"zip": {Extensions: []string{"zip"}}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("bad_expansion", func(t *testing.T) {
		_, err := BuildExtractors(map[string]ExtractorSpec{"zip": {Command: Command{Cmd: "unzip", Args: []string{"{{$i +}}"}}}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateParse))
	})
}
