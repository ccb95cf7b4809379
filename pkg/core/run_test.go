package core

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/rxr/pkg/catalog"
	"github.com/arthur-debert/rxr/pkg/config"
	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/runner"
	"github.com/arthur-debert/rxr/pkg/testutil"
)

type fakeRunner struct {
	specs    []runner.Spec
	exitCode map[string]int
	output   string
}

func (f *fakeRunner) Run(_ context.Context, spec runner.Spec) (runner.Result, error) {
	f.specs = append(f.specs, spec)
	if spec.Stdout != nil {
		_, _ = fmt.Fprint(spec.Stdout, f.output)
	}
	return runner.Result{ExitCode: f.exitCode[spec.Program], Stderr: "boom"}, nil
}

type pick string

func (p pick) Select(options []string) (int, error) {
	for i, o := range options {
		if o == string(p) {
			return i, nil
		}
	}
	return 0, nil
}

func weight(w int) *int { return &w }

func testConfig(t *testing.T, extractorCmd string, archives ...string) *config.Configuration {
	t.Helper()

	extractors, err := catalog.BuildExtractors(map[string]catalog.ExtractorSpec{
		"zip": {Extensions: []string{"zip"}, Command: catalog.Command{
			Cmd:  extractorCmd,
			Args: []string{"{archive}", "-d", "{target}"},
		}},
	})
	require.NoError(t, err)

	profiles, err := catalog.CompileProfiles(map[string]catalog.ProfileSpec{
		"dosbox": {
			Executables: []string{`\.(exe|bat)$`},
			Exclude:     []string{`setup`},
			Features:    []catalog.FeatureSpec{{Pattern: `\.exe$`, Weight: weight(2)}},
			Command: catalog.Command{
				Cmd:   "dosbox",
				Args:  []string{"{executable}", "-c", "mount {{$i}} {{$val}}"},
				Evars: map[string]string{"GAME": "{archive.stem}"},
				Wd:    "{executable_dir}",
			},
		},
		"scummvm": {
			Executables: []string{`\.lfl$`},
			Features:    []catalog.FeatureSpec{{Pattern: `\.lfl$`}},
			Command:     catalog.Command{Cmd: "scummvm", Args: []string{"--path={target}"}},
		},
	})
	require.NoError(t, err)

	tmp := "/tmp/rxr"
	data := "/data/rxr"
	cfg, err := config.Validate(config.Fragment{
		Archives:   archives,
		TempDir:    &tmp,
		DataDir:    &data,
		Extractors: extractors,
		Profiles:   profiles,
	})
	require.NoError(t, err)
	return cfg
}

func TestRunBuiltinExtraction(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/games/doom.zip", testutil.ZipArchive(t, map[string]string{
		"DOOM/DOOM.EXE":  "MZ",
		"DOOM/SETUP.EXE": "MZ",
		"DOOM/doom1.wad": "IWAD",
	}), 0644))

	cfg := testConfig(t, catalog.BuiltinCommand, "/games/doom.zip")
	run := &fakeRunner{output: "started"}

	plan, err := Run(context.Background(), cfg, RunOptions{FileSystem: fs, Runner: run, Selector: pick("")})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/rxr/doom", plan.TargetDir)
	assert.True(t, plan.Builtin)
	assert.False(t, plan.SkipExtract)
	assert.Equal(t, "dosbox", plan.Profile)
	assert.Equal(t, []catalog.Score{{Profile: "dosbox", Score: 4}, {Profile: "scummvm", Score: 0}}, plan.Scores)
	assert.Equal(t, "DOOM/DOOM.EXE", plan.Executable)

	require.Len(t, run.specs, 1, "builtin extraction must not spawn a program")
	launch := run.specs[0]
	assert.Equal(t, "dosbox", launch.Program)
	assert.Equal(t, []string{"/tmp/rxr/doom/DOOM/DOOM.EXE", "-c", "mount 0 /games/doom.zip"}, launch.Args)
	assert.Equal(t, map[string]string{"GAME": "doom"}, launch.Env)
	assert.Equal(t, "/tmp/rxr/doom/DOOM", launch.Dir)

	out, err := afero.ReadFile(fs, "/tmp/rxr/doom/stdout")
	require.NoError(t, err)
	assert.Equal(t, "started", string(out))
	exists, _ := afero.Exists(fs, "/tmp/rxr/doom/stderr")
	assert.True(t, exists)

	assert.Equal(t, "/tmp/rxr/doom/DOOM/DOOM.EXE", plan.Mappings["executable"])
	assert.Equal(t, "doom.zip", plan.Mappings["archive.name"])
	assert.Equal(t, "zip", plan.Mappings["archive.ext"])
}

func TestRunExternalExtractor(t *testing.T) {
	t.Run("non_zero_exit_aborts", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		cfg := testConfig(t, "unzip", "/games/doom.zip")
		run := &fakeRunner{exitCode: map[string]int{"unzip": 9}}

		_, err := Run(context.Background(), cfg, RunOptions{FileSystem: fs, Runner: run, Selector: pick("")})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrExtractFailed))
		assert.Equal(t, "boom", errors.GetErrorDetails(err)["stderr"])

		require.Len(t, run.specs, 1)
		assert.Equal(t, "unzip", run.specs[0].Program)
		assert.Equal(t, []string{"/games/doom.zip", "-d", "/tmp/rxr/doom"}, run.specs[0].Args)
		assert.Equal(t, "/tmp/rxr/doom", run.specs[0].Dir)
	})

	t.Run("existing_target_skips_extraction", func(t *testing.T) {
		fs := testutil.MemoryFS(t, map[string]string{
			"/tmp/rxr/doom/GAME.EXE":    "MZ",
			"/tmp/rxr/doom/INSTALL.BAT": "@echo",
		})

		cfg := testConfig(t, "unzip", "/games/doom.zip")
		run := &fakeRunner{}

		plan, err := Run(context.Background(), cfg, RunOptions{FileSystem: fs, Runner: run, Selector: pick("INSTALL.BAT")})
		require.NoError(t, err)
		assert.True(t, plan.SkipExtract)
		assert.Equal(t, "INSTALL.BAT", plan.Executable)
		require.Len(t, run.specs, 1)
		assert.Equal(t, "dosbox", run.specs[0].Program)
	})
}

func TestRunExplicitProfileWithoutExecutables(t *testing.T) {
	fs := testutil.MemoryFS(t, map[string]string{"/tmp/rxr/doom/GAME.EXE": "MZ"})

	cfg := testConfig(t, "unzip", "/games/doom.zip")
	cfg.Profile = "scummvm"

	_, err := Run(context.Background(), cfg, RunOptions{FileSystem: fs, Runner: &fakeRunner{}, Selector: pick("")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoExecutables))
}

func TestRunDryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig(t, "unzip", "/games/foo_v1.zip", "/games/foo_v2.zip")
	run := &fakeRunner{}

	plan, err := Run(context.Background(), cfg, RunOptions{DryRun: true, FileSystem: fs, Runner: run})
	require.NoError(t, err)

	assert.Empty(t, run.specs)
	exists, _ := afero.DirExists(fs, plan.TargetDir)
	assert.False(t, exists)

	assert.Equal(t, "/tmp/rxr/foo_v1_2", plan.TargetDir)
	assert.Equal(t, "zip", plan.Extractor)
	assert.Equal(t, []string{"/games/foo_v1.zip", "-d", "/tmp/rxr/foo_v1_2"}, plan.Extract.Args)
	assert.Empty(t, plan.Profile)
	assert.Nil(t, plan.Launch)

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, plan.Write(&buf, FormatTOML))

		var decoded map[string]interface{}
		require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "/tmp/rxr/foo_v1_2", decoded["target_dir"])
		assert.Equal(t, "zip", decoded["extractor"])
		assert.Equal(t, "foo_v1.zip", decoded["mappings"].(map[string]interface{})["archive.name"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, plan.Write(&buf, FormatYAML))

		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "unzip", decoded["extract"].(map[string]interface{})["program"])
	})

	t.Run("unknown_format", func(t *testing.T) {
		err := plan.Write(&bytes.Buffer{}, "xml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
