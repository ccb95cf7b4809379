package core

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/arthur-debert/rxr/pkg/catalog"
	"github.com/arthur-debert/rxr/pkg/config"
	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/finder"
	"github.com/arthur-debert/rxr/pkg/logging"
	"github.com/arthur-debert/rxr/pkg/mappings"
	"github.com/arthur-debert/rxr/pkg/menu"
	"github.com/arthur-debert/rxr/pkg/runner"
)

// RunOptions contains the collaborators of a run. Nil fields get the
// production defaults: the OS filesystem, os/exec and a terminal menu.
type RunOptions struct {
	DryRun     bool
	FileSystem afero.Fs
	Runner     runner.Runner
	Selector   menu.Selector
	Ignore     []string
}

func (o RunOptions) withDefaults() RunOptions {
	if o.FileSystem == nil {
		o.FileSystem = afero.NewOsFs()
	}
	if o.Runner == nil {
		o.Runner = runner.NewExec()
	}
	if o.Selector == nil {
		o.Selector = menu.New("Select the program to run")
	}
	if o.Ignore == nil {
		o.Ignore = finder.DefaultIgnore
	}
	return o
}

// Run executes the configured run and returns its plan. In dry-run mode
// nothing is extracted or launched; the plan then holds the extract
// command and, when the target already exists, the profile scores.
func Run(ctx context.Context, cfg *config.Configuration, opts RunOptions) (*Plan, error) {
	logger := logging.GetLogger("core.run")
	opts = opts.withDefaults()
	done := logging.LogOperationStart(logger, "run")
	defer done()

	// Step 1: Resolve mappings and the extractor
	table := BaseMappings(cfg)
	extractor, err := cfg.SelectExtractor()
	if err != nil {
		return nil, err
	}
	extract, err := extractor.Command.Render(table, cfg.Archives)
	if err != nil {
		return nil, err
	}

	exists, err := afero.DirExists(opts.FileSystem, cfg.TargetDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot check %s", cfg.TargetDir)
	}

	plan := &Plan{
		Archives:    cfg.Archives,
		Config:      cfg.Config,
		DataDir:     cfg.DataDir,
		TempDir:     cfg.TempDir,
		TargetDir:   cfg.TargetDir,
		Extractor:   extractor.Name,
		Builtin:     extractor.IsBuiltin(),
		SkipExtract: exists,
		Extract:     extract,
		Mappings:    table.Values(),
	}

	logger.Info().
		Str("extractor", extractor.Name).
		Str("target", cfg.TargetDir).
		Bool("skipExtract", exists).
		Msg("Run planned")

	if opts.DryRun {
		if exists {
			if _, _, err := planProfile(cfg, opts, plan); err != nil {
				return nil, err
			}
		}
		return plan, nil
	}

	// Step 2: Extract unless a previous run already did
	if !exists {
		if err := extractArchives(ctx, cfg, opts, extractor, extract); err != nil {
			return nil, err
		}
	}

	// Step 3: Select the profile from the extracted files
	profile, files, err := planProfile(cfg, opts, plan)
	if err != nil {
		return nil, err
	}

	// Step 4: Choose the executable
	candidates := profile.FilterExecutables(files)
	if len(candidates) == 0 {
		return nil, errors.Newf(errors.ErrNoExecutables, "profile %s found nothing to run in %s", profile.Name, cfg.TargetDir).
			WithDetail("profile", profile.Name)
	}
	choice, err := opts.Selector.Select(candidates)
	if err != nil {
		return nil, err
	}
	plan.Executable = candidates[choice]

	// Step 5: Launch
	launchTable := LaunchMappings(table, cfg.TargetDir, plan.Executable)
	launch, err := profile.Command.Render(launchTable, cfg.Archives)
	if err != nil {
		return nil, err
	}
	plan.Launch = &launch
	plan.Mappings = launchTable.Values()

	if err := launchProgram(ctx, opts, launchTable, launch); err != nil {
		return nil, err
	}
	return plan, nil
}

// planProfile scores the extracted files and records the chosen profile. It
// returns the profile together with every file found under the target.
func planProfile(cfg *config.Configuration, opts RunOptions, plan *Plan) (*catalog.Profile, []string, error) {
	files, err := finder.Find(opts.FileSystem, cfg.TargetDir, nil, opts.Ignore)
	if err != nil {
		return nil, nil, err
	}

	profile, err := cfg.SelectProfile(files)
	if err != nil {
		return nil, nil, err
	}
	plan.Profile = profile.Name
	if cfg.Profile == "" {
		plan.Scores = cfg.Catalog.Scores(files)
	}
	return profile, files, nil
}

func extractArchives(ctx context.Context, cfg *config.Configuration, opts RunOptions, extractor *catalog.Extractor, inv catalog.Invocation) error {
	logger := logging.GetLogger("core.extract")

	if err := opts.FileSystem.MkdirAll(cfg.TargetDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", cfg.TargetDir)
	}

	if extractor.IsBuiltin() {
		for _, archive := range cfg.Archives {
			if _, err := runner.ExtractArchive(ctx, opts.FileSystem, archive, cfg.TargetDir); err != nil {
				return err
			}
		}
		return nil
	}

	result, err := opts.Runner.Run(ctx, runner.Spec{
		Program: inv.Program,
		Args:    inv.Args,
		Env:     inv.Env,
		Dir:     inv.Dir,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractFailed, "extractor %s could not be started", extractor.Name)
	}
	if !result.Success() {
		logger.Error().
			Str("extractor", extractor.Name).
			Int("exitCode", result.ExitCode).
			Str("stdout", result.Stdout).
			Str("stderr", result.Stderr).
			Msg("Extraction failed")
		return errors.Newf(errors.ErrExtractFailed, "extractor %s exited with status %d", extractor.Name, result.ExitCode).
			WithDetail("stderr", result.Stderr).
			WithDetail("exitCode", result.ExitCode)
	}
	return nil
}

// launchProgram runs the profile command, writing its output to the
// stdout and stderr files.
func launchProgram(ctx context.Context, opts RunOptions, table mappings.Table, inv catalog.Invocation) error {
	logger := logging.GetLogger("core.launch")

	stdoutPath, _ := table.Get("stdout")
	stderrPath, _ := table.Get("stderr")

	stdout, err := createOutput(opts.FileSystem, stdoutPath)
	if err != nil {
		return err
	}
	defer func() { _ = stdout.Close() }()

	stderr, err := createOutput(opts.FileSystem, stderrPath)
	if err != nil {
		return err
	}
	defer func() { _ = stderr.Close() }()

	result, err := opts.Runner.Run(ctx, runner.Spec{
		Program: inv.Program,
		Args:    inv.Args,
		Env:     inv.Env,
		Dir:     inv.Dir,
		Stdout:  stdout,
		Stderr:  stderr,
	})
	if err != nil {
		return err
	}

	if !result.Success() {
		logger.Warn().Str("program", inv.Program).Int("exitCode", result.ExitCode).Msg("Program exited with an error")
	}
	return nil
}

func createOutput(fs afero.Fs, path string) (afero.File, error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	f, err := fs.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", path)
	}
	return f, nil
}
