package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/rxr/pkg/catalog"
	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/logging"
)

// Configuration is a fully resolved configuration. Every path is expanded
// and absolute paths stay absolute; Extractor and Profile are empty unless
// requested explicitly.
type Configuration struct {
	Archives  []string
	Config    string
	DataDir   string
	TempDir   string
	TargetDir string
	Extractor string
	Profile   string
	Paths     Paths
	Catalog   *catalog.Catalog
}

// Load resolves the configuration from the command line, environment and
// compiled fragments. The configuration file is taken from the first of them
// naming one. Its contents rank below the command line and above the
// environment and the compiled defaults.
func Load(cli, env, compiled Fragment) (*Configuration, error) {
	logger := logging.GetLogger("config")

	path := first(cli.Config, first(env.Config, compiled.Config))
	if path == nil {
		return nil, errors.New(errors.ErrNoConfig, "no configuration file was provided")
	}

	expanded := ExpandPath(*path)
	persisted, err := ReadPersisted(expanded)
	if err != nil {
		return nil, err
	}

	merged := Fold(cli, persisted, env, compiled)
	merged.Config = &expanded

	cfg, err := Validate(merged)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("config", cfg.Config).
		Str("temp", cfg.TempDir).
		Str("target", cfg.TargetDir).
		Msg("Configuration resolved")
	return cfg, nil
}

// Validate turns a merged fragment into a Configuration. It fails when the
// catalog has no extractors or no profiles, when neither a temp nor a target
// directory is known, or when no archive is given. An explicit target
// directory is used as is, with the temp directory defaulting to its parent;
// otherwise the target is derived inside the temp directory from the archive
// names.
func Validate(f Fragment) (*Configuration, error) {
	if f.Extractors == nil {
		return nil, errors.New(errors.ErrNoExtractors, "no extractors were provided in the config file")
	}
	if f.Profiles == nil {
		return nil, errors.New(errors.ErrNoProfiles, "no profiles were provided in the config file")
	}
	if f.TempDir == nil && f.TargetDir == nil {
		return nil, errors.New(errors.ErrNoTemp, "no temp or target directory was provided")
	}
	if len(f.Archives) == 0 {
		return nil, errors.New(errors.ErrNoArchives, "no archives were provided")
	}

	cat, err := catalog.New(f.Extractors, f.Profiles)
	if err != nil {
		return nil, err
	}

	cfg := &Configuration{
		Archives:  append([]string(nil), f.Archives...),
		Config:    ExpandPath(deref(f.Config)),
		Extractor: deref(f.Extractor),
		Profile:   deref(f.Profile),
		Paths:     resolvePaths(f.Stdout, f.Stderr),
		Catalog:   cat,
	}

	if f.TargetDir != nil {
		cfg.TargetDir = filepath.Clean(ExpandPath(*f.TargetDir))
		if f.TempDir != nil {
			cfg.TempDir = filepath.Clean(ExpandPath(*f.TempDir))
		} else {
			cfg.TempDir = filepath.Dir(cfg.TargetDir)
		}
	} else {
		cfg.TempDir = filepath.Clean(ExpandPath(*f.TempDir))
		cfg.TargetDir = filepath.Join(cfg.TempDir, DeriveTargetName(cfg.Archives))
	}

	if f.DataDir != nil {
		cfg.DataDir = filepath.Clean(ExpandPath(*f.DataDir))
	} else {
		xdg.Reload()
		cfg.DataDir = filepath.Join(xdg.DataHome, AppName)
	}

	return cfg, nil
}

// SelectExtractor picks the extractor for the first archive.
func (c *Configuration) SelectExtractor() (*catalog.Extractor, error) {
	return c.Catalog.SelectExtractor(c.Extractor, c.Archives[0])
}

// SelectProfile picks the launch profile, scoring candidates unless a
// profile was requested.
func (c *Configuration) SelectProfile(candidates []string) (*catalog.Profile, error) {
	return c.Catalog.SelectProfile(c.Profile, candidates)
}
