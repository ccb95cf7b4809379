package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/rxr/pkg/errors"
)

// ConfigFileNames are the names looked up inside a configuration directory,
// in order.
var ConfigFileNames = []string{"rxr.toml", "rxr.yaml", "rxr.yml", "rxr.json"}

// Flags holds the command line options. Empty strings are unset.
type Flags struct {
	Archives        []string
	Config          string
	ConfigDirectory string
	DataDir         string
	TempDir         string
	TargetDir       string
	Extractor       string
	Profile         string
}

// FromFlags builds the command line fragment. When no config file is given
// but a config directory is, the first configuration file found in that
// directory is used.
func FromFlags(flags Flags) (Fragment, error) {
	frag := Fragment{
		Config:    optional(flags.Config),
		DataDir:   optional(flags.DataDir),
		TempDir:   optional(flags.TempDir),
		TargetDir: optional(flags.TargetDir),
		Extractor: optional(flags.Extractor),
		Profile:   optional(flags.Profile),
	}
	if len(flags.Archives) > 0 {
		frag.Archives = append([]string(nil), flags.Archives...)
	}

	if frag.Config == nil && flags.ConfigDirectory != "" {
		path, err := findConfigFile(ExpandPath(flags.ConfigDirectory))
		if err != nil {
			return Fragment{}, err
		}
		frag.Config = &path
	}

	return frag, nil
}

// findConfigFile returns the first of ConfigFileNames present in dir.
func findConfigFile(dir string) (string, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.Newf(errors.ErrNotFound, "no configuration file found in %s", dir).
		WithDetail("directory", dir)
}
