package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/rxr/pkg/errors"
)

// EnvPrefix prefixes every environment variable rxr reads.
const EnvPrefix = "RXR_"

// AppName names the rxr directories under the XDG base directories.
const AppName = "rxr"

// FromEnvironment builds the environment fragment from RXR_CONFIG,
// RXR_DATA_DIR, RXR_TEMP_DIR, RXR_TARGET_DIR, RXR_EXTRACTOR and RXR_PROFILE.
// Without RXR_CONFIG the XDG config directories are searched for an rxr
// configuration file; without RXR_DATA_DIR an explicitly set XDG_DATA_HOME
// provides the data directory.
func FromEnvironment() (Fragment, error) {
	k := koanf.New(keyDelim)
	err := k.Load(env.Provider(EnvPrefix, keyDelim, func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Fragment{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	frag := Fragment{
		Config:    optional(k.String("config")),
		DataDir:   optional(k.String("data_dir")),
		TempDir:   optional(k.String("temp_dir")),
		TargetDir: optional(k.String("target_dir")),
		Extractor: optional(k.String("extractor")),
		Profile:   optional(k.String("profile")),
	}

	xdg.Reload()
	if frag.Config == nil {
		frag.Config = searchXDGConfig()
	}
	if frag.DataDir == nil && os.Getenv("XDG_DATA_HOME") != "" {
		frag.DataDir = optional(filepath.Join(xdg.DataHome, AppName))
	}

	return frag, nil
}

func searchXDGConfig() *string {
	for _, name := range ConfigFileNames {
		if path, err := xdg.SearchConfigFile(filepath.Join(AppName, name)); err == nil {
			return &path
		}
	}
	return nil
}
