package core

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rxr/pkg/config"
	"github.com/arthur-debert/rxr/pkg/mappings"
)

// BaseMappings builds the mapping table shared by the extract and launch
// stages. The first archive provides the archive keys.
func BaseMappings(cfg *config.Configuration) mappings.Table {
	archive := ""
	if len(cfg.Archives) > 0 {
		archive = cfg.Archives[0]
	}
	name := filepath.Base(archive)
	ext := filepath.Ext(name)

	return mappings.New().
		Insert("config", cfg.Config).
		Insert("data", cfg.DataDir).
		Insert("tmp", cfg.TempDir).
		Insert("archive", archive).
		Insert("archive.name", name).
		Insert("archive.stem", strings.TrimSuffix(name, ext)).
		Insert("archive.ext", strings.TrimPrefix(ext, ".")).
		Insert("target", cfg.TargetDir).
		Insert("stdout", cfg.Paths.Stdout).
		Insert("stderr", cfg.Paths.Stderr)
}

// LaunchMappings extends table with the chosen executable, given relative
// to the target directory.
func LaunchMappings(table mappings.Table, target, executable string) mappings.Table {
	path := filepath.Join(target, filepath.FromSlash(executable))
	return table.
		Insert("executable", path).
		Insert("executable_dir", filepath.Dir(path))
}
