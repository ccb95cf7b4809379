// Package finder enumerates the files of an extracted archive.
package finder

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/logging"
)

// DefaultIgnore lists globs skipped by every search: archive tool metadata
// that never holds anything worth launching.
var DefaultIgnore = []string{"**/__MACOSX/**", "**/.DS_Store"}

// Matcher decides whether a relative path is a candidate.
type Matcher interface {
	Match(path string) bool
}

// Find walks root recursively and returns the paths of regular files,
// relative to root with forward slashes and sorted. Paths matching an
// ignore glob are skipped, directories included. A nil match accepts
// every file.
func Find(fs afero.Fs, root string, match Matcher, ignore []string) ([]string, error) {
	logger := logging.GetLogger("finder")

	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrPatternInvalid, "invalid ignore glob %q", pattern).
				WithDetail("pattern", pattern)
		}
	}

	var found []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if ignored(rel, ignore) {
			logger.Trace().Str("path", rel).Msg("Ignoring path")
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if match == nil || match.Match(rel) {
			found = append(found, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to walk %s", root)
	}

	sort.Strings(found)
	logger.Debug().Str("root", root).Int("count", len(found)).Msg("Files found")
	return found, nil
}

func ignored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, path+"/"); ok {
			return true
		}
	}
	return false
}
