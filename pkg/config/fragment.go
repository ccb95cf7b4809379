package config

import (
	"github.com/arthur-debert/rxr/pkg/catalog"
)

// Fragment is one partial configuration input. A nil field is unset.
type Fragment struct {
	Archives   []string
	Config     *string
	DataDir    *string
	TempDir    *string
	TargetDir  *string
	Extractor  *string
	Profile    *string
	Stdout     *string
	Stderr     *string
	Extractors map[string]*catalog.Extractor
	Profiles   map[string]*catalog.Profile
}

// Merge combines two fragments field by field. A field set in higher always
// wins; a field unset in higher is taken from lower.
func Merge(higher, lower Fragment) Fragment {
	return Fragment{
		Archives:   firstSlice(higher.Archives, lower.Archives),
		Config:     first(higher.Config, lower.Config),
		DataDir:    first(higher.DataDir, lower.DataDir),
		TempDir:    first(higher.TempDir, lower.TempDir),
		TargetDir:  first(higher.TargetDir, lower.TargetDir),
		Extractor:  first(higher.Extractor, lower.Extractor),
		Profile:    first(higher.Profile, lower.Profile),
		Stdout:     first(higher.Stdout, lower.Stdout),
		Stderr:     first(higher.Stderr, lower.Stderr),
		Extractors: firstMap(higher.Extractors, lower.Extractors),
		Profiles:   firstMap(higher.Profiles, lower.Profiles),
	}
}

// Fold merges fragments given in decreasing priority.
func Fold(fragments ...Fragment) Fragment {
	var out Fragment
	for i := len(fragments) - 1; i >= 0; i-- {
		out = Merge(fragments[i], out)
	}
	return out
}

func first[T any](higher, lower *T) *T {
	if higher != nil {
		return higher
	}
	return lower
}

func firstSlice[T any](higher, lower []T) []T {
	if higher != nil {
		return higher
	}
	return lower
}

func firstMap[K comparable, V any](higher, lower map[K]V) map[K]V {
	if higher != nil {
		return higher
	}
	return lower
}

// optional returns nil for an empty string, marking the field unset.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
