package catalog

import (
	"strings"
)

// FallbackName is the catalog entry used when nothing else matches.
const FallbackName = "fallback"

// BuiltinCommand makes an extractor unpack archives in process instead of
// spawning a program.
const BuiltinCommand = "@builtin"

// Extractor unpacks archives whose extension it claims.
type Extractor struct {
	Name       string
	Extensions []string
	Command    Command
}

// ExtractorSpec is the catalog file form of an Extractor.
type ExtractorSpec struct {
	Extensions []string `koanf:"extensions" toml:"extensions" yaml:"extensions"`
	Command    Command  `koanf:"command" toml:"command" yaml:"command"`
}

// Build validates the spec and returns the named extractor.
func (s ExtractorSpec) Build(name string) (*Extractor, error) {
	if err := s.Command.Validate(); err != nil {
		return nil, err
	}

	exts := make([]string, 0, len(s.Extensions))
	for _, ext := range s.Extensions {
		exts = append(exts, strings.ToLower(strings.TrimPrefix(ext, ".")))
	}

	return &Extractor{Name: name, Extensions: exts, Command: s.Command}, nil
}

// CanExtract reports whether path ends with one of the claimed extensions.
// Matching ignores case and supports multi-part extensions like tar.gz.
func (e *Extractor) CanExtract(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range e.Extensions {
		if ext != "" && strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}

// IsBuiltin reports whether the extractor unpacks in process.
func (e *Extractor) IsBuiltin() bool {
	return e.Command.Cmd == BuiltinCommand
}
