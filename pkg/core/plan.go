package core

import (
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/rxr/pkg/catalog"
	"github.com/arthur-debert/rxr/pkg/errors"
)

// Plan describes a resolved run. Launch is only known once an executable
// has been chosen.
type Plan struct {
	Archives    []string            `toml:"archives" yaml:"archives"`
	Config      string              `toml:"config" yaml:"config"`
	DataDir     string              `toml:"data_dir" yaml:"data_dir"`
	TempDir     string              `toml:"temp_dir" yaml:"temp_dir"`
	TargetDir   string              `toml:"target_dir" yaml:"target_dir"`
	Extractor   string              `toml:"extractor" yaml:"extractor"`
	Builtin     bool                `toml:"builtin" yaml:"builtin"`
	SkipExtract bool                `toml:"skip_extract" yaml:"skip_extract"`
	Extract     catalog.Invocation  `toml:"extract" yaml:"extract"`
	Profile     string              `toml:"profile,omitempty" yaml:"profile,omitempty"`
	Scores      []catalog.Score     `toml:"scores,omitempty" yaml:"scores,omitempty"`
	Executable  string              `toml:"executable,omitempty" yaml:"executable,omitempty"`
	Launch      *catalog.Invocation `toml:"launch,omitempty" yaml:"launch,omitempty"`
	Mappings    map[string]string   `toml:"mappings" yaml:"mappings"`
}

// Supported plan output formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Write encodes the plan to w as TOML or YAML.
func (p *Plan) Write(w io.Writer, format string) error {
	switch format {
	case FormatTOML, "":
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(p); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode plan")
		}
		return nil
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode plan")
		}
		return enc.Close()
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown output format %q", format).
			WithDetail("format", format)
	}
}
