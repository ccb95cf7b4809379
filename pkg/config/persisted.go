package config

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/rxr/pkg/catalog"
	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/logging"
)

// keyDelim separates nested koanf keys. Catalog entry names such as
// "tar.gz" contain dots, so the default "." cannot be used.
const keyDelim = "::"

// Persisted is the layout of the configuration file.
type Persisted struct {
	DataDir    string                           `koanf:"data_dir"`
	TempDir    string                           `koanf:"temp_dir"`
	TargetDir  string                           `koanf:"target_dir"`
	Extractor  string                           `koanf:"extractor"`
	Profile    string                           `koanf:"profile"`
	Paths      Paths                            `koanf:"paths"`
	Extractors map[string]catalog.ExtractorSpec `koanf:"extractors"`
	Profiles   map[string]catalog.ProfileSpec   `koanf:"profiles"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// parserFor picks the koanf parser matching a file extension. Unknown
// extensions are read as TOML.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return toml.Parser()
	}
}

// ReadPersisted loads the configuration file at path and returns its
// fragment. Every catalog pattern is compiled here, so a broken catalog
// fails before anything runs.
func ReadPersisted(path string) (Fragment, error) {
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loading configuration file")

	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return Fragment{}, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load configuration from %s", path).
			WithDetail("path", path)
	}

	return decodePersisted(k, path)
}

// ParsePersisted parses configuration data in the given format ("toml",
// "yaml" or "json").
func ParsePersisted(data []byte, format string) (Fragment, error) {
	name := "config." + format
	k := koanf.New(keyDelim)
	if err := k.Load(&rawBytesProvider{bytes: data}, parserFor(name)); err != nil {
		return Fragment{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s configuration", format)
	}
	return decodePersisted(k, name)
}

func decodePersisted(k *koanf.Koanf, source string) (Fragment, error) {
	var p Persisted
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &p,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &p, unmarshalConf); err != nil {
		return Fragment{}, errors.Wrapf(err, errors.ErrConfigParse, "invalid configuration in %s", source)
	}

	frag := Fragment{
		DataDir:   optional(p.DataDir),
		TempDir:   optional(p.TempDir),
		TargetDir: optional(p.TargetDir),
		Extractor: optional(p.Extractor),
		Profile:   optional(p.Profile),
		Stdout:    optional(p.Paths.Stdout),
		Stderr:    optional(p.Paths.Stderr),
	}

	if k.Exists("extractors") {
		extractors, err := catalog.BuildExtractors(p.Extractors)
		if err != nil {
			return Fragment{}, errors.Wrapf(err, errors.GetErrorCode(err), "invalid catalog in %s", source)
		}
		frag.Extractors = extractors
	}
	if k.Exists("profiles") {
		profiles, err := catalog.CompileProfiles(p.Profiles)
		if err != nil {
			return Fragment{}, errors.Wrapf(err, errors.GetErrorCode(err), "invalid catalog in %s", source)
		}
		frag.Profiles = profiles
	}

	return frag, nil
}
