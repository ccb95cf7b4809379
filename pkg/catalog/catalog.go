package catalog

import (
	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/logging"
	"github.com/arthur-debert/rxr/pkg/registry"
)

// Catalog holds the extractors and profiles available for a run.
type Catalog struct {
	extractors registry.Registry[*Extractor]
	profiles   registry.Registry[*Profile]
}

// Score is the heuristic score of one profile.
type Score struct {
	Profile string `toml:"profile" yaml:"profile"`
	Score   int    `toml:"score" yaml:"score"`
}

// New builds a catalog from already compiled entries.
func New(extractors map[string]*Extractor, profiles map[string]*Profile) (*Catalog, error) {
	ex, err := registry.FromMap(extractors)
	if err != nil {
		return nil, err
	}
	pr, err := registry.FromMap(profiles)
	if err != nil {
		return nil, err
	}
	return &Catalog{extractors: ex, profiles: pr}, nil
}

// BuildExtractors validates every extractor spec.
func BuildExtractors(specs map[string]ExtractorSpec) (map[string]*Extractor, error) {
	out := make(map[string]*Extractor, len(specs))
	for name, spec := range specs {
		e, err := spec.Build(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "extractor %q", name)
		}
		out[name] = e
	}
	return out, nil
}

// CompileProfiles compiles every profile spec.
func CompileProfiles(specs map[string]ProfileSpec) (map[string]*Profile, error) {
	out := make(map[string]*Profile, len(specs))
	for name, spec := range specs {
		p, err := spec.Compile(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "profile %q", name)
		}
		out[name] = p
	}
	return out, nil
}

// Extractors returns every extractor in name order.
func (c *Catalog) Extractors() []*Extractor {
	var out []*Extractor
	c.extractors.Each(func(_ string, e *Extractor) { out = append(out, e) })
	return out
}

// Profiles returns every profile in name order.
func (c *Catalog) Profiles() []*Profile {
	var out []*Profile
	c.profiles.Each(func(_ string, p *Profile) { out = append(out, p) })
	return out
}

// LookupExtractor returns the extractor called name, or the fallback
// extractor when there is none.
func (c *Catalog) LookupExtractor(name string) (*Extractor, bool) {
	if e, ok := c.extractors.Lookup(name); ok {
		return e, true
	}
	return c.extractors.Lookup(FallbackName)
}

// LookupProfile returns the profile called name, or the fallback profile
// when there is none.
func (c *Catalog) LookupProfile(name string) (*Profile, bool) {
	if p, ok := c.profiles.Lookup(name); ok {
		return p, true
	}
	return c.profiles.Lookup(FallbackName)
}

// SelectExtractor picks the extractor for archive. A non-empty name must
// match an extractor exactly. Otherwise the last extractor, in name order,
// claiming the archive's extension wins, then the fallback extractor.
func (c *Catalog) SelectExtractor(name, archive string) (*Extractor, error) {
	logger := logging.GetLogger("catalog")

	if name != "" {
		e, ok := c.extractors.Lookup(name)
		if !ok {
			return nil, errors.Newf(errors.ErrExtractorNotFound, "extractor %q is not defined", name).
				WithDetail("extractor", name)
		}
		logger.Debug().Str("extractor", name).Msg("Using requested extractor")
		return e, nil
	}

	var selected *Extractor
	c.extractors.Each(func(_ string, e *Extractor) {
		if e.CanExtract(archive) {
			selected = e
		}
	})
	if selected != nil {
		logger.Debug().Str("extractor", selected.Name).Str("archive", archive).Msg("Matched extractor by extension")
		return selected, nil
	}

	if e, ok := c.extractors.Lookup(FallbackName); ok {
		logger.Debug().Str("archive", archive).Msg("Using fallback extractor")
		return e, nil
	}

	return nil, errors.Newf(errors.ErrExtractorNotFound, "no extractor can handle %s", archive).
		WithDetail("archive", archive)
}

// Scores scores every profile against candidates, in name order.
func (c *Catalog) Scores(candidates []string) []Score {
	var out []Score
	c.profiles.Each(func(name string, p *Profile) {
		out = append(out, Score{Profile: name, Score: p.Score(candidates)})
	})
	return out
}

// SelectProfile picks the launch profile. A non-empty name is looked up
// exactly, then the fallback profile is tried. Without a name every profile
// is scored against candidates and the highest score wins, ties going to
// the first name in lexicographic order. When no profile scores above zero
// the fallback profile is preferred over the top scorer.
func (c *Catalog) SelectProfile(name string, candidates []string) (*Profile, error) {
	logger := logging.GetLogger("catalog")

	if name != "" {
		p, ok := c.LookupProfile(name)
		if !ok {
			return nil, errors.Newf(errors.ErrProfileNotFound, "profile %q is not defined", name).
				WithDetail("profile", name)
		}
		logger.Debug().Str("requested", name).Str("profile", p.Name).Msg("Using requested profile")
		return p, nil
	}

	scores := c.Scores(candidates)
	if len(scores) == 0 {
		return nil, errors.New(errors.ErrProfileNotFound, "no profiles are defined")
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	if best.Score <= 0 {
		if p, ok := c.profiles.Lookup(FallbackName); ok {
			logger.Debug().Msg("No profile matched, using fallback profile")
			return p, nil
		}
	}

	logger.Debug().Str("profile", best.Profile).Int("score", best.Score).Msg("Selected profile by score")
	p, _ := c.profiles.Lookup(best.Profile)
	return p, nil
}
