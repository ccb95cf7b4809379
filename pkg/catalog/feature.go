package catalog

import "regexp"

// DefaultWeight is the weight of a feature that does not set one.
const DefaultWeight = 1

// Feature is a scoring rule: every candidate path matching Pattern adds
// Weight to a profile's score.
type Feature struct {
	Pattern *regexp.Regexp
	Weight  int
}

// FeatureSpec is the catalog file form of a Feature.
type FeatureSpec struct {
	Pattern string `koanf:"pattern" toml:"pattern" yaml:"pattern"`
	Weight  *int   `koanf:"weight" toml:"weight,omitempty" yaml:"weight,omitempty"`
}

// NewFeature compiles pattern into a feature.
func NewFeature(pattern string, weight int) (Feature, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return Feature{}, err
	}
	return Feature{Pattern: re, Weight: weight}, nil
}

// Compile builds the feature, applying the default weight.
func (s FeatureSpec) Compile() (Feature, error) {
	weight := DefaultWeight
	if s.Weight != nil {
		weight = *s.Weight
	}
	return NewFeature(s.Pattern, weight)
}

// Score returns the weight if item matches, zero otherwise.
func (f Feature) Score(item string) int {
	if f.Pattern.MatchString(item) {
		return f.Weight
	}
	return 0
}

// ScoreAll sums Score over items.
func (f Feature) ScoreAll(items []string) int {
	total := 0
	for _, item := range items {
		total += f.Score(item)
	}
	return total
}
