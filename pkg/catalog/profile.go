package catalog

// Profile launches an extracted program. Executables filters the extracted
// files down to launchable candidates and Features score how well the
// profile fits an extracted tree.
type Profile struct {
	Name        string
	Command     Command
	Executables Filters
	Features    []Feature
}

// ProfileSpec is the catalog file form of a Profile.
type ProfileSpec struct {
	Command     Command       `koanf:"command" toml:"command" yaml:"command"`
	Executables []string      `koanf:"executables" toml:"executables" yaml:"executables"`
	Exclude     []string      `koanf:"exclude" toml:"exclude,omitempty" yaml:"exclude,omitempty"`
	Features    []FeatureSpec `koanf:"features" toml:"features,omitempty" yaml:"features,omitempty"`
}

// Compile compiles every pattern of the spec and returns the named profile.
func (s ProfileSpec) Compile(name string) (*Profile, error) {
	if err := s.Command.Validate(); err != nil {
		return nil, err
	}

	filters, err := NewFilters(s.Executables, s.Exclude)
	if err != nil {
		return nil, err
	}

	features := make([]Feature, 0, len(s.Features))
	for _, fs := range s.Features {
		f, err := fs.Compile()
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}

	return &Profile{Name: name, Command: s.Command, Executables: filters, Features: features}, nil
}

// Score sums, over every feature, its weight times the number of items it
// matches.
func (p *Profile) Score(items []string) int {
	total := 0
	for _, f := range p.Features {
		total += f.ScoreAll(items)
	}
	return total
}

// FilterExecutables returns the candidates the profile can launch.
func (p *Profile) FilterExecutables(candidates []string) []string {
	return p.Executables.Filter(candidates)
}
