package catalog

import "regexp"

// Filters selects items by pattern. An item passes when no exclude pattern
// matches it and at least one include pattern does.
type Filters struct {
	Includes []*regexp.Regexp
	Excludes []*regexp.Regexp
}

// NewFilters compiles include and exclude patterns.
func NewFilters(includes, excludes []string) (Filters, error) {
	inc, err := compilePatterns(includes)
	if err != nil {
		return Filters{}, err
	}
	exc, err := compilePatterns(excludes)
	if err != nil {
		return Filters{}, err
	}
	return Filters{Includes: inc, Excludes: exc}, nil
}

// Match reports whether item passes the filters.
func (f Filters) Match(item string) bool {
	for _, re := range f.Excludes {
		if re.MatchString(item) {
			return false
		}
	}
	for _, re := range f.Includes {
		if re.MatchString(item) {
			return true
		}
	}
	return false
}

// Filter returns the items that pass, preserving order.
func (f Filters) Filter(items []string) []string {
	var out []string
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}
