// Package mappings implements the substitution table that accumulates
// resolved values (paths, archive names, executables) during a run.
//
// A Table is a value: Insert returns a new table and never modifies the
// receiver, so each stage owns the table it was handed and returns the
// extended one to the next stage. A value is substituted against the table
// contents at the time it is inserted, so keys must be inserted before any
// value that references them.
package mappings

import (
	"sort"
	"strings"
)

// Table maps keys to already-substituted values.
type Table struct {
	values map[string]string
}

// New returns an empty table.
func New() Table {
	return Table{values: map[string]string{}}
}

// Insert substitutes the current mappings into value, stores it under key
// and returns the extended table.
func (t Table) Insert(key, value string) Table {
	next := Table{values: make(map[string]string, len(t.values)+1)}
	for k, v := range t.values {
		next.values[k] = v
	}
	next.values[key] = t.Substitute(value)
	return next
}

// Get returns the value stored for key.
func (t Table) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Len returns the number of mappings.
func (t Table) Len() int {
	return len(t.values)
}

// Keys returns the keys in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns a copy of the mappings.
func (t Table) Values() map[string]string {
	out := make(map[string]string, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Substitute replaces every {key} in text with its value. Placeholders with
// no mapping are left untouched.
func (t Table) Substitute(text string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	for _, key := range t.Keys() {
		text = strings.ReplaceAll(text, "{"+key+"}", t.values[key])
	}
	return text
}

// SubstituteSlice substitutes every element of values in place.
func (t Table) SubstituteSlice(values []string) {
	for i, v := range values {
		values[i] = t.Substitute(v)
	}
}

// SubstituteMap substitutes every value of values in place.
func (t Table) SubstituteMap(values map[string]string) {
	for k, v := range values {
		values[k] = t.Substitute(v)
	}
}
