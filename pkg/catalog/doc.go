// Package catalog holds the capabilities rxr can use for a run: extractors,
// which unpack archives and are chosen by file extension, and profiles, which
// launch an extracted program and are chosen by name or by scoring the
// extracted files against weighted features.
//
// Every regular expression in a catalog is compiled, case insensitive, when
// the catalog is built, so an invalid pattern fails before anything runs.
// Lookups iterate names in lexicographic order, which makes every selection
// deterministic.
package catalog
