// Package core implements the rxr run: resolve the mappings for the
// archives, extract them, pick a profile and an executable, and launch it.
//
// # Mappings
//
// Every command in the catalog is rendered against a mapping table built in
// a fixed order, so a value may refer to any key inserted before it:
//
//	config, data, tmp, archive, archive.name, archive.stem, archive.ext,
//	target, stdout, stderr
//
// The launch stage extends the table with executable and executable_dir.
//
// # Extraction
//
// Extraction is skipped when the target directory already exists, which
// makes a second run of the same archives start immediately. An extractor
// whose command is @builtin unpacks every archive in process; any other
// extractor runs its command once, and a non-zero exit aborts the run.
package core
