// Package config resolves the configuration of a run.
//
// Four partial inputs, called fragments, are read: command line flags, the
// persisted catalog file, RXR_* environment variables and defaults compiled
// into the binary. They are folded in that priority order, each field taking
// the first value defined, and the result is validated into a
// Configuration: paths expanded, the target directory derived when only a
// temp directory is known, and the extractor and profile catalog compiled.
package config
