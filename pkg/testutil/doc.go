// Package testutil provides fixtures shared by rxr tests.
//
// Key components:
//   - MemoryFS: an afero in-memory filesystem seeded from a path to content map
//   - ZipArchive and TarArchive: archives built in memory for extraction tests
//   - IsolateEnv: clears RXR_ variables and points XDG directories at temp dirs
//
// All test data should be defined inline, not in external files.
package testutil
