package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"os"
	"path"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// MemoryFS returns an in-memory filesystem holding files, keyed by path.
func MemoryFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, name := range sortedKeys(files) {
		WriteFile(t, fs, name, files[name])
	}
	return fs
}

// WriteFile writes content to name, creating parent directories.
func WriteFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(path.Dir(name), 0755))
	require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
}

// ZipArchive builds a zip archive holding files.
func ZipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range sortedKeys(files) {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// TarArchive builds an uncompressed tar archive holding files. Names are
// written as given, so entries escaping the archive root can be produced.
func TarArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := tar.NewWriter(&buf)
	for _, name := range sortedKeys(files) {
		content := files[name]
		require.NoError(t, w.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// IsolateEnv clears every RXR_ variable and points the XDG state and config
// homes at fresh temp dirs, so tests never read the user's configuration or
// write to their log file.
func IsolateEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "RXR_") {
			t.Setenv(name, "")
		}
	}
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
