package runner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/spf13/afero"

	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/logging"
)

// ExtractArchive unpacks archive into target without an external program.
// The format is detected from the file name and contents. Entries that
// would land outside target are skipped, as are symlinks. It returns the
// number of files written.
func ExtractArchive(ctx context.Context, fs afero.Fs, archive, target string) (int, error) {
	logger := logging.GetLogger("runner")

	file, err := fs.Open(archive)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "failed to open archive %s", archive)
	}
	defer func() { _ = file.Close() }()

	format, input, err := archives.Identify(ctx, filepath.Base(archive), file)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrExtractFailed, "unrecognised archive format: %s", archive)
	}
	extractor, ok := format.(archives.Extractor)
	if !ok {
		return 0, errors.Newf(errors.ErrExtractFailed, "format %s cannot be extracted", format.Extension())
	}

	if err := fs.MkdirAll(target, 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", target)
	}

	root := filepath.Clean(target) + string(os.PathSeparator)
	written := 0
	handler := func(ctx context.Context, f archives.FileInfo) error {
		dest := filepath.Clean(filepath.Join(target, f.NameInArchive))
		if !strings.HasPrefix(dest+string(os.PathSeparator), root) {
			logger.Warn().Str("entry", f.NameInArchive).Msg("Skipping entry outside target directory")
			return nil
		}

		if f.IsDir() {
			return fs.MkdirAll(dest, 0755)
		}
		if f.Mode()&os.ModeSymlink != 0 {
			logger.Debug().Str("entry", f.NameInArchive).Msg("Skipping symlink")
			return nil
		}
		if err := fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}

		if err := writeEntry(fs, f, dest); err != nil {
			return err
		}
		written++
		return nil
	}

	if err := extractor.Extract(ctx, input, handler); err != nil {
		return written, errors.Wrapf(err, errors.ErrExtractFailed, "failed to extract %s", archive)
	}

	logger.Info().Str("archive", archive).Int("files", written).Msg("Archive extracted")
	return written, nil
}

func writeEntry(fs afero.Fs, f archives.FileInfo, dest string) error {
	reader, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	writer, err := fs.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(writer, reader); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}
