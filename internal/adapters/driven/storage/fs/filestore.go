// Package fs implements the FileStore port on the local filesystem.
// Each generation gets its own directory so uploads, processed
// heightmaps and outputs can be cleaned up together.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore stores generation files under root/<generationID>/.
type FileStore struct {
	root string
}

// NewFileStore creates a file store rooted at dir, creating it if
// needed. If dir is empty, defaults to ~/.coinmaker/files.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".coinmaker", "files")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating file store root: %w", err)
	}
	return &FileStore{root: dir}, nil
}

// Root returns the store's base directory.
func (s *FileStore) Root() string {
	return s.root
}

// Save writes r to the named file within the generation's namespace.
func (s *FileStore) Save(generationID, filename string, r io.Reader) (string, error) {
	dir, err := s.generationDir(generationID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating generation directory: %w", err)
	}
	path, err := s.resolve(generationID, filename)
	if err != nil {
		return "", err
	}

	// Write through a temp file so partial uploads never surface.
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()
	if _, err := io.Copy(tmp, r); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("moving %s into place: %w", filename, err)
	}
	return path, nil
}

// Path resolves a stored file.
func (s *FileStore) Path(generationID, filename string) (string, error) {
	path, err := s.resolve(generationID, filename)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s for generation %s", domain.ErrNotFound, filename, generationID)
		}
		return "", fmt.Errorf("checking %s: %w", filename, err)
	}
	return path, nil
}

// Delete removes a stored file. Deleting a missing file is not an error.
func (s *FileStore) Delete(generationID, filename string) error {
	path, err := s.resolve(generationID, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", filename, err)
	}
	return nil
}

// CleanupOlderThan removes whole generation directories whose newest
// file is older than maxAge. Returns the number of files removed.
func (s *FileStore) CleanupOlderThan(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("reading file store root: %w", err)
	}
	cutoff := time.Now().Add(-maxAge)

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.root, entry.Name())
		newest, count, err := newestIn(dir)
		if err != nil {
			logger.Warn("skipping %s during cleanup: %v", entry.Name(), err)
			continue
		}
		if newest.After(cutoff) {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("removing %s: %v", entry.Name(), err)
			continue
		}
		logger.Info("cleaned up generation %s (%d files)", entry.Name(), count)
		removed += count
	}
	return removed, nil
}

// newestIn returns the most recent modification time among the files in
// dir, and how many files it holds. An empty directory reports the
// directory's own mtime.
func newestIn(dir string) (time.Time, int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return time.Time{}, 0, err
	}
	newest := info.ModTime()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return time.Time{}, 0, err
	}
	count := 0
	for _, entry := range entries {
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		count++
		if fi.ModTime().After(newest) {
			newest = fi.ModTime()
		}
	}
	return newest, count, nil
}

// generationDir returns the directory for one generation, rejecting IDs
// that would escape the root.
func (s *FileStore) generationDir(generationID string) (string, error) {
	if generationID == "" || strings.ContainsAny(generationID, `/\`) || generationID == ".." {
		return "", fmt.Errorf("%w: invalid generation id %q", domain.ErrValidation, generationID)
	}
	return filepath.Join(s.root, generationID), nil
}

// resolve joins a filename into the generation's directory, rejecting
// names with path separators.
func (s *FileStore) resolve(generationID, filename string) (string, error) {
	dir, err := s.generationDir(generationID)
	if err != nil {
		return "", err
	}
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, "..") {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrValidation, filename)
	}
	return filepath.Join(dir, filename), nil
}
