package driven

import (
	"io"
	"time"
)

// FileStore persists generation-scoped files (uploaded heightmaps,
// processed heightmaps, output STLs). Files live in a per-generation
// namespace and are cleaned up together.
type FileStore interface {
	// Save writes r to the named file within the generation's namespace
	// and returns the absolute path.
	Save(generationID, filename string, r io.Reader) (string, error)

	// Path resolves a stored file. Returns domain.ErrNotFound when the
	// file does not exist.
	Path(generationID, filename string) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an
	// error.
	Delete(generationID, filename string) error

	// CleanupOlderThan removes whole generation directories older than
	// maxAge and returns the number of files deleted.
	CleanupOlderThan(maxAge time.Duration) (int, error)
}
