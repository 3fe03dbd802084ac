package driven

import "github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"

// MeshCodec reads and writes triangle-mesh interchange files (binary
// STL). Write must be atomic: on failure no partial file may remain at
// the destination path.
type MeshCodec interface {
	// ReadFile parses a mesh file into raw triangle buffers.
	ReadFile(path string) (*domain.TriangleMesh, error)

	// WriteFile serialises the mesh to path, writing through a
	// temporary file and renaming into place.
	WriteFile(path string, m *domain.TriangleMesh) error
}
