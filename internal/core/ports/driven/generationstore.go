package driven

import "github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"

// GenerationStore persists generation lifecycle records so status can
// be polled while the pipeline runs in the background.
type GenerationStore interface {
	// Create inserts a new generation record.
	Create(g *domain.Generation) error

	// Get returns a generation by ID, or domain.ErrNotFound.
	Get(id string) (*domain.Generation, error)

	// Update overwrites an existing record, or domain.ErrNotFound.
	Update(g *domain.Generation) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(id string) error
}
