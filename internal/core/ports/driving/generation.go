package driving

import (
	"context"
	"io"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
)

// GenerationService manages the full generation workflow: session
// creation with rate limiting, heightmap adjustment, background STL
// generation and status polling.
type GenerationService interface {
	// Create stores an uploaded heightmap and opens a generation
	// session. Returns domain.ErrRateLimited when the client exceeded
	// its budget and domain.ErrValidation for unreadable images.
	Create(clientKey, filename string, heightmap io.Reader) (*domain.Generation, error)

	// AdjustImage applies tone adjustments to the stored heightmap,
	// replacing it in place.
	AdjustImage(generationID string, adj domain.ImageAdjustments) error

	// StartGeneration enqueues the pipeline for a session. Progress is
	// written to the generation store.
	StartGeneration(ctx context.Context, generationID string, params domain.CoinParameters) error

	// Status returns the current generation record.
	Status(generationID string) (*domain.Generation, error)

	// OutputPath resolves the finished STL, or domain.ErrNotFound while
	// the generation is still running.
	OutputPath(generationID string) (string, error)
}
