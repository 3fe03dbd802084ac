package driving

import (
	"context"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
)

// PipelineService runs the coin mesh synthesis pipeline end to end:
// heightmap preprocessing, external relief meshing, transform, base
// construction, boolean combination and STL export.
type PipelineService interface {
	// Generate converts the heightmap at heightmapPath into a coin STL
	// at outputPath. sink may be nil. A nil error means the output file
	// exists and is complete; on error no output file remains.
	Generate(ctx context.Context, heightmapPath string, params domain.CoinParameters, outputPath string, sink domain.ProgressSink) error
}
