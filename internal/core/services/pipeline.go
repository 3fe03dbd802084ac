package services

import (
	"context"
	"fmt"
	"os"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// ReliefSlabThickness is the thin slab the external mesher puts under
// the relief so its output is a closed solid.
const ReliefSlabThickness = 0.1

// Pipeline runs a heightmap through the full coin synthesis chain:
// preprocess, mesh with the external tool, load, transform, combine
// with the coin body and export.
type Pipeline struct {
	preprocess *Preprocessor
	mesher     driven.ReliefMesher
	codec      driven.MeshCodec
	kernel     driven.Kernel
	transform  *ReliefTransform
	combiner   *Combiner
}

// NewPipeline wires the pipeline from its collaborators.
func NewPipeline(pre *Preprocessor, mesher driven.ReliefMesher, codec driven.MeshCodec, kernel driven.Kernel) *Pipeline {
	shapes := NewShapeFactory(kernel)
	return &Pipeline{
		preprocess: pre,
		mesher:     mesher,
		codec:      codec,
		kernel:     kernel,
		transform:  NewReliefTransform(kernel),
		combiner:   NewCombiner(kernel, shapes),
	}
}

// Generate converts the heightmap at heightmapPath into a coin STL at
// outputPath. sink may be nil. On error no file remains at outputPath.
func (pl *Pipeline) Generate(ctx context.Context, heightmapPath string, params domain.CoinParameters, outputPath string, sink domain.ProgressSink) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if params.BaseHeight() <= 0 {
		return fmt.Errorf("%w: relief depth %.3fmm leaves no base below thickness %.3fmm",
			domain.ErrValidation, params.ReliefDepth, params.Thickness)
	}

	sink.Report(20, "preprocessing_heightmap")
	prepared, isTemp, err := pl.preprocess.Prepare(heightmapPath, params.Rotation)
	if err != nil {
		return err
	}
	if isTemp {
		defer os.Remove(prepared)
	}

	sink.Report(25, "hmm_mesh_generation")
	tmp, err := os.CreateTemp(pl.preprocess.TempDir, "relief-*.stl")
	if err != nil {
		return fmt.Errorf("creating relief temp file: %w", err)
	}
	reliefPath := tmp.Name()
	tmp.Close()
	defer os.Remove(reliefPath)
	if err := pl.mesher.GenerateRelief(ctx, prepared, reliefPath, params.ReliefDepth, ReliefSlabThickness); err != nil {
		return err
	}

	sink.Report(30, "loading_relief_mesh")
	rawMesh, err := pl.codec.ReadFile(reliefPath)
	if err != nil {
		return err
	}
	relief, err := pl.kernel.FromMesh(rawMesh)
	if err != nil {
		return err
	}
	logger.Debug("relief mesh loaded: %d triangles", relief.NumTriangles())

	sink.Report(60, "transforming_relief")
	placed, err := pl.transform.Apply(relief, params)
	if err != nil {
		return err
	}

	sink.Report(70, "building_coin_body")
	sink.Report(80, "combining_meshes")
	combined, err := pl.combiner.Combine(placed, params)
	if err != nil {
		return err
	}

	sink.Report(85, "validating_result")
	result := combined.Mesh()
	if err := result.Validate(); err != nil {
		return err
	}

	sink.Report(90, "exporting_stl")
	if err := pl.codec.WriteFile(outputPath, result); err != nil {
		return err
	}

	sink.Report(95, "finalizing")
	sink.Report(100, "completed")
	return nil
}
