package driven

import "context"

// ReliefMesher converts a grayscale heightmap file into a raw 3D relief
// mesh file. The production implementation shells out to the hmm binary;
// tests substitute an in-process fake.
//
// Failure modes (binary missing, non-zero exit, timeout, external kill)
// all surface as domain.ErrExternalTool with captured diagnostics. The
// mesher never retries; retry policy belongs to the task queue layer.
type ReliefMesher interface {
	// GenerateRelief meshes heightmapPath into outputPath (binary STL).
	// reliefDepth is the height range encoded by pixel intensity and
	// baseThickness a small slab under the relief so the result is a
	// closed solid. Must complete within the mesher's configured timeout.
	GenerateRelief(ctx context.Context, heightmapPath, outputPath string, reliefDepth, baseThickness float64) error
}
