package driven

import "github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"

// Solid is an opaque handle to a solid inside the geometry kernel.
// Solids are immutable; every operation returns a new handle. All
// coordinates are millimetres in model space (Z up).
type Solid interface {
	// BoundingBox returns the axis-aligned bounds.
	BoundingBox() (min, max domain.Vertex)

	// NumTriangles returns the surface triangle count. Used by the
	// combiner to detect boolean results that contributed no geometry.
	NumTriangles() int

	// IsEmpty reports whether the solid has no geometry.
	IsEmpty() bool

	// Manifold reports whether the surface is edge-manifold. A false
	// value is a warning, not an error: the pipeline proceeds as long
	// as geometry exists.
	Manifold() bool

	// Mesh extracts the surface as raw triangle buffers for export.
	Mesh() *domain.TriangleMesh
}

// Kernel is the solid-modeling facade: primitive construction, affine
// transforms and boolean operations. It is the narrow interface behind
// which the boolean-mesh library is swappable.
type Kernel interface {
	// FromMesh bridges raw triangle buffers into a kernel solid.
	// Returns domain.ErrMeshLoad when the buffers hold no usable
	// geometry.
	FromMesh(m *domain.TriangleMesh) (Solid, error)

	// Cylinder builds a right cylinder of the given radius spanning
	// z in [0, height]. segments controls the angular resolution; small
	// values (6, 8) produce regular prisms for polygonal coin shapes.
	Cylinder(radius, height float64, segments int) Solid

	// Cuboid builds a box centred on the XY origin spanning z in
	// [0, height].
	Cuboid(sizeX, sizeY, height float64) Solid

	// ExtrudedSquare builds a square column of the given side length,
	// centred on the XY origin, spanning z in [0, height]. May fail on
	// degenerate inputs; callers fall back to Cuboid.
	ExtrudedSquare(side, height float64) (Solid, error)

	// Translate moves a solid.
	Translate(s Solid, dx, dy, dz float64) Solid

	// ScaleXY scales X and Y uniformly, leaving Z untouched.
	ScaleXY(s Solid, factor float64) Solid

	// RotateZ rotates about the Z axis by the given angle in radians,
	// counter-clockwise looking down the +Z axis.
	RotateZ(s Solid, radians float64) Solid

	// Union returns a ∪ b.
	Union(a, b Solid) Solid

	// Intersect returns a ∩ b.
	Intersect(a, b Solid) Solid
}
