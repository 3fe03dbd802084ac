package services

import (
	"fmt"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// maskMargin is added to clipping mask heights so boolean surfaces
// never sit exactly on the relief's top face.
const maskMargin = 0.1

// Combiner merges a transformed relief with the coin body. Two
// strategies run in order:
//
// Strategy A clips the relief to the coin outline, raises it onto the
// base and unions the pair. It fails soft when clipping removes all
// geometry or the union adds nothing beyond the base, which happens
// when the boolean remesh swallows a thin relief.
//
// Strategy B goes the other way: the raised relief is extended with an
// oversized slab at base height, and the whole thing is intersected
// with a full-height coin body. The intersection clips everything to
// the outline in one pass, which tolerates reliefs that straddle the
// coin edge.
//
// Both failing is fatal: there is no coin to export.
type Combiner struct {
	kernel driven.Kernel
	shapes *ShapeFactory
}

// NewCombiner creates a combiner over the given kernel and shape factory.
func NewCombiner(kernel driven.Kernel, shapes *ShapeFactory) *Combiner {
	return &Combiner{kernel: kernel, shapes: shapes}
}

// Combine merges the relief with a coin body built from the parameters.
func (c *Combiner) Combine(relief driven.Solid, p domain.CoinParameters) (driven.Solid, error) {
	if s, ok := c.clipAndStack(relief, p); ok {
		return s, nil
	}
	logger.Info("clip-and-stack produced no geometry, trying extend-and-intersect")
	if s, ok := c.extendAndIntersect(relief, p); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: both combination strategies produced empty geometry; "+
		"likely causes: relief offset entirely outside the coin outline, "+
		"relief scaled below mesh resolution, or a degenerate relief mesh",
		domain.ErrBooleanOp)
}

// clipAndStack clips the relief to the coin outline with a mask of
// relief height, raises the result onto the base and unions the pair.
func (c *Combiner) clipAndStack(relief driven.Solid, p domain.CoinParameters) (driven.Solid, bool) {
	mask := c.shapes.Build(p.Shape, p.Diameter, p.ReliefDepth+maskMargin)
	clipped := c.kernel.Intersect(relief, mask)
	if clipped.IsEmpty() {
		logger.Debug("relief clipped to nothing inside the coin outline")
		return nil, false
	}

	base := c.shapes.Build(p.Shape, p.Diameter, p.BaseHeight())
	raised := c.kernel.Translate(clipped, 0, 0, p.BaseHeight())
	combined := c.kernel.Union(base, raised)
	if combined.IsEmpty() || combined.NumTriangles() <= base.NumTriangles() {
		logger.Debug("union added no geometry beyond the base (%d vs %d triangles)",
			combined.NumTriangles(), base.NumTriangles())
		return nil, false
	}
	if !combined.Manifold() {
		logger.Warn("combined mesh is not edge-manifold; exporting anyway")
	}
	return combined, true
}

// extendAndIntersect unions the raised relief with an oversized slab at
// base height and intersects the result with a full-height coin body.
func (c *Combiner) extendAndIntersect(relief driven.Solid, p domain.CoinParameters) (driven.Solid, bool) {
	min, max := relief.BoundingBox()
	extent := max[0] - min[0]
	if d := max[1] - min[1]; d > extent {
		extent = d
	}
	side := 2 * p.Diameter
	if extent > side {
		side = extent
	}
	side *= 1.5

	raised := c.kernel.Translate(relief, 0, 0, p.BaseHeight())
	slab := c.kernel.Cuboid(side, side, p.BaseHeight()+maskMargin)
	extended := c.kernel.Union(slab, raised)

	coin := c.shapes.Build(p.Shape, p.Diameter, p.Thickness)
	combined := c.kernel.Intersect(extended, coin)
	if combined.IsEmpty() {
		return nil, false
	}
	if !combined.Manifold() {
		logger.Warn("combined mesh is not edge-manifold; exporting anyway")
	}
	return combined, true
}
