package services

import (
	"fmt"
	"math"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// ReliefTransform places a raw relief mesh into coin coordinates:
// scale to the coin diameter, apply the user scale, centre on the
// origin, rotate, then offset.
//
// Rotation note: when rotation is requested, the 2D heightmap has
// already been rotated during preprocessing, and the same angle is
// applied again here to the 3D relief. Both applications are kept
// deliberately; see DESIGN.md.
type ReliefTransform struct {
	kernel driven.Kernel
}

// NewReliefTransform creates a transformer over the given kernel.
func NewReliefTransform(kernel driven.Kernel) *ReliefTransform {
	return &ReliefTransform{kernel: kernel}
}

// Apply transforms the relief according to the coin parameters.
func (t *ReliefTransform) Apply(relief driven.Solid, p domain.CoinParameters) (driven.Solid, error) {
	min, max := relief.BoundingBox()
	width := max[0] - min[0]
	if width <= 0 {
		return nil, fmt.Errorf("%w: relief has no width to scale from", domain.ErrMeshLoad)
	}

	// Scale so the relief width matches the coin, then the user scale.
	baseScale := p.Diameter / width
	finalScale := baseScale * (p.Scale / 100.0)
	logger.Debug("relief %gx%g, base scale %g, final scale %g",
		width, max[1]-min[1], baseScale, finalScale)
	scaled := t.kernel.ScaleXY(relief, finalScale)

	// Centre the XY bounding box on the origin.
	min, max = scaled.BoundingBox()
	cx := (min[0] + max[0]) / 2
	cy := (min[1] + max[1]) / 2
	centered := t.kernel.Translate(scaled, -cx, -cy, 0)

	rotated := centered
	if p.Rotation != 0 {
		logger.Debug("rotating relief by %g degrees", p.Rotation)
		rotated = t.kernel.RotateZ(centered, p.Rotation*math.Pi/180)
	}

	// Offsets are percentages of the coin diameter. Y flips to map
	// image space (Y down) onto model space (Y up).
	dx := p.OffsetX / 100.0 * p.Diameter
	dy := -p.OffsetY / 100.0 * p.Diameter
	if dx == 0 && dy == 0 {
		return rotated, nil
	}
	logger.Debug("offsetting relief by (%g, %g) mm", dx, dy)
	return t.kernel.Translate(rotated, dx, dy, 0), nil
}
