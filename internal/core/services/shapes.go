package services

import (
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// CircleSegments is the angular resolution for round coins; high enough
// that a 30mm coin's facets stay below printer resolution.
const CircleSegments = 128

// ShapeFactory builds primitive coin body solids. Unsupported shapes
// never reach it: they are rejected when CoinParameters is constructed.
type ShapeFactory struct {
	kernel driven.Kernel

	// Segments overrides CircleSegments when positive; used by tests
	// to keep meshes small.
	Segments int
}

// NewShapeFactory creates a factory over the given kernel.
func NewShapeFactory(kernel driven.Kernel) *ShapeFactory {
	return &ShapeFactory{kernel: kernel}
}

// Build constructs a solid of the requested shape spanning z in
// [0, height]. diameter is the width: side length for squares, vertex
// circle diameter for prisms.
func (f *ShapeFactory) Build(shape domain.Shape, diameter, height float64) driven.Solid {
	radius := diameter / 2
	switch shape {
	case domain.ShapeSquare:
		s, err := f.kernel.ExtrudedSquare(diameter, height)
		if err != nil {
			// Extrusion can reject degenerate cross-sections; a plain
			// cuboid has the same footprint and height.
			logger.Warn("square extrusion failed (%v), falling back to cuboid", err)
			return f.kernel.Cuboid(diameter, diameter, height)
		}
		return s
	case domain.ShapeHexagon, domain.ShapeOctagon:
		return f.kernel.Cylinder(radius, height, shape.Sides())
	default:
		return f.kernel.Cylinder(radius, height, f.segments())
	}
}

func (f *ShapeFactory) segments() int {
	if f.Segments > 0 {
		return f.Segments
	}
	return CircleSegments
}
