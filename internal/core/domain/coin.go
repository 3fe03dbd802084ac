package domain

import "fmt"

// Shape identifies the coin outline.
type Shape string

const (
	// ShapeCircle is a round coin (smooth cylinder).
	ShapeCircle Shape = "circle"
	// ShapeSquare is a square coin.
	ShapeSquare Shape = "square"
	// ShapeHexagon is a six-sided coin.
	ShapeHexagon Shape = "hexagon"
	// ShapeOctagon is an eight-sided coin.
	ShapeOctagon Shape = "octagon"
)

// IsValid reports whether the shape is one of the supported outlines.
func (s Shape) IsValid() bool {
	switch s {
	case ShapeCircle, ShapeSquare, ShapeHexagon, ShapeOctagon:
		return true
	}
	return false
}

// Sides returns the polygon side count for prism shapes, or 0 for
// shapes without a fixed side count (circle, square).
func (s Shape) Sides() int {
	switch s {
	case ShapeHexagon:
		return 6
	case ShapeOctagon:
		return 8
	}
	return 0
}

// Default coin parameters, matching the upload form defaults.
const (
	DefaultDiameter    = 30.0
	DefaultThickness   = 3.0
	DefaultReliefDepth = 1.0
	DefaultScale       = 100.0
)

// Validation lower bounds. Dimensions below these are either degenerate
// or beyond what a printer can resolve.
const (
	minDimensionMM = 0.01
	minScale       = 0.00001
)

// CoinParameters is the immutable set of inputs for one coin generation.
// Constructed once per request via NewCoinParameters, which validates
// every field; a zero or hand-built value is not guaranteed valid.
type CoinParameters struct {
	// Shape is the coin outline.
	Shape Shape

	// Diameter is the coin width in millimetres. For square coins this
	// is the side length; for prisms, the circumscribed circle diameter.
	Diameter float64

	// Thickness is the total coin height in millimetres, relief included.
	Thickness float64

	// ReliefDepth is the height of the embossed surface in millimetres.
	// Must be strictly less than Thickness so a flat base remains.
	ReliefDepth float64

	// Scale is the relief scale as a percentage; 100 fits the relief
	// width exactly to the coin diameter.
	Scale float64

	// OffsetX and OffsetY shift the relief as a percentage of the coin
	// diameter. Unbounded; the relief is clipped to the coin outline.
	OffsetX float64
	OffsetY float64

	// Rotation is the relief rotation in degrees, counter-clockwise.
	Rotation float64
}

// NewCoinParameters validates and constructs coin parameters.
func NewCoinParameters(shape Shape, diameter, thickness, reliefDepth, scale, offsetX, offsetY, rotation float64) (CoinParameters, error) {
	p := CoinParameters{
		Shape:       shape,
		Diameter:    diameter,
		Thickness:   thickness,
		ReliefDepth: reliefDepth,
		Scale:       scale,
		OffsetX:     offsetX,
		OffsetY:     offsetY,
		Rotation:    rotation,
	}
	if err := p.Validate(); err != nil {
		return CoinParameters{}, err
	}
	return p, nil
}

// DefaultCoinParameters returns the standard 30x3mm circle coin.
func DefaultCoinParameters() CoinParameters {
	return CoinParameters{
		Shape:       ShapeCircle,
		Diameter:    DefaultDiameter,
		Thickness:   DefaultThickness,
		ReliefDepth: DefaultReliefDepth,
		Scale:       DefaultScale,
	}
}

// Validate checks all parameter invariants.
func (p CoinParameters) Validate() error {
	if !p.Shape.IsValid() {
		return fmt.Errorf("%w: unsupported shape %q", ErrValidation, string(p.Shape))
	}
	if p.Diameter <= minDimensionMM {
		return fmt.Errorf("%w: diameter must be greater than %.2fmm", ErrValidation, minDimensionMM)
	}
	if p.Thickness <= minDimensionMM {
		return fmt.Errorf("%w: thickness must be greater than %.2fmm", ErrValidation, minDimensionMM)
	}
	if p.ReliefDepth <= minDimensionMM {
		return fmt.Errorf("%w: relief depth must be greater than %.2fmm", ErrValidation, minDimensionMM)
	}
	if p.ReliefDepth >= p.Thickness {
		return fmt.Errorf("%w: relief depth %.3fmm must be less than thickness %.3fmm", ErrValidation, p.ReliefDepth, p.Thickness)
	}
	if p.Scale <= minScale {
		return fmt.Errorf("%w: scale must be greater than %.5f%%", ErrValidation, minScale)
	}
	return nil
}

// BaseHeight returns the flat coin body height beneath the relief.
func (p CoinParameters) BaseHeight() float64 {
	return p.Thickness - p.ReliefDepth
}
