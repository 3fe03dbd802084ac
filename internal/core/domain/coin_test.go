package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoinParameters_Valid(t *testing.T) {
	p, err := NewCoinParameters(ShapeCircle, 30, 3, 1, 100, 0, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, ShapeCircle, p.Shape)
	assert.InDelta(t, 2.0, p.BaseHeight(), 1e-9)
}

func TestNewCoinParameters_Invalid(t *testing.T) {
	tests := []struct {
		name                                   string
		shape                                  Shape
		diameter, thickness, reliefDepth, scale float64
	}{
		{"unsupported shape", Shape("triangle"), 30, 3, 1, 100},
		{"zero diameter", ShapeCircle, 0, 3, 1, 100},
		{"tiny diameter", ShapeCircle, 0.01, 3, 1, 100},
		{"zero thickness", ShapeCircle, 30, 0, 1, 100},
		{"zero relief depth", ShapeCircle, 30, 3, 0, 100},
		{"relief equals thickness", ShapeCircle, 30, 3, 3, 100},
		{"relief exceeds thickness", ShapeCircle, 30, 3, 4, 100},
		{"zero scale", ShapeCircle, 30, 3, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoinParameters(tt.shape, tt.diameter, tt.thickness, tt.reliefDepth, tt.scale, 0, 0, 0)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCoinParameters_ReliefDepthError_NamesBothValues(t *testing.T) {
	_, err := NewCoinParameters(ShapeCircle, 30, 3, 3, 100, 0, 0, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "3.000mm")
	assert.Contains(t, err.Error(), "relief depth")
	assert.Contains(t, err.Error(), "thickness")
}

func TestCoinParameters_UnboundedFieldsAccepted(t *testing.T) {
	_, err := NewCoinParameters(ShapeHexagon, 30, 3, 1, 100, -500, 1000, 720.5)

	require.NoError(t, err)
}

func TestShape_Sides(t *testing.T) {
	assert.Equal(t, 6, ShapeHexagon.Sides())
	assert.Equal(t, 8, ShapeOctagon.Sides())
	assert.Equal(t, 0, ShapeCircle.Sides())
	assert.Equal(t, 0, ShapeSquare.Sides())
}

func TestDefaultCoinParameters_AreValid(t *testing.T) {
	p := DefaultCoinParameters()

	require.NoError(t, p.Validate())
	assert.Equal(t, 30.0, p.Diameter)
}
