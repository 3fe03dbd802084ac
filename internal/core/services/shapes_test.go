package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
)

func TestShapeFactory_Circle(t *testing.T) {
	k := &fakeKernel{}
	f := NewShapeFactory(k)

	s := f.Build(domain.ShapeCircle, 30, 3)

	require.NotNil(t, s)
	assert.Contains(t, strings.Join(k.calls, "\n"), "cylinder r=15 h=3 seg=128")
}

func TestShapeFactory_Prisms(t *testing.T) {
	k := &fakeKernel{}
	f := NewShapeFactory(k)

	f.Build(domain.ShapeHexagon, 30, 3)
	f.Build(domain.ShapeOctagon, 30, 3)

	joined := strings.Join(k.calls, "\n")
	assert.Contains(t, joined, "seg=6")
	assert.Contains(t, joined, "seg=8")
}

func TestShapeFactory_Square(t *testing.T) {
	k := &fakeKernel{}
	f := NewShapeFactory(k)

	s := f.Build(domain.ShapeSquare, 30, 3)

	min, max := s.BoundingBox()
	assert.InDelta(t, 30.0, max[0]-min[0], 1e-9)
	assert.Contains(t, strings.Join(k.calls, "\n"), "extruded-square")
}

func TestShapeFactory_SquareFallsBackToCuboid(t *testing.T) {
	k := &fakeKernel{extrudeErr: errors.New("degenerate cross-section")}
	f := NewShapeFactory(k)

	s := f.Build(domain.ShapeSquare, 30, 3)

	require.NotNil(t, s)
	min, max := s.BoundingBox()
	assert.InDelta(t, 30.0, max[0]-min[0], 1e-9)
	assert.Contains(t, strings.Join(k.calls, "\n"), "cuboid 30x30x3")
}

func TestShapeFactory_SegmentOverride(t *testing.T) {
	k := &fakeKernel{}
	f := NewShapeFactory(k)
	f.Segments = 16

	f.Build(domain.ShapeCircle, 30, 3)

	assert.Contains(t, strings.Join(k.calls, "\n"), "seg=16")
}
