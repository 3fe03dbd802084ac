package services

import (
	"fmt"
	"math"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
)

// fakeSolid tracks an axis-aligned box and a triangle count, enough for
// the services to reason about geometry without a real kernel.
type fakeSolid struct {
	min, max domain.Vertex
	tris     int
}

func box(minX, minY, minZ, maxX, maxY, maxZ float64, tris int) *fakeSolid {
	return &fakeSolid{
		min:  domain.Vertex{minX, minY, minZ},
		max:  domain.Vertex{maxX, maxY, maxZ},
		tris: tris,
	}
}

func (s *fakeSolid) BoundingBox() (min, max domain.Vertex) { return s.min, s.max }
func (s *fakeSolid) NumTriangles() int                     { return s.tris }
func (s *fakeSolid) IsEmpty() bool                         { return s.tris == 0 }
func (s *fakeSolid) Manifold() bool                        { return s.tris > 0 }

func (s *fakeSolid) Mesh() *domain.TriangleMesh {
	if s.tris == 0 {
		return &domain.TriangleMesh{}
	}
	m := &domain.TriangleMesh{
		Vertices: []domain.Vertex{s.min, {s.max[0], s.min[1], s.min[2]}, s.max},
	}
	for i := 0; i < s.tris; i++ {
		m.Triangles = append(m.Triangles, domain.Triangle{0, 1, 2})
	}
	return m
}

// fakeKernel applies transforms to bounding boxes analytically and logs
// every call. Union and intersect behaviour is overridable per test.
type fakeKernel struct {
	calls       []string
	extrudeErr  error
	unionFn     func(a, b driven.Solid) driven.Solid
	intersectFn func(a, b driven.Solid) driven.Solid
}

var _ driven.Kernel = (*fakeKernel)(nil)

func (k *fakeKernel) log(format string, args ...any) {
	k.calls = append(k.calls, fmt.Sprintf(format, args...))
}

func (k *fakeKernel) FromMesh(m *domain.TriangleMesh) (driven.Solid, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	min, max := m.BoundingBox()
	return &fakeSolid{min: min, max: max, tris: len(m.Triangles)}, nil
}

func (k *fakeKernel) Cylinder(radius, height float64, segments int) driven.Solid {
	k.log("cylinder r=%g h=%g seg=%d", radius, height, segments)
	return box(-radius, -radius, 0, radius, radius, height, segments*4)
}

func (k *fakeKernel) Cuboid(sizeX, sizeY, height float64) driven.Solid {
	k.log("cuboid %gx%gx%g", sizeX, sizeY, height)
	return box(-sizeX/2, -sizeY/2, 0, sizeX/2, sizeY/2, height, 12)
}

func (k *fakeKernel) ExtrudedSquare(side, height float64) (driven.Solid, error) {
	if k.extrudeErr != nil {
		return nil, k.extrudeErr
	}
	k.log("extruded-square %gx%g", side, height)
	return box(-side/2, -side/2, 0, side/2, side/2, height, 12), nil
}

func (k *fakeKernel) Translate(s driven.Solid, dx, dy, dz float64) driven.Solid {
	k.log("translate %g %g %g", dx, dy, dz)
	f := s.(*fakeSolid)
	return box(f.min[0]+dx, f.min[1]+dy, f.min[2]+dz, f.max[0]+dx, f.max[1]+dy, f.max[2]+dz, f.tris)
}

func (k *fakeKernel) ScaleXY(s driven.Solid, factor float64) driven.Solid {
	k.log("scale-xy %g", factor)
	f := s.(*fakeSolid)
	return box(f.min[0]*factor, f.min[1]*factor, f.min[2], f.max[0]*factor, f.max[1]*factor, f.max[2], f.tris)
}

func (k *fakeKernel) RotateZ(s driven.Solid, radians float64) driven.Solid {
	k.log("rotate-z %g", radians)
	f := s.(*fakeSolid)
	sin, cos := math.Sin(radians), math.Cos(radians)
	min := domain.Vertex{math.Inf(1), math.Inf(1), f.min[2]}
	max := domain.Vertex{math.Inf(-1), math.Inf(-1), f.max[2]}
	for _, x := range []float64{f.min[0], f.max[0]} {
		for _, y := range []float64{f.min[1], f.max[1]} {
			rx, ry := x*cos-y*sin, x*sin+y*cos
			min[0] = math.Min(min[0], rx)
			min[1] = math.Min(min[1], ry)
			max[0] = math.Max(max[0], rx)
			max[1] = math.Max(max[1], ry)
		}
	}
	return &fakeSolid{min: min, max: max, tris: f.tris}
}

func (k *fakeKernel) Union(a, b driven.Solid) driven.Solid {
	k.log("union")
	if k.unionFn != nil {
		return k.unionFn(a, b)
	}
	fa, fb := a.(*fakeSolid), b.(*fakeSolid)
	if fa.IsEmpty() {
		return fb
	}
	if fb.IsEmpty() {
		return fa
	}
	min := domain.Vertex{}
	max := domain.Vertex{}
	for c := 0; c < 3; c++ {
		min[c] = math.Min(fa.min[c], fb.min[c])
		max[c] = math.Max(fa.max[c], fb.max[c])
	}
	return &fakeSolid{min: min, max: max, tris: fa.tris + fb.tris}
}

func (k *fakeKernel) Intersect(a, b driven.Solid) driven.Solid {
	k.log("intersect")
	if k.intersectFn != nil {
		return k.intersectFn(a, b)
	}
	fa, fb := a.(*fakeSolid), b.(*fakeSolid)
	min := domain.Vertex{}
	max := domain.Vertex{}
	for c := 0; c < 3; c++ {
		min[c] = math.Max(fa.min[c], fb.min[c])
		max[c] = math.Min(fa.max[c], fb.max[c])
		if min[c] >= max[c] {
			return &fakeSolid{}
		}
	}
	tris := fa.tris
	if fb.tris < tris {
		tris = fb.tris
	}
	return &fakeSolid{min: min, max: max, tris: tris}
}
