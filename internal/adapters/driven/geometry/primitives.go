package geometry

import (
	"fmt"
	"math"

	"github.com/unixpickle/model3d/model3d"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
)

// Cylinder builds a right cylinder (or regular prism, for small segment
// counts) of the given radius spanning z in [0, height]. The mesh is
// triangulated directly: ring quads split into two triangles plus
// triangle fans for the caps, all wound outward.
func (k *Kernel) Cylinder(radius, height float64, segments int) driven.Solid {
	if segments < 3 {
		segments = 3
	}
	bottom := make([]model3d.Coord3D, segments)
	top := make([]model3d.Coord3D, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x, y := radius*math.Cos(theta), radius*math.Sin(theta)
		bottom[i] = model3d.XYZ(x, y, 0)
		top[i] = model3d.XYZ(x, y, height)
	}
	cb, ct := model3d.XYZ(0, 0, 0), model3d.XYZ(0, 0, height)

	mesh := model3d.NewMesh()
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		// Side wall.
		mesh.Add(&model3d.Triangle{bottom[i], bottom[j], top[j]})
		mesh.Add(&model3d.Triangle{bottom[i], top[j], top[i]})
		// Caps.
		mesh.Add(&model3d.Triangle{cb, bottom[j], bottom[i]})
		mesh.Add(&model3d.Triangle{ct, top[i], top[j]})
	}
	return &solid{mesh: mesh}
}

// Cuboid builds a box centred on the XY origin spanning z in [0, height].
func (k *Kernel) Cuboid(sizeX, sizeY, height float64) driven.Solid {
	s, err := k.extrudePolygon([][2]float64{
		{-sizeX / 2, -sizeY / 2},
		{sizeX / 2, -sizeY / 2},
		{sizeX / 2, sizeY / 2},
		{-sizeX / 2, sizeY / 2},
	}, height)
	if err != nil {
		// Only degenerate dimensions reach here; surface as empty.
		return &solid{mesh: model3d.NewMesh()}
	}
	return s
}

// ExtrudedSquare builds a square column of the given side length via
// the polygon extrusion path.
func (k *Kernel) ExtrudedSquare(side, height float64) (driven.Solid, error) {
	return k.extrudePolygon([][2]float64{
		{-side / 2, -side / 2},
		{side / 2, -side / 2},
		{side / 2, side / 2},
		{-side / 2, side / 2},
	}, height)
}

// extrudePolygon extrudes a convex counter-clockwise polygon from z=0
// to z=height. Caps are triangle fans from the first vertex.
func (k *Kernel) extrudePolygon(points [][2]float64, height float64) (driven.Solid, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(points))
	}
	if height <= 0 {
		return nil, fmt.Errorf("extrusion height must be positive, got %g", height)
	}
	if area2(points) <= 0 {
		return nil, fmt.Errorf("polygon is degenerate or not counter-clockwise")
	}

	n := len(points)
	bottom := make([]model3d.Coord3D, n)
	top := make([]model3d.Coord3D, n)
	for i, p := range points {
		bottom[i] = model3d.XYZ(p[0], p[1], 0)
		top[i] = model3d.XYZ(p[0], p[1], height)
	}

	mesh := model3d.NewMesh()
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		mesh.Add(&model3d.Triangle{bottom[i], bottom[j], top[j]})
		mesh.Add(&model3d.Triangle{bottom[i], top[j], top[i]})
	}
	for i := 1; i < n-1; i++ {
		mesh.Add(&model3d.Triangle{bottom[0], bottom[i+1], bottom[i]})
		mesh.Add(&model3d.Triangle{top[0], top[i], top[i+1]})
	}
	return &solid{mesh: mesh}, nil
}

// area2 returns twice the signed area of a polygon; positive means
// counter-clockwise.
func area2(points [][2]float64) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p[0]*q[1] - q[0]*p[1]
	}
	return sum
}
