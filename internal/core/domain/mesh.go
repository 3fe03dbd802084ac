package domain

import "fmt"

// Vertex is a point in model space, millimetres.
type Vertex [3]float64

// Triangle indexes three vertices of a TriangleMesh, counter-clockwise
// when viewed from outside the solid.
type Triangle [3]int

// TriangleMesh is the raw indexed-triangle representation exchanged
// between the STL codec and the geometry kernel. It carries no topology
// guarantees; Validate checks structural well-formedness only.
type TriangleMesh struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// Validate checks that the buffers are non-empty and every triangle
// references valid vertices.
func (m *TriangleMesh) Validate() error {
	if len(m.Vertices) == 0 || len(m.Triangles) == 0 {
		return fmt.Errorf("%w: mesh has no geometry (%d vertices, %d triangles)",
			ErrMeshLoad, len(m.Vertices), len(m.Triangles))
	}
	for i, t := range m.Triangles {
		for _, v := range t {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("%w: triangle %d references vertex %d of %d",
					ErrMeshLoad, i, v, len(m.Vertices))
			}
		}
	}
	return nil
}

// BoundingBox returns the axis-aligned bounds of the mesh.
// Both return values are zero for an empty mesh.
func (m *TriangleMesh) BoundingBox() (min, max Vertex) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for c := 0; c < 3; c++ {
			if v[c] < min[c] {
				min[c] = v[c]
			}
			if v[c] > max[c] {
				max[c] = v[c]
			}
		}
	}
	return
}
