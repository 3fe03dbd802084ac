// Package stlfile implements the MeshCodec port for binary STL files.
//
// Layout: an 80-byte header, a little-endian uint32 triangle count,
// then count 50-byte records (normal, three vertices, two attribute
// bytes). File size is therefore always 84 + 50*count.
package stlfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.MeshCodec = (*Codec)(nil)

const (
	headerSize = 80
	recordSize = 50
)

var header = func() [headerSize]byte {
	var h [headerSize]byte
	copy(h[:], "coin-maker binary STL")
	return h
}()

// Codec reads and atomically writes binary STL files.
type Codec struct{}

// New returns a new STL codec.
func New() *Codec {
	return &Codec{}
}

// ReadFile parses a binary STL file into indexed triangle buffers,
// deduplicating shared vertices.
func (c *Codec) ReadFile(path string) (*domain.TriangleMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrMeshLoad, path, err)
	}
	defer f.Close()

	m, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", domain.ErrMeshLoad, path, err)
	}
	return m, nil
}

// Decode reads a binary STL stream.
func Decode(r io.Reader) (*domain.TriangleMesh, error) {
	var head struct {
		Header [headerSize]byte
		NumTri uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	m := &domain.TriangleMesh{}
	vertIndex := make(map[[3]float32]int)
	buf := make([]byte, recordSize)
	for i := uint32(0); i < head.NumTri; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("reading triangle %d of %d: %w", i, head.NumTri, err)
		}
		var tri domain.Triangle
		for v := 0; v < 3; v++ {
			var vert [3]float32
			for c := 0; c < 3; c++ {
				// Skip the 12-byte normal; it is recomputed on write.
				off := 12 + 12*v + 4*c
				vert[c] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
			}
			idx, ok := vertIndex[vert]
			if !ok {
				idx = len(m.Vertices)
				m.Vertices = append(m.Vertices, domain.Vertex{
					float64(vert[0]), float64(vert[1]), float64(vert[2]),
				})
				vertIndex[vert] = idx
			}
			tri[v] = idx
		}
		m.Triangles = append(m.Triangles, tri)
	}
	return m, nil
}

// WriteFile serialises the mesh to path atomically: it writes a
// temporary file in the destination directory and renames it into
// place, so a failed export never leaves a partial file behind.
func (c *Codec) WriteFile(path string, m *domain.TriangleMesh) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stl-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// No-ops once the rename succeeded.
		tmp.Close()
		os.Remove(tmpPath)
	}()

	w := bufio.NewWriter(tmp)
	if err := Encode(w, m); err != nil {
		return fmt.Errorf("encoding STL: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing STL: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("moving STL into place: %w", err)
	}
	return nil
}

// Encode writes the mesh as binary STL.
func Encode(w io.Writer, m *domain.TriangleMesh) error {
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return err
	}

	buf := make([]byte, recordSize)
	for _, tri := range m.Triangles {
		a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		n := normal(a, b, c)
		put := func(off int, v [3]float64) {
			for i := 0; i < 3; i++ {
				binary.LittleEndian.PutUint32(buf[off+4*i:], math.Float32bits(float32(v[i])))
			}
		}
		put(0, n)
		put(12, a)
		put(24, b)
		put(36, c)
		buf[48], buf[49] = 0, 0
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// normal computes the unit right-hand normal of triangle (a, b, c).
// Degenerate triangles get a zero normal, which STL consumers accept.
func normal(a, b, c domain.Vertex) [3]float64 {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	len := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if len == 0 {
		return [3]float64{}
	}
	return [3]float64{nx / len, ny / len, nz / len}
}
