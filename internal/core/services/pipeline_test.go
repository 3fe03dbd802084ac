package services

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/geometry"
	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/stlfile"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
)

// slabMesher is an in-process stand-in for the external mesher: it
// ignores the heightmap and writes a 2x2mm slab of the requested
// height, the shape hmm would produce for a uniform mid-gray image.
type slabMesher struct {
	slab bool // false writes an empty STL
	err  error
}

func newSlabMesher() *slabMesher { return &slabMesher{slab: true} }

func (m *slabMesher) GenerateRelief(_ context.Context, _, outputPath string, reliefDepth, baseThickness float64) error {
	if m.err != nil {
		return m.err
	}
	mesh := &domain.TriangleMesh{}
	if m.slab {
		mesh = slabMesh(2, 2, reliefDepth+baseThickness)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if len(mesh.Triangles) == 0 {
		// An empty binary STL: header plus a zero count.
		_, err = f.Write(append(make([]byte, 80), 0, 0, 0, 0))
		return err
	}
	return stlfile.Encode(f, mesh)
}

// slabMesh builds a closed axis-aligned box spanning [0,w]x[0,d]x[0,h].
func slabMesh(w, d, h float64) *domain.TriangleMesh {
	v := []domain.Vertex{
		{0, 0, 0}, {w, 0, 0}, {w, d, 0}, {0, d, 0},
		{0, 0, h}, {w, 0, h}, {w, d, h}, {0, d, h},
	}
	quads := [][4]int{
		{3, 2, 1, 0}, // bottom, facing -Z
		{4, 5, 6, 7}, // top, facing +Z
		{0, 1, 5, 4}, // front, facing -Y
		{2, 3, 7, 6}, // back, facing +Y
		{1, 2, 6, 5}, // right, facing +X
		{3, 0, 4, 7}, // left, facing -X
	}
	m := &domain.TriangleMesh{Vertices: v}
	for _, q := range quads {
		m.Triangles = append(m.Triangles,
			domain.Triangle{q[0], q[1], q[2]},
			domain.Triangle{q[0], q[2], q[3]})
	}
	return m
}

func writeGrayPNG(t *testing.T, dir string, level uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	return encodePNG(t, dir, img)
}

func writeColorPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return encodePNG(t, dir, img)
}

func encodePNG(t *testing.T, dir string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, "heightmap.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func newTestPipeline(mesher *slabMesher, tempDir string) *Pipeline {
	kernel := &geometry.Kernel{Resolution: 48}
	pre := NewPreprocessor()
	pre.TempDir = tempDir
	return NewPipeline(pre, mesher, stlfile.New(), kernel)
}

func TestPipeline_MidGrayCircleEndToEnd(t *testing.T) {
	dir := t.TempDir()
	heightmap := writeGrayPNG(t, dir, 128)
	output := filepath.Join(dir, "coin.stl")
	pl := newTestPipeline(newSlabMesher(), dir)

	var events []domain.ProgressEvent
	sink := func(ev domain.ProgressEvent) { events = append(events, ev) }

	err := pl.Generate(context.Background(), heightmap, domain.DefaultCoinParameters(), output, sink)
	require.NoError(t, err)

	mesh, err := stlfile.New().ReadFile(output)
	require.NoError(t, err)
	require.NotEmpty(t, mesh.Triangles)

	// Binary STL size invariant.
	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, int64(84+50*len(mesh.Triangles)), info.Size())

	// The coin is 30mm wide and roughly baseHeight+relief tall; the
	// boolean remesh runs at finite resolution, so bounds are loose.
	min, max := mesh.BoundingBox()
	assert.InDelta(t, 30.0, max[0]-min[0], 1.5)
	assert.InDelta(t, 30.0, max[1]-min[1], 1.5)
	assert.Greater(t, max[2]-min[2], 2.0)
	assert.Less(t, max[2]-min[2], 4.0)

	require.NotEmpty(t, events)
	assert.Equal(t, 20, events[0].Percent)
	last := events[len(events)-1]
	assert.Equal(t, 100, last.Percent)
	assert.Equal(t, "completed", last.Step)
}

func TestPipeline_InvalidParamsRejectedBeforeMeshing(t *testing.T) {
	dir := t.TempDir()
	mesher := newSlabMesher()
	mesher.err = fmt.Errorf("should never run")
	pl := newTestPipeline(mesher, dir)

	params := domain.DefaultCoinParameters()
	params.ReliefDepth = params.Thickness // no base left

	err := pl.Generate(context.Background(), writeGrayPNG(t, dir, 128), params, filepath.Join(dir, "coin.stl"), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPipeline_EmptyMesherOutput(t *testing.T) {
	dir := t.TempDir()
	mesher := newSlabMesher()
	mesher.slab = false
	pl := newTestPipeline(mesher, dir)
	output := filepath.Join(dir, "coin.stl")

	err := pl.Generate(context.Background(), writeGrayPNG(t, dir, 128), domain.DefaultCoinParameters(), output, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMeshLoad)
	assert.NoFileExists(t, output)
}

func TestPipeline_MesherFailureCleansTempFiles(t *testing.T) {
	dir := t.TempDir()
	tempDir := t.TempDir()
	mesher := newSlabMesher()
	mesher.err = fmt.Errorf("%w: hmm binary not found", domain.ErrExternalTool)
	pl := newTestPipeline(mesher, tempDir)
	output := filepath.Join(dir, "coin.stl")

	// A colour heightmap forces a preprocessed temp copy.
	err := pl.Generate(context.Background(), writeColorPNG(t, dir), domain.DefaultCoinParameters(), output, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalTool)
	assert.NoFileExists(t, output)
	entries, readErr := os.ReadDir(tempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "preprocessed heightmap and relief temp files should be removed")
}
