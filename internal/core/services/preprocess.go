package services

import (
	"fmt"
	"image"
	"math"
	"os"

	// Heightmaps arrive in whatever format the browser produced.
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// MaxHeightmapDimension bounds the image passed to the external mesher.
// hmm's triangulation cost grows quickly with pixel count; anything
// above this gets downsized proportionally.
const MaxHeightmapDimension = 2048

// Preprocessor normalises a heightmap before meshing: grayscale
// conversion, proportional downsizing of oversized images and
// expand-canvas rotation.
type Preprocessor struct {
	// MaxDimension overrides MaxHeightmapDimension when positive.
	MaxDimension int

	// TempDir receives preprocessed copies; empty means the system
	// temp directory.
	TempDir string
}

// NewPreprocessor returns a preprocessor with default limits.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Prepare returns a path to a mesher-ready heightmap. When no work is
// needed the original path is returned with temp=false. Otherwise a
// temporary PNG is written and temp=true; the caller deletes it.
func (p *Preprocessor) Prepare(heightmapPath string, rotationDegrees float64) (path string, temp bool, err error) {
	f, err := os.Open(heightmapPath)
	if err != nil {
		return "", false, fmt.Errorf("opening heightmap: %w", err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return "", false, fmt.Errorf("decoding heightmap: %w", err)
	}

	maxDim := p.MaxDimension
	if maxDim <= 0 {
		maxDim = MaxHeightmapDimension
	}
	bounds := src.Bounds()
	_, isGray := src.(*image.Gray)
	needsResize := bounds.Dx() > maxDim || bounds.Dy() > maxDim
	needsRotate := rotationDegrees != 0

	if isGray && !needsResize && !needsRotate {
		return heightmapPath, false, nil
	}

	gray := toGray(src)
	if needsResize {
		gray = resizeToFit(gray, maxDim)
		logger.Info("resized heightmap from %dx%d to %dx%d for mesher performance",
			bounds.Dx(), bounds.Dy(), gray.Bounds().Dx(), gray.Bounds().Dy())
	}
	if needsRotate {
		gray = rotateExpand(gray, rotationDegrees)
	}

	out, err := os.CreateTemp(p.TempDir, "heightmap-*.png")
	if err != nil {
		return "", false, fmt.Errorf("creating temp heightmap: %w", err)
	}
	if err := png.Encode(out, gray); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", false, fmt.Errorf("encoding temp heightmap: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", false, fmt.Errorf("closing temp heightmap: %w", err)
	}
	return out.Name(), true, nil
}

// toGray converts any image to single-channel grayscale.
func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	dst := image.NewGray(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// resizeToFit downsizes so the longest side equals maxDim, preserving
// aspect ratio, using Catmull-Rom resampling.
func resizeToFit(src *image.Gray, maxDim int) *image.Gray {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = int(math.Round(float64(maxDim) * float64(h) / float64(w)))
	} else {
		nh = maxDim
		nw = int(math.Round(float64(maxDim) * float64(w) / float64(h)))
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewGray(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// rotateExpand rotates the image counter-clockwise by the given angle,
// expanding the canvas to fit and filling the outside with black.
func rotateExpand(src *image.Gray, degrees float64) *image.Gray {
	theta := degrees * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)

	w := float64(src.Bounds().Dx())
	h := float64(src.Bounds().Dy())
	nw := int(math.Ceil(math.Abs(w*cos) + math.Abs(h*sin)))
	nh := int(math.Ceil(math.Abs(w*sin) + math.Abs(h*cos)))

	dst := image.NewGray(image.Rect(0, 0, nw, nh))

	// Visual counter-clockwise rotation in y-down raster coordinates,
	// mapping the source centre onto the destination centre.
	scx, scy := w/2, h/2
	dcx, dcy := float64(nw)/2, float64(nh)/2
	m := f64.Aff3{
		cos, sin, dcx - (cos*scx + sin*scy),
		-sin, cos, dcy - (-sin*scx + cos*scy),
	}
	draw.BiLinear.Transform(dst, m, src, src.Bounds(), draw.Src, nil)
	return dst
}
