package services

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
)

// ImageProcessor applies tone adjustments to heightmaps before they
// reach the mesher: grayscale channel selection, brightness, contrast,
// gamma and inversion.
type ImageProcessor struct{}

// NewImageProcessor returns a new image processor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// ValidateImage reports whether the file decodes as a supported image.
func (p *ImageProcessor) ValidateImage(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.Decode(f)
	return err == nil
}

// Process applies the adjustments to the image at path and writes the
// result as a grayscale PNG to outPath (which may equal path; the write
// goes through a temp file).
func (p *ImageProcessor) Process(path string, adj domain.ImageAdjustments, outPath string) error {
	if err := adj.Validate(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%w: decoding image: %v", domain.ErrValidation, err)
	}

	gray := grayscale(src, adj.Grayscale)
	if adj.Brightness != 0 {
		applyLUT(gray, brightnessLUT(adj.Brightness))
	}
	if adj.Contrast != 100 {
		applyLUT(gray, contrastLUT(gray, adj.Contrast))
	}
	if adj.Gamma != 1.0 {
		applyLUT(gray, gammaLUT(adj.Gamma))
	}
	if adj.Invert {
		applyLUT(gray, invertLUT())
	}

	return writePNG(outPath, gray)
}

// grayscale collapses an image to one channel using the given method.
func grayscale(src image.Image, method domain.GrayscaleMethod) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	switch method {
	case domain.GrayscaleRed, domain.GrayscaleGreen, domain.GrayscaleBlue, domain.GrayscaleAverage:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := src.At(x, y).RGBA()
				var v uint32
				switch method {
				case domain.GrayscaleRed:
					v = r
				case domain.GrayscaleGreen:
					v = g
				case domain.GrayscaleBlue:
					v = b
				default:
					v = (r + g + b) / 3
				}
				dst.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: uint8(v >> 8)})
			}
		}
	default:
		// Luminance via the standard conversion.
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	}
	return dst
}

func applyLUT(img *image.Gray, lut [256]uint8) {
	for i, v := range img.Pix {
		img.Pix[i] = lut[v]
	}
}

func brightnessLUT(brightness int) [256]uint8 {
	factor := 1.0 + float64(brightness)/100.0
	var lut [256]uint8
	for i := range lut {
		lut[i] = clamp8(float64(i) * factor)
	}
	return lut
}

// contrastLUT scales distances from the image's mean intensity, the
// same behaviour as PIL's contrast enhancer.
func contrastLUT(img *image.Gray, contrast int) [256]uint8 {
	var sum uint64
	for _, v := range img.Pix {
		sum += uint64(v)
	}
	mean := 0.0
	if len(img.Pix) > 0 {
		mean = float64(sum) / float64(len(img.Pix))
	}
	factor := float64(contrast) / 100.0
	var lut [256]uint8
	for i := range lut {
		lut[i] = clamp8(mean + factor*(float64(i)-mean))
	}
	return lut
}

func gammaLUT(gamma float64) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = clamp8(255 * math.Pow(float64(i)/255.0, 1.0/gamma))
	}
	return lut
}

func invertLUT() [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(255 - i)
	}
	return lut
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// writePNG writes through a temp file so a failed write never clobbers
// the original.
func writePNG(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".img-*")
	if err != nil {
		return fmt.Errorf("creating temp image: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()
	if err := png.Encode(tmp, img); err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp image: %w", err)
	}
	return os.Rename(tmpPath, path)
}
