package domain

import "fmt"

// GrayscaleMethod selects how a colour heightmap collapses to one channel.
type GrayscaleMethod string

const (
	// GrayscaleLuminance uses the standard luminance formula.
	GrayscaleLuminance GrayscaleMethod = "luminance"
	// GrayscaleAverage averages the colour channels.
	GrayscaleAverage GrayscaleMethod = "average"
	// GrayscaleRed takes the red channel only.
	GrayscaleRed GrayscaleMethod = "red"
	// GrayscaleGreen takes the green channel only.
	GrayscaleGreen GrayscaleMethod = "green"
	// GrayscaleBlue takes the blue channel only.
	GrayscaleBlue GrayscaleMethod = "blue"
)

// IsValid reports whether the method is supported.
func (m GrayscaleMethod) IsValid() bool {
	switch m {
	case GrayscaleLuminance, GrayscaleAverage, GrayscaleRed, GrayscaleGreen, GrayscaleBlue:
		return true
	}
	return false
}

// Adjustment bounds; values outside are rejected, not clamped.
const (
	BrightnessMin = -100
	BrightnessMax = 100
	ContrastMin   = 0
	ContrastMax   = 300
	GammaMin      = 0.1
	GammaMax      = 5.0
)

// ImageAdjustments are tone adjustments applied to the heightmap before
// meshing. The zero adjustments (brightness 0, contrast 100, gamma 1,
// no inversion) leave intensity untouched.
type ImageAdjustments struct {
	// Grayscale selects the colour-to-intensity conversion.
	Grayscale GrayscaleMethod

	// Brightness in [-100, 100]; 0 is unchanged.
	Brightness int

	// Contrast in percent, [0, 300]; 100 is unchanged.
	Contrast int

	// Gamma in [0.1, 5.0]; 1.0 is unchanged.
	Gamma float64

	// Invert flips intensity so dark pixels become raised.
	Invert bool
}

// DefaultImageAdjustments returns the identity adjustments.
func DefaultImageAdjustments() ImageAdjustments {
	return ImageAdjustments{
		Grayscale:  GrayscaleLuminance,
		Brightness: 0,
		Contrast:   100,
		Gamma:      1.0,
	}
}

// Validate checks the adjustment bounds.
func (a ImageAdjustments) Validate() error {
	if !a.Grayscale.IsValid() {
		return fmt.Errorf("%w: unsupported grayscale method %q", ErrValidation, string(a.Grayscale))
	}
	if a.Brightness < BrightnessMin || a.Brightness > BrightnessMax {
		return fmt.Errorf("%w: brightness must be between %d and %d", ErrValidation, BrightnessMin, BrightnessMax)
	}
	if a.Contrast < ContrastMin || a.Contrast > ContrastMax {
		return fmt.Errorf("%w: contrast must be between %d and %d", ErrValidation, ContrastMin, ContrastMax)
	}
	if a.Gamma < GammaMin || a.Gamma > GammaMax {
		return fmt.Errorf("%w: gamma must be between %.1f and %.1f", ErrValidation, GammaMin, GammaMax)
	}
	return nil
}

// IsIdentity reports whether applying the adjustments would change nothing
// beyond grayscale conversion.
func (a ImageAdjustments) IsIdentity() bool {
	return a.Brightness == 0 && a.Contrast == 100 && a.Gamma == 1.0 && !a.Invert
}
