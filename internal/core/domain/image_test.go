package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageAdjustments_Defaults(t *testing.T) {
	a := DefaultImageAdjustments()

	require.NoError(t, a.Validate())
	assert.True(t, a.IsIdentity())
}

func TestImageAdjustments_Validate(t *testing.T) {
	tests := []struct {
		name string
		a    ImageAdjustments
	}{
		{"bad method", ImageAdjustments{Grayscale: "sepia", Contrast: 100, Gamma: 1}},
		{"brightness low", ImageAdjustments{Grayscale: GrayscaleLuminance, Brightness: -101, Contrast: 100, Gamma: 1}},
		{"brightness high", ImageAdjustments{Grayscale: GrayscaleLuminance, Brightness: 101, Contrast: 100, Gamma: 1}},
		{"contrast high", ImageAdjustments{Grayscale: GrayscaleLuminance, Contrast: 301, Gamma: 1}},
		{"gamma low", ImageAdjustments{Grayscale: GrayscaleLuminance, Contrast: 100, Gamma: 0.05}},
		{"gamma high", ImageAdjustments{Grayscale: GrayscaleLuminance, Contrast: 100, Gamma: 5.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.a.Validate(), ErrValidation)
		})
	}
}

func TestImageAdjustments_IsIdentity(t *testing.T) {
	a := DefaultImageAdjustments()
	a.Invert = true

	assert.False(t, a.IsIdentity())
}
