package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/services"
)

var (
	procOutput     string
	procGrayscale  string
	procBrightness int
	procContrast   int
	procGamma      float64
	procInvert     bool
)

var processCmd = &cobra.Command{
	Use:   "process [image]",
	Short: "Apply heightmap adjustments without generating a model",
	Long: `Applies grayscale conversion, brightness, contrast, gamma and
inversion to an image and writes the result as a grayscale PNG. Useful
for previewing how a heightmap will look before meshing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	f := processCmd.Flags()
	f.StringVarP(&procOutput, "output", "o", "", "output PNG path (default <image>_processed.png)")
	f.StringVar(&procGrayscale, "grayscale", string(domain.GrayscaleLuminance), "grayscale method: luminance, average, red, green, blue")
	f.IntVar(&procBrightness, "brightness", 0, "brightness adjustment, -100 to 100")
	f.IntVar(&procContrast, "contrast", 100, "contrast in percent, 0 to 300")
	f.Float64Var(&procGamma, "gamma", 1.0, "gamma correction, 0.1 to 5.0")
	f.BoolVar(&procInvert, "invert", false, "invert intensity")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := args[0]
	adj := domain.ImageAdjustments{
		Grayscale:  domain.GrayscaleMethod(procGrayscale),
		Brightness: procBrightness,
		Contrast:   procContrast,
		Gamma:      procGamma,
		Invert:     procInvert,
	}
	if err := adj.Validate(); err != nil {
		return err
	}

	output := procOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_processed.png"
	}

	if err := services.NewImageProcessor().Process(input, adj, output); err != nil {
		return fmt.Errorf("processing %s: %w", input, err)
	}
	cmd.Printf("Wrote %s\n", output)
	return nil
}
