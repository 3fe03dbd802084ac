package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driving/tui"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

var (
	genShape       string
	genDiameter    float64
	genThickness   float64
	genReliefDepth float64
	genScale       float64
	genOffsetX     float64
	genOffsetY     float64
	genRotation    float64
	genOutput      string
	genNoProgress  bool

	genGrayscale  string
	genBrightness int
	genContrast   int
	genGamma      float64
	genInvert     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [heightmap]",
	Short: "Generate a coin STL from a heightmap image",
	Long: `Generates a 3D printable coin from a grayscale heightmap image.
Bright pixels become raised relief. The relief is scaled to the coin
diameter, combined with the coin body and exported as binary STL.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genShape, "shape", string(domain.ShapeCircle), "coin shape: circle, square, hexagon, octagon")
	f.Float64Var(&genDiameter, "diameter", domain.DefaultDiameter, "coin diameter in mm")
	f.Float64Var(&genThickness, "thickness", domain.DefaultThickness, "total coin thickness in mm")
	f.Float64Var(&genReliefDepth, "relief-depth", domain.DefaultReliefDepth, "relief height in mm (must be below thickness)")
	f.Float64Var(&genScale, "scale", domain.DefaultScale, "relief scale in percent")
	f.Float64Var(&genOffsetX, "offset-x", 0, "relief X offset in percent of diameter")
	f.Float64Var(&genOffsetY, "offset-y", 0, "relief Y offset in percent of diameter")
	f.Float64Var(&genRotation, "rotation", 0, "relief rotation in degrees")
	f.StringVarP(&genOutput, "output", "o", "", "output STL path (default <heightmap>.stl)")
	f.BoolVar(&genNoProgress, "no-progress", false, "disable the interactive progress bar")

	f.StringVar(&genGrayscale, "grayscale", string(domain.GrayscaleLuminance), "grayscale method: luminance, average, red, green, blue")
	f.IntVar(&genBrightness, "brightness", 0, "brightness adjustment, -100 to 100")
	f.IntVar(&genContrast, "contrast", 100, "contrast in percent, 0 to 300")
	f.Float64Var(&genGamma, "gamma", 1.0, "gamma correction, 0.1 to 5.0")
	f.BoolVar(&genInvert, "invert", false, "invert intensity so dark pixels are raised")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	heightmap := args[0]

	params, err := domain.NewCoinParameters(domain.Shape(genShape),
		genDiameter, genThickness, genReliefDepth, genScale,
		genOffsetX, genOffsetY, genRotation)
	if err != nil {
		return err
	}
	adj := domain.ImageAdjustments{
		Grayscale:  domain.GrayscaleMethod(genGrayscale),
		Brightness: genBrightness,
		Contrast:   genContrast,
		Gamma:      genGamma,
		Invert:     genInvert,
	}
	if err := adj.Validate(); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	f, err := os.Open(heightmap)
	if err != nil {
		return fmt.Errorf("opening heightmap: %w", err)
	}
	gen, err := a.manager.Create("cli", filepath.Base(heightmap), f)
	f.Close()
	if err != nil {
		return err
	}
	if err := a.manager.AdjustImage(gen.ID, adj); err != nil {
		return err
	}
	if err := a.manager.StartGeneration(cmd.Context(), gen.ID, params); err != nil {
		return err
	}

	final, err := waitForGeneration(a, gen.ID)
	if err != nil {
		return err
	}
	if final.Status == domain.StatusFailure {
		return fmt.Errorf("generation failed: %s", final.Error)
	}

	src, err := a.manager.OutputPath(gen.ID)
	if err != nil {
		return err
	}
	dest := genOutput
	if dest == "" {
		dest = strings.TrimSuffix(heightmap, filepath.Ext(heightmap)) + ".stl"
	}
	if err := copyFile(src, dest); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", dest)
	return nil
}

// waitForGeneration blocks until the generation reaches a terminal
// state, showing an interactive progress bar on a TTY.
func waitForGeneration(a *app, id string) (*domain.Generation, error) {
	status := func() (*domain.Generation, error) { return a.manager.Status(id) }

	if !genNoProgress && term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.Run(status)
	}

	lastStep := ""
	for {
		g, err := status()
		if err != nil {
			return nil, err
		}
		if g.Step != lastStep {
			lastStep = g.Step
			logger.Info("%3d%% %s", g.Progress, g.Step)
		}
		if g.Status.IsTerminal() {
			return g, nil
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("copying to %s: %w", dest, err)
	}
	return out.Close()
}
