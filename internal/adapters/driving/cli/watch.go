package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// settleDelay is how long a watched file must stay quiet before it is
// treated as fully written.
const settleDelay = 500 * time.Millisecond

var (
	watchShape       string
	watchDiameter    float64
	watchThickness   float64
	watchReliefDepth float64
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and generate coins for new heightmaps",
	Long: `Watches a directory for new or changed heightmap images and
generates a coin STL next to each one. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVar(&watchShape, "shape", string(domain.ShapeCircle), "coin shape: circle, square, hexagon, octagon")
	f.Float64Var(&watchDiameter, "diameter", domain.DefaultDiameter, "coin diameter in mm")
	f.Float64Var(&watchThickness, "thickness", domain.DefaultThickness, "total coin thickness in mm")
	f.Float64Var(&watchReliefDepth, "relief-depth", domain.DefaultReliefDepth, "relief height in mm")

	rootCmd.AddCommand(watchCmd)
}

// watchedImage reports whether a path looks like a heightmap input.
func watchedImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	params, err := domain.NewCoinParameters(domain.Shape(watchShape),
		watchDiameter, watchThickness, watchReliefDepth,
		domain.DefaultScale, 0, 0, 0)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	cmd.Printf("Watching %s (ctrl+c to stop)\n", dir)

	ctx := cmd.Context()
	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if timer, ok := pending[path]; ok {
			timer.Reset(settleDelay)
			return
		}
		pending[path] = time.AfterFunc(settleDelay, func() {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			generateWatched(ctx, a, path, params)
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !watchedImage(event.Name) {
				continue
			}
			schedule(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

// generateWatched runs the pipeline for one watched heightmap, writing
// the STL next to it.
func generateWatched(ctx context.Context, a *app, heightmap string, params domain.CoinParameters) {
	output := strings.TrimSuffix(heightmap, filepath.Ext(heightmap)) + ".stl"
	logger.Info("generating %s", output)

	sink := func(ev domain.ProgressEvent) {
		logger.Debug("%s: %3d%% %s", filepath.Base(heightmap), ev.Percent, ev.Step)
	}
	if err := a.pipeline.Generate(ctx, heightmap, params, output, sink); err != nil {
		logger.Error("generating %s: %v", heightmap, err)
		return
	}
	logger.Info("wrote %s", output)
}
