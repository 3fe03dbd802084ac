package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driving"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// Stored file names within a generation's namespace. The heightmap
// keeps its upload extension; decoders sniff content anyway.
const (
	heightmapBase = "heightmap"
	outputName    = "coin.stl"
)

// heightmapExts lists the extensions a stored heightmap may carry, in
// lookup order.
var heightmapExts = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// GenerationManager implements the generation workflow: uploads with
// rate limiting, image adjustment, queued background generation and
// status polling.
type GenerationManager struct {
	files    driven.FileStore
	store    driven.GenerationStore
	limiter  driven.RateLimiter
	queue    driven.TaskQueue
	pipeline driving.PipelineService
	images   *ImageProcessor
}

var _ driving.GenerationService = (*GenerationManager)(nil)

// NewGenerationManager wires the manager from its collaborators.
// limiter may be nil for deployments without rate limiting.
func NewGenerationManager(files driven.FileStore, store driven.GenerationStore, limiter driven.RateLimiter, queue driven.TaskQueue, pipeline driving.PipelineService) *GenerationManager {
	return &GenerationManager{
		files:    files,
		store:    store,
		limiter:  limiter,
		queue:    queue,
		pipeline: pipeline,
		images:   NewImageProcessor(),
	}
}

// Create stores an uploaded heightmap and opens a generation session.
func (m *GenerationManager) Create(clientKey, filename string, heightmap io.Reader) (*domain.Generation, error) {
	if m.limiter != nil && !m.limiter.Allow(clientKey) {
		return nil, fmt.Errorf("%w: client %q exceeded its generation budget", domain.ErrRateLimited, clientKey)
	}

	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	path, err := m.files.Save(id, heightmapBase+ext, heightmap)
	if err != nil {
		return nil, fmt.Errorf("storing heightmap: %w", err)
	}
	if !m.images.ValidateImage(path) {
		m.files.Delete(id, heightmapBase+ext)
		return nil, fmt.Errorf("%w: %q is not a supported image", domain.ErrValidation, filename)
	}

	now := time.Now().UTC()
	g := &domain.Generation{
		ID:        id,
		ClientKey: clientKey,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Create(g); err != nil {
		return nil, fmt.Errorf("creating generation record: %w", err)
	}
	logger.Info("generation %s created for client %q", id, clientKey)
	return g, nil
}

// AdjustImage applies tone adjustments to the stored heightmap in place.
func (m *GenerationManager) AdjustImage(generationID string, adj domain.ImageAdjustments) error {
	if _, err := m.store.Get(generationID); err != nil {
		return err
	}
	if adj.IsIdentity() {
		return nil
	}
	path, err := m.heightmapPath(generationID)
	if err != nil {
		return err
	}
	return m.images.Process(path, adj, path)
}

// StartGeneration enqueues the pipeline for a session. Progress and the
// final outcome are written to the generation store.
func (m *GenerationManager) StartGeneration(ctx context.Context, generationID string, params domain.CoinParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	g, err := m.store.Get(generationID)
	if err != nil {
		return err
	}
	if g.Status == domain.StatusProcessing {
		return fmt.Errorf("%w: generation %s is already running", domain.ErrValidation, generationID)
	}
	heightmap, err := m.heightmapPath(generationID)
	if err != nil {
		return err
	}

	g.Status = domain.StatusProcessing
	g.Step = "queued"
	g.Progress = 0
	g.Error = ""
	g.UpdatedAt = time.Now().UTC()
	if err := m.store.Update(g); err != nil {
		return err
	}

	return m.queue.Enqueue(driven.Task{
		GenerationID: generationID,
		Run: func(taskCtx context.Context) error {
			return m.run(taskCtx, generationID, heightmap, params)
		},
	})
}

// run executes the pipeline for one generation inside the task queue.
func (m *GenerationManager) run(ctx context.Context, generationID, heightmapPath string, params domain.CoinParameters) error {
	outputPath, err := m.files.Save(generationID, outputName, strings.NewReader(""))
	if err != nil {
		m.recordFailure(generationID, err)
		return err
	}

	sink := func(ev domain.ProgressEvent) {
		m.recordProgress(generationID, ev.Percent, ev.Step, "")
	}
	if err := m.pipeline.Generate(ctx, heightmapPath, params, outputPath, sink); err != nil {
		m.files.Delete(generationID, outputName)
		m.recordFailure(generationID, err)
		return err
	}
	logger.Info("generation %s completed", generationID)
	return nil
}

// Status returns the current generation record.
func (m *GenerationManager) Status(generationID string) (*domain.Generation, error) {
	return m.store.Get(generationID)
}

// OutputPath resolves the finished STL for a successful generation.
func (m *GenerationManager) OutputPath(generationID string) (string, error) {
	g, err := m.store.Get(generationID)
	if err != nil {
		return "", err
	}
	if g.Status != domain.StatusSuccess {
		return "", fmt.Errorf("%w: generation %s has no output yet (status %s)",
			domain.ErrNotFound, generationID, g.Status)
	}
	return m.files.Path(generationID, outputName)
}

// heightmapPath finds the stored heightmap regardless of its upload
// extension.
func (m *GenerationManager) heightmapPath(generationID string) (string, error) {
	for _, ext := range heightmapExts {
		path, err := m.files.Path(generationID, heightmapBase+ext)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: generation %s has no stored heightmap", domain.ErrNotFound, generationID)
}

func (m *GenerationManager) recordProgress(generationID string, percent int, step, errMsg string) {
	g, err := m.store.Get(generationID)
	if err != nil {
		logger.Warn("progress update for unknown generation %s: %v", generationID, err)
		return
	}
	if err := g.UpdateProgress(percent, step, errMsg); err != nil {
		logger.Warn("invalid progress update for generation %s: %v", generationID, err)
		return
	}
	g.UpdatedAt = time.Now().UTC()
	if err := m.store.Update(g); err != nil {
		logger.Warn("persisting progress for generation %s: %v", generationID, err)
	}
}

func (m *GenerationManager) recordFailure(generationID string, cause error) {
	logger.Error("generation %s failed: %v", generationID, cause)
	g, err := m.store.Get(generationID)
	if err != nil {
		return
	}
	m.recordProgress(generationID, g.Progress, g.Step, cause.Error())
}
