package cli

import (
	"context"
	"fmt"
	"time"

	configfile "github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/config/file"
	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/geometry"
	limiter "github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/limiter/memory"
	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/mesher/hmm"
	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/queue/pool"
	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/stlfile"
	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/storage/fs"
	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driven/storage/sqlite"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/services"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// shutdownTimeout bounds how long app.close waits for queued
// generations on exit.
const shutdownTimeout = 30 * time.Second

// app wires the full dependency graph from configuration. Commands
// build it lazily so flag parsing errors surface before any I/O.
type app struct {
	cfg      configfile.Config
	files    *fs.FileStore
	store    *sqlite.Store
	queue    *pool.Queue
	pipeline *services.Pipeline
	manager  *services.GenerationManager
}

// newApp loads configuration and constructs all adapters and services.
func newApp() (*app, error) {
	cfg, err := configfile.Load(configFlag)
	if err != nil {
		return nil, err
	}

	files, err := fs.NewFileStore(cfg.Storage.FilesDir)
	if err != nil {
		return nil, fmt.Errorf("initialising file store: %w", err)
	}
	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initialising generation store: %w", err)
	}

	mesher := hmm.New(cfg.Mesher.Binary, cfg.Mesher.Timeout())
	kernel := &geometry.Kernel{Resolution: cfg.Geometry.Resolution}
	pipeline := services.NewPipeline(services.NewPreprocessor(), mesher, stlfile.New(), kernel)

	var rl driven.RateLimiter
	if cfg.Limits.GenerationsPerMinute > 0 {
		rl = limiter.New(cfg.Limits.GenerationsPerMinute, cfg.Limits.Burst)
	}
	queue := pool.New(cfg.Queue.Workers, cfg.Queue.Capacity)
	manager := services.NewGenerationManager(files, store, rl, queue, pipeline)

	logger.Debug("initialised: mesher=%s workers=%d resolution=%d",
		cfg.Mesher.Binary, cfg.Queue.Workers, cfg.Geometry.Resolution)
	return &app{
		cfg:      cfg,
		files:    files,
		store:    store,
		queue:    queue,
		pipeline: pipeline,
		manager:  manager,
	}, nil
}

// close drains the queue and releases resources.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.queue.Shutdown(ctx); err != nil {
		logger.Warn("queue shutdown: %v", err)
	}
	if err := a.store.Close(); err != nil {
		logger.Warn("closing generation store: %v", err)
	}
}
