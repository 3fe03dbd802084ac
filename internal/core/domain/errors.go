package domain

import "errors"

// Domain errors represent failures of the generation pipeline.
// These are distinct from infrastructure errors.
var (
	// ErrValidation indicates invalid coin or image parameters.
	// Raised before any mesher invocation; never retryable.
	ErrValidation = errors.New("validation failed")

	// ErrExternalTool indicates the external heightmap mesher failed:
	// binary missing, non-zero exit, or timeout. Not retryable at this
	// layer; retry policy belongs to the task queue.
	ErrExternalTool = errors.New("external tool failed")

	// ErrMeshLoad indicates the mesher produced an empty or malformed mesh.
	ErrMeshLoad = errors.New("mesh load failed")

	// ErrBooleanOp indicates both combination strategies failed to yield
	// non-empty geometry.
	ErrBooleanOp = errors.New("boolean operation failed")

	// ErrNotFound indicates a requested generation or file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the per-client generation limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrQueueClosed indicates the task queue has been shut down.
	ErrQueueClosed = errors.New("queue closed")
)
