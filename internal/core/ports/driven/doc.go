// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ReliefMesher: converts a heightmap into a raw relief mesh (hmm subprocess)
//   - Kernel / Solid: solid-modeling facade (primitives, transforms, booleans)
//   - MeshCodec: reads and atomically writes triangle-mesh files
//   - FileStore: generation-scoped file persistence
//   - GenerationStore: generation status persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RateLimiter: per-client generation limits (nil = unlimited)
//   - TaskQueue: background execution (the CLI runs the pipeline inline)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
