// Package services implements the application core: heightmap
// preprocessing and adjustment, relief transformation, coin body
// construction, boolean combination, the generation pipeline and the
// generation lifecycle manager. Services depend only on domain types
// and ports; concrete mesher, kernel, storage and queue implementations
// are injected.
package services
