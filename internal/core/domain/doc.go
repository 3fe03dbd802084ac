// Package domain defines the core business entities for Coin Maker.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CoinParameters: validated inputs for a coin generation
//   - ImageAdjustments: heightmap tone adjustments
//   - Generation: lifecycle of one generation request
//   - TriangleMesh: raw vertex/triangle buffers exchanged with the kernel
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
