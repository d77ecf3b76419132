// Package domain defines the core business entities for ragpipe.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A raw text document with metadata
//   - Node: A bounded chunk of a document, the atomic unit of retrieval
//   - ScoredNode: A node paired with an optional retrieval score
//   - Query: The query-time context handed to postprocessors
//   - EvalRecord: A labelled retrieval result for offline evaluation
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
