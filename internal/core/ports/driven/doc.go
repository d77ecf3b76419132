// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - NodeStore: Node persistence and lookup by identifier
//   - Retriever: Returns scored candidates for a query
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it,
//     embedding-aware recency filtering is disabled.
//   - Clock: Supplies the current time; recency stages fall back to the
//     newest candidate timestamp when no clock is configured.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
