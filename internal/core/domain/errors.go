package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates splitter, parser, or stage parameters
	// are invalid (e.g. chunk overlap >= chunk size). Fatal: the caller
	// must fix the configuration before retrying.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidInput indicates the evaluator was called with a
	// degenerate cutoff or empty ground truth. Fatal per call; it does
	// not corrupt aggregate state.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingScore indicates a candidate lacks a retrieval score
	// where strict scoring was requested.
	ErrMissingScore = errors.New("candidate has no score")

	// ErrMissingTimestamp indicates a candidate lacks a parseable
	// timestamp required by a recency stage.
	ErrMissingTimestamp = errors.New("candidate has no timestamp")

	// ErrUnsupportedType indicates an unknown postprocessor stage name.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Embedding-aware stages are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
