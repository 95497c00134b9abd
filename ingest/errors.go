package ingest

import "errors"

var (
	// ErrGameRepositoryRequired is returned when a game repository is not provided.
	ErrGameRepositoryRequired = errors.New("game repository required")

	// ErrIndexRequired is returned when an index is not provided.
	ErrIndexRequired = errors.New("index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrMissingColumn is returned when the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
)
