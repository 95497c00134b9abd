package recommend

import "errors"

var (
	// ErrGameRepositoryRequired is returned when a game repository is not provided.
	ErrGameRepositoryRequired = errors.New("game repository required")

	// ErrIndexRequired is returned when an index is not provided.
	ErrIndexRequired = errors.New("index required")
)
