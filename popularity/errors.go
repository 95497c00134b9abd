package popularity

import "errors"

var (
	// ErrPopularityRepositoryRequired is returned when a popularity repository is not provided.
	ErrPopularityRepositoryRequired = errors.New("popularity repository required")

	// ErrGameRepositoryRequired is returned when a game repository is not provided.
	ErrGameRepositoryRequired = errors.New("game repository required")
)
