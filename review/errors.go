package review

import "errors"

var (
	// ErrReviewRepositoryRequired is returned when a review repository is not provided.
	ErrReviewRepositoryRequired = errors.New("review repository required")

	// ErrGameRepositoryRequired is returned when a game repository is not provided.
	ErrGameRepositoryRequired = errors.New("game repository required")

	// ErrAnalyzerRequired is returned when a sentiment analyzer is not provided.
	ErrAnalyzerRequired = errors.New("sentiment analyzer required")
)
