package storage

import (
	"context"

	"github.com/poiesic/ludex/core"
)

// GameRepository provides operations for managing game records.
// Implementations must be thread-safe and support concurrent access.
type GameRepository interface {
	// PutGames stores one or more game records, overwriting existing records
	// with the same id. Sets InsertedAt on first write and refreshes
	// UpdatedAt on every write.
	PutGames(ctx context.Context, games ...*core.Game) error

	// GetGame retrieves a single game by id.
	// Returns core.ErrNotFound if the game doesn't exist.
	GetGame(ctx context.Context, id int) (*core.Game, error)

	// GetGames retrieves multiple games by their ids.
	// Returns only the games that exist (no error for missing ids).
	GetGames(ctx context.Context, ids ...int) ([]*core.Game, error)

	// AllGames returns every stored game, ordered by id.
	AllGames(ctx context.Context) ([]*core.Game, error)

	// FindSimilar finds games whose embedding is similar to the given vector.
	// Games without an embedding are skipped. Returns games with similarity
	// >= minSimilarity, up to limit results, highest score first.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.GameHit, error)

	// Close releases resources held by the repository.
	Close() error
}

// PopularityRepository maintains per-game lookup counters.
type PopularityRepository interface {
	// IncrementLookup creates the game's popularity record with Count=1 on
	// first call and atomically increments it by exactly one on every later
	// call, refreshing LastSeen. Safe under concurrent calls for the same
	// game id: no increments are lost.
	IncrementLookup(ctx context.Context, gameID int) error

	// TopRecords returns popularity records ordered by count descending,
	// up to limit records. Ties are broken by ascending game id so output
	// is deterministic.
	TopRecords(ctx context.Context, limit int) ([]*core.PopularityRecord, error)

	// Close releases resources held by the repository.
	Close() error
}

// ReviewRepository stores per-game review lists. Reviews are append-only;
// concurrent appends to the same game must not lose entries.
type ReviewRepository interface {
	// AppendReview appends a review to the game's review list.
	AppendReview(ctx context.Context, review *core.Review) error

	// GetReviews returns all reviews of a game in append order.
	// Returns an empty slice for games with no reviews.
	GetReviews(ctx context.Context, gameID int) ([]*core.Review, error)

	// Close releases resources held by the repository.
	Close() error
}
