package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/storage"
)

// ReviewRepository implements storage.ReviewRepository for BadgerDB.
//
// Each review is stored under its own composite key (gameID, seq) with seq
// drawn from a database sequence. Appends never rewrite an existing key, so
// concurrent submissions for the same game cannot clobber each other.
type ReviewRepository struct {
	backend  *Backend
	orderSeq *badger.Sequence
}

var _ storage.ReviewRepository = (*ReviewRepository)(nil)

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(backend *Backend) (*ReviewRepository, error) {
	orderSeq, err := backend.GetSequence(reviewOrderingSeq)
	if err != nil {
		return nil, err
	}

	return &ReviewRepository{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Close releases the ordering sequence.
func (r *ReviewRepository) Close() error {
	return r.orderSeq.Release()
}

// AppendReview appends a review to the game's review list.
func (r *ReviewRepository) AppendReview(ctx context.Context, review *core.Review) error {
	seq, err := r.orderSeq.Next()
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeReviewKey(review.GameId, seq)
		if err := tx.Set(key, storage.MarshalReview(review)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetReviews returns all reviews of a game in append order.
func (r *ReviewRepository) GetReviews(ctx context.Context, gameID int) ([]*core.Review, error) {
	reviews := []*core.Review{}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialReviewKey(gameID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var review *core.Review
			err := iter.Item().Value(func(val []byte) error {
				var err error
				review, err = storage.UnmarshalReview(val)
				return err
			})
			if err != nil {
				return err
			}
			if review != nil {
				reviews = append(reviews, review)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}
