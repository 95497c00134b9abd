package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for records that are not keyed by the catalog's
// own integer game ids (reviews, for example). It is generated using
// content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Game is a single catalog record. The integer id is assigned at ingestion
// and immutable afterwards. MinPlayers <= MaxPlayers is NOT enforced; source
// data violates it in real records and the catalog passes it through.
type Game struct {
	Id          int
	Name        string
	Description string
	MinPlayers  int
	MaxPlayers  int
	MinAge      int
	PlayingTime int
	Categories  []string
	Mechanics   []string
	Vector      []float32 // Description embedding (populated by the enrichment pass)
	InsertedAt  time.Time // When the record was ingested
	UpdatedAt   time.Time // When the record was last updated
}

// PopularityRecord is a per-game lookup counter. It is created with Count=1
// on the first lookup of a game and incremented on every later one; it is
// never deleted by normal operation.
type PopularityRecord struct {
	GameId   int
	Count    int64
	LastSeen time.Time
}

// Sentiment is the output of the sentiment model for a piece of text.
type Sentiment struct {
	Polarity     float64 // [-1, 1]; negative values indicate negative sentiment
	Subjectivity float64 // [0, 1]; 0 is fully objective
}

// Classification buckets a review by the sign of its polarity.
type Classification int

const (
	ClassificationNeutral Classification = iota
	ClassificationPositive
	ClassificationNegative
)

// Classify derives the categorical classification from a polarity value.
// Strictly positive polarity is Positive, strictly negative is Negative,
// exactly zero is Neutral.
func Classify(polarity float64) Classification {
	switch {
	case polarity > 0:
		return ClassificationPositive
	case polarity < 0:
		return ClassificationNegative
	default:
		return ClassificationNeutral
	}
}

func (c Classification) String() string {
	switch c {
	case ClassificationPositive:
		return "Positive"
	case ClassificationNegative:
		return "Negative"
	default:
		return "Neutral"
	}
}

// Review is a single free-text review of a game, enriched with the sentiment
// model's output at submission time. Reviews are append-only; existing
// reviews are never updated or deleted.
type Review struct {
	Id           ID
	GameId       int
	Text         string
	Polarity     float64
	Subjectivity float64
	SubmittedAt  time.Time
}

// Classification returns the categorical sentiment bucket for this review.
func (r *Review) Classification() Classification {
	return Classify(r.Polarity)
}

// SentimentSummary aggregates the sentiment of all reviews of one game.
type SentimentSummary struct {
	MeanPolarity     float64
	MeanSubjectivity float64
	ReviewCount      int
}

// GameHit pairs a game snapshot with the engine-defined relevance score.
// Scores are non-negative and not normalized to a fixed range; higher is
// more relevant.
type GameHit struct {
	Game  *Game
	Score float64
}

// PopularGame pairs a game snapshot with its lookup count.
type PopularGame struct {
	Game  *Game
	Count int64
}
