package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	gameRecordPrefix  = "gamrec"
	popRecordPrefix   = "poprec"
	reviewPrefix      = "revrec"
	reviewOrderingSeq = "revseq"
)

// makeGameKey generates a key for a game record by id.
func makeGameKey(id int) []byte {
	return []byte(fmt.Sprintf("%s:%d", gameRecordPrefix, id))
}

// makePopularityKey generates a key for a popularity record by game id.
func makePopularityKey(gameID int) []byte {
	return []byte(fmt.Sprintf("%s:%d", popRecordPrefix, gameID))
}

// makeReviewKey generates a composite key for one review.
// Format: prefix:gameID:seq, with gameID and seq in BigEndian order so
// lexicographic iteration yields reviews per game in append order.
func makeReviewKey(gameID int, seq uint64) []byte {
	prefix := reviewPrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16 // 8 bytes for gameID + 8 bytes for seq
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(gameID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makePartialReviewKey generates a partial key for iterating one game's reviews.
// Format: prefix:gameID
func makePartialReviewKey(gameID int) []byte {
	prefix := reviewPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(gameID))
	return buf
}
