// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/poiesic/ludex/core"
)

// MarshalGame serializes a Game to bytes.
func MarshalGame(game *core.Game) []byte {
	buf := make([]byte, core.GameMUS.Size(*game))
	core.GameMUS.Marshal(*game, buf)
	return buf
}

// UnmarshalGame deserializes a Game from bytes.
func UnmarshalGame(data []byte) (*core.Game, error) {
	game, _, err := core.GameMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &game, nil
}

// MarshalPopularityRecord serializes a PopularityRecord to bytes.
func MarshalPopularityRecord(record *core.PopularityRecord) []byte {
	buf := make([]byte, core.PopularityRecordMUS.Size(*record))
	core.PopularityRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalPopularityRecord deserializes a PopularityRecord from bytes.
func UnmarshalPopularityRecord(data []byte) (*core.PopularityRecord, error) {
	record, _, err := core.PopularityRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalReview serializes a Review to bytes.
func MarshalReview(review *core.Review) []byte {
	buf := make([]byte, core.ReviewMUS.Size(*review))
	core.ReviewMUS.Marshal(*review, buf)
	return buf
}

// UnmarshalReview deserializes a Review from bytes.
func UnmarshalReview(data []byte) (*core.Review, error) {
	review, _, err := core.ReviewMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &review, nil
}
