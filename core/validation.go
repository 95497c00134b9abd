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


package core

import "fmt"

// ValidateGame validates a Game according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Numeric attributes must not be negative
//
// NOT validated:
//   - MinPlayers <= MaxPlayers (real source records violate it; pass-through)
//   - Vector (can be empty until the enrichment pass runs)
//   - Description, Categories, Mechanics (optional in source data)
func ValidateGame(game *Game) error {
	if game == nil {
		return fmt.Errorf("%w: game is nil", ErrInvalidGame)
	}

	if game.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGame, ErrEmptyName)
	}

	for _, v := range []int{game.MinPlayers, game.MaxPlayers, game.MinAge, game.PlayingTime} {
		if v < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidGame, ErrNegativeAttribute)
		}
	}

	return nil
}
