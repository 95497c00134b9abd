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


package badger

import "github.com/poiesic/ludex/storage"

// NewMemoryRepositories creates in-memory game, popularity, and review
// repositories for testing. Caller must close all repos and the backend
// when done.
func NewMemoryRepositories() (storage.GameRepository, storage.PopularityRepository, storage.ReviewRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	gameRepo, err := NewGameRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	popRepo, err := NewPopularityRepository(backend)
	if err != nil {
		gameRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	reviewRepo, err := NewReviewRepository(backend)
	if err != nil {
		popRepo.Close()
		gameRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return gameRepo, popRepo, reviewRepo, backend, nil
}
