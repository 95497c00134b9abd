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


// Package storage provides the storage abstraction layer for ludex.
//
// It defines repository interfaces that decouple the catalog from the
// concrete document store. The badger subpackage is the production
// implementation; tests use its in-memory mode.
//
// Three repositories cover the catalog's shared mutable state:
//
//   - GameRepository: full game records, including optional embeddings,
//     plus brute-force vector similarity search over them
//   - PopularityRepository: per-game lookup counters with atomic,
//     race-safe increments
//   - ReviewRepository: append-only per-game review lists
//
// All repository implementations must be thread-safe. Methods accept
// context.Context for cancellation; pass context.Background() when no
// timeout is needed.
package storage
