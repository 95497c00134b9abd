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


// Package search implements catalog queries over the lexical index and the
// stored embeddings.
//
// The pipeline is split into three pieces:
//
//   - Criteria.Compile translates optional request filters into an ordered
//     list of atomic query conditions (pure)
//   - Compose combines a condition list into one capped conjunctive search
//     request (pure)
//   - Searcher executes composed requests against the index and resolves
//     the hits to full game snapshots from the store
//
// Keeping compilation and composition pure means the query shape for a given
// criteria set is fully deterministic and testable without an index.
package search
