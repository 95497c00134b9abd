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

import "errors"

// Error taxonomy shared across the catalog. Callers classify failures with
// errors.Is against these sentinels; every other error from the lower layers
// is wrapped as ErrBackendUnavailable at the facade boundary.
var (
	// ErrNotFound indicates the referenced game (or other record) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates malformed or missing required input,
	// e.g. a non-numeric bound or empty required text.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBackendUnavailable indicates the document store, index, or model
	// endpoint is unreachable or failing. The core never retries; retry and
	// backoff policy belongs to the caller.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Domain validation errors
var (
	// ErrInvalidGame indicates a Game failed validation.
	ErrInvalidGame = errors.New("invalid game")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNegativeAttribute indicates a numeric attribute is below zero.
	ErrNegativeAttribute = errors.New("numeric attribute cannot be negative")
)
