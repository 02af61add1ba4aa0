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


package match

import "errors"

var (
	// ErrDimensionMismatch is returned when vectors of different widths are
	// compared. Mixed widths mean vectors from different models or
	// configurations ended up in one store, which must surface, not score.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrResearcherRepositoryRequired is returned when a researcher repository is not provided.
	ErrResearcherRepositoryRequired = errors.New("researcher repository required")

	// ErrPublicationRepositoryRequired is returned when a publication repository is not provided.
	ErrPublicationRepositoryRequired = errors.New("publication repository required")

	// ErrEmbeddingProviderRequired is returned when an embedding provider is not provided.
	ErrEmbeddingProviderRequired = errors.New("embedding provider required")
)
