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


// Package match provides vector similarity ranking and the matching use cases
// built on it.
//
// The ranking core is pure: given a query vector and candidate vectors it
// orders candidates by ascending cosine distance and reports similarity as
// 1 - distance/2, so identical direction scores 1, orthogonal scores 0.5 and
// opposite direction scores 0. Ties keep candidate input order.
//
// The Matcher type composes the ranker with the embedding provider and the
// repositories for three use cases: supervisor matching for thesis abstracts,
// researcher alignment for grant descriptions, and publication
// recommendations from a researcher's stored interest vector. Operations
// degrade to empty results when embeddings are missing; the only error a
// ranking itself can raise is a vector dimension mismatch, which indicates
// corrupted or mixed-model vectors and is never masked.
package match
