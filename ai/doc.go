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


// Package ai provides text embedding services for Scholaris.
//
// This package defines the Embedder abstraction and the Provider that the
// rest of the system embeds through. Business logic depends on these
// abstractions rather than on any concrete embedding service.
//
// # Design Principles
//
// The package is designed around two key types:
//
//   - Embedder: Generates vector embeddings from text
//   - Provider: Process-level handle with lazy backend loading and a
//     deterministic fallback when no backend is reachable
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production Embedder using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Provider Semantics
//
// The Provider never fails construction and never returns embedding errors
// to callers. Instead it follows three rules:
//
//   - Blank text yields a nil vector. Absence of a vector is a representable
//     state throughout the system, never an error.
//   - An unreachable backend (factory failure or no factory at all) puts the
//     provider in fallback mode: vectors are drawn deterministically from a
//     hash of the text, so identical text yields the identical vector in
//     every process. Fallback vectors carry no semantic signal but keep the
//     full pipeline exercisable offline.
//   - A backend that loaded but fails on a call yields nil. Transient
//     failures must not fabricate vectors that would then be persisted.
//
// # Usage Example
//
//	// Production usage with the OpenAI-compatible backend
//	config := ai.DefaultConfig()
//	provider := ai.NewProvider(config, ai.WithBackendFactory(openai.NewEmbedder))
//
//	vector := provider.Embed(ctx, "machine learning for climate models")
//
//	// Testing usage with mocks
//	provider := ai.NewProvider(nil, ai.WithBackend(mock.NewMockEmbedder()))
package ai
