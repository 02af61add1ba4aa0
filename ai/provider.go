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


package ai

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Provider is the process-level embedding handle. It defers backend
// construction to first use, and degrades to deterministic fallback vectors
// when no backend can be reached. Safe for concurrent use.
type Provider struct {
	config  *Config
	factory BackendFactory
	logger  *slog.Logger

	loadOnce sync.Once
	backend  Embedder
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithBackendFactory sets the factory used to construct the embedding
// backend on first use. Without a factory (or a pre-built backend) the
// provider serves fallback vectors only.
func WithBackendFactory(factory BackendFactory) ProviderOption {
	return func(p *Provider) {
		p.factory = factory
	}
}

// WithBackend injects an already-constructed backend, skipping the lazy
// factory load entirely. Intended for tests and embedded setups.
func WithBackend(backend Embedder) ProviderOption {
	return func(p *Provider) {
		p.backend = backend
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default() with a component attribute.
func WithLogger(logger *slog.Logger) ProviderOption {
	return func(p *Provider) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// NewProvider creates an embedding provider. A nil config gets the defaults.
// Construction never fails; backend problems surface on first embed as a
// logged warning and fallback vectors.
func NewProvider(config *Config, opts ...ProviderOption) *Provider {
	if config == nil {
		config = DefaultConfig()
	}
	config.Normalize()

	p := &Provider{
		config: config,
		logger: slog.Default().With("component", "embedding-provider"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dimension returns the configured width of generated vectors.
func (p *Provider) Dimension() int {
	return p.config.Dimension
}

// Embed generates a vector embedding for a single text.
//
// Blank text yields nil; a missing vector is a representable state, never an
// error. When the backend is unavailable the provider serves a deterministic
// fallback vector derived from the text alone, so identical text maps to the
// identical vector across processes. A backend that loaded but fails mid-call
// yields nil instead: transient failures must not fabricate vectors.
func (p *Provider) Embed(ctx context.Context, text string) []float32 {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	backend := p.loadBackend()
	if backend == nil {
		p.logger.Warn("embedding backend unavailable, serving fallback vector")
		return fallbackVector(text, p.config.Dimension)
	}

	vector, err := backend.EmbedText(ctx, text)
	if err != nil {
		p.logger.Error("embedding generation failed",
			"model", p.config.EmbeddingModel,
			"error", err)
		return nil
	}
	return vector
}

// EmbedBatch generates embeddings for multiple texts with the same per-text
// semantics as Embed. Blank texts get nil slots and never reach the backend;
// the remaining texts go through one EmbedTexts call. A batch-level backend
// error nils every slot.
func (p *Provider) EmbedBatch(ctx context.Context, texts []string) [][]float32 {
	if len(texts) == 0 {
		return nil
	}

	vectors := make([][]float32, len(texts))

	backend := p.loadBackend()
	if backend == nil {
		served := 0
		for i, text := range texts {
			if strings.TrimSpace(text) == "" {
				continue
			}
			vectors[i] = fallbackVector(text, p.config.Dimension)
			served++
		}
		if served > 0 {
			p.logger.Warn("embedding backend unavailable, serving fallback vectors",
				"count", served)
		}
		return vectors
	}

	// Pack the non-blank slots so blank texts never reach the backend.
	indices := make([]int, 0, len(texts))
	batch := make([]string, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		indices = append(indices, i)
		batch = append(batch, text)
	}
	if len(batch) == 0 {
		return vectors
	}

	embedded, err := backend.EmbedTexts(ctx, batch)
	if err != nil {
		p.logger.Error("batch embedding generation failed",
			"count", len(batch),
			"error", err)
		return vectors
	}
	if len(embedded) != len(batch) {
		p.logger.Error("batch embedding returned unexpected count",
			"want", len(batch),
			"got", len(embedded))
		return vectors
	}
	for j, i := range indices {
		vectors[i] = embedded[j]
	}
	return vectors
}

// loadBackend resolves the backend exactly once. A pre-injected backend wins;
// otherwise the factory runs, and a factory failure leaves the provider in
// fallback mode for its lifetime.
func (p *Provider) loadBackend() Embedder {
	p.loadOnce.Do(func() {
		if p.backend != nil {
			return
		}
		if p.factory == nil {
			p.logger.Warn("no embedding backend configured, fallback vectors only")
			return
		}
		backend, err := p.factory(p.config)
		if err != nil {
			p.logger.Warn("embedding backend failed to load, fallback vectors only",
				"host", p.config.EmbeddingHost,
				"model", p.config.EmbeddingModel,
				"error", err)
			return
		}
		p.logger.Debug("embedding backend loaded",
			"host", p.config.EmbeddingHost,
			"model", p.config.EmbeddingModel)
		p.backend = backend
	})
	return p.backend
}
