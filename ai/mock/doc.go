// Package mock provides test double implementations of the embedding interface.
//
// This package contains a mock implementation of ai.Embedder for use in unit
// tests. The mock allows tests to run without external embedding services and
// enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockEmbedder := mock.NewMockEmbedder()
//	vector, err := mockEmbedder.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Check call counts
//	count := mockEmbedder.CallCount()
//
// # Default Behavior
//
// Without injected functions, MockEmbedder returns unit-norm deterministic
// vectors derived from a hash of the input text, so equality assertions on
// repeated embeddings hold.
package mock
