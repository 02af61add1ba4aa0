package ai

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/go-crypt/x/blake2b"
)

// fallbackSeed derives a stable 64-bit seed from text. Same recipe as
// content-based record IDs, so the mapping holds across processes and
// restarts.
func fallbackSeed(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return binary.LittleEndian.Uint64(h.Sum(nil))
}

// fallbackVector generates a deterministic unit-norm pseudo-embedding for
// text. Vectors are drawn from a PCG stream seeded by the text hash and
// L2-normalized, keeping cosine math well-defined downstream.
func fallbackVector(text string, dimension int) []float32 {
	if dimension < 1 {
		return nil
	}

	seed := fallbackSeed(text)
	rng := rand.New(rand.NewPCG(seed, seed))

	parts := make([]float64, dimension)
	var sumSquares float64
	for i := range parts {
		parts[i] = rng.NormFloat64()
		sumSquares += parts[i] * parts[i]
	}

	vector := make([]float32, dimension)
	if sumSquares == 0 {
		// All-zero draw cannot be normalized; vanishingly unlikely but
		// the zero vector is still a valid "no signal" embedding.
		return vector
	}
	norm := math.Sqrt(sumSquares)
	for i, part := range parts {
		vector[i] = float32(part / norm)
	}
	return vector
}
