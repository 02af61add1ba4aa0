package match

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/poiesic/scholaris/core"
)

// Candidate pairs an entity id with its precomputed embedding vector.
// The ranker never interprets the id.
type Candidate struct {
	Id     core.ID
	Vector []float32
}

// Match is a ranked result. Score is a similarity in [0, 1] where 1 means
// identical direction, 0.5 orthogonal and 0 opposite direction.
type Match struct {
	Id    core.ID
	Score float32
}

// FilterFunc reports whether a candidate should be considered.
// Filters run before any distance computation.
type FilterFunc func(id core.ID) bool

// CosineDistance returns 1 - cosine(a, b), in [0, 2].
//
// Vectors of different lengths yield ErrDimensionMismatch. Zero-magnitude
// vectors have no direction and compare as orthogonal (distance 1).
func CosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, sumA, sumB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		sumA += float64(a[i]) * float64(a[i])
		sumB += float64(b[i]) * float64(b[i])
	}
	if sumA == 0 || sumB == 0 {
		return 1, nil
	}

	cosine := dot / (math.Sqrt(sumA) * math.Sqrt(sumB))
	// Accumulated rounding can push the ratio a hair outside [-1, 1].
	cosine = max(-1, min(1, cosine))
	return 1 - cosine, nil
}

// Rank orders candidates by ascending cosine distance from query and returns
// the nearest topK as matches.
//
// A nil or empty query means the embedding failed upstream; ranking against
// nothing is defined as no matches, not an error. topK <= 0 also yields an
// empty result. Candidates are expected to carry vectors of the query's
// width; the caller excludes vectorless entities before ranking. Equal
// distances keep candidate input order.
func Rank(query []float32, candidates []Candidate, filter FilterFunc, topK int) ([]Match, error) {
	if len(query) == 0 || topK <= 0 {
		return []Match{}, nil
	}

	type scored struct {
		id       core.ID
		distance float64
	}

	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if filter != nil && !filter(candidate.Id) {
			continue
		}
		distance, err := CosineDistance(query, candidate.Vector)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, scored{id: candidate.Id, distance: distance})
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(a.distance, b.distance)
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	matches := make([]Match, len(ranked))
	for i, entry := range ranked {
		matches[i] = Match{Id: entry.id, Score: scoreFromDistance(entry.distance)}
	}
	return matches, nil
}

// scoreFromDistance maps a cosine distance in [0, 2] to a similarity in
// [0, 1]. The linear remap 1 - distance/2 is part of the output contract:
// orthogonal vectors report exactly 0.5.
func scoreFromDistance(distance float64) float32 {
	return float32(1 - distance/2)
}
