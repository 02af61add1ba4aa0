package analytics

import (
	"context"
	"sort"

	"github.com/poiesic/scholaris/core"
)

// topCollaboratorLimit caps the most-connected researcher list.
const topCollaboratorLimit = 10

// Collaborator summarizes one researcher's position in the co-authorship
// graph.
type Collaborator struct {
	Id         core.ID
	Name       string
	Department string
	Partners   int // distinct co-authors
	Joint      int // joint publications summed over all partners
}

// CollaborationMetrics describes the co-authorship graph derived from
// publication author lists. An edge is an unordered researcher pair; its
// strength is how many publications the pair wrote together.
type CollaborationMetrics struct {
	Edges            int
	AverageStrength  float64
	StrengthBuckets  map[string]int // "1-2", "3-5", "6-10", ">10"
	TopCollaborators []Collaborator
}

// CollaborationMetrics derives the co-authorship graph from stored
// publications.
func (s *Service) CollaborationMetrics(ctx context.Context) (*CollaborationMetrics, error) {
	publications, err := s.publicationRepository.ListPublications(ctx)
	if err != nil {
		return nil, err
	}
	researchers, err := s.researcherRepository.ListResearchers(ctx)
	if err != nil {
		return nil, err
	}

	type pair struct{ a, b core.ID }
	strengths := make(map[pair]int)
	for _, publication := range publications {
		authors := dedupeAuthors(publication.Authors)
		for i := 0; i < len(authors); i++ {
			for j := i + 1; j < len(authors); j++ {
				a, b := authors[i], authors[j]
				if b < a {
					a, b = b, a
				}
				strengths[pair{a, b}]++
			}
		}
	}

	metrics := &CollaborationMetrics{
		Edges:           len(strengths),
		StrengthBuckets: map[string]int{"1-2": 0, "3-5": 0, "6-10": 0, ">10": 0},
	}

	partners := make(map[core.ID]int)
	joint := make(map[core.ID]int)
	total := 0
	for edge, strength := range strengths {
		total += strength
		metrics.StrengthBuckets[strengthBucket(strength)]++
		partners[edge.a]++
		partners[edge.b]++
		joint[edge.a] += strength
		joint[edge.b] += strength
	}
	if metrics.Edges > 0 {
		metrics.AverageStrength = float64(total) / float64(metrics.Edges)
	}

	top := make([]Collaborator, 0, len(partners))
	for _, researcher := range researchers {
		if partners[researcher.Id] == 0 {
			continue
		}
		top = append(top, Collaborator{
			Id:         researcher.Id,
			Name:       researcher.Name,
			Department: researcher.Department,
			Partners:   partners[researcher.Id],
			Joint:      joint[researcher.Id],
		})
	}
	// Most connected first; ties keep storage order
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Partners > top[j].Partners
	})
	if len(top) > topCollaboratorLimit {
		top = top[:topCollaboratorLimit]
	}
	metrics.TopCollaborators = top

	s.logger.Debug("computed collaboration graph",
		"publications", len(publications), "edges", metrics.Edges)

	return metrics, nil
}

// strengthBucket places an edge strength into its reporting bucket.
func strengthBucket(strength int) string {
	switch {
	case strength <= 2:
		return "1-2"
	case strength <= 5:
		return "3-5"
	case strength <= 10:
		return "6-10"
	default:
		return ">10"
	}
}

// dedupeAuthors drops repeated IDs so a double-listed author never pairs
// with themselves.
func dedupeAuthors(authors []core.ID) []core.ID {
	if len(authors) < 2 {
		return authors
	}
	seen := make(map[core.ID]bool, len(authors))
	unique := make([]core.ID, 0, len(authors))
	for _, id := range authors {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}
