package analytics

import (
	"context"
	"sort"

	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/sdg"
)

// GoalCount is the publication volume for one sustainable development goal.
type GoalCount struct {
	Code  string
	Label string
	Count int
	// Share is the fraction of tagged publications carrying this goal.
	// Shares sum past 1.0 when publications carry multiple goals.
	Share float64
}

// GoalDistribution summarizes how the publication corpus spreads across
// sustainable development goals.
type GoalDistribution struct {
	Goals        []GoalCount
	Total        int     // all publications
	Tagged       int     // publications carrying at least one goal
	CoverageRate float64 // Tagged over Total, zero for an empty corpus
}

// GoalDistribution counts publications per goal through the goal index.
// Goals nothing is tagged with are omitted; the rest sort by count
// descending, ties in numeric goal order.
func (s *Service) GoalDistribution(ctx context.Context) (*GoalDistribution, error) {
	publications, err := s.publicationRepository.ListPublications(ctx)
	if err != nil {
		return nil, err
	}

	tagged := make(map[core.ID]bool)
	counts := make([]GoalCount, 0, len(sdg.Goals))
	for _, goal := range sdg.Goals {
		ids, err := s.publicationRepository.GetPublicationsByGoal(ctx, goal.Code)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			continue
		}
		for _, id := range ids {
			tagged[id] = true
		}
		counts = append(counts, GoalCount{Code: goal.Code, Label: goal.Label, Count: len(ids)})
	}

	if len(tagged) > 0 {
		for i := range counts {
			counts[i].Share = float64(counts[i].Count) / float64(len(tagged))
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	distribution := &GoalDistribution{
		Goals:  counts,
		Total:  len(publications),
		Tagged: len(tagged),
	}
	if distribution.Total > 0 {
		distribution.CoverageRate = float64(distribution.Tagged) / float64(distribution.Total)
	}

	s.logger.Debug("computed goal distribution",
		"goals", len(counts), "tagged", distribution.Tagged, "total", distribution.Total)

	return distribution, nil
}
