package analytics

import (
	"context"
	"sort"

	"github.com/poiesic/scholaris/core"
)

// DepartmentStats holds the research output of one department.
type DepartmentStats struct {
	Name                      string
	Researchers               int
	Publications              int
	PublicationsPerResearcher float64
}

// DepartmentPerformance aggregates research output by department.
type DepartmentPerformance struct {
	Departments       []DepartmentStats
	TotalResearchers  int
	TotalPublications int
}

// DepartmentPerformance attributes each publication to the departments its
// authors belong to, at most once per department, and reports output sorted
// by publication count descending.
func (s *Service) DepartmentPerformance(ctx context.Context) (*DepartmentPerformance, error) {
	researchers, err := s.researcherRepository.ListResearchers(ctx)
	if err != nil {
		return nil, err
	}
	publications, err := s.publicationRepository.ListPublications(ctx)
	if err != nil {
		return nil, err
	}

	departmentOf := make(map[core.ID]string, len(researchers))
	researcherCounts := make(map[string]int)
	for _, researcher := range researchers {
		if researcher.Department == "" {
			continue
		}
		departmentOf[researcher.Id] = researcher.Department
		researcherCounts[researcher.Department]++
	}

	publicationCounts := make(map[string]int)
	for _, publication := range publications {
		credited := make(map[string]bool)
		for _, author := range publication.Authors {
			department := departmentOf[author]
			if department == "" || credited[department] {
				continue
			}
			credited[department] = true
			publicationCounts[department]++
		}
	}

	names := make([]string, 0, len(researcherCounts))
	for name := range researcherCounts {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]DepartmentStats, 0, len(names))
	for _, name := range names {
		entry := DepartmentStats{
			Name:         name,
			Researchers:  researcherCounts[name],
			Publications: publicationCounts[name],
		}
		entry.PublicationsPerResearcher = float64(entry.Publications) / float64(entry.Researchers)
		stats = append(stats, entry)
	}
	// Most productive first; ties stay alphabetical
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Publications > stats[j].Publications
	})

	return &DepartmentPerformance{
		Departments:       stats,
		TotalResearchers:  len(researchers),
		TotalPublications: len(publications),
	}, nil
}
