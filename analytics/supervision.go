package analytics

import (
	"context"
	"sort"

	"github.com/poiesic/scholaris/core"
)

// SupervisorLoad is the number of theses one researcher supervises.
type SupervisorLoad struct {
	Id         core.ID
	Name       string
	Department string
	Theses     int
}

// SupervisorLoads reports theses per supervising researcher through the
// supervisor index, heaviest load first. Researchers supervising nothing
// are omitted.
func (s *Service) SupervisorLoads(ctx context.Context) ([]SupervisorLoad, error) {
	researchers, err := s.researcherRepository.ListResearchers(ctx)
	if err != nil {
		return nil, err
	}

	var loads []SupervisorLoad
	for _, researcher := range researchers {
		theses, err := s.thesisRepository.GetThesesBySupervisor(ctx, researcher.Id)
		if err != nil {
			return nil, err
		}
		if len(theses) == 0 {
			continue
		}
		loads = append(loads, SupervisorLoad{
			Id:         researcher.Id,
			Name:       researcher.Name,
			Department: researcher.Department,
			Theses:     len(theses),
		})
	}

	sort.SliceStable(loads, func(i, j int) bool {
		return loads[i].Theses > loads[j].Theses
	})

	return loads, nil
}
