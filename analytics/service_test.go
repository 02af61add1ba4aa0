package analytics

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/storage"
	"github.com/poiesic/scholaris/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepositories(t *testing.T) (storage.ResearcherRepository, storage.PublicationRepository, storage.ThesisRepository) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)

	t.Cleanup(func() {
		thesisRepo.Close()
		publicationRepo.Close()
		researcherRepo.Close()
		backend.Close()
	})

	return researcherRepo, publicationRepo, thesisRepo
}

func newTestService(t *testing.T) (*Service, storage.ResearcherRepository, storage.PublicationRepository, storage.ThesisRepository) {
	researcherRepo, publicationRepo, thesisRepo := setupTestRepositories(t)

	service, err := NewService(researcherRepo, publicationRepo, thesisRepo)
	require.NoError(t, err)

	return service, researcherRepo, publicationRepo, thesisRepo
}

// campus is a small seeded corpus with known aggregate numbers.
type campus struct {
	adeyemi  *core.Researcher // Marine Science
	banda    *core.Researcher // Marine Science
	castillo *core.Researcher // Energy Systems
	okonkwo  *core.Researcher // no department
}

func seedCampus(t *testing.T, researcherRepo storage.ResearcherRepository, publicationRepo storage.PublicationRepository, thesisRepo storage.ThesisRepository) *campus {
	ctx := context.Background()

	researchers, err := researcherRepo.AddResearchers(ctx,
		&core.Researcher{Name: "Dr. Adeyemi", Department: "Marine Science", Interests: []string{"coral reef resilience"}},
		&core.Researcher{Name: "Dr. Banda", Department: "Marine Science", Interests: []string{"ocean acidification"}},
		&core.Researcher{Name: "Dr. Castillo", Department: "Energy Systems", Interests: []string{"grid scale storage"}},
		&core.Researcher{Name: "Dr. Okonkwo"},
	)
	require.NoError(t, err)
	require.Len(t, researchers, 4)

	c := &campus{
		adeyemi:  researchers[0],
		banda:    researchers[1],
		castillo: researchers[2],
		okonkwo:  researchers[3],
	}

	_, err = publicationRepo.AddPublications(ctx,
		&core.Publication{
			Title:   "Reef Futures",
			Authors: []core.ID{c.adeyemi.Id, c.banda.Id},
			Goals:   []string{"SDG_14"},
		},
		&core.Publication{
			Title:   "Acidification and Warming",
			Authors: []core.ID{c.adeyemi.Id, c.banda.Id},
			Goals:   []string{"SDG_13", "SDG_14"},
		},
		&core.Publication{
			Title:   "Tidal Power for Coastal Stations",
			Authors: []core.ID{c.adeyemi.Id, c.castillo.Id},
			Goals:   []string{"SDG_7"},
		},
		&core.Publication{
			Title:   "Flow Battery Chemistry Notes",
			Authors: []core.ID{c.castillo.Id},
		},
		&core.Publication{
			Title: "Editorial: The Decade Ahead",
			Goals: []string{"SDG_13"},
		},
	)
	require.NoError(t, err)

	submitted := time.Now().Add(-30 * 24 * time.Hour)
	_, err = thesisRepo.AddTheses(ctx,
		&core.Thesis{Title: "Coral Nurseries at Scale", Student: "A. Mwangi", Kind: core.ThesisMasters, SupervisorId: c.adeyemi.Id, SubmittedAt: submitted},
		&core.Thesis{Title: "Acoustic Reef Monitoring", Student: "J. Silva", Kind: core.ThesisPhD, SupervisorId: c.adeyemi.Id, SubmittedAt: submitted},
		&core.Thesis{Title: "Flow Battery Membranes", Student: "K. Osei", Kind: core.ThesisMasters, SupervisorId: c.castillo.Id, SubmittedAt: submitted},
		&core.Thesis{Title: "Unassigned Draft", Student: "L. Haddad", Kind: core.ThesisBachelor, SubmittedAt: submitted},
	)
	require.NoError(t, err)

	return c
}

func TestNewService(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo := setupTestRepositories(t)

	t.Run("valid construction", func(t *testing.T) {
		service, err := NewService(researcherRepo, publicationRepo, thesisRepo)
		require.NoError(t, err)
		assert.NotNil(t, service)
	})

	t.Run("nil researcher repository", func(t *testing.T) {
		service, err := NewService(nil, publicationRepo, thesisRepo)
		assert.Nil(t, service)
		assert.Equal(t, ErrResearcherRepositoryRequired, err)
	})

	t.Run("nil publication repository", func(t *testing.T) {
		service, err := NewService(researcherRepo, nil, thesisRepo)
		assert.Nil(t, service)
		assert.Equal(t, ErrPublicationRepositoryRequired, err)
	})

	t.Run("nil thesis repository", func(t *testing.T) {
		service, err := NewService(researcherRepo, publicationRepo, nil)
		assert.Nil(t, service)
		assert.Equal(t, ErrThesisRepositoryRequired, err)
	})

	t.Run("custom logger", func(t *testing.T) {
		logger := slog.Default().With("component", "analytics")
		service, err := NewService(researcherRepo, publicationRepo, thesisRepo, WithLogger(logger))
		require.NoError(t, err)
		assert.Equal(t, logger, service.logger)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		service, err := NewService(researcherRepo, publicationRepo, thesisRepo, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, service.logger)
	})
}

func TestGoalDistribution(t *testing.T) {
	service, researcherRepo, publicationRepo, thesisRepo := newTestService(t)
	seedCampus(t, researcherRepo, publicationRepo, thesisRepo)

	distribution, err := service.GoalDistribution(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, distribution.Total)
	assert.Equal(t, 4, distribution.Tagged)
	assert.InDelta(t, 0.8, distribution.CoverageRate, 1e-9)

	require.Len(t, distribution.Goals, 3)

	// Count descending, ties in numeric goal order
	assert.Equal(t, "SDG_13", distribution.Goals[0].Code)
	assert.Equal(t, "Climate Action", distribution.Goals[0].Label)
	assert.Equal(t, 2, distribution.Goals[0].Count)
	assert.InDelta(t, 0.5, distribution.Goals[0].Share, 1e-9)

	assert.Equal(t, "SDG_14", distribution.Goals[1].Code)
	assert.Equal(t, 2, distribution.Goals[1].Count)
	assert.InDelta(t, 0.5, distribution.Goals[1].Share, 1e-9)

	assert.Equal(t, "SDG_7", distribution.Goals[2].Code)
	assert.Equal(t, 1, distribution.Goals[2].Count)
	assert.InDelta(t, 0.25, distribution.Goals[2].Share, 1e-9)
}

func TestGoalDistribution_EmptyCorpus(t *testing.T) {
	service, _, _, _ := newTestService(t)

	distribution, err := service.GoalDistribution(context.Background())
	require.NoError(t, err)

	assert.Empty(t, distribution.Goals)
	assert.Equal(t, 0, distribution.Total)
	assert.Equal(t, 0, distribution.Tagged)
	assert.Equal(t, 0.0, distribution.CoverageRate)
}

func TestDepartmentPerformance(t *testing.T) {
	service, researcherRepo, publicationRepo, thesisRepo := newTestService(t)
	seedCampus(t, researcherRepo, publicationRepo, thesisRepo)

	performance, err := service.DepartmentPerformance(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, performance.TotalResearchers)
	assert.Equal(t, 5, performance.TotalPublications)

	require.Len(t, performance.Departments, 2)

	marine := performance.Departments[0]
	assert.Equal(t, "Marine Science", marine.Name)
	assert.Equal(t, 2, marine.Researchers)
	assert.Equal(t, 3, marine.Publications)
	assert.InDelta(t, 1.5, marine.PublicationsPerResearcher, 1e-9)

	energy := performance.Departments[1]
	assert.Equal(t, "Energy Systems", energy.Name)
	assert.Equal(t, 1, energy.Researchers)
	assert.Equal(t, 2, energy.Publications)
	assert.InDelta(t, 2.0, energy.PublicationsPerResearcher, 1e-9)
}

func TestDepartmentPerformance_SharedPublicationCountsOncePerDepartment(t *testing.T) {
	service, researcherRepo, publicationRepo, _ := newTestService(t)
	ctx := context.Background()

	researchers, err := researcherRepo.AddResearchers(ctx,
		&core.Researcher{Name: "Dr. Ferreira", Department: "Hydrology"},
		&core.Researcher{Name: "Dr. Lindqvist", Department: "Hydrology"},
	)
	require.NoError(t, err)

	// Two authors from the same department, one credit
	_, err = publicationRepo.AddPublications(ctx, &core.Publication{
		Title:   "Aquifer Recharge Rates",
		Authors: []core.ID{researchers[0].Id, researchers[1].Id},
	})
	require.NoError(t, err)

	performance, err := service.DepartmentPerformance(ctx)
	require.NoError(t, err)

	require.Len(t, performance.Departments, 1)
	assert.Equal(t, 1, performance.Departments[0].Publications)
	assert.InDelta(t, 0.5, performance.Departments[0].PublicationsPerResearcher, 1e-9)
}

func TestCollaborationMetrics(t *testing.T) {
	service, researcherRepo, publicationRepo, thesisRepo := newTestService(t)
	c := seedCampus(t, researcherRepo, publicationRepo, thesisRepo)

	metrics, err := service.CollaborationMetrics(context.Background())
	require.NoError(t, err)

	// Edges: (adeyemi, banda) strength 2, (adeyemi, castillo) strength 1
	assert.Equal(t, 2, metrics.Edges)
	assert.InDelta(t, 1.5, metrics.AverageStrength, 1e-9)
	assert.Equal(t, map[string]int{"1-2": 2, "3-5": 0, "6-10": 0, ">10": 0}, metrics.StrengthBuckets)

	require.Len(t, metrics.TopCollaborators, 3)

	assert.Equal(t, c.adeyemi.Id, metrics.TopCollaborators[0].Id)
	assert.Equal(t, "Dr. Adeyemi", metrics.TopCollaborators[0].Name)
	assert.Equal(t, "Marine Science", metrics.TopCollaborators[0].Department)
	assert.Equal(t, 2, metrics.TopCollaborators[0].Partners)
	assert.Equal(t, 3, metrics.TopCollaborators[0].Joint)

	// Partner-count tie keeps storage order
	assert.Equal(t, c.banda.Id, metrics.TopCollaborators[1].Id)
	assert.Equal(t, 1, metrics.TopCollaborators[1].Partners)
	assert.Equal(t, 2, metrics.TopCollaborators[1].Joint)

	assert.Equal(t, c.castillo.Id, metrics.TopCollaborators[2].Id)
	assert.Equal(t, 1, metrics.TopCollaborators[2].Partners)
	assert.Equal(t, 1, metrics.TopCollaborators[2].Joint)
}

func TestCollaborationMetrics_EmptyCorpus(t *testing.T) {
	service, _, _, _ := newTestService(t)

	metrics, err := service.CollaborationMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, metrics.Edges)
	assert.Equal(t, 0.0, metrics.AverageStrength)
	assert.Equal(t, map[string]int{"1-2": 0, "3-5": 0, "6-10": 0, ">10": 0}, metrics.StrengthBuckets)
	assert.Empty(t, metrics.TopCollaborators)
}

func TestCollaborationMetrics_RepeatedAuthor(t *testing.T) {
	service, researcherRepo, publicationRepo, _ := newTestService(t)
	ctx := context.Background()

	researchers, err := researcherRepo.AddResearchers(ctx,
		&core.Researcher{Name: "Dr. Petrov", Department: "Geology"},
		&core.Researcher{Name: "Dr. Anand", Department: "Geology"},
	)
	require.NoError(t, err)

	// A double-listed author must not produce a self-edge
	_, err = publicationRepo.AddPublications(ctx, &core.Publication{
		Title:   "Seismic Profiles of the Rift Valley",
		Authors: []core.ID{researchers[0].Id, researchers[0].Id, researchers[1].Id},
	})
	require.NoError(t, err)

	metrics, err := service.CollaborationMetrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.Edges)
	assert.InDelta(t, 1.0, metrics.AverageStrength, 1e-9)
	require.Len(t, metrics.TopCollaborators, 2)
	assert.Equal(t, 1, metrics.TopCollaborators[0].Partners)
	assert.Equal(t, 1, metrics.TopCollaborators[1].Partners)
}

func TestSupervisorLoads(t *testing.T) {
	service, researcherRepo, publicationRepo, thesisRepo := newTestService(t)
	c := seedCampus(t, researcherRepo, publicationRepo, thesisRepo)

	loads, err := service.SupervisorLoads(context.Background())
	require.NoError(t, err)

	require.Len(t, loads, 2)

	assert.Equal(t, c.adeyemi.Id, loads[0].Id)
	assert.Equal(t, "Dr. Adeyemi", loads[0].Name)
	assert.Equal(t, 2, loads[0].Theses)

	assert.Equal(t, c.castillo.Id, loads[1].Id)
	assert.Equal(t, 1, loads[1].Theses)
}

func TestSupervisorLoads_NoTheses(t *testing.T) {
	service, researcherRepo, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := researcherRepo.AddResearchers(ctx,
		&core.Researcher{Name: "Dr. Adeyemi", Department: "Marine Science"})
	require.NoError(t, err)

	loads, err := service.SupervisorLoads(ctx)
	require.NoError(t, err)
	assert.Empty(t, loads)
}

func TestSummary(t *testing.T) {
	service, researcherRepo, publicationRepo, thesisRepo := newTestService(t)
	seedCampus(t, researcherRepo, publicationRepo, thesisRepo)

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Researchers)
	assert.Equal(t, 5, summary.Publications)
	assert.Equal(t, 4, summary.Theses)
	assert.Equal(t, 2, summary.Departments)
}

func TestSummary_EmptyCorpus(t *testing.T) {
	service, _, _, _ := newTestService(t)

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Researchers)
	assert.Equal(t, 0, summary.Publications)
	assert.Equal(t, 0, summary.Theses)
	assert.Equal(t, 0, summary.Departments)
}
