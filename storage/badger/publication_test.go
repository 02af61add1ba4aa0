package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/storage"
)

func TestPublicationBasics(t *testing.T) {
	// Create in-memory repositories
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		thesisRepo.Close()
		publicationRepo.Close()
		researcherRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// Test adding a publication
	publication := &core.Publication{
		Title:       "Solar desalination at municipal scale",
		Abstract:    "We evaluate clean water production from photovoltaic-driven desalination.",
		DOI:         "10.1234/solar.2025.007",
		PublishedAt: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Goals:       []string{"SDG_6", "SDG_7"},
	}

	added, err := publicationRepo.AddPublications(ctx, publication)
	if err != nil {
		t.Fatalf("Failed to add publication: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 publication, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	// Test retrieving the publication
	retrieved, err := publicationRepo.GetPublication(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get publication: %v", err)
	}

	if retrieved.Title != "Solar desalination at municipal scale" {
		t.Fatalf("Expected title to round-trip, got '%s'", retrieved.Title)
	}
	if len(retrieved.Goals) != 2 {
		t.Fatalf("Expected 2 goals, got %d", len(retrieved.Goals))
	}
}

func TestPublicationDOIUniqueness(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { thesisRepo.Close(); publicationRepo.Close(); researcherRepo.Close(); backend.Close() }()

	ctx := context.Background()

	first := &core.Publication{
		Title: "Original submission",
		DOI:   "10.5555/dup.2025.001",
	}
	added, err := publicationRepo.AddPublications(ctx, first)
	if err != nil {
		t.Fatalf("Failed to add publication: %v", err)
	}

	// A second publication with the same DOI must be rejected
	duplicate := &core.Publication{
		Title: "Resubmission of the same paper",
		DOI:   "10.5555/dup.2025.001",
	}
	_, err = publicationRepo.AddPublications(ctx, duplicate)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	// Lookup by DOI finds the original
	found, err := publicationRepo.GetPublicationByDOI(ctx, "10.5555/dup.2025.001")
	if err != nil {
		t.Fatalf("Failed to get publication by DOI: %v", err)
	}
	if found.Id != added[0].Id {
		t.Fatalf("Expected publication %d, got %d", added[0].Id, found.Id)
	}

	// After deleting the original, the DOI is free again
	if err := publicationRepo.DeletePublications(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete publication: %v", err)
	}
	_, err = publicationRepo.AddPublications(ctx, duplicate)
	if err != nil {
		t.Fatalf("Failed to reuse freed DOI: %v", err)
	}
}

func TestGetPublicationByDOI_NotFound(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { thesisRepo.Close(); publicationRepo.Close(); researcherRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = publicationRepo.GetPublicationByDOI(ctx, "10.9999/unknown")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestPublicationsWithoutDOI(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { thesisRepo.Close(); publicationRepo.Close(); researcherRepo.Close(); backend.Close() }()

	ctx := context.Background()

	// Multiple publications without DOIs can coexist
	publications := []*core.Publication{
		{Title: "Preprint one"},
		{Title: "Preprint two"},
	}
	_, err = publicationRepo.AddPublications(ctx, publications...)
	if err != nil {
		t.Fatalf("Failed to add publications without DOIs: %v", err)
	}

	all, err := publicationRepo.ListPublications(ctx)
	if err != nil {
		t.Fatalf("Failed to list publications: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 publications, got %d", len(all))
	}
}

func TestPublicationGoalIndex(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { thesisRepo.Close(); publicationRepo.Close(); researcherRepo.Close(); backend.Close() }()

	ctx := context.Background()

	publications := []*core.Publication{
		{Title: "Reef restoration", Goals: []string{"SDG_14"}},
		{Title: "Offshore wind and marine life", Goals: []string{"SDG_7", "SDG_14"}},
		{Title: "Urban heat islands", Goals: []string{"SDG_11"}},
	}
	added, err := publicationRepo.AddPublications(ctx, publications...)
	if err != nil {
		t.Fatalf("Failed to add publications: %v", err)
	}

	// Query for publications by goal
	marine, err := publicationRepo.GetPublicationsByGoal(ctx, "SDG_14")
	if err != nil {
		t.Fatalf("Failed to get publications by goal: %v", err)
	}
	if len(marine) != 2 {
		t.Fatalf("Expected 2 publications for SDG_14, got %d", len(marine))
	}

	energy, err := publicationRepo.GetPublicationsByGoal(ctx, "SDG_7")
	if err != nil {
		t.Fatalf("Failed to get publications by goal: %v", err)
	}
	if len(energy) != 1 {
		t.Fatalf("Expected 1 publication for SDG_7, got %d", len(energy))
	}
	if energy[0] != added[1].Id {
		t.Fatalf("Expected publication %d, got %d", added[1].Id, energy[0])
	}

	// No publications for an untagged goal
	none, err := publicationRepo.GetPublicationsByGoal(ctx, "SDG_1")
	if err != nil {
		t.Fatalf("Failed to get publications by goal: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("Expected 0 publications for SDG_1, got %d", len(none))
	}
}

func TestUpdatePublications_GoalChanges(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { thesisRepo.Close(); publicationRepo.Close(); researcherRepo.Close(); backend.Close() }()

	ctx := context.Background()

	publication := &core.Publication{
		Title: "Microplastics in freshwater",
		Goals: []string{"SDG_6"},
	}
	added, err := publicationRepo.AddPublications(ctx, publication)
	if err != nil {
		t.Fatalf("Failed to add publication: %v", err)
	}

	// Retag the publication
	added[0].Goals = []string{"SDG_14"}
	_, err = publicationRepo.UpdatePublications(ctx, added[0])
	if err != nil {
		t.Fatalf("Failed to update publication: %v", err)
	}

	// Old goal index entry is gone
	oldGoal, err := publicationRepo.GetPublicationsByGoal(ctx, "SDG_6")
	if err != nil {
		t.Fatalf("Failed to get publications by old goal: %v", err)
	}
	if len(oldGoal) != 0 {
		t.Fatalf("Expected 0 publications for old goal, got %d", len(oldGoal))
	}

	// New goal index entry exists
	newGoal, err := publicationRepo.GetPublicationsByGoal(ctx, "SDG_14")
	if err != nil {
		t.Fatalf("Failed to get publications by new goal: %v", err)
	}
	if len(newGoal) != 1 {
		t.Fatalf("Expected 1 publication for new goal, got %d", len(newGoal))
	}
}

func TestUpdatePublications_DOIChange(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { thesisRepo.Close(); publicationRepo.Close(); researcherRepo.Close(); backend.Close() }()

	ctx := context.Background()

	publications := []*core.Publication{
		{Title: "Paper A", DOI: "10.1111/a"},
		{Title: "Paper B", DOI: "10.1111/b"},
	}
	added, err := publicationRepo.AddPublications(ctx, publications...)
	if err != nil {
		t.Fatalf("Failed to add publications: %v", err)
	}

	// Changing a DOI to an already-registered one is rejected
	added[0].DOI = "10.1111/b"
	_, err = publicationRepo.UpdatePublications(ctx, added[0])
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	// Changing to a fresh DOI re-points the index
	added[0].DOI = "10.1111/c"
	_, err = publicationRepo.UpdatePublications(ctx, added[0])
	if err != nil {
		t.Fatalf("Failed to update publication DOI: %v", err)
	}

	found, err := publicationRepo.GetPublicationByDOI(ctx, "10.1111/c")
	if err != nil {
		t.Fatalf("Failed to get publication by new DOI: %v", err)
	}
	if found.Id != added[0].Id {
		t.Fatalf("Expected publication %d, got %d", added[0].Id, found.Id)
	}

	// The old DOI no longer resolves
	_, err = publicationRepo.GetPublicationByDOI(ctx, "10.1111/a")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for old DOI, got %v", err)
	}

	// Second paper is untouched
	_, err = publicationRepo.GetPublicationByDOI(ctx, "10.1111/b")
	if err != nil {
		t.Fatalf("Failed to get untouched publication: %v", err)
	}
}

func TestDeletePublications(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { thesisRepo.Close(); publicationRepo.Close(); researcherRepo.Close(); backend.Close() }()

	ctx := context.Background()

	publication := &core.Publication{
		Title: "Retracted study",
		DOI:   "10.2222/retracted",
		Goals: []string{"SDG_3"},
	}
	added, err := publicationRepo.AddPublications(ctx, publication)
	if err != nil {
		t.Fatalf("Failed to add publication: %v", err)
	}

	err = publicationRepo.DeletePublications(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to delete publication: %v", err)
	}

	// Primary record is gone
	_, err = publicationRepo.GetPublication(ctx, added[0].Id)
	if err == nil {
		t.Fatal("Expected error when getting deleted publication")
	}

	// Goal index is cleaned up
	byGoal, err := publicationRepo.GetPublicationsByGoal(ctx, "SDG_3")
	if err != nil {
		t.Fatalf("Failed to get publications by goal: %v", err)
	}
	if len(byGoal) != 0 {
		t.Fatalf("Expected 0 publications after delete, got %d", len(byGoal))
	}

	// DOI index is cleaned up
	_, err = publicationRepo.GetPublicationByDOI(ctx, "10.2222/retracted")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for deleted DOI, got %v", err)
	}
}

func TestListPublicationsMissingVector(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { thesisRepo.Close(); publicationRepo.Close(); researcherRepo.Close(); backend.Close() }()

	ctx := context.Background()

	publications := []*core.Publication{
		{Title: "Embedded", AbstractVector: []float32{0.5, 0.5}},
		{Title: "Pending"},
	}
	_, err = publicationRepo.AddPublications(ctx, publications...)
	if err != nil {
		t.Fatalf("Failed to add publications: %v", err)
	}

	missing, err := publicationRepo.ListPublicationsMissingVector(ctx)
	if err != nil {
		t.Fatalf("Failed to list publications missing vector: %v", err)
	}

	if len(missing) != 1 {
		t.Fatalf("Expected 1 publication missing a vector, got %d", len(missing))
	}
	if missing[0].Title != "Pending" {
		t.Fatalf("Expected 'Pending', got %s", missing[0].Title)
	}
}
