package core

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ThesisKind identifies the degree program a thesis belongs to.
type ThesisKind int

const (
	// ThesisMasters represents a masters thesis.
	ThesisMasters ThesisKind = iota + 1
	// ThesisPhD represents a doctoral dissertation.
	ThesisPhD
	// ThesisBachelor represents an undergraduate research project.
	ThesisBachelor
)

func (k ThesisKind) String() string {
	switch k {
	case ThesisMasters:
		return "masters"
	case ThesisPhD:
		return "phd"
	case ThesisBachelor:
		return "bachelor"
	}
	return "unknown"
}

// ParseThesisKind maps a kind name to its ThesisKind value.
func ParseThesisKind(s string) (ThesisKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "masters":
		return ThesisMasters, nil
	case "phd":
		return ThesisPhD, nil
	case "bachelor":
		return ThesisBachelor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidThesisKind, s)
}

// Researcher represents a member of academic staff available for
// supervision and grant matching.
type Researcher struct {
	Id             ID
	Name           string
	Department     string
	Interests      []string  // Curated research interest phrases
	ScholarId      string    // External scholar profile identifier, may be empty
	InterestVector []float32 // Embedding of InterestsText (populated by processors)
	InsertedAt     time.Time // When the record was inserted into the database
	UpdatedAt      time.Time // When the record was last updated
}

// InterestsText returns the interests joined into the single string that
// embedding operates on.
func (r *Researcher) InterestsText() string {
	return strings.Join(r.Interests, " ")
}

// Publication represents a published research output.
// It may be enriched with an abstract embedding and goal tags during processing.
type Publication struct {
	Id              ID
	Title           string
	Abstract        string
	DOI             string
	PublishedAt     time.Time
	Authors         []ID     // Researcher IDs in authorship order
	Goals           []string // SDG category codes, e.g. "SDG_13"
	GoalsAutoTagged bool     // Goals came from the classifier rather than a curator
	AbstractVector  []float32
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// Thesis represents a student thesis awaiting or under supervision.
type Thesis struct {
	Id           ID
	Title        string
	Student      string
	Kind         ThesisKind
	SupervisorId ID // 0 while unassigned
	Abstract     string
	SubmittedAt  time.Time
	InsertedAt   time.Time
	UpdatedAt    time.Time
}
