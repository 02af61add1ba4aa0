package core

import (
	"reflect"
	"testing"
	"time"
)

func TestResearcherMUS_Roundtrip(t *testing.T) {
	in := Researcher{
		Id:             42,
		Name:           "Dr. Amina Odhiambo",
		Department:     "Environmental Science",
		Interests:      []string{"climate adaptation", "water resources", "hydrology"},
		ScholarId:      "aodhiambo01",
		InterestVector: []float32{0.25, -1.5, 0, 3.14159, -0.0001},
		InsertedAt:     time.Date(2025, 3, 1, 9, 30, 0, 123456000, time.UTC),
		UpdatedAt:      time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, ResearcherMUS.Size(in))
	n := ResearcherMUS.Marshal(in, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, Size predicted %d", n, len(buf))
	}

	out, n, err := ResearcherMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if n != len(buf) {
		t.Errorf("Unmarshal consumed %d bytes, want %d", n, len(buf))
	}

	if out.Id != in.Id || out.Name != in.Name || out.Department != in.Department || out.ScholarId != in.ScholarId {
		t.Errorf("scalar fields mismatch: got %+v", out)
	}
	if !reflect.DeepEqual(out.Interests, in.Interests) {
		t.Errorf("Interests = %v, want %v", out.Interests, in.Interests)
	}
	if !reflect.DeepEqual(out.InterestVector, in.InterestVector) {
		t.Errorf("InterestVector = %v, want %v", out.InterestVector, in.InterestVector)
	}
	if !out.InsertedAt.Equal(in.InsertedAt) {
		t.Errorf("InsertedAt = %v, want %v", out.InsertedAt, in.InsertedAt)
	}
	if !out.UpdatedAt.Equal(in.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", out.UpdatedAt, in.UpdatedAt)
	}
}

func TestPublicationMUS_Roundtrip(t *testing.T) {
	in := Publication{
		Id:              7,
		Title:           "Solar Microgrids for Rural Electrification",
		Abstract:        "We study off-grid solar deployments in arid counties.",
		DOI:             "10.1234/solar.2025.007",
		PublishedAt:     time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		Authors:         []ID{3, 9, 11},
		Goals:           []string{"SDG_7", "SDG_13"},
		GoalsAutoTagged: true,
		AbstractVector:  []float32{0.5, 0.5, -0.5, -0.5},
		InsertedAt:      time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2025, 1, 5, 8, 0, 1, 0, time.UTC),
	}

	buf := make([]byte, PublicationMUS.Size(in))
	n := PublicationMUS.Marshal(in, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, Size predicted %d", n, len(buf))
	}

	out, _, err := PublicationMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if out.Title != in.Title || out.Abstract != in.Abstract || out.DOI != in.DOI {
		t.Errorf("text fields mismatch: got %+v", out)
	}
	if !reflect.DeepEqual(out.Authors, in.Authors) {
		t.Errorf("Authors = %v, want %v", out.Authors, in.Authors)
	}
	if !reflect.DeepEqual(out.Goals, in.Goals) {
		t.Errorf("Goals = %v, want %v", out.Goals, in.Goals)
	}
	if out.GoalsAutoTagged != in.GoalsAutoTagged {
		t.Errorf("GoalsAutoTagged = %v, want %v", out.GoalsAutoTagged, in.GoalsAutoTagged)
	}
	if !reflect.DeepEqual(out.AbstractVector, in.AbstractVector) {
		t.Errorf("AbstractVector = %v, want %v", out.AbstractVector, in.AbstractVector)
	}
	if !out.PublishedAt.Equal(in.PublishedAt) {
		t.Errorf("PublishedAt = %v, want %v", out.PublishedAt, in.PublishedAt)
	}
}

func TestThesisMUS_Roundtrip(t *testing.T) {
	in := Thesis{
		Id:           13,
		Title:        "Groundwater Contamination in Peri-Urban Settlements",
		Student:      "J. Mwangi",
		Kind:         ThesisPhD,
		SupervisorId: 42,
		Abstract:     "Sampling campaign across three informal settlements.",
		SubmittedAt:  time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		InsertedAt:   time.Date(2025, 6, 15, 12, 0, 5, 0, time.UTC),
		UpdatedAt:    time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, ThesisMUS.Size(in))
	ThesisMUS.Marshal(in, buf)

	out, _, err := ThesisMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if out.Id != in.Id || out.Title != in.Title || out.Student != in.Student {
		t.Errorf("scalar fields mismatch: got %+v", out)
	}
	if out.Kind != in.Kind {
		t.Errorf("Kind = %v, want %v", out.Kind, in.Kind)
	}
	if out.SupervisorId != in.SupervisorId {
		t.Errorf("SupervisorId = %v, want %v", out.SupervisorId, in.SupervisorId)
	}
	if !out.SubmittedAt.Equal(in.SubmittedAt) {
		t.Errorf("SubmittedAt = %v, want %v", out.SubmittedAt, in.SubmittedAt)
	}
}

func TestMUS_TimestampMicrosecondPrecision(t *testing.T) {
	// Sub-microsecond precision is dropped by the wire format.
	in := Researcher{
		Name:       "precision check",
		InsertedAt: time.Date(2025, 3, 1, 9, 30, 0, 123456789, time.UTC),
	}

	buf := make([]byte, ResearcherMUS.Size(in))
	ResearcherMUS.Marshal(in, buf)

	out, _, err := ResearcherMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := time.Date(2025, 3, 1, 9, 30, 0, 123456000, time.UTC)
	if !out.InsertedAt.Equal(want) {
		t.Errorf("InsertedAt = %v, want %v", out.InsertedAt, want)
	}
}

func TestMUS_TruncatedData(t *testing.T) {
	in := Publication{
		Id:       7,
		Title:    "Solar Microgrids for Rural Electrification",
		Abstract: "We study off-grid solar deployments.",
		Goals:    []string{"SDG_7"},
	}

	buf := make([]byte, PublicationMUS.Size(in))
	PublicationMUS.Marshal(in, buf)

	_, _, err := PublicationMUS.Unmarshal(buf[:len(buf)/2])
	if err == nil {
		t.Error("Unmarshal of truncated data succeeded, want error")
	}
}

func TestIDMUS_Roundtrip(t *testing.T) {
	for _, id := range []ID{0, 1, 127, 128, 1 << 32, ^ID(0)} {
		buf := make([]byte, IDMUS.Size(id))
		IDMUS.Marshal(id, buf)

		out, n, err := IDMUS.Unmarshal(buf)
		if err != nil {
			t.Fatalf("Unmarshal(%d) failed: %v", id, err)
		}
		if out != id {
			t.Errorf("roundtrip of %d gave %d", id, out)
		}
		if n != len(buf) {
			t.Errorf("Unmarshal(%d) consumed %d bytes, want %d", id, n, len(buf))
		}
	}
}
