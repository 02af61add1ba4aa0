package core

import (
	"errors"
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestThesisKind_String(t *testing.T) {
	tests := []struct {
		name string
		kind ThesisKind
		want string
	}{
		{
			name: "masters",
			kind: ThesisMasters,
			want: "masters",
		},
		{
			name: "phd",
			kind: ThesisPhD,
			want: "phd",
		},
		{
			name: "bachelor",
			kind: ThesisBachelor,
			want: "bachelor",
		},
		{
			name: "unknown value",
			kind: ThesisKind(99),
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("ThesisKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseThesisKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ThesisKind
		wantErr bool
	}{
		{
			name:  "masters",
			input: "masters",
			want:  ThesisMasters,
		},
		{
			name:  "phd mixed case",
			input: "PhD",
			want:  ThesisPhD,
		},
		{
			name:  "bachelor with whitespace",
			input: "  bachelor ",
			want:  ThesisBachelor,
		},
		{
			name:    "unknown kind",
			input:   "postdoc",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseThesisKind(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseThesisKind(%q) error = nil, want error", tt.input)
				}
				if !errors.Is(err, ErrInvalidThesisKind) {
					t.Errorf("ParseThesisKind(%q) error = %v, want %v", tt.input, err, ErrInvalidThesisKind)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseThesisKind(%q) error = %v, want nil", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseThesisKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResearcher_InterestsText(t *testing.T) {
	tests := []struct {
		name       string
		researcher Researcher
		want       string
	}{
		{
			name: "multiple interests",
			researcher: Researcher{
				Interests: []string{"machine learning", "renewable energy", "water purification"},
			},
			want: "machine learning renewable energy water purification",
		},
		{
			name: "single interest",
			researcher: Researcher{
				Interests: []string{"marine biology"},
			},
			want: "marine biology",
		},
		{
			name:       "no interests",
			researcher: Researcher{},
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.researcher.InterestsText(); got != tt.want {
				t.Errorf("Researcher.InterestsText() = %q, want %q", got, tt.want)
			}
		})
	}
}
