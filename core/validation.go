// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateResearcher validates a Researcher according to domain rules.
//
// Validation rules:
//   - Name must not be blank
//
// NOT validated (populated by processors):
//   - InterestVector (can be empty until the embedding processor runs)
//   - ID (0 is valid before database sequences assign one)
func ValidateResearcher(researcher *Researcher) error {
	if researcher == nil {
		return fmt.Errorf("%w: researcher is nil", ErrInvalidResearcher)
	}

	if strings.TrimSpace(researcher.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResearcher, ErrEmptyName)
	}

	return nil
}

// ValidatePublication validates a Publication according to domain rules.
//
// Validation rules:
//   - Title must not be blank
//   - PublishedAt, when set, must not be in the future
//
// NOT validated (populated by processors):
//   - AbstractVector and Goals (can be empty until processors run)
//   - ID (0 is valid before database sequences assign one)
func ValidatePublication(publication *Publication) error {
	if publication == nil {
		return fmt.Errorf("%w: publication is nil", ErrInvalidPublication)
	}

	if strings.TrimSpace(publication.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPublication, ErrEmptyTitle)
	}

	if !publication.PublishedAt.IsZero() && !IsValidTimestamp(publication.PublishedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidPublication, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateThesis validates a Thesis according to domain rules.
//
// Validation rules:
//   - Title must not be blank
//   - Student must not be blank
//   - Kind must be a known ThesisKind
//
// NOT validated:
//   - SupervisorId (0 is valid while unassigned)
//   - ID (0 is valid before database sequences assign one)
func ValidateThesis(thesis *Thesis) error {
	if thesis == nil {
		return fmt.Errorf("%w: thesis is nil", ErrInvalidThesis)
	}

	if strings.TrimSpace(thesis.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidThesis, ErrEmptyTitle)
	}

	if strings.TrimSpace(thesis.Student) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidThesis, ErrEmptyStudent)
	}

	if err := ValidateThesisKind(thesis.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidThesis, err)
	}

	return nil
}

// ValidateThesisKind validates that a ThesisKind has a known value.
func ValidateThesisKind(kind ThesisKind) error {
	switch kind {
	case ThesisMasters, ThesisPhD, ThesisBachelor:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidThesisKind, kind)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
