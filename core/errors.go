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

import "errors"

// Domain validation errors
var (
	// ErrInvalidResearcher indicates a Researcher failed validation.
	ErrInvalidResearcher = errors.New("invalid researcher")

	// ErrInvalidPublication indicates a Publication failed validation.
	ErrInvalidPublication = errors.New("invalid publication")

	// ErrInvalidThesis indicates a Thesis failed validation.
	ErrInvalidThesis = errors.New("invalid thesis")

	// ErrEmptyName indicates a required name field is blank.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyTitle indicates a required title field is blank.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyStudent indicates the thesis Student field is blank.
	ErrEmptyStudent = errors.New("student cannot be empty")

	// ErrInvalidThesisKind indicates an unknown ThesisKind value.
	ErrInvalidThesisKind = errors.New("invalid thesis kind")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrInvalidEncoding indicates a stored record could not be decoded.
	ErrInvalidEncoding = errors.New("invalid record encoding")
)
