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


package badger

import "github.com/poiesic/scholaris/storage"

// NewMemoryRepositories creates in-memory researcher, publication, and
// thesis repositories for testing.
// Returns researcherRepo, publicationRepo, thesisRepo, backend, and error.
// Caller must close all repos and the backend when done.
func NewMemoryRepositories() (storage.ResearcherRepository, storage.PublicationRepository, storage.ThesisRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	researcherRepo, err := NewResearcherRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	publicationRepo, err := NewPublicationRepository(backend)
	if err != nil {
		researcherRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	thesisRepo, err := NewThesisRepository(backend)
	if err != nil {
		publicationRepo.Close()
		researcherRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return researcherRepo, publicationRepo, thesisRepo, backend, nil
}
