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


package storage

import (
	"github.com/poiesic/scholaris/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) == 0 {
		return 0, ErrTruncatedData
	}
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalResearcher serializes a Researcher to bytes.
func MarshalResearcher(researcher *core.Researcher) []byte {
	buf := make([]byte, core.ResearcherMUS.Size(*researcher))
	core.ResearcherMUS.Marshal(*researcher, buf)
	return buf
}

// UnmarshalResearcher deserializes a Researcher from bytes.
func UnmarshalResearcher(data []byte) (*core.Researcher, error) {
	researcher, _, err := core.ResearcherMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &researcher, nil
}

// MarshalPublication serializes a Publication to bytes.
func MarshalPublication(publication *core.Publication) []byte {
	buf := make([]byte, core.PublicationMUS.Size(*publication))
	core.PublicationMUS.Marshal(*publication, buf)
	return buf
}

// UnmarshalPublication deserializes a Publication from bytes.
func UnmarshalPublication(data []byte) (*core.Publication, error) {
	publication, _, err := core.PublicationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &publication, nil
}

// MarshalThesis serializes a Thesis to bytes.
func MarshalThesis(thesis *core.Thesis) []byte {
	buf := make([]byte, core.ThesisMUS.Size(*thesis))
	core.ThesisMUS.Marshal(*thesis, buf)
	return buf
}

// UnmarshalThesis deserializes a Thesis from bytes.
func UnmarshalThesis(data []byte) (*core.Thesis, error) {
	thesis, _, err := core.ThesisMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &thesis, nil
}
