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
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored domain types. Field order is part of the
// on-disk format; append new fields at the end and never reorder.

type idMUS struct{}

// IDMUS serializes ID values.
var IDMUS = idMUS{}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

type thesisKindMUS struct{}

// ThesisKindMUS serializes ThesisKind values.
var ThesisKindMUS = thesisKindMUS{}

func (thesisKindMUS) Size(k ThesisKind) int {
	return varint.Int.Size(int(k))
}

func (thesisKindMUS) Marshal(k ThesisKind, bs []byte) int {
	return varint.Int.Marshal(int(k), bs)
}

func (thesisKindMUS) Unmarshal(bs []byte) (ThesisKind, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return ThesisKind(v), n, err
}

// Timestamps travel as Unix microseconds.

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeStringSlice(ss []string) (size int) {
	size = varint.Int.Size(len(ss))
	for _, s := range ss {
		size += ord.String.Size(s)
	}
	return
}

func marshalStringSlice(ss []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(ss), bs)
	for _, s := range ss {
		n += ord.String.Marshal(s, bs[n:])
	}
	return
}

func unmarshalStringSlice(bs []byte) (ss []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 {
		return nil, n, ErrInvalidEncoding
	}
	if length == 0 {
		return nil, n, nil
	}
	ss = make([]string, length)
	var n1 int
	for i := range ss {
		ss[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return
}

func sizeIDSlice(ids []ID) (size int) {
	size = varint.Int.Size(len(ids))
	for _, id := range ids {
		size += IDMUS.Size(id)
	}
	return
}

func marshalIDSlice(ids []ID, bs []byte) (n int) {
	n = varint.Int.Marshal(len(ids), bs)
	for _, id := range ids {
		n += IDMUS.Marshal(id, bs[n:])
	}
	return
}

func unmarshalIDSlice(bs []byte) (ids []ID, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 {
		return nil, n, ErrInvalidEncoding
	}
	if length == 0 {
		return nil, n, nil
	}
	ids = make([]ID, length)
	var n1 int
	for i := range ids {
		ids[i], n1, err = IDMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return
}

// Vectors encode each float32 as the varint of its IEEE-754 bits.

func sizeVector(v []float32) (size int) {
	size = varint.Int.Size(len(v))
	for _, f := range v {
		size += varint.Uint32.Size(math.Float32bits(f))
	}
	return
}

func marshalVector(v []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += varint.Uint32.Marshal(math.Float32bits(f), bs[n:])
	}
	return
}

func unmarshalVector(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 {
		return nil, n, ErrInvalidEncoding
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]float32, length)
	var (
		bits uint32
		n1   int
	)
	for i := range v {
		bits, n1, err = varint.Uint32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		v[i] = math.Float32frombits(bits)
	}
	return
}

type researcherMUS struct{}

// ResearcherMUS serializes Researcher values.
var ResearcherMUS = researcherMUS{}

func (researcherMUS) Size(v Researcher) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Department)
	size += sizeStringSlice(v.Interests)
	size += ord.String.Size(v.ScholarId)
	size += sizeVector(v.InterestVector)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return
}

func (researcherMUS) Marshal(v Researcher, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Department, bs[n:])
	n += marshalStringSlice(v.Interests, bs[n:])
	n += ord.String.Marshal(v.ScholarId, bs[n:])
	n += marshalVector(v.InterestVector, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (researcherMUS) Unmarshal(bs []byte) (v Researcher, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Department, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Interests, n1, err = unmarshalStringSlice(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ScholarId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InterestVector, n1, err = unmarshalVector(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}

type publicationMUS struct{}

// PublicationMUS serializes Publication values.
var PublicationMUS = publicationMUS{}

func (publicationMUS) Size(v Publication) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Abstract)
	size += ord.String.Size(v.DOI)
	size += sizeTime(v.PublishedAt)
	size += sizeIDSlice(v.Authors)
	size += sizeStringSlice(v.Goals)
	size += ord.Bool.Size(v.GoalsAutoTagged)
	size += sizeVector(v.AbstractVector)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return
}

func (publicationMUS) Marshal(v Publication, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Abstract, bs[n:])
	n += ord.String.Marshal(v.DOI, bs[n:])
	n += marshalTime(v.PublishedAt, bs[n:])
	n += marshalIDSlice(v.Authors, bs[n:])
	n += marshalStringSlice(v.Goals, bs[n:])
	n += ord.Bool.Marshal(v.GoalsAutoTagged, bs[n:])
	n += marshalVector(v.AbstractVector, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (publicationMUS) Unmarshal(bs []byte) (v Publication, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Abstract, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DOI, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PublishedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Authors, n1, err = unmarshalIDSlice(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Goals, n1, err = unmarshalStringSlice(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.GoalsAutoTagged, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AbstractVector, n1, err = unmarshalVector(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}

type thesisMUS struct{}

// ThesisMUS serializes Thesis values.
var ThesisMUS = thesisMUS{}

func (thesisMUS) Size(v Thesis) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Student)
	size += ThesisKindMUS.Size(v.Kind)
	size += IDMUS.Size(v.SupervisorId)
	size += ord.String.Size(v.Abstract)
	size += sizeTime(v.SubmittedAt)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return
}

func (thesisMUS) Marshal(v Thesis, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Student, bs[n:])
	n += ThesisKindMUS.Marshal(v.Kind, bs[n:])
	n += IDMUS.Marshal(v.SupervisorId, bs[n:])
	n += ord.String.Marshal(v.Abstract, bs[n:])
	n += marshalTime(v.SubmittedAt, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (thesisMUS) Unmarshal(bs []byte) (v Thesis, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Student, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Kind, n1, err = ThesisKindMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SupervisorId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Abstract, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SubmittedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}
