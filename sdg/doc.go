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


// Package sdg classifies research text against the seventeen UN Sustainable
// Development Goals using keyword matching.
//
// Classification is deliberately lightweight: text is normalized to a set of
// lowercase words, each goal's keyword phrases are scored against that set
// (full credit when every word of a phrase is present, half credit when at
// least one is), and a goal is detected when its truncated match count
// reaches a configurable fraction of its keyword list. No model inference is
// involved, so classification is cheap enough to run inline on every save.
//
// Titles are scored at a higher threshold than abstracts: they are short, so
// a single keyword hit is weaker evidence than the same hit inside a full
// abstract.
package sdg
