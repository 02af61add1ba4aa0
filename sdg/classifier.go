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


package sdg

import (
	"slices"
	"strings"
)

const (
	// DefaultThreshold is the balanced match ratio for abstracts.
	// 0.1 is very permissive, 0.5 admits only strong matches.
	DefaultThreshold = 0.3

	// TitleThresholdOffset raises the bar for titles, which are short
	// enough that a stray keyword is weak evidence.
	TitleThresholdOffset = 0.1
)

// Classify returns the codes of every goal whose keyword match ratio against
// text reaches threshold, in catalog (numeric) order. Blank text yields no
// codes, as does any threshold above 1; a threshold at or below 0 admits
// every goal with at least one whole matched keyword.
func Classify(text string, threshold float64) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := Tokenize(text)

	var detected []string
	for _, goal := range Goals {
		matches := countKeywordMatches(tokens, goal.Keywords)
		if matches == 0 {
			continue
		}

		ratio := float64(matches) / float64(len(goal.Keywords))
		if ratio >= threshold {
			detected = append(detected, goal.Code)
		}
	}
	return detected
}

// ClassifyDocument classifies a document from its title and abstract and
// returns the union of both passes, sorted by code. The title is scored at
// threshold+TitleThresholdOffset, the abstract at threshold.
func ClassifyDocument(title, abstract string, threshold float64) []string {
	detected := make(map[string]bool)

	for _, code := range Classify(title, threshold+TitleThresholdOffset) {
		detected[code] = true
	}
	for _, code := range Classify(abstract, threshold) {
		detected[code] = true
	}

	if len(detected) == 0 {
		return nil
	}

	codes := make([]string, 0, len(detected))
	for code := range detected {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// countKeywordMatches scores a keyword list against a token set. A phrase
// whose words are all present earns full credit; a phrase with at least one
// word present earns half credit. The credit sum truncates toward zero, so
// half credits only count in pairs.
func countKeywordMatches(tokens map[string]bool, keywords []string) int {
	var count float64
	for _, keyword := range keywords {
		words := strings.Fields(strings.ToLower(keyword))
		if len(words) == 0 {
			continue
		}

		all, any := true, false
		for _, word := range words {
			if tokens[word] {
				any = true
			} else {
				all = false
			}
		}

		switch {
		case all:
			count += 1
		case any:
			count += 0.5
		}
	}
	return int(count)
}
