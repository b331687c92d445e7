/*
 Copyright 2023 NanaFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package search

import (
	"strings"

	"github.com/basenana/hanfts/pkg/tokenizer"
)

var phoneticNorm = tokenizer.NewNormalizer(false)

// primaryText joins the first term of every position. It is the form stored
// in the literal columns of the sql backends.
func primaryText(positions []tokenizer.Position) string {
	terms := make([]string, 0, len(positions))
	for _, p := range positions {
		terms = append(terms, p.Primary())
	}
	return strings.Join(terms, " ")
}

// phoneticText joins the first reading of every position, words without a
// reading stand for themselves.
func phoneticText(positions []tokenizer.Position) string {
	terms := make([]string, 0, len(positions))
	for _, p := range positions {
		terms = append(terms, p.Phonetic())
	}
	return strings.Join(terms, " ")
}

// phoneticTerms brings decomposed syllables into the form of indexed readings.
func phoneticTerms(segmentation []string) []string {
	terms := make([]string, 0, len(segmentation))
	for _, syllable := range segmentation {
		terms = append(terms, phoneticNorm.Phonetic(syllable))
	}
	return terms
}
