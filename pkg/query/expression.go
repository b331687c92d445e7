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

package query

import "strings"

// Expression is a decomposed query: the literal clause plus one phrase per
// syllable segmentation.
type Expression struct {
	Original      string     `json:"original"`
	Literal       string     `json:"literal"`
	Segmentations [][]string `json:"segmentations,omitempty"`
	Decomposed    bool       `json:"decomposed"`
	// Truncated is set when some offset had more than MaxSegmentations
	// splits and the rest were dropped.
	Truncated bool `json:"truncated,omitempty"`
}

// FTS5 renders the expression in SQLite FTS5 match syntax, for example
// `"国" OR "guo"` or `"zhongguo" OR "zhong" + "guo"`.
func (e Expression) FTS5() string {
	var b strings.Builder
	b.WriteString(Quote(e.Literal))
	for _, seg := range e.Segmentations {
		b.WriteString(" OR ")
		for i, syllable := range seg {
			if i > 0 {
				b.WriteString(" + ")
			}
			b.WriteString(Quote(syllable))
		}
	}
	return b.String()
}

func (e Expression) String() string {
	return e.FTS5()
}

// Phrases returns the segmentations joined by spaces.
func (e Expression) Phrases() []string {
	result := make([]string, 0, len(e.Segmentations))
	for _, seg := range e.Segmentations {
		result = append(result, strings.Join(seg, " "))
	}
	return result
}

// Quote wraps s in double quotes, doubling the quotes inside.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
