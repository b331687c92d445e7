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

package tokenizer

// Kind tags the origin of a token.
type Kind int

const (
	// KindWord is a run of letters or digits outside the Han script.
	KindWord Kind = iota
	// KindHan is a single Han character.
	KindHan
	// KindPhonetic is one reading of the Han character at the same position.
	KindPhonetic
	// KindSegment is a dictionary word produced by a segmenter.
	KindSegment
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindHan:
		return "han"
	case KindPhonetic:
		return "phonetic"
	case KindSegment:
		return "segment"
	default:
		return "unknown"
	}
}

// Token is one indexable term. Start and End are byte offsets into the
// original text. Colocated is set on every token after the first of a
// position, telling the indexer to store it as an alternative term.
type Token struct {
	Text      string `json:"text"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Position  int    `json:"position"`
	Kind      Kind   `json:"kind"`
	Colocated bool   `json:"colocated,omitempty"`
}

// Position is one logical text unit with its ordered alternative terms.
// The first term is always the normalized text itself.
type Position struct {
	Index int     `json:"index"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Terms []Token `json:"terms"`
}

// Primary returns the normalized text of the position.
func (p Position) Primary() string {
	if len(p.Terms) == 0 {
		return ""
	}
	return p.Terms[0].Text
}

// Phonetic returns the first reading of the position, or the primary term
// when the position carries no reading.
func (p Position) Phonetic() string {
	for _, t := range p.Terms {
		if t.Kind == KindPhonetic {
			return t.Text
		}
	}
	return p.Primary()
}

// Alternatives returns the text of every term in the position.
func (p Position) Alternatives() []string {
	result := make([]string, 0, len(p.Terms))
	for _, t := range p.Terms {
		result = append(result, t.Text)
	}
	return result
}

func newPosition(index, start, end int) Position {
	return Position{Index: index, Start: start, End: end}
}

func (p *Position) add(text string, kind Kind) {
	for _, t := range p.Terms {
		if t.Text == text {
			return
		}
	}
	p.Terms = append(p.Terms, Token{
		Text:      text,
		Start:     p.Start,
		End:       p.End,
		Position:  p.Index,
		Kind:      kind,
		Colocated: len(p.Terms) > 0,
	})
}
