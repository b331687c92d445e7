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

import (
	"strings"
	"time"
	"unicode"

	"github.com/basenana/hanfts/pkg/pinyin"
	"github.com/basenana/hanfts/pkg/stopword"
	"github.com/basenana/hanfts/pkg/tokenizer"
)

const (
	// MaxQueryLen is the longest normalized query, in characters, that is
	// still decomposed into syllables.
	MaxQueryLen = 20
	// MaxSegmentations bounds the segmentations kept for every offset.
	MaxSegmentations = 64
)

// Decomposer splits queries into every sequence of pinyin syllables that
// spells them. It holds no per-call state and is safe for concurrent use.
type Decomposer struct {
	cfg      tokenizer.Config
	alphabet *pinyin.Alphabet
	table    *pinyin.Table
}

func NewDecomposer(cfg tokenizer.Config) *Decomposer {
	d := &Decomposer{cfg: cfg}
	if cfg.Phonetic {
		d.alphabet = pinyin.DefaultAlphabet()
		d.table = pinyin.DefaultTable()
	}
	return d
}

func (d *Decomposer) Config() tokenizer.Config {
	return d.cfg
}

// Decompose builds the match expression of query. It never fails: when no
// segmentation exists the expression holds the literal clause only.
func (d *Decomposer) Decompose(query string) Expression {
	defer logLatency(time.Now())

	expr := Expression{Original: query}
	normalized := Normalize(query)
	if normalized == "" {
		return expr
	}
	expr.Literal = strings.TrimSpace(query)
	if !d.cfg.Phonetic {
		return expr
	}
	symbols := d.dropStopwords([]rune(normalized))
	if len(symbols) == 0 || len(symbols) > MaxQueryLen || !d.searchable(symbols) {
		return expr
	}

	expr.Decomposed = true
	literal := tokenizer.Fold(expr.Literal)
	var segmentations [][]string
	segmentations, expr.Truncated = d.segment(symbols)
	for _, seg := range segmentations {
		if len(seg) == 1 && seg[0] == literal {
			continue
		}
		expr.Segmentations = append(expr.Segmentations, seg)
	}
	segmentationCounter.Add(float64(len(expr.Segmentations)))
	return expr
}

// Normalize folds query and strips every character that is neither a letter
// nor a number.
func Normalize(query string) string {
	folded := tokenizer.Fold(query)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dropStopwords removes han stop words, which take no position in indexed
// text and so must not contribute readings either.
func (d *Decomposer) dropStopwords(symbols []rune) []rune {
	if !d.cfg.Stopword {
		return symbols
	}
	kept := symbols[:0]
	for _, r := range symbols {
		if pinyin.IsHan(r) && stopword.Contains(stopword.Chinese, string(r)) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

type step struct {
	syllable string
	next     int
}

// segment runs the split-point search bottom up, memo[i] holding the
// segmentations of symbols[i:] in discovery order. It reports whether some
// offset had more than MaxSegmentations splits.
func (d *Decomposer) segment(symbols []rune) ([][]string, bool) {
	n := len(symbols)
	memo := make([][][]string, n+1)
	memo[n] = [][]string{{}}

	truncated := false
	for i := n - 1; i >= 0; i-- {
		var found [][]string
	Candidates:
		for _, s := range d.candidates(symbols, i) {
			for _, rest := range memo[s.next] {
				if len(found) >= MaxSegmentations {
					truncated = true
					break Candidates
				}
				seg := make([]string, 0, len(rest)+1)
				seg = append(seg, s.syllable)
				seg = append(seg, rest...)
				found = append(found, seg)
			}
		}
		memo[i] = found
	}
	return memo[0], truncated
}

// candidates lists the syllables starting at offset i. A han character
// yields its readings in table order, a latin run yields the valid syllables
// it starts with, longest first.
func (d *Decomposer) candidates(symbols []rune, i int) []step {
	r := symbols[i]
	if pinyin.IsHan(r) {
		readings := d.table.ReadingsOf(r)
		steps := make([]step, 0, len(readings))
		for _, reading := range readings {
			steps = append(steps, step{syllable: reading, next: i + 1})
		}
		return steps
	}

	var (
		steps  []step
		prefix = make([]rune, 0, pinyin.MaxSyllableLen)
	)
	for j := i; j < len(symbols) && len(prefix) < pinyin.MaxSyllableLen; j++ {
		if !isLatin(symbols[j]) {
			break
		}
		prefix = append(prefix, symbols[j])
		s := string(prefix)
		if !d.alphabet.HasPrefix(s) {
			break
		}
		if d.alphabet.IsValidSyllable(s) {
			steps = append(steps, step{syllable: s, next: j + 1})
		}
	}
	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	return steps
}

// searchable reports whether some symbol can start a syllable at all.
func (d *Decomposer) searchable(symbols []rune) bool {
	for _, r := range symbols {
		if isLatin(r) || d.table.HasReading(r) {
			return true
		}
	}
	return false
}

func isLatin(r rune) bool {
	return r >= 'a' && r <= 'z'
}
