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

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/basenana/hanfts/pkg/pinyin"
	"github.com/basenana/hanfts/pkg/stopword"
)

// Normalizer turns a raw token into its indexed form: case folding, stop-word
// filtering and stemming, in that order.
type Normalizer struct {
	stopword bool
}

func NewNormalizer(stopwordEnabled bool) Normalizer {
	return Normalizer{stopword: stopwordEnabled}
}

// Normalize returns the normalized term, or false when the token is dropped.
// A stem that is itself a stop word is dropped too, so normalizing a term
// twice gives the same result.
func (n Normalizer) Normalize(raw string) (string, bool) {
	term := Fold(raw)
	if term == "" {
		return "", false
	}
	if n.isStopword(term) {
		return "", false
	}
	term = stem(term)
	if n.isStopword(term) {
		return "", false
	}
	return term, true
}

func (n Normalizer) isStopword(term string) bool {
	return n.stopword && stopword.Contains(ClassOf(term), term)
}

// Phonetic normalizes a reading. Readings are never stop words: whether they
// are kept was already decided by the character they expand.
func (n Normalizer) Phonetic(reading string) string {
	return stem(Fold(reading))
}

// Fold lowercases s, applies compatibility decomposition and drops combining
// diacritics (U+0300..U+036F).
func Fold(s string) string {
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)
	if isASCII(lowered) {
		return lowered
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isDiacritic)), norm.NFC)
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// ClassOf picks the stop-word set of a folded term.
func ClassOf(term string) stopword.Class {
	for _, r := range term {
		if pinyin.IsHan(r) {
			return stopword.Chinese
		}
	}
	return stopword.English
}

// maxStemRounds bounds the re-stemming of stems that stem again
// ("agreed" -> "agre" -> "agr").
const maxStemRounds = 8

// stem only touches ASCII words longer than one byte; Han characters and
// other scripts are returned as is. The result is a fixed point of the
// english stemmer.
func stem(term string) string {
	if len(term) <= 1 || !isASCII(term) {
		return term
	}
	if !hasASCIILetter(term) {
		return term
	}
	for i := 0; i < maxStemRounds; i++ {
		next := english.Stem(term, false)
		if next == term {
			break
		}
		term = next
	}
	return term
}

func isDiacritic(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8RuneSelf {
			return false
		}
	}
	return true
}

func hasASCIILetter(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			return true
		}
	}
	return false
}

const utf8RuneSelf = 0x80

// isWordRune reports runes that extend a non-Han word run.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r)
}

// isSkippable reports strings made only of spaces, control characters,
// punctuation or symbols.
func isSkippable(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) && !unicode.IsControl(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
