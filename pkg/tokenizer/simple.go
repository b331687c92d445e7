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
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/basenana/hanfts/pkg/pinyin"
	"github.com/basenana/hanfts/pkg/types"
)

// Simple emits one position per Han character, carrying the character and,
// when phonetic expansion is on, each of its readings, and one position per
// run of letters or digits.
type Simple struct {
	cfg   Config
	norm  Normalizer
	table *pinyin.Table
}

var _ Tokenizer = &Simple{}

func NewSimple(cfg Config) *Simple {
	s := &Simple{cfg: cfg, norm: NewNormalizer(cfg.Stopword)}
	if cfg.Phonetic {
		s.table = pinyin.DefaultTable()
	}
	return s
}

func (s *Simple) Name() string {
	return SimpleName
}

func (s *Simple) Config() Config {
	return s.cfg
}

func (s *Simple) Args() []string {
	return s.cfg.Args()
}

func (s *Simple) Tokenize(text []byte) ([]Position, error) {
	defer logLatency(SimpleName, time.Now())
	if !utf8.Valid(text) {
		encodingErrorCounter.WithLabelValues(SimpleName).Inc()
		return nil, fmt.Errorf("%s tokenizer: %w", SimpleName, types.ErrEncoding)
	}

	var (
		result []Position
		index  int
	)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRune(text[i:])
		switch {
		case pinyin.IsHan(r):
			if p, ok := s.hanPosition(string(text[i:i+size]), index, i, i+size); ok {
				result = append(result, p)
				index++
			}
			i += size
		case isWordRune(r):
			start := i
			for i < len(text) {
				r, size = utf8.DecodeRune(text[i:])
				if !isWordRune(r) || pinyin.IsHan(r) {
					break
				}
				i += size
			}
			if term, ok := s.norm.Normalize(string(text[start:i])); ok {
				p := newPosition(index, start, i)
				p.add(term, KindWord)
				result = append(result, p)
				index++
			}
		default:
			i += size
		}
	}
	return result, nil
}

func (s *Simple) hanPosition(char string, index, start, end int) (Position, bool) {
	term, ok := s.norm.Normalize(char)
	if !ok {
		return Position{}, false
	}
	p := newPosition(index, start, end)
	p.add(term, KindHan)
	if s.table == nil {
		return p, true
	}
	r, _ := utf8.DecodeRuneInString(term)
	for _, reading := range s.table.ReadingsOf(r) {
		p.add(s.norm.Phonetic(reading), KindPhonetic)
	}
	return p, true
}
