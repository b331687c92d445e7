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

package pinyin

import "sync"

// MaxSyllableLen is the length of the longest syllable, e.g. "zhuang".
const MaxSyllableLen = 6

type trieNode struct {
	children [26]*trieNode
	terminal bool
}

// Alphabet answers syllable membership and prefix queries in time
// proportional to the query, independent of the alphabet size.
type Alphabet struct {
	root *trieNode
	size int
}

var (
	alphabet     *Alphabet
	alphabetOnce sync.Once
)

// DefaultAlphabet returns the process-wide alphabet, building it on first use.
func DefaultAlphabet() *Alphabet {
	alphabetOnce.Do(func() {
		alphabet = newAlphabet(syllables)
	})
	return alphabet
}

func newAlphabet(words []string) *Alphabet {
	a := &Alphabet{root: &trieNode{}}
	for _, w := range words {
		node := a.root
		for i := 0; i < len(w); i++ {
			idx := w[i] - 'a'
			if node.children[idx] == nil {
				node.children[idx] = &trieNode{}
			}
			node = node.children[idx]
		}
		if !node.terminal {
			node.terminal = true
			a.size++
		}
	}
	return a
}

func (a *Alphabet) lookup(s string) *trieNode {
	if s == "" {
		return nil
	}
	node := a.root
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return nil
		}
		node = node.children[c-'a']
		if node == nil {
			return nil
		}
	}
	return node
}

// IsValidSyllable reports whether s is exactly one syllable.
func (a *Alphabet) IsValidSyllable(s string) bool {
	node := a.lookup(s)
	return node != nil && node.terminal
}

// HasPrefix reports whether some syllable starts with s.
func (a *Alphabet) HasPrefix(s string) bool {
	return a.lookup(s) != nil
}

// Len returns the number of distinct syllables.
func (a *Alphabet) Len() int {
	return a.size
}

// Syllables returns a copy of the versioned syllable list.
func Syllables() []string {
	result := make([]string, len(syllables))
	copy(result, syllables)
	return result
}

// IsValidSyllable checks s against the default alphabet.
func IsValidSyllable(s string) bool {
	return DefaultAlphabet().IsValidSyllable(s)
}

// HasPrefix checks s against the default alphabet.
func HasPrefix(s string) bool {
	return DefaultAlphabet().HasPrefix(s)
}
