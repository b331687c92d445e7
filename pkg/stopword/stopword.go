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

package stopword

import (
	_ "embed"
	"strings"
	"sync"
)

// Class selects the stop-word set consulted for a term.
type Class int

const (
	// English covers Latin-script words.
	English Class = iota
	// Chinese covers single Han characters.
	Chinese
)

func (c Class) String() string {
	switch c {
	case Chinese:
		return "chinese"
	default:
		return "english"
	}
}

var (
	//go:embed en.txt
	englishList string
	//go:embed zh.txt
	chineseList string

	sets     map[Class]map[string]struct{}
	setsOnce sync.Once
)

func load() {
	sets = map[Class]map[string]struct{}{
		English: parse(englishList),
		Chinese: parse(chineseList),
	}
}

func parse(list string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, line := range strings.Split(list, "\n") {
		word := strings.TrimSpace(line)
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		result[word] = struct{}{}
	}
	return result
}

// Contains reports whether term, already case-folded, is a stop word of class.
func Contains(class Class, term string) bool {
	setsOnce.Do(load)
	_, ok := sets[class][term]
	return ok
}

// Len returns the size of the set for class.
func Len(class Class) int {
	setsOnce.Do(load)
	return len(sets[class])
}
