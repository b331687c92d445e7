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

import (
	"sync"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"

	"github.com/basenana/hanfts/utils/logger"
)

// Table maps a Han character to its toneless readings. Readings keep the
// dictionary order of go-pinyin, where the most common pronunciation comes
// first, with duplicates produced by tone removal dropped.
type Table struct {
	readings map[rune][]string
}

var (
	table     *Table
	tableOnce sync.Once
)

// DefaultTable returns the process-wide readings table, building it on first use.
func DefaultTable() *Table {
	tableOnce.Do(func() {
		table = buildTable(DefaultAlphabet())
	})
	return table
}

func buildTable(alphabet *Alphabet) *Table {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Normal
	args.Heteronym = true

	t := &Table{readings: make(map[rune][]string, len(gopinyin.PinyinDict))}
	dropped := 0
	for code := range gopinyin.PinyinDict {
		r := rune(code)
		var list []string
		for _, py := range gopinyin.SinglePinyin(r, args) {
			if !alphabet.IsValidSyllable(py) {
				dropped++
				continue
			}
			if containsString(list, py) {
				continue
			}
			list = append(list, py)
		}
		if len(list) > 0 {
			t.readings[r] = list
		}
	}
	logger.NewLogger("pinyin").Debugw("readings table built",
		"characters", len(t.readings), "dropped", dropped, "alphabet", AlphabetVersion)
	return t
}

// ReadingsOf returns the readings of r, or nil when r has none. The returned
// slice is shared and must not be modified.
func (t *Table) ReadingsOf(r rune) []string {
	return t.readings[r]
}

// HasReading reports whether r has at least one reading.
func (t *Table) HasReading(r rune) bool {
	return len(t.readings[r]) > 0
}

// Len returns the number of characters with readings.
func (t *Table) Len() int {
	return len(t.readings)
}

// ReadingsOf looks r up in the default table and returns a copy.
func ReadingsOf(r rune) []string {
	src := DefaultTable().ReadingsOf(r)
	if len(src) == 0 {
		return nil
	}
	result := make([]string, len(src))
	copy(result, src)
	return result
}

// IsHan reports whether r is a CJK ideograph.
func IsHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
