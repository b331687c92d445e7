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

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Alphabet", func() {
	alphabet := DefaultAlphabet()

	It("should contain every listed syllable exactly once", func() {
		seen := map[string]bool{}
		for _, s := range Syllables() {
			Expect(seen[s]).Should(BeFalse(), "duplicated syllable %s", s)
			seen[s] = true
			Expect(len(s)).Should(BeNumerically("<=", MaxSyllableLen))
			Expect(alphabet.IsValidSyllable(s)).Should(BeTrue())
		}
		Expect(alphabet.Len()).Should(Equal(len(seen)))
		Expect(alphabet.Len()).Should(BeNumerically(">", 380))
	})

	It("should answer full syllable queries", func() {
		Expect(alphabet.IsValidSyllable("guo")).Should(BeTrue())
		Expect(alphabet.IsValidSyllable("zhuang")).Should(BeTrue())
		Expect(alphabet.IsValidSyllable("zhua")).Should(BeTrue())
		Expect(alphabet.IsValidSyllable("zhuan")).Should(BeTrue())
		Expect(alphabet.IsValidSyllable("zh")).Should(BeFalse())
		Expect(alphabet.IsValidSyllable("guoo")).Should(BeFalse())
		Expect(alphabet.IsValidSyllable("")).Should(BeFalse())
		Expect(alphabet.IsValidSyllable("Guo")).Should(BeFalse())
		Expect(alphabet.IsValidSyllable("gu o")).Should(BeFalse())
	})

	It("should answer prefix queries", func() {
		Expect(alphabet.HasPrefix("z")).Should(BeTrue())
		Expect(alphabet.HasPrefix("zh")).Should(BeTrue())
		Expect(alphabet.HasPrefix("zhuan")).Should(BeTrue())
		Expect(alphabet.HasPrefix("zhuang")).Should(BeTrue())
		Expect(alphabet.HasPrefix("zhuangg")).Should(BeFalse())
		Expect(alphabet.HasPrefix("v")).Should(BeFalse())
		Expect(alphabet.HasPrefix("")).Should(BeFalse())
		Expect(alphabet.HasPrefix("国")).Should(BeFalse())
	})

	It("should be built once under concurrent first use", func() {
		var (
			wg      sync.WaitGroup
			results = make([]*Alphabet, 16)
		)
		for i := range results {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = DefaultAlphabet()
			}(i)
		}
		wg.Wait()
		for _, a := range results {
			Expect(a).Should(BeIdenticalTo(alphabet))
		}
	})
})
