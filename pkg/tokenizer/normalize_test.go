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
	"github.com/basenana/hanfts/pkg/stopword"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalizer", func() {
	n := NewNormalizer(true)

	It("should fold case, width and diacritics", func() {
		Expect(Fold("Hello")).Should(Equal("hello"))
		Expect(Fold("Café")).Should(Equal("cafe"))
		Expect(Fold("ＡＢＣ")).Should(Equal("abc"))
		Expect(Fold("国")).Should(Equal("国"))
		Expect(Fold("")).Should(Equal(""))
	})

	It("should stem inflections of one word to the same term", func() {
		n := NewNormalizer(false)
		for _, word := range []string{"like", "liking", "liked", "Liked"} {
			term, ok := n.Normalize(word)
			Expect(ok).Should(BeTrue())
			Expect(term).Should(Equal("like"))
		}
	})

	It("should stem the same way under the default configuration", func() {
		for _, word := range []string{"like", "liking", "liked"} {
			term, ok := n.Normalize(word)
			Expect(ok).Should(BeTrue())
			Expect(term).Should(Equal("like"))
		}
	})

	It("should drop stop words of the detected class", func() {
		_, ok := n.Normalize("The")
		Expect(ok).Should(BeFalse())
		_, ok = n.Normalize("的")
		Expect(ok).Should(BeFalse())
		term, ok := n.Normalize("国")
		Expect(ok).Should(BeTrue())
		Expect(term).Should(Equal("国"))
	})

	It("should keep stop words when filtering is disabled", func() {
		term, ok := NewNormalizer(false).Normalize("The")
		Expect(ok).Should(BeTrue())
		Expect(term).Should(Equal("the"))
	})

	It("should never stem han characters or single letters", func() {
		term, _ := n.Normalize("国家")
		Expect(term).Should(Equal("国家"))
		term, _ = n.Normalize("x")
		Expect(term).Should(Equal("x"))
	})

	It("should be idempotent", func() {
		for _, word := range []string{"Liking", "running", "Tokenizer", "Café", "国", "English", "sqlite", "cats", "making", "32",
			"agreed", "universal", "generalizations", "operational"} {
			once, ok := n.Normalize(word)
			Expect(ok).Should(BeTrue())
			twice, ok := n.Normalize(once)
			Expect(ok).Should(BeTrue())
			Expect(twice).Should(Equal(once), "normalize %s", word)
		}
	})

	It("should drop words whose stem is a stop word", func() {
		for _, word := range []string{"wills", "willing", "haves"} {
			_, ok := n.Normalize(word)
			Expect(ok).Should(BeFalse(), "normalize %s", word)
		}

		term, ok := NewNormalizer(false).Normalize("wills")
		Expect(ok).Should(BeTrue())
		Expect(term).Should(Equal("will"))
	})

	It("should stem until the stem is stable", func() {
		for _, word := range []string{"agreed", "universal"} {
			term, ok := n.Normalize(word)
			Expect(ok).Should(BeTrue())
			Expect(stem(term)).Should(Equal(term), "stem of %s", word)
		}
	})

	It("should leave readings untouched by stop words", func() {
		Expect(n.Phonetic("he")).Should(Equal("he"))
		Expect(n.Phonetic("guo")).Should(Equal("guo"))
		Expect(n.Phonetic("ying")).Should(Equal("ying"))
	})

	It("should classify terms by script", func() {
		Expect(ClassOf("国")).Should(Equal(stopword.Chinese))
		Expect(ClassOf("guo")).Should(Equal(stopword.English))
	})

	It("should recognise separator-only strings", func() {
		Expect(isSkippable(" ")).Should(BeTrue())
		Expect(isSkippable("，")).Should(BeTrue())
		Expect(isSkippable("(\"")).Should(BeTrue())
		Expect(isSkippable("32.3")).Should(BeFalse())
		Expect(isSkippable("国")).Should(BeFalse())
	})
})
