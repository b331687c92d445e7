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
	"errors"
	"sync"

	"github.com/basenana/hanfts/pkg/types"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Simple", func() {
	var t Tokenizer

	BeforeEach(func() {
		t = mustNew(SimpleName)
	})

	Context("han characters", func() {
		It("should place the character and its reading at the same position", func() {
			positions := mustTokenize(t, "国")
			Expect(positions).Should(HaveLen(1))

			p := positions[0]
			Expect(p.Index).Should(Equal(0))
			Expect(p.Start).Should(Equal(0))
			Expect(p.End).Should(Equal(3))
			Expect(p.Alternatives()).Should(Equal([]string{"国", "guo"}))
			Expect(p.Terms[0].Kind).Should(Equal(KindHan))
			Expect(p.Terms[0].Colocated).Should(BeFalse())
			Expect(p.Terms[1].Kind).Should(Equal(KindPhonetic))
			Expect(p.Terms[1].Colocated).Should(BeTrue())
			Expect(p.Terms[1].Start).Should(Equal(0))
			Expect(p.Terms[1].End).Should(Equal(3))
			Expect(p.Phonetic()).Should(Equal("guo"))
		})

		It("should emit every reading of a polyphonic character", func() {
			positions := mustTokenize(t, "行")
			Expect(positions).Should(HaveLen(1))
			Expect(positions[0].Primary()).Should(Equal("行"))
			Expect(positions[0].Alternatives()).Should(ContainElements("xing", "hang"))
		})

		It("should give each character its own position", func() {
			positions := mustTokenize(t, "中国")
			Expect(primaries(positions)).Should(Equal([]string{"中", "国"}))
			Expect(positions[1].Index).Should(Equal(1))
			Expect(positions[1].Start).Should(Equal(3))
			Expect(positions[1].End).Should(Equal(6))
			Expect(positions[0].Phonetic()).Should(Equal("zhong"))
		})

		It("should not emit readings when pinyin is disabled", func() {
			t = mustNew(SimpleName, ArgDisablePinyin)
			for _, p := range mustTokenize(t, "中华人民共和国国歌") {
				Expect(p.Terms).Should(HaveLen(1))
				Expect(p.Terms[0].Kind).Should(Equal(KindHan))
			}
		})
	})

	Context("stop words", func() {
		It("should drop stop words without advancing the position", func() {
			positions := mustTokenize(t, "我的书")
			Expect(primaries(positions)).Should(Equal([]string{"我", "书"}))
			Expect(positions[1].Index).Should(Equal(1))
			Expect(positions[1].Start).Should(Equal(6))
		})

		It("should drop english stop words", func() {
			positions := mustTokenize(t, "The quick brown fox")
			Expect(primaries(positions)).Should(Equal([]string{"quick", "brown", "fox"}))
			Expect(positions[0].Start).Should(Equal(4))
		})

		It("should keep stop words when disabled", func() {
			t = mustNew(SimpleName, ArgDisableStopword)
			positions := mustTokenize(t, "The quick 的")
			Expect(primaries(positions)).Should(Equal([]string{"the", "quick", "的"}))
		})
	})

	Context("latin words", func() {
		It("should stem inflected words to the same term", func() {
			positions := mustTokenize(t, "like liking liked")
			Expect(primaries(positions)).Should(Equal([]string{"like", "like", "like"}))
		})

		It("should split on punctuation and keep byte offsets", func() {
			positions := mustTokenize(t, "hello, world!")
			Expect(primaries(positions)).Should(Equal([]string{"hello", "world"}))
			Expect(positions[1].Start).Should(Equal(7))
			Expect(positions[1].End).Should(Equal(12))
		})

		It("should separate latin runs from adjacent han characters", func() {
			positions := mustTokenize(t, "sqlite数据库")
			Expect(primaries(positions)).Should(Equal([]string{"sqlite", "数", "据", "库"}))
			Expect(positions[0].End).Should(Equal(6))
			Expect(positions[1].Start).Should(Equal(6))
		})

		It("should fold diacritics and full width forms", func() {
			positions := mustTokenize(t, "Café ＡＢＣ")
			Expect(primaries(positions)).Should(Equal([]string{"cafe", "abc"}))
		})
	})

	It("should return no positions for empty input", func() {
		positions, err := t.Tokenize(nil)
		Expect(err).Should(BeNil())
		Expect(positions).Should(BeEmpty())

		positions = mustTokenize(t, " ,.!? ")
		Expect(positions).Should(BeEmpty())
	})

	It("should reject invalid utf-8", func() {
		positions, err := t.Tokenize([]byte{'a', 0xff, 'b'})
		Expect(errors.Is(err, types.ErrEncoding)).Should(BeTrue())
		Expect(positions).Should(BeNil())
	})

	It("should keep offsets and positions monotonic", func() {
		positions := mustTokenize(t, "NanaFS 是一个 cloud 文件系统, built in 2023 年.")
		Expect(positions).ShouldNot(BeEmpty())
		for i := 1; i < len(positions); i++ {
			Expect(positions[i].Index).Should(Equal(positions[i-1].Index + 1))
			Expect(positions[i].Start).Should(BeNumerically(">=", positions[i-1].End))
		}
	})

	It("should be safe for concurrent use", func() {
		text := []byte("中华人民共和国国歌 like liking liked")
		expected, err := t.Tokenize(text)
		Expect(err).Should(BeNil())

		var wg sync.WaitGroup
		results := make([][]Position, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = t.Tokenize(text)
			}(i)
		}
		wg.Wait()
		for _, r := range results {
			Expect(r).Should(Equal(expected))
		}
	})
})

var _ = Describe("Stream", func() {
	It("should flag co-located terms", func() {
		var tokens []Token
		err := Stream(mustNew(SimpleName), []byte("国家"), func(tok Token) error {
			tokens = append(tokens, tok)
			return nil
		})
		Expect(err).Should(BeNil())
		Expect(len(tokens)).Should(BeNumerically(">=", 4))
		Expect(tokens[0].Text).Should(Equal("国"))
		Expect(tokens[0].Colocated).Should(BeFalse())
		Expect(tokens[1].Text).Should(Equal("guo"))
		Expect(tokens[1].Colocated).Should(BeTrue())
		Expect(tokens[2].Text).Should(Equal("家"))
		Expect(tokens[2].Colocated).Should(BeFalse())
		Expect(tokens[2].Position).Should(Equal(1))
	})

	It("should stop on sink errors", func() {
		stop := errors.New("stop")
		var count int
		err := Stream(mustNew(SimpleName), []byte("国家"), func(tok Token) error {
			count++
			return stop
		})
		Expect(err).Should(Equal(stop))
		Expect(count).Should(Equal(1))
	})

	It("should pass tokenizer errors through", func() {
		err := Stream(mustNew(SimpleName), []byte{0xff}, func(tok Token) error { return nil })
		Expect(errors.Is(err, types.ErrEncoding)).Should(BeTrue())
	})
})
