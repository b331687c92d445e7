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

	"github.com/basenana/hanfts/pkg/types"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type fakeSegmenter struct {
	pieces []string
}

func (f fakeSegmenter) Cut(string) []string {
	return f.pieces
}

var _ = Describe("Jieba", func() {
	It("should turn segments into positions with recovered offsets", func() {
		seg := fakeSegmenter{pieces: []string{"社会主义", "国家", " ", "like", "，", "the"}}
		j := NewJieba(DefaultConfig(), seg)

		positions := mustTokenize(j, "社会主义国家 like，the")
		Expect(primaries(positions)).Should(Equal([]string{"社会主义", "国家", "like"}))
		Expect(positions[0].Start).Should(Equal(0))
		Expect(positions[0].End).Should(Equal(12))
		Expect(positions[1].Start).Should(Equal(12))
		Expect(positions[1].End).Should(Equal(18))
		Expect(positions[2].Index).Should(Equal(2))
		Expect(positions[2].Start).Should(Equal(19))
		for _, p := range positions {
			Expect(p.Terms).Should(HaveLen(1))
			Expect(p.Terms[0].Kind).Should(Equal(KindSegment))
		}
	})

	It("should never emit readings", func() {
		j := NewJieba(DefaultConfig(), fakeSegmenter{pieces: []string{"国"}})
		Expect(j.Config().Phonetic).Should(BeFalse())
		positions := mustTokenize(j, "国")
		Expect(positions).Should(HaveLen(1))
		Expect(positions[0].Alternatives()).Should(Equal([]string{"国"}))
	})

	It("should keep stop words when disabled", func() {
		cfg := DefaultConfig()
		cfg.Stopword = false
		j := NewJieba(cfg, fakeSegmenter{pieces: []string{"the", " ", "的"}})
		positions := mustTokenize(j, "the 的")
		Expect(primaries(positions)).Should(Equal([]string{"the", "的"}))
	})

	It("should skip pieces that are not in the source", func() {
		j := NewJieba(DefaultConfig(), fakeSegmenter{pieces: []string{"书", "missing", "店"}})
		positions := mustTokenize(j, "书店")
		Expect(primaries(positions)).Should(Equal([]string{"书", "店"}))
		Expect(positions[1].Start).Should(Equal(3))
	})

	It("should reject invalid utf-8", func() {
		j := NewJieba(DefaultConfig(), fakeSegmenter{})
		_, err := j.Tokenize([]byte{0xfe})
		Expect(errors.Is(err, types.ErrEncoding)).Should(BeTrue())
	})

	It("should segment with the embedded dictionary", func() {
		t := mustNew(JiebaName)
		positions := mustTokenize(t, "我们是中国人")
		Expect(positions).ShouldNot(BeEmpty())
		var covered string
		for _, p := range positions {
			covered += p.Primary()
		}
		Expect(covered).Should(Equal("我们中国人"))
	})
})
