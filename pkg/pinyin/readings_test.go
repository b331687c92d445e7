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
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Table", func() {
	tb := DefaultTable()

	It("should map common characters to their reading", func() {
		Expect(tb.ReadingsOf('国')).Should(Equal([]string{"guo"}))
		Expect(tb.ReadingsOf('锅')).Should(ContainElement("guo"))
		Expect(tb.ReadingsOf('中')).Should(HaveLen(1))
		Expect(tb.ReadingsOf('中')[0]).Should(Equal("zhong"))
		Expect(tb.ReadingsOf('家')).Should(ContainElement("jia"))
	})

	It("should keep every reading of a polyphonic character", func() {
		Expect(tb.ReadingsOf('行')).Should(ContainElement("xing"))
		Expect(tb.ReadingsOf('行')).Should(ContainElement("hang"))
		Expect(tb.ReadingsOf('和')[0]).Should(Equal("he"))
	})

	It("should return nothing for characters without readings", func() {
		Expect(tb.ReadingsOf('a')).Should(BeEmpty())
		Expect(tb.ReadingsOf('1')).Should(BeEmpty())
		Expect(tb.HasReading('!')).Should(BeFalse())
		Expect(ReadingsOf('x')).Should(BeNil())
	})

	It("should return deduplicated readings drawn from the alphabet", func() {
		for _, r := range []rune("中华人民共和国国歌静夜思举头望明月行长重乐") {
			readings := tb.ReadingsOf(r)
			Expect(readings).ShouldNot(BeEmpty())
			seen := map[string]bool{}
			for _, py := range readings {
				Expect(seen[py]).Should(BeFalse())
				seen[py] = true
				Expect(IsValidSyllable(py)).Should(BeTrue())
			}
		}
	})

	It("should return the same order on repeated calls", func() {
		for _, r := range []rune("行长重乐和") {
			first := ReadingsOf(r)
			for i := 0; i < 5; i++ {
				Expect(ReadingsOf(r)).Should(Equal(first))
			}
		}
	})

	It("should hand out copies from the package helper", func() {
		readings := ReadingsOf('国')
		readings[0] = "changed"
		Expect(tb.ReadingsOf('国')[0]).Should(Equal("guo"))
	})

	It("should detect han characters", func() {
		Expect(IsHan('国')).Should(BeTrue())
		Expect(IsHan('a')).Should(BeFalse())
		Expect(IsHan('。')).Should(BeFalse())
	})
})
