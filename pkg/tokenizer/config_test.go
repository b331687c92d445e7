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

var _ = Describe("ParseArgs", func() {
	It("should enable every feature by default", func() {
		cfg, err := ParseArgs(nil, ArgDisablePinyin, ArgDisableStopword)
		Expect(err).Should(BeNil())
		Expect(cfg).Should(Equal(Config{Phonetic: true, Stopword: true}))
		Expect(cfg.Args()).Should(BeEmpty())
	})

	It("should disable features by token", func() {
		cfg, err := ParseArgs([]string{ArgDisablePinyin, " ", ArgDisableStopword}, ArgDisablePinyin, ArgDisableStopword)
		Expect(err).Should(BeNil())
		Expect(cfg.Phonetic).Should(BeFalse())
		Expect(cfg.Stopword).Should(BeFalse())
		Expect(cfg.Args()).Should(Equal([]string{ArgDisablePinyin, ArgDisableStopword}))
	})

	It("should reject unrecognized tokens", func() {
		_, err := ParseArgs([]string{"enable_magic"}, ArgDisablePinyin, ArgDisableStopword)
		Expect(errors.Is(err, types.ErrConfiguration)).Should(BeTrue())
	})

	It("should reject tokens the tokenizer does not accept", func() {
		_, err := ParseArgs([]string{ArgDisablePinyin}, ArgDisableStopword)
		Expect(errors.Is(err, types.ErrConfiguration)).Should(BeTrue())
	})
})

var _ = Describe("New", func() {
	It("should build the simple tokenizer", func() {
		t := mustNew(SimpleName, ArgDisablePinyin)
		Expect(t.Name()).Should(Equal(SimpleName))
		Expect(t.Config().Phonetic).Should(BeFalse())
		Expect(t.Config().Stopword).Should(BeTrue())
	})

	It("should parse a tokenizer definition", func() {
		t, err := Parse("simple disable_stopword")
		Expect(err).Should(BeNil())
		Expect(t.Config()).Should(Equal(Config{Phonetic: true, Stopword: false}))

		t, err = Parse("")
		Expect(err).Should(BeNil())
		Expect(t.Name()).Should(Equal(SimpleName))
	})

	It("should render a definition Parse accepts", func() {
		t := mustNew(SimpleName, ArgDisableStopword, ArgDisablePinyin)
		Expect(Definition(t)).Should(Equal("simple disable_pinyin disable_stopword"))

		again, err := Parse(Definition(t))
		Expect(err).Should(BeNil())
		Expect(again.Config()).Should(Equal(t.Config()))

		j := NewJieba(Config{Phonetic: true, Stopword: false}, fakeSegmenter{})
		Expect(Definition(j)).Should(Equal("jieba disable_stopword"))
	})

	It("should fail on unknown tokenizer names", func() {
		_, err := New("porter", nil)
		Expect(errors.Is(err, types.ErrConfiguration)).Should(BeTrue())
	})

	It("should fail on arguments jieba does not understand", func() {
		_, err := New(JiebaName, []string{ArgDisablePinyin})
		Expect(errors.Is(err, types.ErrConfiguration)).Should(BeTrue())
	})
})

var _ = Describe("ParseConfig", func() {
	It("should check arguments per tokenizer", func() {
		cfg, err := ParseConfig(SimpleName, []string{ArgDisablePinyin})
		Expect(err).Should(BeNil())
		Expect(cfg.Phonetic).Should(BeFalse())

		cfg, err = ParseConfig(JiebaName, []string{ArgDisableStopword, " "})
		Expect(err).Should(BeNil())
		Expect(cfg.Stopword).Should(BeFalse())

		_, err = ParseConfig(JiebaName, []string{ArgDisablePinyin})
		Expect(errors.Is(err, types.ErrConfiguration)).Should(BeTrue())
	})

	It("should reject unknown names", func() {
		_, err := ParseConfig("icu", nil)
		Expect(errors.Is(err, types.ErrConfiguration)).Should(BeTrue())
	})
})
