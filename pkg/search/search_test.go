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

package search

import (
	"context"

	"github.com/basenana/hanfts/config"
	"github.com/basenana/hanfts/pkg/query"
	"github.com/basenana/hanfts/pkg/types"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type recordBackend struct {
	queries []query.Expression
	limit   int
	docs    map[int64]*types.IndexDocument
}

func (r *recordBackend) name() string {
	return "record"
}

func (r *recordBackend) index(ctx context.Context, doc *types.IndexDocument) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *recordBackend) query(ctx context.Context, expr query.Expression, limit int) ([]*types.IndexDocument, error) {
	r.queries = append(r.queries, expr)
	r.limit = limit
	return []*types.IndexDocument{}, nil
}

func (r *recordBackend) delete(ctx context.Context, id int64) error {
	if _, ok := r.docs[id]; !ok {
		return types.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *recordBackend) close() error {
	return nil
}

var _ = Describe("Service", func() {
	var (
		ctx = context.TODO()
		rb  *recordBackend
	)

	BeforeEach(func() {
		rb = &recordBackend{docs: map[int64]*types.IndexDocument{}}
	})

	It("should hand decomposed expressions to the backend", func() {
		s := newService(rb, newTestTokenizer(), config.Search{})
		_, err := s.Query(ctx, " 国 ")
		Expect(err).Should(BeNil())
		Expect(rb.queries).Should(HaveLen(1))
		Expect(rb.queries[0].FTS5()).Should(Equal(`"国" OR "guo"`))
		Expect(rb.limit).Should(Equal(defaultResultLimit))
	})

	It("should cache expressions by query", func() {
		s := newService(rb, newTestTokenizer(), config.Search{QueryCacheSize: 8, ResultLimit: 3})
		for i := 0; i < 3; i++ {
			_, err := s.Query(ctx, "zhongguo")
			Expect(err).Should(BeNil())
		}
		Expect(s.cache.Len()).Should(Equal(1))
		Expect(rb.queries).Should(HaveLen(3))
		Expect(rb.queries[2]).Should(Equal(rb.queries[0]))
		Expect(rb.limit).Should(Equal(3))
	})

	It("should run without cache when it is disabled", func() {
		s := newService(rb, newTestTokenizer(), config.Search{QueryCacheSize: config.DisableQueryCache})
		Expect(s.cache).Should(BeNil())
		for i := 0; i < 2; i++ {
			_, err := s.Query(ctx, "guo")
			Expect(err).Should(BeNil())
		}
		Expect(rb.queries).Should(HaveLen(2))
	})

	It("should skip the backend for punctuation only queries", func() {
		s := newService(rb, newTestTokenizer(), config.Search{})
		docs, err := s.Query(ctx, " ,.！")
		Expect(err).Should(BeNil())
		Expect(docs).Should(BeEmpty())
		Expect(rb.queries).Should(BeEmpty())
	})

	It("should keep han stop words out of the segmentations", func() {
		s := newService(rb, newTestTokenizer(), config.Search{})
		_, err := s.Query(ctx, "的")
		Expect(err).Should(BeNil())
		Expect(rb.queries).Should(HaveLen(1))
		Expect(rb.queries[0].Segmentations).Should(BeEmpty())
	})

	It("should not decompose for tokenizers without pinyin", func() {
		s := newService(rb, newTestTokenizer("disable_pinyin"), config.Search{})
		_, err := s.Query(ctx, "国")
		Expect(err).Should(BeNil())
		Expect(rb.queries[0].Segmentations).Should(BeEmpty())
	})

	It("should skip the backend for empty queries", func() {
		s := newService(rb, newTestTokenizer(), config.Search{})
		docs, err := s.Query(ctx, "")
		Expect(err).Should(BeNil())
		Expect(docs).Should(BeEmpty())
		Expect(rb.queries).Should(BeEmpty())
	})

	It("should validate before indexing", func() {
		s := newService(rb, newTestTokenizer(), config.Search{})
		Expect(s.Index(ctx, nil)).ShouldNot(BeNil())
		Expect(rb.docs).Should(BeEmpty())

		Expect(s.Index(ctx, &types.IndexDocument{ID: 1, URI: "test://1", Content: "国"})).Should(BeNil())
		Expect(rb.docs).Should(HaveKey(int64(1)))
		Expect(s.Delete(ctx, 1)).Should(BeNil())
		Expect(s.Delete(ctx, 1)).Should(Equal(types.ErrNotFound))
		Expect(s.Close()).Should(BeNil())
	})
})
