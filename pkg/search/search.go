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
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/basenana/hanfts/config"
	"github.com/basenana/hanfts/pkg/query"
	"github.com/basenana/hanfts/pkg/tokenizer"
	"github.com/basenana/hanfts/pkg/types"
	"github.com/basenana/hanfts/utils"
	"github.com/basenana/hanfts/utils/logger"
)

const (
	defaultResultLimit = 50
	queryCacheExpire   = 10 * time.Minute
)

// Indexer is a full text index whose documents are tokenized with pinyin
// readings, so that both han characters and their spelling find them.
type Indexer interface {
	Index(ctx context.Context, doc *types.IndexDocument) error
	Query(ctx context.Context, q string) ([]*types.IndexDocument, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}

type backend interface {
	name() string
	index(ctx context.Context, doc *types.IndexDocument) error
	query(ctx context.Context, expr query.Expression, limit int) ([]*types.IndexDocument, error)
	delete(ctx context.Context, id int64) error
	close() error
}

// New opens the backend named by cfg. The tokenizer is used for documents
// and queries alike and must not change for an existing index.
func New(cfg config.Search, tok tokenizer.Tokenizer) (Indexer, error) {
	var (
		b   backend
		err error
	)
	switch cfg.Backend {
	case config.BleveBackend, "":
		b, err = newBleve(cfg.Path, tok)
	case config.SqliteBackend:
		b, err = newSqlite(cfg.Path, tok)
	case config.PostgresBackend:
		b, err = newPostgres(cfg.DSN, tok)
	default:
		return nil, fmt.Errorf("%w: search backend %s", types.ErrUnsupported, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return newService(b, tok, cfg), nil
}

type service struct {
	backend    backend
	decomposer *query.Decomposer
	cache      *utils.LRUPool
	limit      int
	logger     *zap.SugaredLogger
}

var _ Indexer = &service{}

func newService(b backend, tok tokenizer.Tokenizer, cfg config.Search) *service {
	s := &service{
		backend:    b,
		decomposer: query.NewDecomposer(tok.Config()),
		limit:      cfg.ResultLimit,
		logger:     logger.NewLogger("search").With("backend", b.name()),
	}
	if s.limit <= 0 {
		s.limit = defaultResultLimit
	}
	if cfg.QueryCacheSize > 0 {
		s.cache = utils.NewLRUPool(cfg.QueryCacheSize, queryCacheExpire)
	}
	return s
}

func (s *service) Index(ctx context.Context, doc *types.IndexDocument) (err error) {
	const operation = "index"
	defer logOperationLatency(s.backend.name(), operation, time.Now())
	defer utils.TraceRegion(ctx, "search.%s.index", s.backend.name())()
	defer func() { logOperationError(s.backend.name(), operation, err) }()

	if err = doc.Validate(); err != nil {
		s.logger.Warnw("reject document", "document", docID(doc), "err", err)
		return err
	}
	if err = s.backend.index(ctx, doc); err != nil {
		s.logger.Errorw("index document failed", "document", doc.ID, "err", err)
		return err
	}
	s.logger.Debugw("document indexed", "document", doc.ID, "uri", doc.URI)
	return nil
}

func (s *service) Query(ctx context.Context, q string) (docs []*types.IndexDocument, err error) {
	const operation = "query"
	defer logOperationLatency(s.backend.name(), operation, time.Now())
	defer utils.TraceRegion(ctx, "search.%s.query", s.backend.name())()
	defer func() { logOperationError(s.backend.name(), operation, err) }()

	startAt := time.Now()
	expr := s.expression(q)
	if expr.Literal == "" {
		return []*types.IndexDocument{}, nil
	}

	docs, err = s.backend.query(ctx, expr, s.limit)
	if err != nil {
		s.logger.Errorw("search document failed", "query", q, "err", err)
		return nil, err
	}
	s.logger.Infow("search document with query finish", "query", q,
		"segmentations", len(expr.Segmentations), "matches", len(docs), "cost", time.Since(startAt).String())
	return docs, nil
}

func (s *service) Delete(ctx context.Context, id int64) (err error) {
	const operation = "delete"
	defer logOperationLatency(s.backend.name(), operation, time.Now())
	defer func() { logOperationError(s.backend.name(), operation, err) }()

	if err = s.backend.delete(ctx, id); err != nil {
		s.logger.Errorw("delete document failed", "document", id, "err", err)
		return err
	}
	return nil
}

func (s *service) Close() error {
	if s.cache != nil {
		s.cache.Purge()
	}
	return s.backend.close()
}

func (s *service) expression(q string) query.Expression {
	key := strings.TrimSpace(q)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached.(query.Expression)
		}
	}
	expr := s.decomposer.Decompose(key)
	if expr.Truncated {
		s.logger.Debugw("query segmentations truncated", "query", key, "kept", len(expr.Segmentations))
	}
	if s.cache != nil {
		s.cache.Put(key, expr)
	}
	return expr
}

func docID(doc *types.IndexDocument) int64 {
	if doc == nil {
		return 0
	}
	return doc.ID
}
