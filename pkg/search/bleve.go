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
	"strconv"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	_ "github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/index/upsidedown"
	"github.com/blevesearch/bleve/v2/index/upsidedown/store/boltdb"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/registry"
	bquery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/basenana/hanfts/pkg/pinyin"
	"github.com/basenana/hanfts/pkg/query"
	"github.com/basenana/hanfts/pkg/tokenizer"
	"github.com/basenana/hanfts/pkg/types"
	"github.com/basenana/hanfts/utils/logger"
)

const (
	// BleveTokenizerType is the registry type of tokenizers built by
	// tokenizer.New. Its config keys are "tokenizer" and "args".
	BleveTokenizerType = "hanfts"

	bleveTokenizerName = "hanfts_tokenizer"
	bleveAnalyzerName  = "hanfts"
	bleveDocumentType  = "document"
)

var bleveSearchFields = []string{"title", "content"}

type BleveDocument struct {
	URI       string `json:"uri"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
	ChangedAt int64  `json:"changed_at"`
}

func (d *BleveDocument) BleveType() string {
	return bleveDocumentType
}

func newBleveDocument(doc *types.IndexDocument) *BleveDocument {
	bd := &BleveDocument{
		URI:       doc.URI,
		Title:     doc.Title,
		Content:   doc.Content,
		CreatedAt: doc.CreateAt,
		ChangedAt: doc.ChangedAt,
	}
	if bd.CreatedAt == 0 {
		bd.CreatedAt = time.Now().Unix()
	}
	if bd.ChangedAt == 0 {
		bd.ChangedAt = bd.CreatedAt
	}
	return bd
}

type bleveBackend struct {
	b      bleve.Index
	logger *zap.SugaredLogger
}

func newBleve(indexDir string, tok tokenizer.Tokenizer) (*bleveBackend, error) {
	idx, err := openBleveIndex(indexDir, tok)
	if err != nil {
		return nil, err
	}
	return &bleveBackend{b: idx, logger: logger.NewLogger("bleve")}, nil
}

func (b *bleveBackend) name() string {
	return "bleve"
}

func (b *bleveBackend) index(ctx context.Context, doc *types.IndexDocument) error {
	return errors.Wrapf(b.b.Index(int64ToStr(doc.ID), newBleveDocument(doc)), "index document %d", doc.ID)
}

func (b *bleveBackend) delete(ctx context.Context, id int64) error {
	docID := int64ToStr(id)
	existed, err := b.b.Document(docID)
	if err != nil {
		return errors.Wrapf(err, "get document %d", id)
	}
	if existed == nil {
		return errors.Wrapf(types.ErrNotFound, "delete document %d", id)
	}
	return errors.Wrapf(b.b.Delete(docID), "delete document %d", id)
}

func (b *bleveBackend) query(ctx context.Context, expr query.Expression, limit int) ([]*types.IndexDocument, error) {
	req := bleve.NewSearchRequestOptions(bleveQuery(expr), limit, 0, false)
	req.Fields = []string{"*"}
	result, err := b.b.SearchInContext(ctx, req)
	if err != nil {
		return nil, errors.Wrapf(err, "search %s", expr.Literal)
	}
	b.logger.Debugf("%d matches took %s", result.Total, result.Took)

	docList := make([]*types.IndexDocument, 0, len(result.Hits))
	for _, match := range result.Hits {
		id, err := strToInt64(match.ID)
		if err != nil {
			b.logger.Errorw("turn doc id to int64 failed", "document", match.ID, "err", err)
			return nil, err
		}
		docList = append(docList, &types.IndexDocument{
			ID:        id,
			URI:       stringField(match.Fields, "uri"),
			Title:     stringField(match.Fields, "title"),
			Content:   stringField(match.Fields, "content"),
			CreateAt:  int64Field(match.Fields, "created_at"),
			ChangedAt: int64Field(match.Fields, "changed_at"),
		})
	}
	return docList, nil
}

func (b *bleveBackend) close() error {
	return b.b.Close()
}

// bleveQuery matches the literal as a phrase, which the analyzer expands
// into alternatives per position, or any segmentation as a phrase of
// readings, in any searched field.
func bleveQuery(expr query.Expression) bquery.Query {
	var disjuncts []bquery.Query
	for _, field := range bleveSearchFields {
		literal := bleve.NewMatchPhraseQuery(expr.Literal)
		literal.SetField(field)
		disjuncts = append(disjuncts, literal)

		for _, seg := range expr.Segmentations {
			disjuncts = append(disjuncts, bleve.NewPhraseQuery(phoneticTerms(seg), field))
		}
	}
	return bleve.NewDisjunctionQuery(disjuncts...)
}

func openBleveIndex(indexDir string, tok tokenizer.Tokenizer) (bleve.Index, error) {
	if indexDir != "" {
		index, err := bleve.Open(indexDir)
		if err == nil {
			return index, nil
		}
		if !errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
			return nil, errors.Wrapf(err, "open index %s failed", indexDir)
		}
	}

	indexMapping, err := newBleveMapping(tok)
	if err != nil {
		return nil, err
	}
	if indexDir == "" {
		return bleve.NewMemOnly(indexMapping)
	}
	index, err := bleve.NewUsing(indexDir, indexMapping, upsidedown.Name, boltdb.Name, map[string]interface{}{})
	if err != nil {
		return nil, errors.Wrapf(err, "create index %s failed", indexDir)
	}
	return index, nil
}

func newBleveMapping(tok tokenizer.Tokenizer) (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomTokenizer(bleveTokenizerName, map[string]interface{}{
		"type":      BleveTokenizerType,
		"tokenizer": tok.Name(),
		"args":      toInterfaces(tok.Args()),
	})
	if err != nil {
		return nil, err
	}
	err = indexMapping.AddCustomAnalyzer(bleveAnalyzerName, map[string]interface{}{
		"type":      "custom",
		"tokenizer": bleveTokenizerName,
	})
	if err != nil {
		return nil, err
	}
	indexMapping.DefaultAnalyzer = bleveAnalyzerName
	indexMapping.DefaultType = bleveDocumentType

	indexAndStoreTextField := bleve.NewTextFieldMapping()
	indexAndStoreTextField.Analyzer = bleveAnalyzerName
	indexAndStoreTextField.Index = true
	indexAndStoreTextField.Store = true
	indexAndStoreTextField.IncludeTermVectors = true

	keywordField := bleve.NewKeywordFieldMapping()
	keywordField.Store = true
	keywordField.IncludeInAll = false

	storeNumField := bleve.NewNumericFieldMapping()
	storeNumField.Index = false
	storeNumField.Store = true
	storeNumField.IncludeInAll = false

	documentMapping := bleve.NewDocumentMapping()
	documentMapping.AddFieldMappingsAt("title", indexAndStoreTextField)
	documentMapping.AddFieldMappingsAt("content", indexAndStoreTextField)
	documentMapping.AddFieldMappingsAt("uri", keywordField)
	documentMapping.AddFieldMappingsAt("created_at", storeNumField)
	documentMapping.AddFieldMappingsAt("changed_at", storeNumField)
	indexMapping.AddDocumentMapping(bleveDocumentType, documentMapping)

	return indexMapping, nil
}

// bleveTokenizer streams the positions of a tokenizer into bleve tokens.
// Bleve positions start at 1 and terms of one position share it.
type bleveTokenizer struct {
	tok    tokenizer.Tokenizer
	logger *zap.SugaredLogger
}

var _ analysis.Tokenizer = &bleveTokenizer{}

func (b *bleveTokenizer) Tokenize(input []byte) analysis.TokenStream {
	positions, err := b.tok.Tokenize(input)
	if err != nil {
		// documents are validated before indexing, this only drops bad queries
		b.logger.Warnw("tokenize failed", "tokenizer", b.tok.Name(), "err", err)
		return analysis.TokenStream{}
	}

	stream := make(analysis.TokenStream, 0, len(positions))
	for _, p := range positions {
		for _, t := range p.Terms {
			stream = append(stream, &analysis.Token{
				Term:     []byte(t.Text),
				Start:    t.Start,
				End:      t.End,
				Position: t.Position + 1,
				Type:     tokenType(t),
			})
		}
	}
	return stream
}

func tokenType(t tokenizer.Token) analysis.TokenType {
	switch t.Kind {
	case tokenizer.KindHan:
		return analysis.Ideographic
	case tokenizer.KindSegment:
		for _, r := range t.Text {
			if pinyin.IsHan(r) {
				return analysis.Ideographic
			}
		}
	}
	return analysis.AlphaNumeric
}

func BleveTokenizerConstructor(config map[string]interface{}, cache *registry.Cache) (analysis.Tokenizer, error) {
	name, _ := config["tokenizer"].(string)
	if name == "" {
		name = tokenizer.SimpleName
	}
	args, err := configArgs(config["args"])
	if err != nil {
		return nil, err
	}
	tok, err := tokenizer.New(name, args)
	if err != nil {
		return nil, err
	}
	return &bleveTokenizer{tok: tok, logger: logger.NewLogger("bleve")}, nil
}

func init() {
	registry.RegisterTokenizer(BleveTokenizerType, BleveTokenizerConstructor)
}

// configArgs reads the args of a tokenizer config, which are []string when
// built in process and []interface{} once the mapping was stored as json.
func configArgs(val interface{}) ([]string, error) {
	switch v := val.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []interface{}:
		args := make([]string, 0, len(v))
		for _, a := range v {
			s, ok := a.(string)
			if !ok {
				return nil, fmt.Errorf("%w: tokenizer arg %v is not a string", types.ErrConfiguration, a)
			}
			args = append(args, s)
		}
		return args, nil
	case string:
		return strings.Fields(v), nil
	default:
		return nil, fmt.Errorf("%w: tokenizer args of type %T", types.ErrConfiguration, val)
	}
}

func toInterfaces(args []string) []interface{} {
	result := make([]interface{}, 0, len(args))
	for _, a := range args {
		result = append(result, a)
	}
	return result
}

func stringField(fields map[string]interface{}, name string) string {
	s, _ := fields[name].(string)
	return s
}

func int64Field(fields map[string]interface{}, name string) int64 {
	f, _ := fields[name].(float64)
	return int64(f)
}

func int64ToStr(s int64) string {
	return fmt.Sprintf("doc_%d", s)
}

func strToInt64(s string) (int64, error) {
	if !strings.HasPrefix(s, "doc_") {
		return 0, fmt.Errorf("unexpected document id %s", s)
	}
	return strconv.ParseInt(s[4:], 10, 64)
}
