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
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/basenana/hanfts/pkg/query"
	"github.com/basenana/hanfts/pkg/tokenizer"
	"github.com/basenana/hanfts/pkg/types"
)

// maxTsPosition is the largest position a tsvector can hold.
const maxTsPosition = 16383

type PostgresDocument struct {
	ID        int64    `gorm:"column:id;primaryKey"`
	URI       string   `gorm:"column:uri;index:pgdoc_uri"`
	Title     string   `gorm:"column:title"`
	Content   string   `gorm:"column:content"`
	Token     TsVector `gorm:"column:token;type:tsvector"`
	CreatedAt int64    `gorm:"column:created_at"`
	ChangedAt int64    `gorm:"column:changed_at"`
}

func (d *PostgresDocument) TableName() string {
	return "documents"
}

func (d *PostgresDocument) From(document *types.IndexDocument) {
	d.ID = document.ID
	d.URI = document.URI
	d.Title = document.Title
	d.Content = document.Content

	d.CreatedAt = document.CreateAt
	if d.CreatedAt == 0 {
		d.CreatedAt = time.Now().Unix()
	}
	d.ChangedAt = document.ChangedAt
	if d.ChangedAt == 0 {
		d.ChangedAt = d.CreatedAt
	}
}

func (d *PostgresDocument) To() *types.IndexDocument {
	return &types.IndexDocument{
		ID:        d.ID,
		URI:       d.URI,
		Title:     d.Title,
		Content:   d.Content,
		CreateAt:  d.CreatedAt,
		ChangedAt: d.ChangedAt,
	}
}

type TsVector string

func (t *TsVector) Scan(value interface{}) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*t = TsVector(v)
	case string:
		*t = TsVector(v)
	default:
		return fmt.Errorf("cannot scan type %T into TsVector", value)
	}
	return nil
}

func (t TsVector) Value() (driver.Value, error) {
	return string(t), nil
}

type postgresBackend struct {
	db  *gorm.DB
	tok tokenizer.Tokenizer
}

func newPostgres(dsn string, tok tokenizer.Tokenizer) (*postgresBackend, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newDbLogger()})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres failed")
	}

	dbConn, err := db.DB()
	if err != nil {
		return nil, err
	}

	dbConn.SetMaxIdleConns(5)
	dbConn.SetMaxOpenConns(50)
	dbConn.SetConnMaxLifetime(time.Hour)

	if err = dbConn.Ping(); err != nil {
		return nil, err
	}
	if err = migrate(db, postgresMigrations()); err != nil {
		return nil, errors.Wrap(sqlError2Error(err), "migrate postgres failed")
	}
	return &postgresBackend{db: db, tok: tok}, nil
}

func (p *postgresBackend) name() string {
	return "postgres"
}

func (p *postgresBackend) index(ctx context.Context, document *types.IndexDocument) error {
	vector, err := documentTsVector(p.tok, document)
	if err != nil {
		return err
	}

	model := &PostgresDocument{}
	model.From(document)
	model.Token = TsVector(vector)

	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("token").Save(model).Error; err != nil {
			return err
		}
		return tx.Model(&PostgresDocument{}).Where("id = ?", model.ID).
			Update("token", gorm.Expr("?::tsvector", vector)).Error
	})
	return errors.Wrapf(err, "index document %d", document.ID)
}

func (p *postgresBackend) query(ctx context.Context, expr query.Expression, limit int) ([]*types.IndexDocument, error) {
	tsQuery, err := TSQuery(p.tok, expr)
	if err != nil {
		return nil, err
	}
	if tsQuery == "" {
		return []*types.IndexDocument{}, nil
	}

	var docModels []PostgresDocument
	err = p.db.WithContext(ctx).Model(&PostgresDocument{}).
		Where("token @@ ?::tsquery", tsQuery).
		Select("*, ts_rank(token, ?::tsquery) as rank", tsQuery).
		Order("rank DESC").
		Limit(limit).
		Find(&docModels).Error
	if err != nil {
		return nil, errors.Wrapf(err, "match %s", tsQuery)
	}

	result := make([]*types.IndexDocument, 0, len(docModels))
	for i := range docModels {
		result = append(result, docModels[i].To())
	}
	return result, nil
}

func (p *postgresBackend) delete(ctx context.Context, id int64) error {
	res := p.db.WithContext(ctx).Where("id = ?", id).Delete(&PostgresDocument{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete document %d", id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(types.ErrNotFound, "delete document %d", id)
	}
	return nil
}

func (p *postgresBackend) close() error {
	dbConn, err := p.db.DB()
	if err != nil {
		return err
	}
	return dbConn.Close()
}

// documentTsVector renders the title with weight A and the content with
// weight B. Content positions start after a gap so no phrase spans both.
func documentTsVector(tok tokenizer.Tokenizer, document *types.IndexDocument) (string, error) {
	title, err := tok.Tokenize([]byte(document.Title))
	if err != nil {
		return "", err
	}
	content, err := tok.Tokenize([]byte(document.Content))
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, 2)
	if v := tsVector(title, 0, 'A'); v != "" {
		parts = append(parts, v)
	}
	if v := tsVector(content, len(title)+1, 'B'); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, " "), nil
}

// tsVector renders positions as a tsvector literal in which the terms of
// one position share its number, e.g. '国':1A 'guo':1A.
func tsVector(positions []tokenizer.Position, offset int, weight byte) string {
	var (
		order   []string
		lexemes = make(map[string][]int)
	)
	for _, p := range positions {
		n := p.Index + 1 + offset
		if n > maxTsPosition {
			n = maxTsPosition
		}
		for _, t := range p.Terms {
			if _, ok := lexemes[t.Text]; !ok {
				order = append(order, t.Text)
			}
			lexemes[t.Text] = append(lexemes[t.Text], n)
		}
	}

	var b strings.Builder
	for i, text := range order {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tsQuote(text))
		b.WriteByte(':')
		for j, n := range lexemes[text] {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(n))
			b.WriteByte(weight)
		}
	}
	return b.String()
}

// TSQuery renders expr as a tsquery. The literal is tokenized like the
// documents were, alternatives of one position become an OR group and
// positions are chained with the followed-by operator.
func TSQuery(tok tokenizer.Tokenizer, expr query.Expression) (string, error) {
	positions, err := tok.Tokenize([]byte(expr.Literal))
	if err != nil {
		return "", err
	}

	var clauses []string
	if len(positions) > 0 {
		groups := make([]string, 0, len(positions))
		for _, p := range positions {
			alternatives := p.Alternatives()
			quoted := make([]string, 0, len(alternatives))
			for _, a := range alternatives {
				quoted = append(quoted, tsQuote(a))
			}
			if len(quoted) == 1 {
				groups = append(groups, quoted[0])
				continue
			}
			groups = append(groups, "("+strings.Join(quoted, " | ")+")")
		}
		clauses = append(clauses, tsPhrase(groups))
	}
	for _, seg := range expr.Segmentations {
		terms := phoneticTerms(seg)
		quoted := make([]string, 0, len(terms))
		for _, t := range terms {
			quoted = append(quoted, tsQuote(t))
		}
		clauses = append(clauses, tsPhrase(quoted))
	}
	return strings.Join(clauses, " | "), nil
}

func tsPhrase(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	return "(" + strings.Join(items, " <-> ") + ")"
}

func tsQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `''`)
	return "'" + s + "'"
}
