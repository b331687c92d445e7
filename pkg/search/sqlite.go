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
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/basenana/hanfts/pkg/query"
	"github.com/basenana/hanfts/pkg/tokenizer"
	"github.com/basenana/hanfts/pkg/types"
)

const (
	sqliteLiteralColumns  = "{title content title_py content_py}"
	sqlitePhoneticColumns = "{title_py content_py}"
)

type SqliteDocument struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	URI       string `gorm:"column:uri;index:sltdoc_uri"`
	Title     string `gorm:"column:title"`
	Content   string `gorm:"column:content"`
	CreateAt  int64  `gorm:"column:created_at"`
	ChangedAt int64  `gorm:"column:changed_at"`
}

func (d *SqliteDocument) TableName() string {
	return "documents"
}

func (d *SqliteDocument) From(document *types.IndexDocument) {
	d.ID = document.ID
	d.URI = document.URI
	d.Title = document.Title
	d.Content = document.Content
	d.CreateAt = document.CreateAt
	if d.CreateAt == 0 {
		d.CreateAt = time.Now().Unix()
	}
	d.ChangedAt = document.ChangedAt
	if d.ChangedAt == 0 {
		d.ChangedAt = d.CreateAt
	}
}

func (d *SqliteDocument) To() *types.IndexDocument {
	return &types.IndexDocument{
		ID:        d.ID,
		URI:       d.URI,
		Title:     d.Title,
		Content:   d.Content,
		CreateAt:  d.CreateAt,
		ChangedAt: d.ChangedAt,
	}
}

// sqliteBackend keeps documents in a plain table and their pre-tokenized
// terms in an FTS5 table. FTS5 has no co-located tokens outside a native
// tokenizer, so the *_py columns hold only the first reading of each
// character.
type sqliteBackend struct {
	db  *gorm.DB
	tok tokenizer.Tokenizer
	mux sync.Mutex
}

func newSqlite(dbPath string, tok tokenizer.Tokenizer) (*sqliteBackend, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: newDbLogger()})
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s failed", dbPath)
	}
	return buildSqlite(db, tok)
}

func buildSqlite(db *gorm.DB, tok tokenizer.Tokenizer) (*sqliteBackend, error) {
	dbConn, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = dbConn.Ping(); err != nil {
		return nil, err
	}
	if err = migrate(db, sqliteMigrations()); err != nil {
		return nil, errors.Wrap(sqlError2Error(err), "migrate sqlite failed")
	}
	return &sqliteBackend{db: db, tok: tok}, nil
}

func (s *sqliteBackend) name() string {
	return "sqlite"
}

func (s *sqliteBackend) index(ctx context.Context, document *types.IndexDocument) error {
	title, err := s.tok.Tokenize([]byte(document.Title))
	if err != nil {
		return err
	}
	content, err := s.tok.Tokenize([]byte(document.Content))
	if err != nil {
		return err
	}

	model := &SqliteDocument{}
	model.From(document)

	s.mux.Lock()
	defer s.mux.Unlock()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM documents_fts WHERE rowid = ?`, document.ID).Error; err != nil {
			return err
		}
		return tx.Exec(`INSERT INTO documents_fts(rowid, title, content, title_py, content_py) VALUES (?, ?, ?, ?, ?)`,
			document.ID, primaryText(title), primaryText(content), phoneticText(title), phoneticText(content)).Error
	})
	return errors.Wrapf(err, "index document %d", document.ID)
}

func (s *sqliteBackend) query(ctx context.Context, expr query.Expression, limit int) ([]*types.IndexDocument, error) {
	match, err := sqliteMatch(s.tok, expr)
	if err != nil {
		return nil, err
	}
	if match == "" {
		return []*types.IndexDocument{}, nil
	}

	var results []SqliteDocument
	s.mux.Lock()
	err = s.db.WithContext(ctx).
		Table("documents").
		Select("documents.*").
		Joins("JOIN documents_fts ON documents_fts.rowid = documents.id").
		Where("documents_fts MATCH ?", match).
		Order("rank").
		Limit(limit).
		Find(&results).Error
	s.mux.Unlock()
	if err != nil {
		return nil, errors.Wrapf(err, "match %s", match)
	}

	docs := make([]*types.IndexDocument, 0, len(results))
	for i := range results {
		docs = append(docs, results[i].To())
	}
	return docs, nil
}

func (s *sqliteBackend) delete(ctx context.Context, id int64) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&SqliteDocument{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrNotFound
		}
		return tx.Exec(`DELETE FROM documents_fts WHERE rowid = ?`, id).Error
	})
	return errors.Wrapf(err, "delete document %d", id)
}

func (s *sqliteBackend) close() error {
	dbConn, err := s.db.DB()
	if err != nil {
		return err
	}
	return dbConn.Close()
}

// sqliteMatch renders expr in FTS5 syntax over the pre-tokenized columns.
// The literal is tokenized like the documents were and searched in every
// column; segmentations are phrases over the reading columns.
func sqliteMatch(tok tokenizer.Tokenizer, expr query.Expression) (string, error) {
	positions, err := tok.Tokenize([]byte(expr.Literal))
	if err != nil {
		return "", err
	}

	var clauses []string
	if len(positions) > 0 {
		terms := make([]string, 0, len(positions))
		for _, p := range positions {
			terms = append(terms, p.Primary())
		}
		clauses = append(clauses, fts5Clause(sqliteLiteralColumns, terms))
	}
	for _, seg := range expr.Segmentations {
		clauses = append(clauses, fts5Clause(sqlitePhoneticColumns, phoneticTerms(seg)))
	}
	return strings.Join(clauses, " OR "), nil
}

func fts5Clause(columns string, terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		quoted = append(quoted, query.Quote(t))
	}
	return "(" + columns + " : " + strings.Join(quoted, " + ") + ")"
}
