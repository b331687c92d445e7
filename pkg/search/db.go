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
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/basenana/hanfts/pkg/types"
	"github.com/basenana/hanfts/utils/logger"
)

func sqlError2Error(err error) error {
	switch err {
	case gorm.ErrRecordNotFound:
		return types.ErrNotFound
	default:
		return err
	}
}

type dbLogger struct {
	*zap.SugaredLogger
}

func (l *dbLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	return l
}

func (l *dbLogger) Info(ctx context.Context, s string, i ...interface{}) {
	l.Infof(s, i...)
}

func (l *dbLogger) Warn(ctx context.Context, s string, i ...interface{}) {
	l.Warnf(s, i...)
}

func (l *dbLogger) Error(ctx context.Context, s string, i ...interface{}) {
	l.Errorf(s, i...)
}

func (l *dbLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	switch {
	case err != nil && err != gorm.ErrRecordNotFound:
		sqlContent, rows := fc()
		l.Warnw("trace error", "sql", sqlContent, "rows", rows, "err", err)
	case time.Since(begin) > time.Second:
		sqlContent, rows := fc()
		l.Infow("slow sql", "sql", sqlContent, "rows", rows, "err", err)
	}
}

func newDbLogger() *dbLogger {
	return &dbLogger{SugaredLogger: logger.NewLogger("database")}
}

func sqliteMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "2025070100",
			Migrate: func(db *gorm.DB) error {
				if err := db.AutoMigrate(&SqliteDocument{}); err != nil {
					return err
				}
				return db.Exec(`CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
					title, content, title_py, content_py,
					tokenize='unicode61'
				)`).Error
			},
			Rollback: func(db *gorm.DB) error {
				return nil
			},
		},
	}
}

func postgresMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "2025070100",
			Migrate: func(db *gorm.DB) error {
				if err := db.AutoMigrate(&PostgresDocument{}); err != nil {
					return err
				}
				return db.Exec(`CREATE INDEX IF NOT EXISTS documents_token_idx ON documents USING GIN (token)`).Error
			},
			Rollback: func(db *gorm.DB) error {
				return nil
			},
		},
	}
}

func migrate(db *gorm.DB, migrations []*gormigrate.Migration) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations)
	return m.Migrate()
}
