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

package config

const (
	BleveBackend    = "bleve"
	SqliteBackend   = "sqlite"
	PostgresBackend = "postgres"

	DisableQueryCache = -1
)

type Config struct {
	Tokenizer Tokenizer `json:"tokenizer"`
	Search    Search    `json:"search"`
	Jieba     *Jieba    `json:"jieba,omitempty"`

	SentryDSN string `json:"sentry_dsn,omitempty"`
	Debug     bool   `json:"debug,omitempty"`
}

// Tokenizer names the tokenization strategy and its configuration tokens,
// for example {"name": "simple", "args": ["disable_stopword"]}.
type Tokenizer struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

type Search struct {
	Backend string `json:"backend"`
	// Path is the index directory of bleve or the database file of sqlite.
	// An empty bleve path keeps the index in memory.
	Path string `json:"path,omitempty"`
	DSN  string `json:"dsn,omitempty"`

	// QueryCacheSize is the number of cached query expressions, 0 takes the
	// default and DisableQueryCache (any negative value) turns the cache off.
	QueryCacheSize int `json:"query_cache_size,omitempty"`
	ResultLimit    int `json:"result_limit,omitempty"`
}

type Jieba struct {
	Dict string `json:"dict"`
}
