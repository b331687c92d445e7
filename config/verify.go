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

import (
	"fmt"

	"github.com/basenana/hanfts/pkg/tokenizer"
)

type verifier func(config *Config) error

var verifiers = []verifier{
	setDefaultValue,
	checkTokenizerConfig,
	checkSearchConfig,
}

func setDefaultValue(config *Config) error {
	if config.Tokenizer.Name == "" {
		config.Tokenizer.Name = tokenizer.SimpleName
	}
	if config.Search.Backend == "" {
		config.Search.Backend = BleveBackend
	}
	if config.Search.QueryCacheSize == 0 {
		config.Search.QueryCacheSize = defaultQueryCacheSize
	}
	if config.Search.ResultLimit == 0 {
		config.Search.ResultLimit = defaultResultLimit
	}
	if config.Jieba == nil {
		config.Jieba = &Jieba{Dict: defaultJiebaDict}
	}
	return nil
}

func checkTokenizerConfig(config *Config) error {
	if _, err := tokenizer.ParseConfig(config.Tokenizer.Name, config.Tokenizer.Args); err != nil {
		return fmt.Errorf("tokenizer %s: %w", config.Tokenizer.Name, err)
	}
	return nil
}

func checkSearchConfig(config *Config) error {
	sCfg := config.Search
	switch sCfg.Backend {
	case BleveBackend:
	case SqliteBackend:
		if sCfg.Path == "" {
			return fmt.Errorf("search.path is empty")
		}
	case PostgresBackend:
		if sCfg.DSN == "" {
			return fmt.Errorf("search.dsn is empty")
		}
	default:
		return fmt.Errorf("search.backend %s not support", sCfg.Backend)
	}
	if sCfg.ResultLimit < 0 {
		return fmt.Errorf("search.result_limit must not be negative")
	}
	return nil
}

func Verify(cfg *Config) error {
	for _, f := range verifiers {
		if err := f(cfg); err != nil {
			return err
		}
	}
	return nil
}
