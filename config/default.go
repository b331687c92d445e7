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
	"path"

	"github.com/basenana/hanfts/utils"
)

const (
	defaultQueryCacheSize = 1024
	defaultResultLimit    = 50
	defaultJiebaDict      = "zh"
)

func DefaultConfig(workdir string) (Config, error) {
	indexPath := path.Join(workdir, "index")
	cfg := Config{
		Tokenizer: Tokenizer{Name: "simple"},
		Search: Search{
			Backend:        BleveBackend,
			Path:           indexPath,
			QueryCacheSize: defaultQueryCacheSize,
			ResultLimit:    defaultResultLimit,
		},
		Jieba: &Jieba{Dict: defaultJiebaDict},
		Debug: false,
	}

	if err := utils.Mkdir(workdir); err != nil {
		return cfg, err
	}
	return cfg, nil
}
