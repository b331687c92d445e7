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
	"fmt"
	"strings"

	"github.com/basenana/hanfts/pkg/types"
)

const (
	ArgDisablePinyin   = "disable_pinyin"
	ArgDisableStopword = "disable_stopword"
)

// Config holds the switches of one tokenizer instance. It is fixed once the
// tokenizer is built.
type Config struct {
	Phonetic bool `json:"phonetic"`
	Stopword bool `json:"stopword"`
}

func DefaultConfig() Config {
	return Config{Phonetic: true, Stopword: true}
}

// ParseArgs turns the configuration token list into a Config. Only tokens
// listed in allowed are accepted; anything else is an ErrConfiguration.
func ParseArgs(args []string, allowed ...string) (Config, error) {
	cfg := DefaultConfig()
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if !containsArg(allowed, arg) {
			return cfg, fmt.Errorf("%w: unrecognized argument %q", types.ErrConfiguration, arg)
		}
		switch arg {
		case ArgDisablePinyin:
			cfg.Phonetic = false
		case ArgDisableStopword:
			cfg.Stopword = false
		}
	}
	return cfg, nil
}

// Args renders cfg back into the token list ParseArgs accepts.
func (c Config) Args() []string {
	var args []string
	if !c.Phonetic {
		args = append(args, ArgDisablePinyin)
	}
	if !c.Stopword {
		args = append(args, ArgDisableStopword)
	}
	return args
}

func containsArg(allowed []string, arg string) bool {
	for _, a := range allowed {
		if a == arg {
			return true
		}
	}
	return false
}
