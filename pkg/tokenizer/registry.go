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
	"github.com/basenana/hanfts/utils/logger"
)

const (
	SimpleName = "simple"
	JiebaName  = "jieba"
)

// Tokenizer converts text into positions of co-located terms. Implementations
// are immutable and safe for concurrent use.
type Tokenizer interface {
	Name() string
	Config() Config
	// Args returns the configuration tokens that rebuild this tokenizer.
	Args() []string
	Tokenize(text []byte) ([]Position, error)
}

// knownArgs lists the arguments every tokenizer accepts.
var knownArgs = map[string][]string{
	SimpleName: {ArgDisablePinyin, ArgDisableStopword},
	JiebaName:  {ArgDisableStopword},
}

// ParseConfig checks name and args without building the tokenizer, which
// for jieba would load its dictionary.
func ParseConfig(name string, args []string) (Config, error) {
	allowed, ok := knownArgs[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown tokenizer %q", types.ErrConfiguration, name)
	}
	cfg, err := ParseArgs(args, allowed...)
	if err != nil {
		return cfg, fmt.Errorf("create %s tokenizer: %w", name, err)
	}
	return cfg, nil
}

// New builds the tokenizer called name from its argument list.
func New(name string, args []string) (Tokenizer, error) {
	log := logger.NewLogger("tokenizer")
	cfg, err := ParseConfig(name, args)
	if err != nil {
		return nil, err
	}
	switch name {
	case SimpleName:
		log.Debugw("tokenizer created", "name", name, "phonetic", cfg.Phonetic, "stopword", cfg.Stopword)
		return NewSimple(cfg), nil
	case JiebaName:
		seg, err := DefaultSegmenter()
		if err != nil {
			return nil, fmt.Errorf("create %s tokenizer: %w", name, err)
		}
		log.Debugw("tokenizer created", "name", name, "stopword", cfg.Stopword)
		return NewJieba(cfg, seg), nil
	default:
		return nil, fmt.Errorf("%w: unknown tokenizer %q", types.ErrConfiguration, name)
	}
}

// Parse builds a tokenizer from a definition such as "simple disable_pinyin".
func Parse(definition string) (Tokenizer, error) {
	fields := strings.Fields(definition)
	if len(fields) == 0 {
		return New(SimpleName, nil)
	}
	return New(fields[0], fields[1:])
}

// Definition is the inverse of Parse.
func Definition(t Tokenizer) string {
	return strings.Join(append([]string{t.Name()}, t.Args()...), " ")
}

// Stream tokenizes text and hands every token to sink in order. A sink error
// stops tokenization and is returned unchanged.
func Stream(t Tokenizer, text []byte, sink func(Token) error) error {
	positions, err := t.Tokenize(text)
	if err != nil {
		return err
	}
	for _, p := range positions {
		for _, term := range p.Terms {
			if err = sink(term); err != nil {
				return err
			}
		}
	}
	return nil
}
