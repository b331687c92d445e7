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
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-ego/gse"

	"github.com/basenana/hanfts/pkg/types"
	"github.com/basenana/hanfts/utils/logger"
)

// Segmenter splits text into dictionary words, in order. Pieces are expected
// to appear in the text in the order they are returned.
type Segmenter interface {
	Cut(text string) []string
}

type gseSegmenter struct {
	seg gse.Segmenter
}

func (g *gseSegmenter) Cut(text string) []string {
	return g.seg.Cut(text, true)
}

var (
	defaultSeg     *gseSegmenter
	defaultSegOnce sync.Once
	defaultSegErr  error
	dictPath       = embedDict
)

const embedDict = "zh"

// SetDictPath sets the dictionary used by DefaultSegmenter. "zh" or an empty
// path selects the embedded dictionary. Must be called before the first
// jieba tokenizer is created.
func SetDictPath(path string) {
	if path == "" {
		path = embedDict
	}
	dictPath = path
}

// DefaultSegmenter loads the gse dictionary once and shares it.
func DefaultSegmenter() (Segmenter, error) {
	defaultSegOnce.Do(func() {
		startAt := time.Now()
		s := &gseSegmenter{}
		var err error
		if dictPath == embedDict {
			err = s.seg.LoadDictEmbed(embedDict)
		} else {
			err = s.seg.LoadDict(dictPath)
		}
		if err != nil {
			defaultSegErr = fmt.Errorf("load segmenter dictionary failed: %w", err)
			return
		}
		defaultSeg = s
		logger.NewLogger("tokenizer").Debugw("segmenter dictionary loaded", "cost", time.Since(startAt).String())
	})
	if defaultSegErr != nil {
		return nil, defaultSegErr
	}
	return defaultSeg, nil
}

// Jieba emits one position per dictionary word. It never expands readings.
type Jieba struct {
	cfg  Config
	norm Normalizer
	seg  Segmenter
}

var _ Tokenizer = &Jieba{}

func NewJieba(cfg Config, seg Segmenter) *Jieba {
	cfg.Phonetic = false
	return &Jieba{cfg: cfg, norm: NewNormalizer(cfg.Stopword), seg: seg}
}

func (j *Jieba) Name() string {
	return JiebaName
}

func (j *Jieba) Config() Config {
	return j.cfg
}

func (j *Jieba) Args() []string {
	if !j.cfg.Stopword {
		return []string{ArgDisableStopword}
	}
	return nil
}

func (j *Jieba) Tokenize(text []byte) ([]Position, error) {
	defer logLatency(JiebaName, time.Now())
	if !utf8.Valid(text) {
		encodingErrorCounter.WithLabelValues(JiebaName).Inc()
		return nil, fmt.Errorf("%s tokenizer: %w", JiebaName, types.ErrEncoding)
	}

	var (
		content = string(text)
		result  []Position
		cursor  int
		index   int
	)
	for _, piece := range j.seg.Cut(content) {
		if piece == "" {
			continue
		}
		// offsets are recovered from the source, pieces the segmenter
		// rewrote or dropped are skipped
		idx := strings.Index(content[cursor:], piece)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		end := start + len(piece)
		cursor = end

		if isSkippable(piece) {
			continue
		}
		term, ok := j.norm.Normalize(piece)
		if !ok {
			continue
		}
		p := newPosition(index, start, end)
		p.add(term, KindSegment)
		result = append(result, p)
		index++
	}
	return result, nil
}
