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

package apps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/basenana/hanfts/config"
	"github.com/basenana/hanfts/pkg/search"
	"github.com/basenana/hanfts/pkg/tokenizer"
	"github.com/basenana/hanfts/pkg/types"
	"github.com/basenana/hanfts/utils"
	"github.com/basenana/hanfts/utils/logger"
	"github.com/basenana/hanfts/utils/metrics"
)

const (
	indexParallel = 4
	snippetLen    = 80
)

var indexCmd = &cobra.Command{
	Use:   "index FILE...",
	Short: "Index text or html files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		indexer, log, err := setup()
		if err != nil {
			return err
		}
		defer indexer.Close()

		ctx, canF := context.WithCancel(context.Background())
		defer canF()
		ctx, endTask := utils.TraceTask(ctx, "index")
		defer endTask()
		stop := utils.HandleTerminalSignal()
		go func() {
			select {
			case <-stop:
				log.Warn("interrupted, waiting for running files")
				canF()
			case <-ctx.Done():
			}
		}()

		var (
			limiter = utils.NewParallelLimiter(indexParallel)
			wg      sync.WaitGroup
			mux     sync.Mutex
			failed  []string
		)
		for _, file := range args {
			if err = limiter.Acquire(ctx); err != nil {
				break
			}
			wg.Add(1)
			go func(file string) {
				defer wg.Done()
				defer limiter.Release()
				if err := indexFile(ctx, indexer, file); err != nil {
					log.Errorw("index file failed", "file", file, "err", err)
					mux.Lock()
					failed = append(failed, file)
					mux.Unlock()
				}
			}(file)
		}
		wg.Wait()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d files failed: %s", len(failed), strings.Join(failed, ", "))
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search indexed files by Han text or pinyin",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		indexer, _, err := setup()
		if err != nil {
			return err
		}
		defer indexer.Close()

		docs, err := indexer.Query(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		for _, doc := range docs {
			fmt.Printf("%d\t%s\t%s\n\t%s\n", doc.ID, doc.URI, doc.Title, utils.Snippet(doc.Content, snippetLen))
		}
		fmt.Printf("%d hits\n", len(docs))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID...",
	Short: "Remove documents from the index",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		indexer, _, err := setup()
		if err != nil {
			return err
		}
		defer indexer.Close()

		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid document id %s", arg)
			}
			if err = indexer.Delete(context.Background(), id); err != nil {
				return fmt.Errorf("delete document %d failed: %w", id, err)
			}
		}
		return nil
	},
}

func setup() (search.Indexer, *zap.SugaredLogger, error) {
	cfg, err := config.NewConfigLoader().GetConfig()
	if err != nil {
		return nil, nil, err
	}
	logger.SetDebug(cfg.Debug)
	log := logger.NewLogger("hanfts")

	if err = metrics.InitSentry(cfg.SentryDSN); err != nil {
		log.Warnw("init sentry failed", "err", err)
	}
	if cfg.Jieba != nil {
		tokenizer.SetDictPath(cfg.Jieba.Dict)
	}

	tok, err := tokenizer.New(cfg.Tokenizer.Name, cfg.Tokenizer.Args)
	if err != nil {
		return nil, nil, err
	}
	indexer, err := search.New(cfg.Search, tok)
	if err != nil {
		return nil, nil, err
	}
	log.Debugw("indexer ready", "backend", cfg.Search.Backend, "tokenizer", tokenizer.Definition(tok))
	return indexer, log, nil
}

func indexFile(ctx context.Context, indexer search.Indexer, file string) (err error) {
	defer func() {
		if rErr := utils.Recover(recover()); rErr != nil {
			err = rErr
		}
	}()

	raw, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	title, content := utils.ExtractText(file, string(raw))

	uri, err := filepath.Abs(file)
	if err != nil {
		uri = file
	}
	info, err := os.Stat(file)
	if err != nil {
		return err
	}

	doc := &types.IndexDocument{
		ID:        utils.GenerateNewID(),
		URI:       uri,
		Title:     title,
		Content:   content,
		CreateAt:  time.Now().Unix(),
		ChangedAt: info.ModTime().Unix(),
	}
	if err = indexer.Index(ctx, doc); err != nil {
		return err
	}
	fmt.Printf("%d\t%s\n", doc.ID, uri)
	return nil
}
