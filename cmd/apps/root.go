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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"

	configapp "github.com/basenana/hanfts/cmd/apps/config"
	"github.com/basenana/hanfts/config"
	"github.com/basenana/hanfts/pkg/query"
	"github.com/basenana/hanfts/pkg/search"
	"github.com/basenana/hanfts/pkg/tokenizer"
)

var (
	tokenizerName string
	tokenizerArgs []string
	outputJSON    bool
	queryFormat   string
)

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(tokenizeCmd)
	RootCmd.AddCommand(queryCmd)
	RootCmd.AddCommand(indexCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(configapp.RunCmd)
}

var RootCmd = &cobra.Command{
	Use:   "hanfts",
	Short: "Han text full-text search toolkit",
	Long:  `Tokenize Han text with pinyin readings and search it from pinyin or Han queries.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	for _, c := range []*cobra.Command{tokenizeCmd, queryCmd} {
		c.Flags().StringVar(&tokenizerName, "tokenizer", tokenizer.SimpleName, "tokenizer name, simple or jieba")
		c.Flags().StringSliceVar(&tokenizerArgs, "args", nil, "tokenizer args, such as disable_pinyin,disable_stopword")
	}
	tokenizeCmd.Flags().BoolVar(&outputJSON, "json", false, "print positions as json")
	queryCmd.Flags().StringVar(&queryFormat, "format", "fts5", "expression format, fts5 or tsquery")

	for _, c := range []*cobra.Command{indexCmd, searchCmd, deleteCmd} {
		c.Flags().StringVar(&config.FilePath, "config", path.Join(config.LocalUserPath(), config.DefaultConfigBase), "hanfts config file")
	}
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [TEXT]",
	Short: "Print the positions and terms of a text, read from stdin when TEXT is omitted",
	RunE: func(cmd *cobra.Command, args []string) error {
		tok, err := tokenizer.New(tokenizerName, tokenizerArgs)
		if err != nil {
			return err
		}
		text, err := inputText(args)
		if err != nil {
			return err
		}
		positions, err := tok.Tokenize([]byte(text))
		if err != nil {
			return err
		}

		if outputJSON {
			raw, err := json.MarshalIndent(positions, "", "    ")
			if err != nil {
				return err
			}
			fmt.Println(string(raw))
			return nil
		}
		for _, p := range positions {
			fmt.Printf("%d\t[%d,%d)\t%s\n", p.Index, p.Start, p.End, strings.Join(p.Alternatives(), " "))
		}
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query TEXT",
	Short: "Print the match expression built from a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tok, err := tokenizer.New(tokenizerName, tokenizerArgs)
		if err != nil {
			return err
		}
		expr := query.NewDecomposer(tok.Config()).Decompose(strings.Join(args, " "))

		switch queryFormat {
		case "fts5":
			fmt.Println(expr.FTS5())
		case "tsquery":
			tsQuery, err := search.TSQuery(tok, expr)
			if err != nil {
				return err
			}
			fmt.Println(tsQuery)
		default:
			return fmt.Errorf("unknown format %s", queryFormat)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "View version information",
	Run: func(cmd *cobra.Command, args []string) {
		vInfo := config.VersionInfo()
		fmt.Printf("Version: %s\n", vInfo.Version())
		fmt.Printf("GitCommit: %s\n", vInfo.Git)
	},
}

func inputText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
