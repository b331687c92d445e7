package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basenana/hanfts/config"
)

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "update one item of local configuration",
	Long: `Supported keys: tokenizer.name, tokenizer.args (comma separated), search.backend,
search.path, search.dsn, search.query_cache_size, search.result_limit, jieba.dict, sentry_dsn, debug`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := localConfigFilePath(WorkSpace)
		cfg, err := readConfig(configPath)
		if err != nil {
			return fmt.Errorf("read config failed: %w", err)
		}
		if err = setValue(&cfg, args[0], args[1]); err != nil {
			return err
		}
		if err = config.Verify(&cfg); err != nil {
			return err
		}
		return writeConfig(configPath, cfg)
	},
}

func setValue(cfg *config.Config, key, val string) (err error) {
	switch key {
	case "tokenizer.name":
		cfg.Tokenizer.Name = val
	case "tokenizer.args":
		cfg.Tokenizer.Args = nil
		for _, arg := range strings.Split(val, ",") {
			if arg = strings.TrimSpace(arg); arg != "" {
				cfg.Tokenizer.Args = append(cfg.Tokenizer.Args, arg)
			}
		}
	case "search.backend":
		cfg.Search.Backend = val
	case "search.path":
		cfg.Search.Path = val
	case "search.dsn":
		cfg.Search.DSN = val
	case "search.query_cache_size":
		cfg.Search.QueryCacheSize, err = strconv.Atoi(val)
	case "search.result_limit":
		cfg.Search.ResultLimit, err = strconv.Atoi(val)
	case "jieba.dict":
		cfg.Jieba = &config.Jieba{Dict: val}
	case "sentry_dsn":
		cfg.SentryDSN = val
	case "debug":
		cfg.Debug, err = strconv.ParseBool(val)
	default:
		return fmt.Errorf("unknown config key %s", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value of %s: %w", key, err)
	}
	return nil
}
