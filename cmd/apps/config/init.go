package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/basenana/hanfts/config"
)

var backend string

func init() {
	initCmd.Flags().StringVar(&backend, "backend", config.BleveBackend, "search backend, bleve or sqlite")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "generate local configuration",
	Run: func(cmd *cobra.Command, args []string) {
		initDefaultConfig()
	},
}

func initDefaultConfig() {
	fmt.Printf("Workspace: %s\n", WorkSpace)
	conf, err := config.DefaultConfig(WorkSpace)
	if err != nil {
		fmt.Printf("init workspace failed: %s\n", err.Error())
		return
	}

	switch backend {
	case config.BleveBackend:
		conf.Search.Path = localIndexDirPath(WorkSpace)
		fmt.Printf("Workspace Index Dir: %s\n", conf.Search.Path)
	case config.SqliteBackend:
		conf.Search.Backend = config.SqliteBackend
		conf.Search.Path = localDbFilePath(WorkSpace)
		fmt.Printf("Workspace Database File: %s\n", conf.Search.Path)
	default:
		fmt.Printf("backend %s needs manual configuration\n", backend)
		return
	}

	configPath := localConfigFilePath(WorkSpace)
	fmt.Printf("Workspace Config: %s\n", configPath)
	if err = writeConfig(configPath, conf); err != nil {
		fmt.Printf("wirteback config file failed: %s\n", err.Error())
		return
	}
	fmt.Println("Generate local configuration succeed")
}
